// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package countdown

import "strconv"

// Unit names one of the four displayed time units. The string value is
// also the element ID of the unit's bottom element.
type Unit string

const (
	Days    Unit = "days"
	Hours   Unit = "hours"
	Minutes Unit = "minutes"
	Seconds Unit = "seconds"
)

// Units lists every unit in display order.
var Units = [4]Unit{Days, Hours, Minutes, Seconds}

// Resting is the display value of every unit before the first
// computation and after expiry.
const Resting = "00"

const (
	millisPerSecond int64 = 1000
	millisPerMinute       = 60 * millisPerSecond
	millisPerHour         = 60 * millisPerMinute
	millisPerDay          = 24 * millisPerHour
)

// Values holds the display string of each unit.
type Values struct {
	Days    string
	Hours   string
	Minutes string
	Seconds string
}

// RestingValues returns Values with every unit at [Resting].
func RestingValues() Values {
	return Values{Days: Resting, Hours: Resting, Minutes: Resting, Seconds: Resting}
}

// Get returns the value for unit. Unknown units return "".
func (values Values) Get(unit Unit) string {
	switch unit {
	case Days:
		return values.Days
	case Hours:
		return values.Hours
	case Minutes:
		return values.Minutes
	case Seconds:
		return values.Seconds
	default:
		return ""
	}
}

// Set replaces the value for unit. Unknown units are ignored.
func (values *Values) Set(unit Unit, value string) {
	switch unit {
	case Days:
		values.Days = value
	case Hours:
		values.Hours = value
	case Minutes:
		values.Minutes = value
	case Seconds:
		values.Seconds = value
	}
}

// String formats values as DD:HH:MM:SS.
func (values Values) String() string {
	return values.Days + ":" + values.Hours + ":" + values.Minutes + ":" + values.Seconds
}

// Decompose splits a millisecond distance into whole days, hours,
// minutes, and seconds, each zero-padded to at least two characters.
// Day counts of 100 or more keep all their digits.
//
// Division floors; the remainders taken before dividing truncate
// toward zero. For a negative distance this yields negative (and not
// mutually consistent) units. Callers treat any negative distance as
// expiry and never display them.
func Decompose(distanceMillis int64) Values {
	return Values{
		Days:    pad(floorDiv(distanceMillis, millisPerDay)),
		Hours:   pad(floorDiv(distanceMillis%millisPerDay, millisPerHour)),
		Minutes: pad(floorDiv(distanceMillis%millisPerHour, millisPerMinute)),
		Seconds: pad(floorDiv(distanceMillis%millisPerMinute, millisPerSecond)),
	}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(dividend, divisor int64) int64 {
	quotient := dividend / divisor
	if dividend%divisor != 0 && (dividend < 0) != (divisor < 0) {
		quotient--
	}
	return quotient
}

// pad left-pads the decimal form of value with '0' to width 2.
func pad(value int64) string {
	formatted := strconv.FormatInt(value, 10)
	if len(formatted) < 2 {
		return "0" + formatted
	}
	return formatted
}
