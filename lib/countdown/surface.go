// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package countdown

// Flag is a named visual state toggled on a card layer.
type Flag string

const (
	// FlagFlipping marks a card's top layer as mid-rotation.
	FlagFlipping Flag = "flipping"

	// FlagVisible reveals a card's next layer behind the top layer.
	FlagVisible Flag = "visible"
)

// Group is the card that contains a unit's elements: the layer that
// flips and the layer that shows the incoming value behind it.
type Group struct {
	TopLayerID  string
	NextLayerID string
}

// Surface is the presentation port. Implementations expose
// addressable text elements and the card groups that contain them.
// Methods report false when the addressed element does not exist;
// they never fail otherwise.
type Surface interface {
	// Has reports whether an element with the given ID exists.
	Has(elementID string) bool

	// SetText replaces an element's text.
	SetText(elementID, text string) bool

	// SetFlag turns a visual state flag on or off.
	SetFlag(elementID string, flag Flag, enabled bool) bool

	// FindGroup returns the card containing the element.
	FindGroup(elementID string) (Group, bool)
}

// TopID returns the ID of the element on the upper half of a unit's
// card.
func TopID(unit Unit) string { return string(unit) + "-top" }

// BottomID returns the ID of the element on the lower half of a
// unit's card.
func BottomID(unit Unit) string { return string(unit) }

// NextID returns the ID of the element that shows the incoming value
// behind the flipping layer.
func NextID(unit Unit) string { return string(unit) + "-next" }

// ElementIDs returns the three text element IDs for unit: top, bottom,
// next.
func ElementIDs(unit Unit) [3]string {
	return [3]string{TopID(unit), BottomID(unit), NextID(unit)}
}
