// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package countdown

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/flipclock/lib/clock"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// memorySurface is a Surface backed by maps. Every mutation is counted
// so tests can assert that nothing was touched.
type memorySurface struct {
	texts  map[string]string
	flags  map[string]map[Flag]bool
	groups map[string]Group
	writes int
}

func newMemorySurface() *memorySurface {
	surface := &memorySurface{
		texts:  make(map[string]string),
		flags:  make(map[string]map[Flag]bool),
		groups: make(map[string]Group),
	}
	for _, unit := range Units {
		group := Group{TopLayerID: string(unit) + "-layer-top", NextLayerID: string(unit) + "-layer-next"}
		for _, elementID := range ElementIDs(unit) {
			surface.texts[elementID] = ""
			surface.groups[elementID] = group
		}
		surface.flags[group.TopLayerID] = make(map[Flag]bool)
		surface.flags[group.NextLayerID] = make(map[Flag]bool)
	}
	return surface
}

func (surface *memorySurface) Has(elementID string) bool {
	_, exists := surface.texts[elementID]
	return exists
}

func (surface *memorySurface) SetText(elementID, text string) bool {
	if _, exists := surface.texts[elementID]; !exists {
		return false
	}
	surface.writes++
	surface.texts[elementID] = text
	return true
}

func (surface *memorySurface) SetFlag(elementID string, flag Flag, enabled bool) bool {
	flags, exists := surface.flags[elementID]
	if !exists {
		return false
	}
	surface.writes++
	flags[flag] = enabled
	return true
}

func (surface *memorySurface) FindGroup(elementID string) (Group, bool) {
	group, exists := surface.groups[elementID]
	return group, exists
}

// remove deletes a text element and detaches it from its card.
func (surface *memorySurface) remove(elementID string) {
	delete(surface.texts, elementID)
	delete(surface.groups, elementID)
}

func (surface *memorySurface) flag(unit Unit, layer string, flag Flag) bool {
	return surface.flags[string(unit)+"-layer-"+layer][flag]
}

func (surface *memorySurface) unitTexts(unit Unit) [3]string {
	var texts [3]string
	for index, elementID := range ElementIDs(unit) {
		texts[index] = surface.texts[elementID]
	}
	return texts
}

func newTestTimer(target time.Time, options ...Option) (*Timer, *memorySurface, *clock.FakeScheduler) {
	scheduler := clock.Fake(epoch)
	surface := newMemorySurface()
	return New(target, surface, scheduler, options...), surface, scheduler
}

func TestInitializeRendersImmediately(t *testing.T) {
	timer, surface, _ := newTestTimer(epoch.Add(90061000 * time.Millisecond))

	timer.Initialize()

	want := Values{Days: "01", Hours: "01", Minutes: "01", Seconds: "01"}
	if diff := cmp.Diff(want, timer.Rendered()); diff != "" {
		t.Fatalf("Rendered() mismatch (-want +got):\n%s", diff)
	}
	for _, unit := range Units {
		texts := surface.unitTexts(unit)
		if texts != [3]string{"01", "01", "01"} {
			t.Errorf("%s elements = %v, want all 01", unit, texts)
		}
		if surface.flag(unit, "top", FlagFlipping) || surface.flag(unit, "next", FlagVisible) {
			t.Errorf("%s flags set by Initialize", unit)
		}
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	timer, surface, _ := newTestTimer(epoch.Add(3*time.Hour + 7*time.Second))

	timer.Initialize()
	firstRendered := timer.Rendered()
	firstTexts := cloneTexts(surface.texts)

	timer.Initialize()

	if diff := cmp.Diff(firstRendered, timer.Rendered()); diff != "" {
		t.Errorf("second Initialize changed rendered state (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(firstTexts, surface.texts); diff != "" {
		t.Errorf("second Initialize changed surface (-first +second):\n%s", diff)
	}
}

func TestTickWithoutChangeLeavesSurfaceUntouched(t *testing.T) {
	// Target 10 days out: seconds change every tick, so use a tick
	// interval shorter than a second and sample within one second.
	timer, surface, scheduler := newTestTimer(epoch.Add(10*24*time.Hour+500*time.Millisecond),
		WithTickInterval(100*time.Millisecond))

	timer.Start()
	writesAfterStart := surface.writes

	// Ticks at +100ms .. +400ms: distance stays within the same second.
	scheduler.Advance(400 * time.Millisecond)

	if surface.writes != writesAfterStart {
		t.Fatalf("surface writes = %d after unchanged ticks, want %d", surface.writes, writesAfterStart)
	}
}

func TestTickFlipsChangedUnit(t *testing.T) {
	// 5 seconds out: first tick at +1s sees 4s remaining.
	timer, surface, scheduler := newTestTimer(epoch.Add(5 * time.Second))
	timer.Start()

	scheduler.Advance(time.Second)

	// Trigger: next element holds the new value and the next layer is
	// visible, but the top layer has not started flipping yet.
	if got := surface.texts[NextID(Seconds)]; got != "04" {
		t.Fatalf("seconds-next = %q immediately after trigger, want 04", got)
	}
	if !surface.flag(Seconds, "next", FlagVisible) {
		t.Fatal("next layer not visible after trigger")
	}
	if surface.flag(Seconds, "top", FlagFlipping) {
		t.Fatal("top layer flipping before the next frame")
	}
	if got := surface.texts[TopID(Seconds)]; got != "05" {
		t.Fatalf("seconds-top = %q before completion, want old value 05", got)
	}

	scheduler.Advance(clock.FrameInterval)
	if !surface.flag(Seconds, "top", FlagFlipping) {
		t.Fatal("top layer not flipping after the next frame")
	}
	if got := timer.Rendered().Seconds; got != "05" {
		t.Fatalf("rendered seconds = %q mid-flip, want 05", got)
	}

	scheduler.Advance(DefaultFlipDuration - clock.FrameInterval)

	if texts := surface.unitTexts(Seconds); texts != [3]string{"04", "04", "04"} {
		t.Fatalf("seconds elements = %v after flip, want all 04", texts)
	}
	if surface.flag(Seconds, "top", FlagFlipping) || surface.flag(Seconds, "next", FlagVisible) {
		t.Fatal("flip flags not cleared after completion")
	}
	if got := timer.Rendered().Seconds; got != "04" {
		t.Fatalf("rendered seconds = %q after flip, want 04", got)
	}

	// Units that did not change were never flipped.
	if surface.flag(Minutes, "next", FlagVisible) || surface.texts[NextID(Minutes)] != "00" {
		t.Fatal("unchanged minutes unit was flipped")
	}
}

func TestFlipUsesConfiguredDuration(t *testing.T) {
	timer, surface, scheduler := newTestTimer(epoch.Add(5*time.Second),
		WithFlipDuration(200*time.Millisecond))
	timer.Start()

	scheduler.Advance(time.Second + 199*time.Millisecond)
	if got := surface.texts[TopID(Seconds)]; got != "05" {
		t.Fatalf("seconds-top = %q before 200ms flip ends, want 05", got)
	}
	scheduler.Advance(time.Millisecond)
	if got := surface.texts[TopID(Seconds)]; got != "04" {
		t.Fatalf("seconds-top = %q after 200ms flip, want 04", got)
	}
}

func TestExpiryForcesZeroAndStops(t *testing.T) {
	expirations := 0
	timer, surface, scheduler := newTestTimer(epoch.Add(-time.Millisecond),
		OnExpire(func() { expirations++ }))

	timer.Start()
	scheduler.Advance(time.Second)

	for _, unit := range Units {
		if texts := surface.unitTexts(unit); texts != [3]string{"00", "00", "00"} {
			t.Errorf("%s elements = %v after expiry, want all 00", unit, texts)
		}
	}
	if diff := cmp.Diff(RestingValues(), timer.Rendered()); diff != "" {
		t.Errorf("Rendered() after expiry mismatch (-want +got):\n%s", diff)
	}
	if timer.Running() {
		t.Error("Running() = true after expiry")
	}
	if !timer.Expired() {
		t.Error("Expired() = false after expiry")
	}
	if expirations != 1 {
		t.Errorf("expire hook ran %d times, want 1", expirations)
	}

	// No further ticks and no stray flips overwrite the zeros.
	writes := surface.writes
	scheduler.Advance(10 * time.Second)
	if surface.writes != writes {
		t.Errorf("surface writes changed from %d to %d after expiry", writes, surface.writes)
	}
	if pending := scheduler.Pending(); pending != 0 {
		t.Errorf("Pending() = %d after expiry, want 0", pending)
	}
}

func TestCountdownRunsToExpiry(t *testing.T) {
	timer, surface, scheduler := newTestTimer(epoch.Add(2500 * time.Millisecond))
	timer.Start()

	if got := timer.Rendered().Seconds; got != "02" {
		t.Fatalf("initial seconds = %q, want 02", got)
	}

	// +1s: 1.5s left -> "01". +2s: 0.5s left -> "00". +3s: expired.
	scheduler.Advance(time.Second + DefaultFlipDuration)
	if got := surface.texts[BottomID(Seconds)]; got != "01" {
		t.Fatalf("seconds after first flip = %q, want 01", got)
	}
	scheduler.Advance(time.Second)
	if got := surface.texts[BottomID(Seconds)]; got != "00" {
		t.Fatalf("seconds after second flip = %q, want 00", got)
	}
	scheduler.Advance(time.Second)
	if !timer.Expired() || timer.Running() {
		t.Fatalf("Expired()=%v Running()=%v at target+0.5s, want expired and stopped", timer.Expired(), timer.Running())
	}
}

func TestStopWhenStoppedIsNoOp(t *testing.T) {
	timer, surface, scheduler := newTestTimer(epoch.Add(time.Hour))

	timer.Stop()
	timer.Stop()

	if surface.writes != 0 {
		t.Errorf("Stop on a stopped timer wrote to the surface %d times", surface.writes)
	}
	if diff := cmp.Diff(RestingValues(), timer.Rendered()); diff != "" {
		t.Errorf("Stop changed rendered state (-want +got):\n%s", diff)
	}
	if pending := scheduler.Pending(); pending != 0 {
		t.Errorf("Pending() = %d, want 0", pending)
	}
}

func TestStopPreventsFurtherTicks(t *testing.T) {
	timer, surface, scheduler := newTestTimer(epoch.Add(time.Hour))
	timer.Start()
	scheduler.Advance(time.Second + DefaultFlipDuration)
	timer.Stop()

	if timer.Running() {
		t.Fatal("Running() = true after Stop")
	}
	writes := surface.writes
	scheduler.Advance(time.Minute)
	if surface.writes != writes {
		t.Fatalf("surface writes changed from %d to %d after Stop", writes, surface.writes)
	}
}

func TestStopLetsInFlightFlipComplete(t *testing.T) {
	timer, surface, scheduler := newTestTimer(epoch.Add(5 * time.Second))
	timer.Start()
	scheduler.Advance(time.Second)
	timer.Stop()

	scheduler.Advance(DefaultFlipDuration)

	if got := surface.texts[TopID(Seconds)]; got != "04" {
		t.Fatalf("seconds-top = %q, want in-flight flip to land 04", got)
	}
}

func TestStartTwiceKeepsOnePeriodicTask(t *testing.T) {
	timer, _, scheduler := newTestTimer(epoch.Add(time.Hour))

	timer.Start()
	timer.Start()

	if pending := scheduler.Pending(); pending != 1 {
		t.Fatalf("Pending() = %d after two Starts, want 1", pending)
	}
}

func TestMissingElementsSkipOnlyThatUnit(t *testing.T) {
	timer, surface, scheduler := newTestTimer(epoch.Add(61 * time.Second))
	surface.remove(NextID(Seconds))
	surface.remove(BottomID(Minutes))

	timer.Start()
	if got := surface.texts[TopID(Minutes)]; got != "01" {
		t.Fatalf("minutes-top = %q, want Initialize to write present elements", got)
	}

	// +1s leaves 60s (seconds change); +2s leaves 59s (minutes change).
	scheduler.Advance(2*time.Second + DefaultFlipDuration)

	if got := surface.texts[TopID(Seconds)]; got != "01" {
		t.Errorf("seconds-top = %q, want untouched 01 (next element missing)", got)
	}
	if got := surface.texts[TopID(Minutes)]; got != "01" {
		t.Errorf("minutes-top = %q, want untouched 01 (card missing)", got)
	}
	if got := surface.texts[TopID(Hours)]; got != "00" {
		t.Errorf("hours-top = %q, want 00", got)
	}
}

func TestOverlapPreserveLastTriggerWins(t *testing.T) {
	timer, surface, scheduler := newTestTimer(epoch.Add(10*time.Second),
		WithTickInterval(250*time.Millisecond),
		WithFlipDuration(time.Second))
	timer.Start()

	// Ticks every 250ms. rendered seconds stays "10" until the first
	// flip completes, so every tick after the value drops to 09
	// re-triggers.
	scheduler.Advance(1500 * time.Millisecond)

	// The first trigger (at +250ms, "09") completes at +1250ms;
	// later triggers are still pending.
	if got := surface.texts[TopID(Seconds)]; got != "09" {
		t.Fatalf("seconds-top = %q at +1.5s, want 09", got)
	}

	timer.Stop()
	scheduler.Advance(2 * time.Second)

	// Last trigger was at +1500ms with 8.5s left ("08").
	if got := surface.texts[TopID(Seconds)]; got != "08" {
		t.Fatalf("seconds-top = %q after all flips, want last trigger's 08", got)
	}
	if got := timer.Rendered().Seconds; got != "08" {
		t.Fatalf("rendered seconds = %q, want 08", got)
	}
}

func TestOverlapRestartCancelsPendingFlip(t *testing.T) {
	timer, surface, scheduler := newTestTimer(epoch.Add(10*time.Second),
		WithTickInterval(250*time.Millisecond),
		WithFlipDuration(time.Second),
		WithOverlapPolicy(OverlapRestart))
	timer.Start()

	// Triggers at +250ms, +500ms, +750ms, +1000ms each restart the
	// flip, so nothing has completed by +1200ms.
	scheduler.Advance(1200 * time.Millisecond)
	if got := surface.texts[TopID(Seconds)]; got != "10" {
		t.Fatalf("seconds-top = %q at +1.2s, want 10 (flips restarted)", got)
	}

	timer.Stop()
	scheduler.Advance(2 * time.Second)
	// Only the last trigger (+1000ms, 9s left) survives.
	if got := surface.texts[TopID(Seconds)]; got != "09" {
		t.Fatalf("seconds-top = %q after restart flips settle, want 09", got)
	}
	if pending := scheduler.Pending(); pending != 0 {
		t.Fatalf("Pending() = %d, want 0", pending)
	}
}

func TestParseOverlapPolicy(t *testing.T) {
	for input, want := range map[string]OverlapPolicy{
		"":         OverlapPreserve,
		"preserve": OverlapPreserve,
		"restart":  OverlapRestart,
	} {
		got, err := ParseOverlapPolicy(input)
		if err != nil || got != want {
			t.Errorf("ParseOverlapPolicy(%q) = %v, %v; want %v", input, got, err, want)
		}
	}
	if _, err := ParseOverlapPolicy("queue"); err == nil {
		t.Error("ParseOverlapPolicy(queue) succeeded, want error")
	}
}

func TestRemaining(t *testing.T) {
	timer, _, scheduler := newTestTimer(epoch.Add(time.Minute))
	scheduler.Advance(15 * time.Second)
	if got := timer.Remaining(); got != 45*time.Second {
		t.Fatalf("Remaining() = %v, want 45s", got)
	}
}

func cloneTexts(texts map[string]string) map[string]string {
	clone := make(map[string]string, len(texts))
	for key, value := range texts {
		clone[key] = value
	}
	return clone
}
