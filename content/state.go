// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package content holds what an eight digit panel shows: two persistent hex
// groups, the shift indicator and a transient text overlay.
//
// A State is owned by a single goroutine. The host updates it between scans
// and the scan engine reads it once per frame; it is not safe for concurrent
// use.
package content

import (
	"time"

	"github.com/GermanBionicSystems/ledmux/glyph"
)

// Positions is the number of digit cells of the panel.
const Positions = 8

// Group is a pair of symbols, most significant first.
type Group [2]glyph.Symbol

// Buffer is one symbol per digit cell.
type Buffer [Positions]glyph.Symbol

// Clock returns monotonic time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads time.Now, which carries a monotonic reading so overlay
// deadlines are not affected by wall clock steps.
var SystemClock Clock = systemClock{}

// State is the content of the panel.
type State struct {
	clock Clock

	address Group
	data    Group
	shift   bool

	overlay Buffer
	expiry  time.Time
}

// NewState returns a State with both groups showing 00, no shift and an
// expired blank overlay. A nil clock selects SystemClock.
func NewState(clock Clock) *State {
	if clock == nil {
		clock = SystemClock
	}
	s := &State{clock: clock}
	s.overlay = blankBuffer()
	s.expiry = clock.Now()
	return s
}

// SetAddressGroup replaces the address group.
func (s *State) SetAddressGroup(g Group) {
	mustBeValid(g[:]...)
	s.address = g
}

// SetDataGroup replaces the data group.
func (s *State) SetDataGroup(g Group) {
	mustBeValid(g[:]...)
	s.data = g
}

// SetShiftIndicator sets whether the keypad shift key is in effect.
func (s *State) SetShiftIndicator(on bool) {
	s.shift = on
}

// AddressGroup returns the address group.
func (s *State) AddressGroup() Group {
	return s.address
}

// DataGroup returns the data group.
func (s *State) DataGroup() Group {
	return s.data
}

// ShiftIndicator reports whether the shift indicator is on.
func (s *State) ShiftIndicator() bool {
	return s.shift
}

// Overlay returns the overlay buffer and whether it is still to be shown.
//
// The overlay is active strictly before its deadline.
func (s *State) Overlay() (Buffer, bool) {
	return s.overlay, s.clock.Now().Before(s.expiry)
}

// Expiry returns the time after which the overlay is no longer shown.
func (s *State) Expiry() time.Time {
	return s.expiry
}

// Now returns the time of the clock the State was created with.
func (s *State) Now() time.Time {
	return s.clock.Now()
}

func blankBuffer() Buffer {
	var b Buffer
	for i := range b {
		b[i] = glyph.Space
	}
	return b
}

func mustBeValid(syms ...glyph.Symbol) {
	for _, sym := range syms {
		// Lookup panics on an invalid symbol.
		_ = glyph.Lookup(sym)
	}
}
