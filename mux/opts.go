// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mux

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/GermanBionicSystems/ledmux/content"
	"github.com/GermanBionicSystems/ledmux/glyph"
)

// Polarity is the wiring of the panel.
type Polarity uint8

const (
	// CommonCathode panels light a segment with a high segment line and
	// select a digit by pulling its common line low.
	CommonCathode Polarity = iota
	// CommonAnode panels light a segment with a low segment line and select a
	// digit by driving its common line high.
	CommonAnode
)

// SegmentOn is the level that lights a segment.
func (p Polarity) SegmentOn() gpio.Level {
	return p == CommonCathode
}

// SegmentOff is the level that turns a segment off.
func (p Polarity) SegmentOff() gpio.Level {
	return !p.SegmentOn()
}

// DigitSelect is the level that enables a digit.
func (p Polarity) DigitSelect() gpio.Level {
	return p == CommonAnode
}

// DigitDeselect is the level that disables a digit.
func (p Polarity) DigitDeselect() gpio.Level {
	return !p.DigitSelect()
}

func (p Polarity) String() string {
	switch p {
	case CommonCathode:
		return "common-cathode"
	case CommonAnode:
		return "common-anode"
	default:
		return fmt.Sprintf("Polarity(%d)", uint8(p))
	}
}

// ParsePolarity parses the value returned by Polarity.String.
func ParsePolarity(s string) (Polarity, error) {
	for _, p := range []Polarity{CommonCathode, CommonAnode} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("mux: unknown polarity %q", s)
}

// NoPosition disables a role.
const NoPosition = -1

// Roles assigns the persistent content and the modifiers to digit cells.
//
// Cells that are not assigned any group stay blank while no overlay shows.
type Roles struct {
	// Address and Data are the cells of each group's symbols, most
	// significant first.
	Address [2]int
	Data    [2]int
	// Shift is the cell that gets ShiftMark while the shift key is in effect.
	Shift int
	// DecimalPoint is the cell whose decimal point is always lit.
	DecimalPoint int
}

// DefaultRoles is the layout of the eight cell KIM Uno board: address in the
// first two cells with a separator dot, data after a blank cell, shift on
// the last cell.
var DefaultRoles = Roles{
	Address:      [2]int{0, 1},
	Data:         [2]int{3, 4},
	Shift:        7,
	DecimalPoint: 1,
}

func (r *Roles) validate() error {
	used := map[int]string{}
	check := func(name string, pos int, exclusive bool) error {
		if pos == NoPosition {
			return nil
		}
		if pos < 0 || pos >= content.Positions {
			return fmt.Errorf("mux: %s position %d out of range", name, pos)
		}
		if !exclusive {
			return nil
		}
		if other, ok := used[pos]; ok {
			return fmt.Errorf("mux: %s and %s share position %d", other, name, pos)
		}
		used[pos] = name
		return nil
	}
	for i, pos := range r.Address {
		if err := check(fmt.Sprintf("address[%d]", i), pos, true); err != nil {
			return err
		}
	}
	for i, pos := range r.Data {
		if err := check(fmt.Sprintf("data[%d]", i), pos, true); err != nil {
			return err
		}
	}
	// Modifiers may land on a group cell.
	if err := check("shift", r.Shift, false); err != nil {
		return err
	}
	return check("decimal point", r.DecimalPoint, false)
}

// DefaultHold is how long each digit stays selected per frame.
const DefaultHold = 2 * time.Millisecond

// Opts describes the wiring of the panel.
type Opts struct {
	Polarity Polarity
	// Segments are the segment lines in dp, a, b, c, d, e, f, g order. They
	// are shared by all digits.
	Segments [glyph.NumSegments]gpio.PinOut
	// SegmentGroup, when set, is used instead of Segments. Offset 0 is dp and
	// offsets 1 to 7 are a to g.
	SegmentGroup gpio.Group
	// Digits are the digit select lines, one per cell.
	Digits [content.Positions]gpio.PinIO
	// Roles defaults to DefaultRoles when left zero.
	Roles Roles
	// Hold is the activation window of each digit. It defaults to
	// DefaultHold.
	Hold time.Duration
}

func (o *Opts) validate() error {
	if o.Polarity != CommonCathode && o.Polarity != CommonAnode {
		return fmt.Errorf("mux: invalid polarity %d", o.Polarity)
	}
	if o.SegmentGroup != nil {
		if n := len(o.SegmentGroup.Pins()); n < glyph.NumSegments {
			return fmt.Errorf("mux: segment group has %d pins, need %d", n, glyph.NumSegments)
		}
	} else {
		for i, p := range o.Segments {
			if p == nil {
				return fmt.Errorf("mux: segment line %d missing", i)
			}
		}
	}
	for i, p := range o.Digits {
		if p == nil {
			return fmt.Errorf("mux: digit line %d missing", i)
		}
	}
	if o.Hold < 0 {
		return errors.New("mux: negative hold")
	}
	r := o.roles()
	return r.validate()
}

// roles returns Roles, or DefaultRoles if it is the zero value. The zero
// value would put both address symbols on cell 0, so it is never a layout.
func (o *Opts) roles() Roles {
	if o.Roles == (Roles{}) {
		return DefaultRoles
	}
	return o.Roles
}
