// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mux

import (
	"periph.io/x/conn/v3/gpio"

	"github.com/GermanBionicSystems/ledmux/glyph"
)

// segmentLines drives the eight lines shared by all digits.
type segmentLines interface {
	// blank drives every line to off.
	blank(off gpio.Level) error
	// light drives the lines of the segments set in p to on, leaving the
	// others untouched.
	light(p glyph.Pattern, on gpio.Level) error
}

// bit returns the pattern bit of segment line i (0 is dp, 1..7 are a..g).
func bit(i int) glyph.Pattern {
	return glyph.SegDP >> uint(i)
}

type pinSegments [glyph.NumSegments]gpio.PinOut

func (s *pinSegments) blank(off gpio.Level) error {
	for _, p := range s {
		if err := p.Out(off); err != nil {
			return err
		}
	}
	return nil
}

func (s *pinSegments) light(pattern glyph.Pattern, on gpio.Level) error {
	for i, p := range s {
		if pattern&bit(i) == 0 {
			continue
		}
		if err := p.Out(on); err != nil {
			return err
		}
	}
	return nil
}

// groupSegments writes all lines in one transaction, useful when they sit
// behind a shift register or an I/O expander.
type groupSegments struct {
	g gpio.Group
}

const allSegments gpio.GPIOValue = 1<<glyph.NumSegments - 1

func (s *groupSegments) blank(off gpio.Level) error {
	var v gpio.GPIOValue
	if off {
		v = allSegments
	}
	return s.g.Out(v, allSegments)
}

func (s *groupSegments) light(pattern glyph.Pattern, on gpio.Level) error {
	var mask gpio.GPIOValue
	for i := 0; i < glyph.NumSegments; i++ {
		if pattern&bit(i) != 0 {
			mask |= 1 << uint(i)
		}
	}
	if mask == 0 {
		// A zero mask means every pin to gpio.Group.
		return nil
	}
	var v gpio.GPIOValue
	if on {
		v = mask
	}
	return s.g.Out(v, mask)
}
