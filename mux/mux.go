// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mux drives an eight digit seven-segment panel whose digits share
// their segment lines, lighting one digit at a time.
//
// The panel only looks continuously lit if ScanFrame is called again and
// again. Each call selects every digit once for the hold window, so a frame
// takes about eight times Opts.Hold; there is no background timer.
//
// Before a digit is selected, every digit is deselected and every segment is
// turned off, so segments meant for one digit never show on another.
package mux

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"

	"github.com/GermanBionicSystems/ledmux/content"
	"github.com/GermanBionicSystems/ledmux/glyph"
)

// ShiftMark is OR'd into the shift cell's pattern while the shift key is in
// effect.
const ShiftMark = glyph.SegF

// Dev is a multiplexed panel showing a content.State.
type Dev struct {
	state  *content.State
	pol    Polarity
	segs   segmentLines
	digits [content.Positions]gpio.PinIO
	roles  Roles
	hold   time.Duration
	sleep  func(time.Duration)
}

// New returns a Dev that renders state on the lines described by opts.
//
// The lines are not touched until the first ScanFrame.
func New(state *content.State, opts *Opts) (*Dev, error) {
	if state == nil {
		return nil, errors.New("mux: nil state")
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	d := &Dev{
		state:  state,
		pol:    opts.Polarity,
		digits: opts.Digits,
		roles:  opts.roles(),
		hold:   opts.Hold,
		sleep:  time.Sleep,
	}
	if d.hold == 0 {
		d.hold = DefaultHold
	}
	if opts.SegmentGroup != nil {
		d.segs = &groupSegments{g: opts.SegmentGroup}
	} else {
		segs := pinSegments(opts.Segments)
		d.segs = &segs
	}
	return d, nil
}

// Frame returns the pattern of every cell as the next ScanFrame would show
// it.
func (d *Dev) Frame() [content.Positions]glyph.Pattern {
	syms, active := d.state.Overlay()
	if !active {
		syms = d.persistent()
	}
	var f [content.Positions]glyph.Pattern
	for pos, sym := range syms {
		p := glyph.Lookup(sym)
		if pos == d.roles.Shift && d.state.ShiftIndicator() {
			p |= ShiftMark
		}
		if pos == d.roles.DecimalPoint {
			p |= glyph.SegDP
		}
		f[pos] = p
	}
	return f
}

func (d *Dev) persistent() content.Buffer {
	var b content.Buffer
	for i := range b {
		b[i] = glyph.Space
	}
	addr, data := d.state.AddressGroup(), d.state.DataGroup()
	for i := range addr {
		if pos := d.roles.Address[i]; pos != NoPosition {
			b[pos] = addr[i]
		}
		if pos := d.roles.Data[i]; pos != NoPosition {
			b[pos] = data[i]
		}
	}
	return b
}

// ScanFrame lights every digit once, in cell order, for the hold window.
//
// Whether the overlay or the persistent content shows is decided once at the
// start of the frame. It blocks for about eight hold windows.
func (d *Dev) ScanFrame() error {
	frame := d.Frame()
	for pos, p := range frame {
		if err := d.blank(); err != nil {
			return err
		}
		if err := d.segs.light(p, d.pol.SegmentOn()); err != nil {
			return fmt.Errorf("mux: segments for digit %d: %w", pos, err)
		}
		if err := d.digits[pos].Out(d.pol.DigitSelect()); err != nil {
			return fmt.Errorf("mux: select digit %d: %w", pos, err)
		}
		d.sleep(d.hold)
		if err := d.digits[pos].Out(d.pol.DigitDeselect()); err != nil {
			return fmt.Errorf("mux: deselect digit %d: %w", pos, err)
		}
	}
	return nil
}

// blank deselects every digit, then turns every segment off.
func (d *Dev) blank() error {
	for pos, p := range d.digits {
		if err := p.Out(d.pol.DigitDeselect()); err != nil {
			return fmt.Errorf("mux: deselect digit %d: %w", pos, err)
		}
	}
	if err := d.segs.blank(d.pol.SegmentOff()); err != nil {
		return fmt.Errorf("mux: blank segments: %w", err)
	}
	return nil
}

// DisableAllDigits turns every digit line into an input with its pull-up
// enabled, so the panel stays dark and the lines can be shared.
//
// The next ScanFrame drives them as outputs again.
func (d *Dev) DisableAllDigits() error {
	for pos, p := range d.digits {
		if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return fmt.Errorf("mux: release digit %d: %w", pos, err)
		}
	}
	return nil
}

// Halt implements conn.Resource.
//
// It turns the panel off and releases the digit lines.
func (d *Dev) Halt() error {
	if err := d.blank(); err != nil {
		return err
	}
	return d.DisableAllDigits()
}

func (d *Dev) String() string {
	return fmt.Sprintf("mux{%s, hold=%s}", d.pol, d.hold)
}

var _ conn.Resource = &Dev{}
