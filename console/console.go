// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package console emulates a multiplexed seven-segment panel on the terminal
// using ANSI color codes.
//
// The emulated panel exposes segment and digit lines like the real one, so
// the mux scan engine drives it unchanged. Whatever is lit while a digit is
// selected is latched into that digit and shown on the next Refresh.
//
// Useful while the panel is still on its way by mail.
package console

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/GermanBionicSystems/ledmux/content"
	"github.com/GermanBionicSystems/ledmux/glyph"
	"github.com/GermanBionicSystems/ledmux/mux"
)

// Opts represents the options available for the emulated panel.
type Opts struct {
	// Polarity is the wiring to emulate.
	Polarity mux.Polarity
	// Lit and Unlit are the segment colors. They default to red and a dark
	// grey.
	Lit, Unlit color.Color
	Palette    *ansi256.Palette
	// W defaults to a colorable stdout.
	W io.Writer

	_ struct{}
}

// Dev is an emulated panel that outputs to the console.
type Dev struct {
	w          io.Writer
	pol        mux.Polarity
	palette    ansi256.Palette
	lit, unlit color.NRGBA

	segments [glyph.NumSegments]*line
	digits   [content.Positions]*line
	cells    [content.Positions]glyph.Pattern

	drawn bool
	buf   bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	d := &Dev{
		w:       opts.W,
		pol:     opts.Polarity,
		palette: *p,
		lit:     toNRGBA(opts.Lit, color.NRGBA{0xff, 0x20, 0x10, 0xff}),
		unlit:   toNRGBA(opts.Unlit, color.NRGBA{0x30, 0x30, 0x30, 0xff}),
	}
	if d.w == nil {
		d.w = colorable.NewColorableStdout()
	}
	names := []string{"DP", "A", "B", "C", "D", "E", "F", "G"}
	for i := range d.segments {
		d.segments[i] = &line{Pin: &gpiotest.Pin{N: "SEG_" + names[i], Num: i}, dev: d, segment: i, digit: -1}
		// Start dark whatever the polarity.
		d.segments[i].L = d.pol.SegmentOff()
	}
	for i := range d.digits {
		d.digits[i] = &line{Pin: &gpiotest.Pin{N: fmt.Sprintf("DIG%d", i), Num: glyph.NumSegments + i}, dev: d, segment: -1, digit: i}
		d.digits[i].L = d.pol.DigitDeselect()
	}
	return d
}

// Segments returns the emulated segment lines in dp, a..g order.
func (d *Dev) Segments() [glyph.NumSegments]gpio.PinOut {
	var out [glyph.NumSegments]gpio.PinOut
	for i, l := range d.segments {
		out[i] = l
	}
	return out
}

// Digits returns the emulated digit select lines.
func (d *Dev) Digits() [content.Positions]gpio.PinIO {
	var out [content.Positions]gpio.PinIO
	for i, l := range d.digits {
		out[i] = l
	}
	return out
}

// Cells returns what each digit showed when it was last selected.
func (d *Dev) Cells() [content.Positions]glyph.Pattern {
	return d.cells
}

func (d *Dev) String() string {
	return "Console7Seg"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so the console is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// toNRGBA converts c for the palette, def when c is nil.
func toNRGBA(c color.Color, def color.NRGBA) color.NRGBA {
	if c == nil {
		return def
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// latch records the segments currently lit into digit.
func (d *Dev) latch(digit int) {
	var p glyph.Pattern
	on := d.pol.SegmentOn()
	for i, s := range d.segments {
		if s.L == on {
			p |= glyph.SegDP >> uint(i)
		}
	}
	d.cells[digit] = p
}

// cell layout of a digit, 4 blocks wide and 5 high. Zero is background.
var layout = [5][4]glyph.Pattern{
	{0, glyph.SegA, 0, 0},
	{glyph.SegF, 0, glyph.SegB, 0},
	{0, glyph.SegG, 0, 0},
	{glyph.SegE, 0, glyph.SegC, 0},
	{0, glyph.SegD, 0, glyph.SegDP},
}

// Refresh draws the latched digits, overwriting the previous drawing.
func (d *Dev) Refresh() error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	if d.drawn {
		fmt.Fprintf(&d.buf, "\033[%dA", len(layout))
	}
	bg := d.palette.Block(color.NRGBA{0, 0, 0, 0xff})
	for _, row := range layout {
		_, _ = d.buf.WriteString("\r\033[0m")
		for _, p := range d.cells {
			for _, seg := range row {
				switch {
				case seg == 0:
					_, _ = d.buf.WriteString(bg)
				case p.Has(seg):
					_, _ = io.WriteString(&d.buf, d.palette.Block(d.lit))
				default:
					_, _ = io.WriteString(&d.buf, d.palette.Block(d.unlit))
				}
			}
			_, _ = d.buf.WriteString(bg)
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.drawn = true
	_, err := d.buf.WriteTo(d.w)
	return err
}

// line is an emulated segment or digit line.
type line struct {
	*gpiotest.Pin
	dev     *Dev
	segment int
	digit   int
}

// Out implements gpio.PinOut.
func (l *line) Out(level gpio.Level) error {
	if err := l.Pin.Out(level); err != nil {
		return err
	}
	if l.digit >= 0 && level == l.dev.pol.DigitSelect() {
		l.dev.latch(l.digit)
	}
	return nil
}

// In implements gpio.PinIn. A released digit goes dark.
func (l *line) In(pull gpio.Pull, edge gpio.Edge) error {
	if err := l.Pin.In(pull, edge); err != nil {
		return err
	}
	if l.digit >= 0 {
		l.dev.cells[l.digit] = 0
	}
	return nil
}
