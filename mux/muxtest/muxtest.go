// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package muxtest records what a scan engine does to segment and digit lines
// and checks the sequence for ghosting.
package muxtest

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/GermanBionicSystems/ledmux/glyph"
)

// Line is the kind of a recorded line.
type Line uint8

const (
	Segment Line = iota
	Digit
)

func (l Line) String() string {
	if l == Segment {
		return "segment"
	}
	return "digit"
}

// Op is what was done to a line.
type Op uint8

const (
	Out Op = iota
	In
)

// Event is one call on a recorded line.
type Event struct {
	Line  Line
	Index int
	Op    Op
	// Level is set for Out.
	Level gpio.Level
	// Pull is set for In.
	Pull gpio.Pull
}

func (e Event) String() string {
	if e.Op == In {
		return fmt.Sprintf("%s%d.In(%s)", e.Line, e.Index, e.Pull)
	}
	return fmt.Sprintf("%s%d.Out(%s)", e.Line, e.Index, e.Level)
}

// Pin is a gpiotest.Pin that logs every Out and In call to its Recorder.
type Pin struct {
	*gpiotest.Pin
	// Fail, when set, is returned by Out and In without recording.
	Fail error

	rec   *Recorder
	line  Line
	index int
}

// Out implements gpio.PinOut.
func (p *Pin) Out(l gpio.Level) error {
	if p.Fail != nil {
		return p.Fail
	}
	if err := p.Pin.Out(l); err != nil {
		return err
	}
	p.rec.Events = append(p.rec.Events, Event{Line: p.line, Index: p.index, Op: Out, Level: l})
	return nil
}

// In implements gpio.PinIn.
func (p *Pin) In(pull gpio.Pull, edge gpio.Edge) error {
	if p.Fail != nil {
		return p.Fail
	}
	if err := p.Pin.In(pull, edge); err != nil {
		return err
	}
	p.rec.Events = append(p.rec.Events, Event{Line: p.line, Index: p.index, Op: In, Pull: pull})
	return nil
}

// Recorder owns eight segment and eight digit pins and the log of calls made
// on them.
type Recorder struct {
	Events []Event

	segments [glyph.NumSegments]*Pin
	digits   [8]*Pin
}

// NewRecorder returns a Recorder with fresh pins.
func NewRecorder() *Recorder {
	r := &Recorder{}
	names := []string{"DP", "A", "B", "C", "D", "E", "F", "G"}
	for i := range r.segments {
		r.segments[i] = &Pin{Pin: &gpiotest.Pin{N: "SEG_" + names[i], Num: i}, rec: r, line: Segment, index: i}
	}
	for i := range r.digits {
		r.digits[i] = &Pin{Pin: &gpiotest.Pin{N: fmt.Sprintf("DIG%d", i), Num: 8 + i}, rec: r, line: Digit, index: i}
	}
	return r
}

// Segments returns the segment lines in dp, a..g order.
func (r *Recorder) Segments() [glyph.NumSegments]gpio.PinOut {
	var out [glyph.NumSegments]gpio.PinOut
	for i, p := range r.segments {
		out[i] = p
	}
	return out
}

// Digits returns the digit select lines.
func (r *Recorder) Digits() [8]gpio.PinIO {
	var out [8]gpio.PinIO
	for i, p := range r.digits {
		out[i] = p
	}
	return out
}

// Segment returns segment line i.
func (r *Recorder) Segment(i int) *Pin {
	return r.segments[i]
}

// Digit returns digit line i.
func (r *Recorder) Digit(i int) *Pin {
	return r.digits[i]
}

// Reset clears the log.
func (r *Recorder) Reset() {
	r.Events = nil
}

type digitState uint8

const (
	unknown digitState = iota
	selected
	deselected
)

// Check returns an error if the log shows two digits selected at once, or a
// segment line driven while any digit is not known to be deselected.
//
// A digit turned into an input counts as deselected.
func Check(events []Event, selectLevel gpio.Level) error {
	var digits [8]digitState
	for n, e := range events {
		switch e.Line {
		case Digit:
			if e.Op == In || e.Level != selectLevel {
				digits[e.Index] = deselected
				continue
			}
			for i, s := range digits {
				if i != e.Index && s == selected {
					return fmt.Errorf("muxtest: event %d (%s): digit %d still selected", n, e, i)
				}
			}
			digits[e.Index] = selected
		case Segment:
			for i, s := range digits {
				if s != deselected {
					return fmt.Errorf("muxtest: event %d (%s): digit %d not deselected", n, e, i)
				}
			}
		}
	}
	return nil
}

// Activation is a digit selection and the segments lit at that time.
type Activation struct {
	Digit   int
	Pattern glyph.Pattern
}

// Activations replays the log and returns every digit selection. Segment
// lines never driven count as off.
func Activations(events []Event, segmentOn, selectLevel gpio.Level) []Activation {
	var lit [glyph.NumSegments]bool
	var out []Activation
	for _, e := range events {
		switch {
		case e.Line == Segment && e.Op == Out:
			lit[e.Index] = e.Level == segmentOn
		case e.Line == Digit && e.Op == Out && e.Level == selectLevel:
			var p glyph.Pattern
			for i, on := range lit {
				if on {
					p |= glyph.SegDP >> uint(i)
				}
			}
			out = append(out, Activation{Digit: e.Index, Pattern: p})
		}
	}
	return out
}
