// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package shiftreg drives the segment lines of a multiplexed panel through a
// 74HC595 serial to parallel shift register on SPI, freeing seven GPIOs.
//
// # Datasheet
//
// https://www.nexperia.com/product/74HC595D
package shiftreg

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
	"periph.io/x/conn/v3/spi"
)

const (
	devName    = "74HC595"
	numOutputs = 8

	// MaxSpeed is a conservative clock for a 74HC595 at 3.3V.
	MaxSpeed = 4 * physic.MegaHertz
)

var (
	ErrNotImplemented = errors.New("shiftreg: not implemented")

	// Identity wires segment dp to Q0 and a..g to Q1..Q7.
	Identity = Wiring{0, 1, 2, 3, 4, 5, 6, 7}
)

// Wiring gives the register output (Q0..Q7) of each segment line, in dp,
// a..g order.
type Wiring [numOutputs]int

func (w Wiring) validate() error {
	var seen [numOutputs]bool
	for seg, q := range w {
		if q < 0 || q >= numOutputs {
			return fmt.Errorf("shiftreg: segment %d wired to invalid output Q%d", seg, q)
		}
		if seen[q] {
			return fmt.Errorf("shiftreg: output Q%d wired twice", q)
		}
		seen[q] = true
	}
	return nil
}

// Dev is a 74HC595 whose outputs are segment lines. It implements gpio.Group
// with offset 0 as dp and offsets 1..7 as a..g.
type Dev struct {
	mu     sync.Mutex
	conn   spi.Conn
	wiring Wiring
	// latched is what the register outputs, valid once written is true.
	latched byte
	written bool
	pins    []Pin
}

// New returns a Dev on conn.
func New(conn spi.Conn, wiring Wiring) (*Dev, error) {
	if conn == nil {
		return nil, errors.New("shiftreg: nil spi.Conn")
	}
	if err := wiring.validate(); err != nil {
		return nil, err
	}
	d := &Dev{conn: conn, wiring: wiring}
	names := []string{"DP", "A", "B", "C", "D", "E", "F", "G"}
	d.pins = make([]Pin, numOutputs)
	for seg := range d.pins {
		d.pins[seg] = Pin{dev: d, offset: seg, name: fmt.Sprintf("%s_SEG_%s", devName, names[seg])}
	}
	return d, nil
}

// NewSPI connects to p and returns a Dev.
func NewSPI(p spi.Port, wiring Wiring) (*Dev, error) {
	c, err := p.Connect(MaxSpeed, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("shiftreg: %w", err)
	}
	return New(c, wiring)
}

// toOutputs maps group bits (segment offsets) to register bits (Q outputs).
func (d *Dev) toOutputs(v gpio.GPIOValue) byte {
	var out byte
	for seg, q := range d.wiring {
		if v&(1<<uint(seg)) != 0 {
			out |= 1 << uint(q)
		}
	}
	return out
}

func (d *Dev) fromOutputs(b byte) gpio.GPIOValue {
	var v gpio.GPIOValue
	for seg, q := range d.wiring {
		if b&(1<<uint(q)) != 0 {
			v |= 1 << uint(seg)
		}
	}
	return v
}

// Out implements gpio.Group. A zero mask writes every output.
func (d *Dev) Out(value, mask gpio.GPIOValue) error {
	if mask == 0 {
		mask = 1<<numOutputs - 1
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return errors.New("shiftreg: halted")
	}
	qMask := d.toOutputs(mask)
	next := (d.latched &^ qMask) | (d.toOutputs(value) & qMask)
	if d.written && next == d.latched {
		return nil
	}
	if err := d.conn.Tx([]byte{next}, nil); err != nil {
		return fmt.Errorf("shiftreg: %w", err)
	}
	d.latched = next
	d.written = true
	return nil
}

// Read returns the last value written; the register cannot be read back.
func (d *Dev) Read(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if mask == 0 {
		mask = 1<<numOutputs - 1
	}
	return d.fromOutputs(d.latched) & mask, nil
}

// WaitForEdge is not available for this device.
func (d *Dev) WaitForEdge(timeout time.Duration) (int, gpio.Edge, error) {
	return 0, gpio.NoEdge, ErrNotImplemented
}

// Pins returns the segment outputs in dp, a..g order.
func (d *Dev) Pins() []pin.Pin {
	out := make([]pin.Pin, len(d.pins))
	for i := range d.pins {
		out[i] = &d.pins[i]
	}
	return out
}

// Segments returns the outputs as individual lines, in dp, a..g order.
func (d *Dev) Segments() [numOutputs]gpio.PinOut {
	var out [numOutputs]gpio.PinOut
	for i := range d.pins {
		out[i] = &d.pins[i]
	}
	return out
}

// ByOffset returns the segment at offset, nil if out of range.
func (d *Dev) ByOffset(offset int) pin.Pin {
	if offset < 0 || offset >= len(d.pins) {
		return nil
	}
	return &d.pins[offset]
}

// ByName returns the segment named name.
func (d *Dev) ByName(name string) pin.Pin {
	for i := range d.pins {
		if d.pins[i].name == name {
			return &d.pins[i]
		}
	}
	return nil
}

// ByNumber returns the segment wired to output Q<number>.
func (d *Dev) ByNumber(number int) pin.Pin {
	for i := range d.pins {
		if d.pins[i].Number() == number {
			return &d.pins[i]
		}
	}
	return nil
}

// Halt stops using the SPI connection.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.conn = nil
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s%v", devName, [numOutputs]int(d.wiring))
}

var _ gpio.Group = &Dev{}
