// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package shiftreg

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Pin is one segment output of the register.
type Pin struct {
	dev    *Dev
	offset int
	name   string
}

// Halt implements conn.Resource.
func (p *Pin) Halt() error {
	return nil
}

// Name returns the name of the segment output.
func (p *Pin) Name() string {
	return p.name
}

// Number returns the register output the segment is wired to.
func (p *Pin) Number() int {
	return p.dev.wiring[p.offset]
}

// Deprecated: returns "Out"
func (p *Pin) Function() string {
	return "Out"
}

// Out drives the segment output to l.
func (p *Pin) Out(l gpio.Level) error {
	mask := gpio.GPIOValue(1 << uint(p.offset))
	var v gpio.GPIOValue
	if l {
		v = mask
	}
	return p.dev.Out(v, mask)
}

// PWM is not available on a shift register.
func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

func (p *Pin) String() string {
	return p.name
}

var _ gpio.PinOut = &Pin{}
