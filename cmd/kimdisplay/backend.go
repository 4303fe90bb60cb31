// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/ledmux/console"
	"github.com/GermanBionicSystems/ledmux/internal/config"
	"github.com/GermanBionicSystems/ledmux/mux"
	"github.com/GermanBionicSystems/ledmux/shiftreg"
)

// panel is the wiring for mux.New plus what the backend needs around the
// scan loop.
type panel struct {
	opts mux.Opts
	// refresh is called after every frame, when set.
	refresh func() error
	close   func() error
}

func buildPanel(cfg *config.Config, w io.Writer) (*panel, error) {
	p := &panel{
		opts: mux.Opts{
			Polarity: cfg.PolarityValue(),
			Roles:    cfg.MuxRoles(),
			Hold:     cfg.Hold,
		},
		close: func() error { return nil },
	}

	if cfg.Backend == config.BackendConsole {
		c := console.New(&console.Opts{Polarity: p.opts.Polarity, W: w})
		p.opts.Segments = c.Segments()
		p.opts.Digits = c.Digits()
		p.refresh = c.Refresh
		p.close = c.Halt
		return p, nil
	}

	if _, err := host.Init(); err != nil {
		return nil, err
	}
	for i, name := range cfg.Digits {
		pin, err := lookup(name)
		if err != nil {
			return nil, err
		}
		p.opts.Digits[i] = pin
	}

	switch cfg.Backend {
	case config.BackendGPIO:
		for i, name := range cfg.Segments {
			pin, err := lookup(name)
			if err != nil {
				return nil, err
			}
			p.opts.Segments[i] = pin
		}
	case config.BackendShiftRegister:
		port, err := spireg.Open(cfg.SPI)
		if err != nil {
			return nil, err
		}
		var wiring shiftreg.Wiring
		copy(wiring[:], cfg.Wiring)
		reg, err := shiftreg.NewSPI(port, wiring)
		if err != nil {
			_ = port.Close()
			return nil, err
		}
		p.opts.SegmentGroup = reg
		p.close = func() error {
			_ = reg.Halt()
			return port.Close()
		}
	}
	return p, nil
}

func lookup(name string) (gpio.PinIO, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("no GPIO named %q", name)
	}
	return pin, nil
}
