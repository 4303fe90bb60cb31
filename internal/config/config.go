// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config describes how a panel is wired to the host, as a YAML file.
//
//	polarity: common-anode
//	backend: gpio
//	hold: 2ms
//	segments: [GPIO21, GPIO2, GPIO3, GPIO4, GPIO5, GPIO6, GPIO7, GPIO8]
//	digits: [GPIO12, GPIO13, GPIO16, GPIO19, GPIO20, GPIO26, GPIO17, GPIO27]
//	roles:
//	  address: [0, 1]
//	  data: [3, 4]
//	  shift: 7
//	  decimal_point: 1
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/GermanBionicSystems/ledmux/mux"
)

// Backends.
const (
	// BackendGPIO drives segment and digit lines as host GPIOs.
	BackendGPIO = "gpio"
	// BackendShiftRegister drives segments through a 74HC595 on SPI and
	// digits as host GPIOs.
	BackendShiftRegister = "74hc595"
	// BackendConsole emulates the panel on the terminal.
	BackendConsole = "console"
)

// Config is the wiring file of one panel.
type Config struct {
	Polarity string        `yaml:"polarity"`
	Backend  string        `yaml:"backend"`
	Hold     time.Duration `yaml:"hold"`

	// Segments are GPIO names in dp, a..g order. Unused by the 74hc595
	// and console backends.
	Segments []string `yaml:"segments"`
	// Digits are GPIO names, one per cell. Unused by the console backend.
	Digits []string `yaml:"digits"`

	// SPI is the port of the 74hc595 backend, "" for the first one.
	SPI string `yaml:"spi"`
	// Wiring maps dp, a..g to the register outputs Q0..Q7.
	Wiring []int `yaml:"wiring"`

	Roles *RolesConfig `yaml:"roles"`
}

// RolesConfig places the digit groups and modifiers; omitted fields take
// mux.DefaultRoles values.
type RolesConfig struct {
	Address      []int `yaml:"address"`
	Data         []int `yaml:"data"`
	Shift        *int  `yaml:"shift"`
	DecimalPoint *int  `yaml:"decimal_point"`
}

// Load reads, normalizes and validates the file at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(raw)
}

// Parse decodes, normalizes and validates a YAML document.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// PolarityValue returns the parsed polarity. Call after Validate.
func (c *Config) PolarityValue() mux.Polarity {
	p, _ := mux.ParsePolarity(c.Polarity)
	return p
}

// MuxRoles returns the roles for mux.Opts. Call after Normalize.
func (c *Config) MuxRoles() mux.Roles {
	r := c.Roles
	return mux.Roles{
		Address:      [2]int{r.Address[0], r.Address[1]},
		Data:         [2]int{r.Data[0], r.Data[1]},
		Shift:        *r.Shift,
		DecimalPoint: *r.DecimalPoint,
	}
}
