// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"

	"github.com/GermanBionicSystems/ledmux/content"
	"github.com/GermanBionicSystems/ledmux/glyph"
	"github.com/GermanBionicSystems/ledmux/mux"
)

// Validate checks a normalized configuration. It does not mutate it.
//
// Role positions are range checked by mux.New.
func Validate(cfg *Config) error {
	if _, err := mux.ParsePolarity(cfg.Polarity); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.Hold < 0 {
		return errors.New("config: hold must not be negative")
	}

	switch cfg.Backend {
	case BackendGPIO:
		if err := names("segments", cfg.Segments, glyph.NumSegments); err != nil {
			return err
		}
		if err := names("digits", cfg.Digits, content.Positions); err != nil {
			return err
		}
	case BackendShiftRegister:
		if err := names("digits", cfg.Digits, content.Positions); err != nil {
			return err
		}
		if len(cfg.Wiring) != glyph.NumSegments {
			return fmt.Errorf("config: wiring needs %d outputs, got %d", glyph.NumSegments, len(cfg.Wiring))
		}
	case BackendConsole:
	default:
		return fmt.Errorf("config: unknown backend %q", cfg.Backend)
	}

	if cfg.Roles == nil {
		return errors.New("config: roles not normalized")
	}
	if len(cfg.Roles.Address) != 2 {
		return fmt.Errorf("config: roles.address needs 2 positions, got %d", len(cfg.Roles.Address))
	}
	if len(cfg.Roles.Data) != 2 {
		return fmt.Errorf("config: roles.data needs 2 positions, got %d", len(cfg.Roles.Data))
	}
	if cfg.Roles.Shift == nil || cfg.Roles.DecimalPoint == nil {
		return errors.New("config: roles not normalized")
	}
	return nil
}

func names(field string, list []string, want int) error {
	if len(list) != want {
		return fmt.Errorf("config: %s needs %d pin names, got %d", field, want, len(list))
	}
	seen := map[string]bool{}
	for i, n := range list {
		if n == "" {
			return fmt.Errorf("config: %s[%d] is empty", field, i)
		}
		if seen[n] {
			return fmt.Errorf("config: %s lists %s twice", field, n)
		}
		seen[n] = true
	}
	return nil
}
