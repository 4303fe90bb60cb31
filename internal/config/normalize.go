// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"github.com/GermanBionicSystems/ledmux/mux"
	"github.com/GermanBionicSystems/ledmux/shiftreg"
)

// Normalize fills in defaults. It never fails; Validate reports what is
// still wrong afterwards.
func Normalize(cfg *Config) {
	if cfg.Polarity == "" {
		cfg.Polarity = mux.CommonCathode.String()
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendGPIO
	}
	if cfg.Hold == 0 {
		cfg.Hold = mux.DefaultHold
	}
	if cfg.Backend == BackendShiftRegister && len(cfg.Wiring) == 0 {
		cfg.Wiring = append([]int(nil), shiftreg.Identity[:]...)
	}

	def := mux.DefaultRoles
	if cfg.Roles == nil {
		cfg.Roles = &RolesConfig{}
	}
	r := cfg.Roles
	if r.Address == nil {
		r.Address = []int{def.Address[0], def.Address[1]}
	}
	if r.Data == nil {
		r.Data = []int{def.Data[0], def.Data[1]}
	}
	if r.Shift == nil {
		v := def.Shift
		r.Shift = &v
	}
	if r.DecimalPoint == nil {
		v := def.DecimalPoint
		r.DecimalPoint = &v
	}
}
