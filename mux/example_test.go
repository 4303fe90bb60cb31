// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mux_test

import (
	"log"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/ledmux/content"
	"github.com/GermanBionicSystems/ledmux/glyph"
	"github.com/GermanBionicSystems/ledmux/mux"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	opts := mux.Opts{Polarity: mux.CommonAnode, Roles: mux.DefaultRoles}
	segments := []string{"GPIO21", "GPIO2", "GPIO3", "GPIO4", "GPIO5", "GPIO6", "GPIO7", "GPIO8"}
	digits := []string{"GPIO12", "GPIO13", "GPIO16", "GPIO19", "GPIO20", "GPIO26", "GPIO17", "GPIO27"}
	for i := range segments {
		opts.Segments[i] = gpioreg.ByName(segments[i])
		opts.Digits[i] = gpioreg.ByName(digits[i])
	}

	state := content.NewState(nil)
	dev, err := mux.New(state, &opts)
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Halt()

	state.ShowMessage(content.SSTOn, 500*time.Millisecond)
	state.SetAddressGroup(content.Group(glyph.HexPair(0x1c)))
	state.SetDataGroup(content.Group(glyph.HexPair(0x4f)))

	// Keep scanning for three seconds; the message shows first.
	stop := time.After(3 * time.Second)
	for {
		select {
		case <-stop:
			return
		default:
		}
		if err := dev.ScanFrame(); err != nil {
			log.Fatal(err)
		}
	}
}
