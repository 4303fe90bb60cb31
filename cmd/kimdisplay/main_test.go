// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/GermanBionicSystems/ledmux/content"
	"github.com/GermanBionicSystems/ledmux/internal/config"
	"github.com/GermanBionicSystems/ledmux/shiftreg"
)

func TestRunConsole(t *testing.T) {
	cfg, err := config.Parse([]byte("backend: console\nhold: 100us\n"))
	if err != nil {
		t.Fatal(err)
	}
	out := &bytes.Buffer{}
	png := filepath.Join(t.TempDir(), "last.png")
	p := params{message: content.Scott, showFor: time.Second, frames: 3, every: 1, snapshot: png}
	if err := run(context.Background(), cfg, p, out); err != nil {
		t.Fatal(err)
	}
	if out.Len() == 0 {
		t.Error("nothing drawn")
	}
	if _, err := os.Stat(png); err != nil {
		t.Error(err)
	}
}

func TestRunCancelled(t *testing.T) {
	cfg, err := config.Parse([]byte("backend: console\n"))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := &bytes.Buffer{}
	if err := run(ctx, cfg, params{message: content.Blank}, out); err != nil {
		t.Fatal(err)
	}
	// Only Halt output.
	if out.String() != "\n\033[0m" {
		t.Errorf("drew %q", out.String())
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("KIMDISPLAY_TEST", "x.yaml")
	if got := envOr("KIMDISPLAY_TEST", "d"); got != "x.yaml" {
		t.Errorf("envOr() = %s", got)
	}
	if got := envOr("KIMDISPLAY_UNSET_FOR_TEST", "d"); got != "d" {
		t.Errorf("envOr() = %s", got)
	}
}

const gpioWiring = `
segments: [GPIO21, GPIO2, GPIO3, GPIO4, GPIO5, GPIO6, GPIO7, GPIO8]
digits: [GPIO12, GPIO13, GPIO16, GPIO19, GPIO20, GPIO26, GPIO17, GPIO27]
`

func TestLoadConfigOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.yaml")
	if err := os.WriteFile(path, []byte(gpioWiring), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend != config.BackendGPIO || len(cfg.Wiring) != 0 {
		t.Errorf("Backend = %q, Wiring = %v", cfg.Backend, cfg.Wiring)
	}

	cfg, err = loadConfig(path, config.BackendShiftRegister)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend != config.BackendShiftRegister {
		t.Errorf("Backend = %q", cfg.Backend)
	}
	if len(cfg.Wiring) != len(shiftreg.Identity) {
		t.Fatalf("Wiring = %v", cfg.Wiring)
	}
	for i, q := range shiftreg.Identity {
		if cfg.Wiring[i] != q {
			t.Errorf("Wiring[%d] = %d, expected %d", i, cfg.Wiring[i], q)
		}
	}

	if _, err := loadConfig(path, "lcd"); err == nil {
		t.Error("unknown backend accepted")
	}

	// The console override does not read the file.
	cfg, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"), config.BackendConsole)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend != config.BackendConsole {
		t.Errorf("Backend = %q", cfg.Backend)
	}
}
