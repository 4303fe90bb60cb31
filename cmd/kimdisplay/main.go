// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// kimdisplay drives a multiplexed eight digit panel from a YAML wiring file,
// counting on the address and data groups.
//
// Use -backend=console to watch it on the terminal without hardware.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/GermanBionicSystems/ledmux/content"
	"github.com/GermanBionicSystems/ledmux/glyph"
	"github.com/GermanBionicSystems/ledmux/internal/config"
	"github.com/GermanBionicSystems/ledmux/mux"
	"github.com/GermanBionicSystems/ledmux/snapshot"
)

type params struct {
	message  content.Message
	showFor  time.Duration
	frames   int
	every    int
	snapshot string
}

func main() {
	// KIMDISPLAY_CONFIG may come from a .env file next to the binary.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("ignoring .env: %v", err)
	}
	cfgPath := flag.String("config", envOr("KIMDISPLAY_CONFIG", "kimdisplay.yaml"), "panel wiring file")
	backend := flag.String("backend", "", "override the backend of the wiring file (gpio, 74hc595, console)")
	msg := flag.String("message", content.Uno.String(), "message shown at start")
	showFor := flag.Duration("show", 2*time.Second, "how long the start message shows")
	frames := flag.Int("frames", 0, "stop after this many frames, 0 to run until interrupted")
	every := flag.Int("every", 10, "frames between counter increments")
	snap := flag.String("snapshot", "", "write the last frame to this PNG file on exit")
	flag.Parse()

	m, err := content.ParseMessage(*msg)
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := loadConfig(*cfgPath, *backend)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	p := params{message: m, showFor: *showFor, frames: *frames, every: *every, snapshot: *snap}
	if err := run(ctx, cfg, p, nil); err != nil {
		log.Fatal(err)
	}
}

// run scans the panel until ctx is done or p.frames frames were shown.
// w is where the console backend draws, nil for stdout.
func run(ctx context.Context, cfg *config.Config, p params, w io.Writer) error {
	pnl, err := buildPanel(cfg, w)
	if err != nil {
		return err
	}
	defer func() {
		if err := pnl.close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	state := content.NewState(nil)
	dev, err := mux.New(state, &pnl.opts)
	if err != nil {
		return err
	}
	log.Printf("%s on %s backend", dev, cfg.Backend)
	state.ShowMessage(p.message, p.showFor)

	if p.every <= 0 {
		p.every = 1
	}
	var counter uint16
	for n := 0; p.frames == 0 || n < p.frames; n++ {
		if ctx.Err() != nil {
			break
		}
		if n%p.every == 0 {
			state.SetAddressGroup(content.Group(glyph.HexPair(byte(counter >> 8))))
			state.SetDataGroup(content.Group(glyph.HexPair(byte(counter))))
			state.SetShiftIndicator(counter&0x100 != 0)
			counter++
		}
		if err := dev.ScanFrame(); err != nil {
			return err
		}
		if pnl.refresh != nil {
			if err := pnl.refresh(); err != nil {
				return err
			}
		}
	}

	if p.snapshot != "" {
		if err := snapshot.SavePNG(p.snapshot, dev.Frame(), &snapshot.Opts{Labels: true}); err != nil {
			return err
		}
		log.Printf("wrote %s", p.snapshot)
	}
	return dev.Halt()
}

// loadConfig loads the wiring file at path, switching it to backend when
// backend is not empty.
func loadConfig(path, backend string) (*config.Config, error) {
	if backend == config.BackendConsole {
		// The console needs no wiring file.
		return config.Parse([]byte("backend: console\n"))
	}
	cfg, err := config.Load(path)
	if err != nil || backend == "" {
		return cfg, err
	}
	cfg.Backend = backend
	// Defaults depend on the backend.
	config.Normalize(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
