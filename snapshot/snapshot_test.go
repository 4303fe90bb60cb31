// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package snapshot

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/GermanBionicSystems/ledmux/content"
	"github.com/GermanBionicSystems/ledmux/glyph"
)

var (
	red  = color.NRGBA{0xff, 0, 0, 0xff}
	grey = color.NRGBA{0x40, 0x40, 0x40, 0xff}
)

func isColor(img image.Image, pt image.Point, c color.NRGBA) bool {
	r, g, b, _ := img.At(pt.X, pt.Y).RGBA()
	return uint8(r>>8) == c.R && uint8(g>>8) == c.G && uint8(b>>8) == c.B
}

func TestRender(t *testing.T) {
	var frame [content.Positions]glyph.Pattern
	frame[0] = glyph.Lookup(glyph.One)
	frame[3] = glyph.Lookup(glyph.Eight) | glyph.SegDP
	for _, scale := range []float64{1, 2} {
		opts := &Opts{Scale: scale, Lit: red, Unlit: grey, Labels: true}
		img, err := Render(frame, opts)
		if err != nil {
			t.Fatal(err)
		}
		if img.Bounds() != Bounds(opts) {
			t.Errorf("bounds %v, expected %v", img.Bounds(), Bounds(opts))
		}
		all := []glyph.Pattern{glyph.SegDP, glyph.SegA, glyph.SegB, glyph.SegC, glyph.SegD, glyph.SegE, glyph.SegF, glyph.SegG}
		for digit, p := range frame {
			for _, seg := range all {
				want := grey
				if p.Has(seg) {
					want = red
				}
				if pt := SegmentCenter(digit, seg, opts); !isColor(img, pt, want) {
					t.Errorf("scale %v digit %d segment %s at %v: %v", scale, digit, seg, pt, img.At(pt.X, pt.Y))
				}
			}
		}
	}
}

func TestBoundsLabels(t *testing.T) {
	plain := Bounds(nil)
	labeled := Bounds(&Opts{Labels: true})
	if labeled.Dy() <= plain.Dy() || labeled.Dx() != plain.Dx() {
		t.Errorf("plain %v labeled %v", plain, labeled)
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	var frame [content.Positions]glyph.Pattern
	frame[7] = glyph.Lookup(glyph.HexA)
	if err := SavePNG(path, frame, nil); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != Bounds(nil) {
		t.Errorf("bounds %v", img.Bounds())
	}
}
