// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package snapshot draws a frame of seven-segment patterns as an image, for
// documentation and for checking a layout without the panel at hand.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/GermanBionicSystems/ledmux/content"
	"github.com/GermanBionicSystems/ledmux/glyph"
)

// Unscaled geometry, in pixels.
const (
	margin      = 10.0
	digitWidth  = 70.0
	digitHeight = 100.0
	thickness   = 8.0
	labelHeight = 24.0
)

type rect struct {
	x, y, w, h float64
}

// segments are relative to the digit's top left corner.
var segments = map[glyph.Pattern]rect{
	glyph.SegA: {10, 0, 40, thickness},
	glyph.SegB: {50, thickness, thickness, 38},
	glyph.SegC: {50, 54, thickness, 38},
	glyph.SegD: {10, 92, 40, thickness},
	glyph.SegE: {2, 54, thickness, 38},
	glyph.SegF: {2, thickness, thickness, 38},
	glyph.SegG: {10, 46, 40, thickness},
}

const dpX, dpY, dpR = 62.0, 96.0, 4.0

// Opts controls the look of the image.
type Opts struct {
	// Scale multiplies every dimension. Defaults to 1.
	Scale float64
	// Lit, Unlit and Background default to red, dark grey and black.
	Lit, Unlit, Background color.Color
	// Labels prints the cell index under every digit.
	Labels bool
}

func (o *Opts) defaults() Opts {
	out := Opts{Scale: 1, Lit: color.NRGBA{0xff, 0x20, 0x10, 0xff}, Unlit: color.NRGBA{0x30, 0x30, 0x30, 0xff}, Background: color.Black}
	if o == nil {
		return out
	}
	if o.Scale > 0 {
		out.Scale = o.Scale
	}
	if o.Lit != nil {
		out.Lit = o.Lit
	}
	if o.Unlit != nil {
		out.Unlit = o.Unlit
	}
	if o.Background != nil {
		out.Background = o.Background
	}
	out.Labels = o.Labels
	return out
}

var (
	fontOnce sync.Once
	fontErr  error
	ttf      *truetype.Font
)

func labelFace(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		ttf, fontErr = truetype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("snapshot: %w", fontErr)
	}
	return truetype.NewFace(ttf, &truetype.Options{Size: size}), nil
}

// Bounds returns the size of the image Render produces.
func Bounds(opts *Opts) image.Rectangle {
	o := opts.defaults()
	w := 2*margin + digitWidth*content.Positions
	h := 2*margin + digitHeight
	if o.Labels {
		h += labelHeight
	}
	return image.Rect(0, 0, int(w*o.Scale), int(h*o.Scale))
}

// SegmentCenter returns the center of seg of digit in an image rendered with
// opts. seg must be a single segment bit.
func SegmentCenter(digit int, seg glyph.Pattern, opts *Opts) image.Point {
	o := opts.defaults()
	x0 := margin + digitWidth*float64(digit)
	x, y := x0+dpX, margin+dpY
	if r, ok := segments[seg]; ok {
		x, y = x0+r.x+r.w/2, margin+r.y+r.h/2
	}
	return image.Pt(int(x*o.Scale), int(y*o.Scale))
}

// Render draws frame, one pattern per cell.
func Render(frame [content.Positions]glyph.Pattern, opts *Opts) (image.Image, error) {
	o := opts.defaults()
	b := Bounds(opts)
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetColor(o.Background)
	dc.Clear()
	dc.Scale(o.Scale, o.Scale)

	for digit, p := range frame {
		x0 := margin + digitWidth*float64(digit)
		for seg, r := range segments {
			dc.DrawRectangle(x0+r.x, margin+r.y, r.w, r.h)
			dc.SetColor(pick(p.Has(seg), o))
			dc.Fill()
		}
		dc.DrawCircle(x0+dpX, margin+dpY, dpR)
		dc.SetColor(pick(p.Has(glyph.SegDP), o))
		dc.Fill()
	}

	if o.Labels {
		face, err := labelFace(12)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		dc.SetColor(o.Unlit)
		for digit := range frame {
			x := margin + digitWidth*float64(digit) + 30
			dc.DrawStringAnchored(fmt.Sprint(digit), x, margin+digitHeight+labelHeight/2, 0.5, 0.5)
		}
	}
	return dc.Image(), nil
}

// SavePNG renders frame to a PNG file at path.
func SavePNG(path string, frame [content.Positions]glyph.Pattern, opts *Opts) error {
	img, err := Render(frame, opts)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}

func pick(lit bool, o Opts) color.Color {
	if lit {
		return o.Lit
	}
	return o.Unlit
}
