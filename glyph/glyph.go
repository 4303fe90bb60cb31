// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package glyph maps displayable symbols to seven-segment patterns.
//
// A Pattern is one byte per digit. Bit 7 is the decimal point and bits 6..0
// are segments a..g:
//
//	 aaa
//	f   b
//	 ggg
//	e   c
//	 ddd  dp
package glyph

import "fmt"

// Pattern is the set of lit segments of one digit, bit order dp,a,b,c,d,e,f,g.
type Pattern byte

// Segment bits.
const (
	SegG  Pattern = 1 << iota // 0x01
	SegF                      // 0x02
	SegE                      // 0x04
	SegD                      // 0x08
	SegC                      // 0x10
	SegB                      // 0x20
	SegA                      // 0x40
	SegDP                     // 0x80
)

// NumSegments is the number of segment lines of a digit, decimal point
// included.
const NumSegments = 8

// Symbol selects a glyph of the table.
type Symbol uint8

// Symbols 0x0..0xF are the hexadecimal digits so a nibble converts directly.
const (
	Zero Symbol = iota
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	HexA
	HexB
	HexC
	HexD
	HexE
	HexF
	Dash
	Underscore
	Space
	LowerN
	LowerO
	LetterP
	LowerR
	LowerT
	LetterU
	LetterW
	LowerC
	LowerH
	LowerI
	LowerA
	Dot

	// NumSymbols is the number of entries in the table.
	NumSymbols int = iota
)

var table = [NumSymbols]Pattern{
	0b01111110, // 0
	0b00110000, // 1
	0b01101101, // 2
	0b01111001, // 3
	0b00110011, // 4
	0b01011011, // 5
	0b01011111, // 6
	0b01110000, // 7
	0b01111111, // 8
	0b01111011, // 9
	0b01110111, // A
	0b00011111, // b
	0b01001110, // C
	0b00111101, // d
	0b01001111, // E
	0b01000111, // F
	0b00000001, // -
	0b00001000, // _
	0b00000000, // space
	0b00010101, // n
	0b00011101, // o
	0b01100111, // P
	0b00000101, // r
	0b00001111, // t
	0b00111110, // U
	0b00101010, // w
	0b00001101, // c
	0b00010111, // h
	0b00100000, // i
	0b01111101, // a
	0b10000000, // .
}

var runes = [NumSymbols]rune{
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
	'A', 'b', 'C', 'd', 'E', 'F',
	'-', '_', ' ',
	'n', 'o', 'P', 'r', 't', 'U', 'w', 'c', 'h', 'i', 'a', '.',
}

// Valid reports whether s is in the table.
func (s Symbol) Valid() bool {
	return int(s) < NumSymbols
}

// Rune returns the character the glyph is meant to look like.
func (s Symbol) Rune() rune {
	mustBeValid(s)
	return runes[s]
}

func (s Symbol) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Symbol(%d)", uint8(s))
	}
	return fmt.Sprintf("%q", runes[s])
}

// Lookup returns the segment pattern of s.
//
// It panics if s is not a valid symbol; symbols are only ever built from the
// constants of this package or HexDigit.
func Lookup(s Symbol) Pattern {
	mustBeValid(s)
	return table[s]
}

// HexDigit returns the symbol of the low nibble of v.
func HexDigit(v byte) Symbol {
	return Symbol(v & 0x0f)
}

// HexPair returns the high and low nibble symbols of v, in display order.
func HexPair(v byte) [2]Symbol {
	return [2]Symbol{HexDigit(v >> 4), HexDigit(v)}
}

// Has reports whether all segments of seg are lit in p.
func (p Pattern) Has(seg Pattern) bool {
	return p&seg == seg
}

func (p Pattern) String() string {
	return fmt.Sprintf("0b%08b", byte(p))
}

func mustBeValid(s Symbol) {
	if !s.Valid() {
		panic(fmt.Sprintf("glyph: symbol %d out of range [0, %d)", uint8(s), NumSymbols))
	}
}
