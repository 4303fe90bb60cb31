// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/GermanBionicSystems/ledmux/glyph"
)

// Message is one of the predefined overlay texts.
type Message uint8

const (
	Blank Message = iota
	SSTOn
	SSTOff
	EEPROMReadWrite
	EEPROMReadOnly
	Uno
	Scott
	Oscar

	numMessages
)

const sp = glyph.Space

type message struct {
	name string
	text Buffer
}

var messages = [numMessages]message{
	Blank:           {"blank", Buffer{sp, sp, sp, sp, sp, sp, sp, sp}},
	SSTOn:           {"sst-on", Buffer{glyph.Five, glyph.Five, glyph.LowerT, sp, glyph.LowerO, glyph.LowerN, sp, sp}},
	SSTOff:          {"sst-off", Buffer{glyph.Five, glyph.Five, glyph.LowerT, sp, glyph.LowerO, glyph.HexF, glyph.HexF, sp}},
	EEPROMReadWrite: {"eep-rw", Buffer{glyph.HexE, glyph.HexE, glyph.LetterP, sp, glyph.LowerR, glyph.LetterW, sp, sp}},
	EEPROMReadOnly:  {"eep-ro", Buffer{glyph.HexE, glyph.HexE, glyph.LetterP, sp, glyph.LowerR, glyph.LowerO, sp, sp}},
	Uno:             {"uno", Buffer{glyph.LetterU, glyph.LowerN, glyph.LowerO, glyph.Dot, glyph.Zero, glyph.Seven, sp, sp}},
	Scott:           {"scott", Buffer{glyph.Five, glyph.LowerC, glyph.LowerO, glyph.LowerT, glyph.LowerT, sp, sp, sp}},
	Oscar:           {"oscar", Buffer{glyph.LowerO, glyph.Five, glyph.LowerC, glyph.LowerA, glyph.LowerR, sp, sp, sp}},
}

// Valid reports whether m is a predefined message.
func (m Message) Valid() bool {
	return m < numMessages
}

// Text returns the symbols m shows, one per digit cell.
func (m Message) Text() Buffer {
	m.mustBeValid()
	return messages[m].text
}

func (m Message) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Message(%d)", uint8(m))
	}
	return messages[m].name
}

// ParseMessage returns the message named name, as returned by
// Message.String. The match is case insensitive.
func ParseMessage(name string) (Message, error) {
	for m := Blank; m < numMessages; m++ {
		if strings.EqualFold(messages[m].name, name) {
			return m, nil
		}
	}
	return Blank, fmt.Errorf("content: unknown message %q", name)
}

// Messages returns every predefined message.
func Messages() []Message {
	out := make([]Message, numMessages)
	for i := range out {
		out[i] = Message(i)
	}
	return out
}

// ShowMessage overlays m on the whole panel for d, starting now.
//
// Any overlay still showing is replaced in full. A negative d is treated as
// zero, which hides the overlay immediately.
func (s *State) ShowMessage(m Message, d time.Duration) {
	m.mustBeValid()
	if d < 0 {
		d = 0
	}
	// Buffer and deadline are assigned together; nothing scans in between.
	s.overlay = messages[m].text
	s.expiry = s.clock.Now().Add(d)
}

func (m Message) mustBeValid() {
	if !m.Valid() {
		panic(fmt.Sprintf("content: message %d out of range", uint8(m)))
	}
}
