// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package content

import (
	"testing"
	"time"

	"github.com/GermanBionicSystems/ledmux/glyph"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestState() (*State, *fakeClock) {
	clk := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	return NewState(clk), clk
}

func TestNewState(t *testing.T) {
	s, _ := newTestState()
	buf, active := s.Overlay()
	if active {
		t.Error("new state has an active overlay")
	}
	for i, sym := range buf {
		if sym != glyph.Space {
			t.Errorf("overlay[%d] = %s, expected space", i, sym)
		}
	}
	if s.AddressGroup() != (Group{glyph.Zero, glyph.Zero}) || s.DataGroup() != (Group{glyph.Zero, glyph.Zero}) {
		t.Error("groups not zero")
	}
	if s.ShiftIndicator() {
		t.Error("shift set")
	}
}

func TestSetters(t *testing.T) {
	s, _ := newTestState()
	s.SetAddressGroup(Group{glyph.One, glyph.HexF})
	s.SetDataGroup(Group(glyph.HexPair(0x3c)))
	s.SetShiftIndicator(true)
	if g := s.AddressGroup(); g != (Group{glyph.One, glyph.HexF}) {
		t.Errorf("AddressGroup() = %v", g)
	}
	if g := s.DataGroup(); g != (Group{glyph.Three, glyph.HexC}) {
		t.Errorf("DataGroup() = %v", g)
	}
	if !s.ShiftIndicator() {
		t.Error("ShiftIndicator() = false")
	}
}

func TestSetterRejectsInvalidSymbol(t *testing.T) {
	s, _ := newTestState()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
		if g := s.AddressGroup(); g != (Group{}) {
			t.Errorf("group partially applied: %v", g)
		}
	}()
	s.SetAddressGroup(Group{glyph.One, glyph.Symbol(99)})
}

func TestShowMessageExpiry(t *testing.T) {
	s, clk := newTestState()
	s.ShowMessage(Uno, 500*time.Millisecond)
	buf, active := s.Overlay()
	if !active {
		t.Fatal("overlay not active")
	}
	if buf != Uno.Text() {
		t.Errorf("overlay = %v", buf)
	}
	clk.advance(499 * time.Millisecond)
	if _, active = s.Overlay(); !active {
		t.Error("overlay expired early")
	}
	clk.advance(time.Millisecond)
	if _, active = s.Overlay(); active {
		t.Error("overlay still active at its deadline")
	}
	clk.advance(time.Hour)
	if _, active = s.Overlay(); active {
		t.Error("overlay came back")
	}
}

func TestShowMessageReplaces(t *testing.T) {
	s, clk := newTestState()
	s.ShowMessage(SSTOff, time.Second)
	clk.advance(100 * time.Millisecond)
	s.ShowMessage(Scott, 50*time.Millisecond)
	buf, active := s.Overlay()
	if !active {
		t.Fatal("overlay not active")
	}
	want := Buffer{glyph.Five, glyph.LowerC, glyph.LowerO, glyph.LowerT, glyph.LowerT, sp, sp, sp}
	if buf != want {
		t.Errorf("overlay = %v, expected %v", buf, want)
	}
	// The second deadline wins even though it is earlier.
	clk.advance(50 * time.Millisecond)
	if _, active = s.Overlay(); active {
		t.Error("first overlay deadline still in effect")
	}
}

func TestShowMessageNegativeDuration(t *testing.T) {
	s, _ := newTestState()
	s.ShowMessage(Oscar, -time.Second)
	if _, active := s.Overlay(); active {
		t.Error("overlay active")
	}
	if !s.Expiry().Equal(s.Now()) {
		t.Errorf("Expiry() = %v", s.Expiry())
	}
}

func TestMessages(t *testing.T) {
	texts := map[Message]string{
		Blank:           "        ",
		SSTOn:           "55t on  ",
		SSTOff:          "55t oFF ",
		EEPROMReadWrite: "EEP rw  ",
		EEPROMReadOnly:  "EEP ro  ",
		Uno:             "Uno.07  ",
		Scott:           "5cott   ",
		Oscar:           "o5car   ",
	}
	if len(Messages()) != len(texts) {
		t.Fatalf("%d messages", len(Messages()))
	}
	for _, m := range Messages() {
		var got []rune
		for _, sym := range m.Text() {
			got = append(got, sym.Rune())
		}
		if string(got) != texts[m] {
			t.Errorf("%s renders %q, expected %q", m, string(got), texts[m])
		}
		parsed, err := ParseMessage(m.String())
		if err != nil || parsed != m {
			t.Errorf("ParseMessage(%q) = %v, %v", m.String(), parsed, err)
		}
	}
	if _, err := ParseMessage("hello"); err == nil {
		t.Error("expected error")
	}
	if m, err := ParseMessage("UNO"); err != nil || m != Uno {
		t.Errorf("ParseMessage(UNO) = %v, %v", m, err)
	}
}

func TestInvalidMessagePanics(t *testing.T) {
	s, _ := newTestState()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	s.ShowMessage(Message(42), time.Second)
}
