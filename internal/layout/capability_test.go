// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import "testing"

func TestCapabilityVocabulary(t *testing.T) {
	t.Parallel()

	families := map[Family][]Capability{
		I2C0:  {I2C0_SDA, I2C0_SCL},
		I2C1:  {I2C1_SDA, I2C1_SCL},
		SPI0:  {SPI0_RX, SPI0_CS, SPI0_SCK, SPI0_TX},
		SPI1:  {SPI1_RX, SPI1_CS, SPI1_SCK, SPI1_TX},
		UART0: {UART0_TX, UART0_RX, UART0_CTS, UART0_RTS},
		UART1: {UART1_TX, UART1_RX, UART1_CTS, UART1_RTS},
	}
	n := 0
	for f, cs := range families {
		for _, c := range cs {
			n++
			if c.Family() != f {
				t.Errorf("%s.Family() = %s, want %s", c, c.Family(), f)
			}
		}
	}
	if n != int(numCapabilities) {
		t.Errorf("vocabulary has %d capabilities, test covers %d", numCapabilities, n)
	}
}

func TestParseCapability(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tok  string
		want Capability
		ok   bool
	}{
		{"I2C0_SDA", I2C0_SDA, true},
		{"SPI1_SCK", SPI1_SCK, true},
		{"UART1_RTS", UART1_RTS, true},
		{"uart0_tx", 0, false}, // tokens match case-sensitively
		{"I2C2_SDA", 0, false},
		{"", 0, false},
		{"-", 0, false},
	}
	for _, tt := range tests {
		c, ok := ParseCapability(tt.tok)
		if ok != tt.ok || (ok && c != tt.want) {
			t.Errorf("ParseCapability(%q) = %v, %v, want %v, %v", tt.tok, c, ok, tt.want, tt.ok)
		}
	}
}

func TestSet(t *testing.T) {
	t.Parallel()

	var s Set
	if s.String() != "-" {
		t.Errorf("empty set renders %q, want \"-\"", s.String())
	}
	s.Add(UART0_TX)
	s.Add(I2C0_SDA)
	s.Add(SPI0_RX)
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if !s.Has(SPI0_RX) || s.Has(SPI0_TX) {
		t.Error("Has reports wrong membership")
	}
	// All returns the vocabulary order regardless of insertion order.
	want := []Capability{I2C0_SDA, SPI0_RX, UART0_TX}
	got := s.All()
	if len(got) != len(want) {
		t.Fatalf("All() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("All() = %v, want %v", got, want)
		}
	}
	if s.String() != "I2C0_SDA, SPI0_RX, UART0_TX" {
		t.Errorf("String() = %q", s.String())
	}
}
