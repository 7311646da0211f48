// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout parses board layout files, the small text descriptions of
// a board's pin capabilities that the boardgen tool compiles into per-board
// pin packages.
package layout

import (
	"math/bits"
	"strings"
)

// A Family groups the capabilities of one bus instance. At most one
// capability of every family may be assigned to a pin.
type Family uint8

const (
	I2C0 Family = iota
	I2C1
	SPI0
	SPI1
	UART0
	UART1

	numFamilies
)

var familyNames = [numFamilies]string{"I2C0", "I2C1", "SPI0", "SPI1", "UART0", "UART1"}

func (f Family) String() string {
	if int(f) >= len(familyNames) {
		return "Family(?)"
	}
	return familyNames[f]
}

// A Capability names one role a pin can take on one of the chip buses. The
// vocabulary is fixed: two I2C buses with SDA/SCL, two SPI buses with
// RX/CS/SCK/TX and two UARTs with TX/RX/CTS/RTS.
type Capability uint8

const (
	I2C0_SDA Capability = iota
	I2C0_SCL
	I2C1_SDA
	I2C1_SCL
	SPI0_RX
	SPI0_CS
	SPI0_SCK
	SPI0_TX
	SPI1_RX
	SPI1_CS
	SPI1_SCK
	SPI1_TX
	UART0_TX
	UART0_RX
	UART0_CTS
	UART0_RTS
	UART1_TX
	UART1_RX
	UART1_CTS
	UART1_RTS

	numCapabilities
)

var capabilities = [numCapabilities]struct {
	name   string
	family Family
}{
	I2C0_SDA:  {"I2C0_SDA", I2C0},
	I2C0_SCL:  {"I2C0_SCL", I2C0},
	I2C1_SDA:  {"I2C1_SDA", I2C1},
	I2C1_SCL:  {"I2C1_SCL", I2C1},
	SPI0_RX:   {"SPI0_RX", SPI0},
	SPI0_CS:   {"SPI0_CS", SPI0},
	SPI0_SCK:  {"SPI0_SCK", SPI0},
	SPI0_TX:   {"SPI0_TX", SPI0},
	SPI1_RX:   {"SPI1_RX", SPI1},
	SPI1_CS:   {"SPI1_CS", SPI1},
	SPI1_SCK:  {"SPI1_SCK", SPI1},
	SPI1_TX:   {"SPI1_TX", SPI1},
	UART0_TX:  {"UART0_TX", UART0},
	UART0_RX:  {"UART0_RX", UART0},
	UART0_CTS: {"UART0_CTS", UART0},
	UART0_RTS: {"UART0_RTS", UART0},
	UART1_TX:  {"UART1_TX", UART1},
	UART1_RX:  {"UART1_RX", UART1},
	UART1_CTS: {"UART1_CTS", UART1},
	UART1_RTS: {"UART1_RTS", UART1},
}

var capByName = func() map[string]Capability {
	m := make(map[string]Capability, numCapabilities)
	for c, d := range capabilities {
		m[d.name] = Capability(c)
	}
	return m
}()

func (c Capability) String() string {
	if c >= numCapabilities {
		return "Capability(?)"
	}
	return capabilities[c].name
}

// Family returns the role family c belongs to.
func (c Capability) Family() Family { return capabilities[c].family }

// ParseCapability matches tok (case-sensitively) against the capability
// vocabulary.
func ParseCapability(tok string) (Capability, bool) {
	c, ok := capByName[tok]
	return c, ok
}

// A Set is a set of capabilities.
type Set uint32

// Add adds c to the set.
func (s *Set) Add(c Capability) { *s |= 1 << c }

// Has reports whether c is in the set.
func (s Set) Has(c Capability) bool { return s&(1<<c) != 0 }

// Len returns the number of capabilities in the set.
func (s Set) Len() int { return bits.OnesCount32(uint32(s)) }

// All returns the capabilities in the set in vocabulary order.
func (s Set) All() []Capability {
	if s == 0 {
		return nil
	}
	cs := make([]Capability, 0, s.Len())
	for c := Capability(0); c < numCapabilities; c++ {
		if s.Has(c) {
			cs = append(cs, c)
		}
	}
	return cs
}

func (s Set) String() string {
	if s == 0 {
		return "-"
	}
	var sb strings.Builder
	for i, c := range s.All() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}
