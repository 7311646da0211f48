// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gen renders the Go source generated from parsed board layouts:
// one build-tag-guarded pin table per board and the aggregator file tying
// the boards together. Rendering is plain textual substitution and is
// byte-for-byte deterministic for identical input.
package gen

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/embeddedgo/boardgen/internal/layout"
)

// Config describes the output of one compilation run.
type Config struct {
	Package    string // name of the generated package, e.g. "boards"
	ImportRoot string // import path of the generated package, may be empty
}

const header = "// Code generated by boardgen. DO NOT EDIT."

// BoardFile returns the name of the file generated for b.
func BoardFile(b *layout.Board) string { return b.Tag + ".go" }

// RenderBoard renders the pin package file of one board: the pin constant
// block with its attached documentation and the PWM/I2C/SPI/UART lookup
// functions. The output is gofmt-formatted.
func RenderBoard(cfg Config, b *layout.Board) ([]byte, error) {
	w := new(bytes.Buffer)
	fmt.Fprintln(w, header)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "//go:build", b.Tag)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "package", cfg.Package)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "// Pins of the %q board.\n", b.Name)
	fmt.Fprintln(w, "const (")
	for _, p := range b.Pins {
		for _, d := range p.Doc {
			if d == "" {
				fmt.Fprintln(w, "\t//")
			} else {
				fmt.Fprintln(w, "\t//", d)
			}
		}
		fmt.Fprintf(w, "\tPin%d Pin = 0x%X\n", p.ID, p.ID)
	}
	fmt.Fprintln(w, ")")
	renderPWM(w, b)
	renderI2C(w, b)
	renderSPI(w, b)
	renderUART(w, b)
	return format(BoardFile(b), w.Bytes())
}

func renderPWM(w io.Writer, b *layout.Board) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "// PinPWM returns the PWM slice and channel multiplexed to p.")
	fmt.Fprintln(w, "func PinPWM(p Pin) (PWM, bool) {")
	fmt.Fprintln(w, "\tswitch p {")
	for _, p := range b.Pins {
		ch := "A"
		if p.ID%2 != 0 {
			ch = "B"
		}
		fmt.Fprintf(w, "\tcase Pin%d:\n\t\treturn PWM%d%s, true\n", p.ID, (p.ID/2)&7, ch)
	}
	fmt.Fprintln(w, "\t}")
	fmt.Fprintln(w, "\treturn 0, false")
	fmt.Fprintln(w, "}")
}

// busArm is one per-bus alternative of a lookup switch: the pins of the
// board that carry the given role on the given bus.
type busArm struct {
	bus  string
	pins []int
}

func pinsWith(b *layout.Board, c layout.Capability) []int {
	var ids []int
	for _, p := range b.Pins {
		if p.Caps.Has(c) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func arms(b *layout.Board, buses []string, caps []layout.Capability) []busArm {
	var as []busArm
	for i, bus := range buses {
		if pins := pinsWith(b, caps[i]); len(pins) > 0 {
			as = append(as, busArm{bus, pins})
		}
	}
	return as
}

// keep returns the arms whose bus is in the eligible set.
func keep(as []busArm, eligible []busArm) []busArm {
	var kept []busArm
	for _, a := range as {
		for _, e := range eligible {
			if a.bus == e.bus {
				kept = append(kept, a)
				break
			}
		}
	}
	return kept
}

func caseList(pins []int) string {
	var sb strings.Builder
	for i, id := range pins {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "Pin%d", id)
	}
	return sb.String()
}

func eqAny(name string, pins []int) string {
	var sb strings.Builder
	for i, id := range pins {
		if i > 0 {
			sb.WriteString(" || ")
		}
		fmt.Fprintf(&sb, "%s == Pin%d", name, id)
	}
	return sb.String()
}

// renderLookup renders one bus lookup function. The first required role
// selects the bus instance, the remaining ones are checked against it;
// optional roles additionally accept NoPin. Buses missing any required
// role cannot be selected at all; if no bus qualifies the function body
// collapses to a plain "not found".
func renderLookup(w io.Writer, typ string, doc []string, params []string, required, optional [][]busArm) {
	fmt.Fprintln(w)
	for _, d := range doc {
		fmt.Fprintln(w, "//", d)
	}
	sig := strings.Join(params, ", ")
	fmt.Fprintf(w, "func %sPins(%s Pin) (%s, bool) {\n", typ, sig, typ)

	eligible := required[0]
	for _, req := range required[1:] {
		eligible = keep(eligible, req)
	}
	if len(eligible) == 0 {
		fmt.Fprintln(w, "\treturn 0, false")
		fmt.Fprintln(w, "}")
		return
	}

	fmt.Fprintf(w, "\tvar d %s\n", typ)
	fmt.Fprintf(w, "\tswitch %s {\n", params[0])
	// A pin carrying the same role on both buses selects the first bus,
	// so every pin appears in at most one case arm.
	claimed := make(map[int]bool)
	for _, a := range keep(required[0], eligible) {
		var pins []int
		for _, id := range a.pins {
			if !claimed[id] {
				claimed[id] = true
				pins = append(pins, id)
			}
		}
		if len(pins) == 0 {
			continue
		}
		fmt.Fprintf(w, "\tcase %s:\n\t\td = %s\n", caseList(pins), a.bus)
	}
	fmt.Fprintln(w, "\tdefault:\n\t\treturn 0, false\n\t}")
	for i, req := range required[1:] {
		name := params[1+i]
		fmt.Fprintln(w, "\tswitch {")
		for _, a := range keep(req, eligible) {
			fmt.Fprintf(w, "\tcase d == %s && (%s):\n", a.bus, eqAny(name, a.pins))
		}
		fmt.Fprintln(w, "\tdefault:\n\t\treturn 0, false\n\t}")
	}
	for i, opt := range optional {
		name := params[len(required)+i]
		fmt.Fprintln(w, "\tswitch {")
		fmt.Fprintf(w, "\tcase %s == NoPin:\n", name)
		for _, a := range keep(opt, eligible) {
			fmt.Fprintf(w, "\tcase d == %s && (%s):\n", a.bus, eqAny(name, a.pins))
		}
		fmt.Fprintln(w, "\tdefault:\n\t\treturn 0, false\n\t}")
	}
	fmt.Fprintln(w, "\treturn d, true")
	fmt.Fprintln(w, "}")
}

func renderI2C(w io.Writer, b *layout.Board) {
	buses := []string{"I2C0", "I2C1"}
	renderLookup(w, "I2C",
		[]string{"I2CPins returns the I2C bus that drives data on sda and clock on scl."},
		[]string{"sda", "scl"},
		[][]busArm{
			arms(b, buses, []layout.Capability{layout.I2C0_SDA, layout.I2C1_SDA}),
			arms(b, buses, []layout.Capability{layout.I2C0_SCL, layout.I2C1_SCL}),
		},
		nil,
	)
}

func renderSPI(w io.Writer, b *layout.Board) {
	buses := []string{"SPI0", "SPI1"}
	renderLookup(w, "SPI",
		[]string{
			"SPIPins returns the SPI bus wired to the given pins. The rx and",
			"cs pins are optional, pass NoPin to leave them unused.",
		},
		[]string{"tx", "sck", "rx", "cs"},
		[][]busArm{
			arms(b, buses, []layout.Capability{layout.SPI0_TX, layout.SPI1_TX}),
			arms(b, buses, []layout.Capability{layout.SPI0_SCK, layout.SPI1_SCK}),
		},
		[][]busArm{
			arms(b, buses, []layout.Capability{layout.SPI0_RX, layout.SPI1_RX}),
			arms(b, buses, []layout.Capability{layout.SPI0_CS, layout.SPI1_CS}),
		},
	)
}

func renderUART(w io.Writer, b *layout.Board) {
	buses := []string{"UART0", "UART1"}
	renderLookup(w, "UART",
		[]string{
			"UARTPins returns the UART wired to the given pins. The cts and",
			"rts pins are optional, pass NoPin to leave them unused.",
		},
		[]string{"tx", "rx", "cts", "rts"},
		[][]busArm{
			arms(b, buses, []layout.Capability{layout.UART0_TX, layout.UART1_TX}),
			arms(b, buses, []layout.Capability{layout.UART0_RX, layout.UART1_RX}),
		},
		[][]busArm{
			arms(b, buses, []layout.Capability{layout.UART0_CTS, layout.UART1_CTS}),
			arms(b, buses, []layout.Capability{layout.UART0_RTS, layout.UART1_RTS}),
		},
	)
}

// format runs the rendered source through the gofmt rules so the output
// matches what a human would commit.
func format(name string, src []byte) ([]byte, error) {
	out, err := imports.Process(name, src, nil)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", name, err)
	}
	return out, nil
}
