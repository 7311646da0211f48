// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/embeddedgo/boardgen/internal/layout"
)

func testBoard(t *testing.T) *layout.Board {
	t.Helper()
	src := strings.Join([]string{
		"Tiny 2040",
		"#tiny2040",
		"0: I2C0_SDA, SPI0_RX, UART0_TX",
		"1: I2C0_SCL, SPI0_CS, UART0_RX",
		"2: I2C1_SDA, SPI0_SCK, UART0_CTS",
		"3: I2C1_SCL, SPI0_TX, UART0_RTS",
		"// ADC Pin0",
		"26: I2C1_SDA, SPI1_SCK, UART1_CTS",
		"// ADC Pin1",
		"27: I2C1_SCL, SPI1_TX, UART1_RTS",
		"29: -",
	}, "\n")
	b, err := layout.Parse("tiny2040.layout", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// parseGo fails the test if src is not valid Go source.
func parseGo(t *testing.T, name string, src []byte) {
	t.Helper()
	if _, err := parser.ParseFile(token.NewFileSet(), name, src, parser.ParseComments); err != nil {
		t.Fatalf("generated %s does not parse: %v\n%s", name, err, src)
	}
}

// typecheckGo fails the test if the generated files do not typecheck as
// one package. Parsing alone misses errors like duplicate constant switch
// cases or overflowing constants.
func typecheckGo(t *testing.T, files map[string][]byte) {
	t.Helper()
	fset := token.NewFileSet()
	var asts []*ast.File
	for name, src := range files {
		f, err := parser.ParseFile(fset, name, src, parser.ParseComments)
		if err != nil {
			t.Fatalf("generated %s does not parse: %v\n%s", name, err, src)
		}
		asts = append(asts, f)
	}
	conf := types.Config{}
	if _, err := conf.Check("boards", fset, asts, nil); err != nil {
		t.Fatalf("generated package does not typecheck: %v", err)
	}
}

func TestRenderBoard(t *testing.T) {
	t.Parallel()

	cfg := Config{Package: "boards"}
	b := testBoard(t)
	out, err := RenderBoard(cfg, b)
	if err != nil {
		t.Fatal(err)
	}
	agg, err := RenderAggregator(cfg, []Entry{{Tag: b.Tag, Name: b.Name, File: "tiny2040.layout"}})
	if err != nil {
		t.Fatal(err)
	}
	typecheckGo(t, map[string][]byte{"tiny2040.go": out, "boards.go": agg})

	src := string(out)
	for _, want := range []string{
		"// Code generated by boardgen. DO NOT EDIT.",
		"//go:build tiny2040",
		"package boards",
		"// Pins of the \"Tiny 2040\" board.",
		"// ADC Pin0",
		"func PinPWM(p Pin) (PWM, bool)",
		"return PWM5A, true", // pin 26 -> slice (26/2)&7 = 5, channel A
		"func I2CPins(sda, scl Pin) (I2C, bool)",
		"func SPIPins(tx, sck, rx, cs Pin) (SPI, bool)",
		"func UARTPins(tx, rx, cts, rts Pin) (UART, bool)",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated file lacks %q", want)
		}
	}
	// The exact spacing inside the const block belongs to gofmt, so match
	// the pin declarations loosely.
	for _, want := range []string{
		`Pin0\s+Pin = 0x0\n`,
		`Pin26\s+Pin = 0x1A\n`,
		`Pin29\s+Pin = 0x1D\n`,
	} {
		if !regexp.MustCompile(want).MatchString(src) {
			t.Errorf("generated file lacks declaration matching %q", want)
		}
	}

	// Pin constants must appear in ascending pin order.
	if strings.Index(src, "Pin26") < strings.Index(src, "Pin3") {
		t.Error("pin constants not in ascending order")
	}
}

func TestRenderBoardDeterministic(t *testing.T) {
	t.Parallel()

	cfg := Config{Package: "boards"}
	b := testBoard(t)
	first, err := RenderBoard(cfg, b)
	if err != nil {
		t.Fatal(err)
	}
	second, err := RenderBoard(cfg, b)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("two renders of the same board differ")
	}
}

func TestRenderBoardWithoutBus(t *testing.T) {
	t.Parallel()

	// A board with no usable SPI1 and no UART at all: the lookups must
	// still render valid Go that reports no match.
	src := "Bare Board\n#bareboard\n4: I2C0_SDA\n5: I2C0_SCL\n6: SPI1_RX\n"
	b, err := layout.Parse("bare.layout", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	out, err := RenderBoard(Config{Package: "boards"}, b)
	if err != nil {
		t.Fatal(err)
	}
	parseGo(t, "bareboard.go", out)
	if !strings.Contains(string(out), "func UARTPins(tx, rx, cts, rts Pin) (UART, bool) {\n\treturn 0, false\n}") {
		t.Errorf("UART lookup on a UART-less board should reject everything:\n%s", out)
	}
}

func TestRenderBoardSharedRolePin(t *testing.T) {
	t.Parallel()

	// Pin 4 carries SDA on both I2C buses. The bus selection must claim
	// it for I2C0 only, the generated switch cannot repeat a constant
	// case.
	src := "Dual Role\n#dualrole\n4: I2C0_SDA, I2C1_SDA\n5: I2C0_SCL\n6: I2C1_SCL\n"
	b, err := layout.Parse("dualrole.layout", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	cfg := Config{Package: "boards"}
	board, err := RenderBoard(cfg, b)
	if err != nil {
		t.Fatal(err)
	}
	agg, err := RenderAggregator(cfg, []Entry{{Tag: b.Tag, Name: b.Name, File: "dualrole.layout"}})
	if err != nil {
		t.Fatal(err)
	}
	typecheckGo(t, map[string][]byte{"dualrole.go": board, "boards.go": agg})

	s := string(board)
	if n := strings.Count(s, "case Pin4"); n != 1 {
		t.Errorf("Pin4 appears in %d case arms, want 1:\n%s", n, s)
	}
	if !regexp.MustCompile(`case Pin4:\s*d = I2C0`).MatchString(s) {
		t.Errorf("Pin4 does not select the first bus:\n%s", s)
	}
}

func TestRenderAggregator(t *testing.T) {
	t.Parallel()

	cfg := Config{Package: "boards", ImportRoot: "example.org/hal/pin/boards"}
	entries := []Entry{
		{Tag: "pico", Name: "Raspberry Pi Pico", File: "pico.layout"},
		{Tag: "tiny2040", Name: "Tiny 2040", File: "tiny2040.layout"},
	}
	out, err := RenderAggregator(cfg, entries)
	if err != nil {
		t.Fatal(err)
	}
	parseGo(t, "boards.go", out)
	src := string(out)
	for _, want := range []string{
		"// Package boards provides",
		"package boards",
		"example.org/hal/pin/boards",
		"type Pin uint8",
		"const NoPin Pin = 0xFF",
		"PWM0A PWM = iota",
		"PWM7B",
		"I2C0 I2C = iota",
		"UART1",
		"\"tiny2040\": \"Tiny 2040\",",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("aggregator lacks %q", want)
		}
	}
	if !regexp.MustCompile(`"pico":\s+"Raspberry Pi Pico",`).MatchString(src) {
		t.Error("aggregator lacks the pico registry entry")
	}

	again, err := RenderAggregator(cfg, entries)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, again) {
		t.Error("two renders of the same registry differ")
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry("boards")
	if err := r.Add(Entry{Tag: "pico", Name: "Pico", File: "pico.layout"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Add(Entry{Tag: "boards", Name: "X", File: "x.layout"}); err == nil {
		t.Error("reserved tag accepted")
	}
	if err := r.Add(Entry{Tag: "pico", Name: "Other", File: "other.layout"}); err == nil {
		t.Error("duplicate tag accepted")
	} else if !strings.Contains(err.Error(), "pico.layout") {
		t.Errorf("duplicate tag error %v does not name the first file", err)
	}
	if err := r.Add(Entry{Tag: "zero", Name: "Zero", File: "zero.layout"}); err != nil {
		t.Fatal(err)
	}
	es := r.Entries()
	if len(es) != 2 || es[0].Tag != "pico" || es[1].Tag != "zero" {
		t.Errorf("Entries() = %v", es)
	}
}

func TestImportRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "pin", "boards")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	gomod := "module example.org/hal\n\ngo 1.24\n"
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0o644); err != nil {
		t.Fatal(err)
	}
	root, err := ImportRoot(sub)
	if err != nil {
		t.Fatal(err)
	}
	if root != "example.org/hal/pin/boards" {
		t.Errorf("ImportRoot = %q, want example.org/hal/pin/boards", root)
	}

	root, err = ImportRoot(dir)
	if err != nil {
		t.Fatal(err)
	}
	if root != "example.org/hal" {
		t.Errorf("ImportRoot at module root = %q, want example.org/hal", root)
	}
}
