// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/embeddedgo/boardgen/internal/config"
)

func resetFlags() {
	cfg = config.Default()
	logger = log.New(io.Discard)
	outDir, pkgName, importRoot, jobs = "", "", "", 0
}

func TestRunOptions(t *testing.T) {
	resetFlags()

	opts := runOptions(nil, true)
	if !opts.Check {
		t.Error("check not propagated")
	}
	def := config.Default()
	if opts.LayoutDir != def.LayoutDir || opts.OutDir != def.OutDir || opts.Package != def.Package {
		t.Errorf("defaults not applied: %+v", opts)
	}

	outDir, pkgName, jobs = "gen", "pins", 4
	opts = runOptions([]string{"hw/layouts"}, false)
	if opts.LayoutDir != "hw/layouts" || opts.OutDir != "gen" || opts.Package != "pins" || opts.Jobs != 4 {
		t.Errorf("flags not applied: %+v", opts)
	}
}

func TestCompileCommand(t *testing.T) {
	resetFlags()

	in := t.TempDir()
	src := "Tiny 2040\n#tiny2040\n0: UART0_TX\n1: UART0_RX\n"
	if err := os.WriteFile(filepath.Join(in, "tiny2040.layout"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	out := t.TempDir()

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"compile", in, "-o", out})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"tiny2040.go", "boards.go"} {
		if _, err := os.Stat(filepath.Join(out, f)); err != nil {
			t.Errorf("missing %s: %v", f, err)
		}
	}
	if !strings.Contains(stdout.String(), "tiny2040") {
		t.Errorf("build tag reminder not printed:\n%s", stdout.String())
	}
}

func TestCompileCommandFailure(t *testing.T) {
	resetFlags()

	in := t.TempDir()
	src := "Broken Board\n#broken\n3: UART0_RX, UART0_TX\n"
	if err := os.WriteFile(filepath.Join(in, "broken.layout"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"compile", in, "-o", t.TempDir()})
	if err := rootCmd.Execute(); err == nil {
		t.Error("compile over a broken layout file succeeded")
	}
}
