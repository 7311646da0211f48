// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrReservedTag  = errors.New("reserved tag")
	ErrDuplicateTag = errors.New("duplicate tag")
)

// Entry records one successfully compiled board.
type Entry struct {
	Tag  string
	Name string
	File string // source layout file, for error messages
}

// Registry accumulates the boards compiled in one run. It is filled once
// per successfully compiled layout file and rendered into the aggregator
// only after all files are processed. Add may be called concurrently.
type Registry struct {
	pkg     string
	mu      sync.Mutex
	entries map[string]Entry
}

// NewRegistry returns an empty registry for a run generating package pkg.
// The package name itself is not usable as a board tag.
func NewRegistry(pkg string) *Registry {
	return &Registry{pkg: pkg, entries: make(map[string]Entry)}
}

// Add records one compiled board. It fails if the tag is reserved or was
// already added by another layout file in this run.
func (r *Registry) Add(e Entry) error {
	if e.Tag == r.pkg {
		return fmt.Errorf("tag %q collides with the generated package name: %w",
			e.Tag, ErrReservedTag)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.entries[e.Tag]; ok {
		return fmt.Errorf("tag %q already used by %s: %w", e.Tag, prev.File, ErrDuplicateTag)
	}
	r.entries[e.Tag] = e
	return nil
}

// Entries returns the recorded boards sorted by tag.
func (r *Registry) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	es := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		es = append(es, e)
	}
	sort.Slice(es, func(i, j int) bool { return es[i].Tag < es[j].Tag })
	return es
}

// AggregatorFile returns the name of the aggregator file.
func AggregatorFile(cfg Config) string { return cfg.Package + ".go" }

// RenderAggregator renders the aggregator: the package documentation
// listing every board build tag, the shared pin and bus types used by the
// per-board files and the tag registry. It is re-rendered in full on every
// run so it always reflects exactly the boards that compiled.
func RenderAggregator(cfg Config, entries []Entry) ([]byte, error) {
	w := new(bytes.Buffer)
	fmt.Fprintln(w, header)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "// Package %s provides the generated pin capability tables of the\n", cfg.Package)
	fmt.Fprintln(w, "// supported boards.")
	fmt.Fprintln(w, "//")
	fmt.Fprintln(w, "// Every board lives in its own file guarded by a build constraint.")
	fmt.Fprintln(w, "// Select exactly one of these build tags when building a consumer:")
	fmt.Fprintln(w, "//")
	maxLen := 0
	for _, e := range entries {
		if maxLen < len(e.Tag) {
			maxLen = len(e.Tag)
		}
	}
	for _, e := range entries {
		fmt.Fprintf(w, "//\t%-*s  %s\n", maxLen, e.Tag, e.Name)
	}
	if cfg.ImportRoot != "" {
		fmt.Fprintln(w, "//")
		fmt.Fprintln(w, "// Import:")
		fmt.Fprintln(w, "//")
		fmt.Fprintf(w, "//\t%s\n", cfg.ImportRoot)
	}
	fmt.Fprintln(w, "package", cfg.Package)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "// Pin identifies a GPIO pin by its number.")
	fmt.Fprintln(w, "type Pin uint8")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "// NoPin marks an optional bus pin as not connected.")
	fmt.Fprintln(w, "const NoPin Pin = 0xFF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "// PWM identifies a PWM slice and output channel. Pin n is multiplexed")
	fmt.Fprintln(w, "// to slice (n/2)&7, channel A for even pins and channel B for odd ones.")
	fmt.Fprintln(w, "type PWM uint8")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "const (")
	for s := 0; s < 8; s++ {
		for _, ch := range "AB" {
			if s == 0 && ch == 'A' {
				fmt.Fprintf(w, "\tPWM%d%c PWM = iota\n", s, ch)
			} else {
				fmt.Fprintf(w, "\tPWM%d%c\n", s, ch)
			}
		}
	}
	fmt.Fprintln(w, ")")
	for _, bus := range []struct{ typ, descr string }{
		{"I2C", "an I2C bus instance"},
		{"SPI", "an SPI bus instance"},
		{"UART", "a UART instance"},
	} {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "// %s identifies %s.\n", bus.typ, bus.descr)
		fmt.Fprintf(w, "type %s uint8\n", bus.typ)
		fmt.Fprintln(w)
		fmt.Fprintln(w, "const (")
		fmt.Fprintf(w, "\t%s0 %s = iota\n", bus.typ, bus.typ)
		fmt.Fprintf(w, "\t%s1\n", bus.typ)
		fmt.Fprintln(w, ")")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "// Boards maps the build tag of every supported board to its display")
	fmt.Fprintln(w, "// name.")
	fmt.Fprintln(w, "var Boards = map[string]string{")
	for _, e := range entries {
		fmt.Fprintf(w, "\t%q: %q,\n", e.Tag, e.Name)
	}
	fmt.Fprintln(w, "}")
	return format(AggregatorFile(cfg), w.Bytes())
}
