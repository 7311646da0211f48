// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"sort"
	"strconv"
	"strings"
)

// maxPin is the highest accepted pin number. Pin numbers are 8-bit in the
// generated code and 0xFF is the "not connected" sentinel there.
const maxPin = 0xFE

// Pin is one validated pin record: a pin number in 0..254, the set of bus
// roles the pin can take and the documentation attached to it in the
// layout file.
type Pin struct {
	ID   int
	Caps Set
	Doc  []string
}

// Board is the parsed and validated layout of one board. Pins is sorted by
// ascending pin number and contains no duplicates.
type Board struct {
	Name string
	Tag  string
	Pins []Pin
}

// Parse parses and validates src as a layout file. The file name is used
// in error messages only. On failure it returns a *Error wrapping one of
// the Err* kinds.
func Parse(file string, src []byte) (*Board, error) {
	lines := strings.Split(string(src), "\n")
	name, tag, first, err := parseHeader(file, lines)
	if err != nil {
		return nil, err
	}
	pins, err := parsePins(file, lines, first)
	if err != nil {
		return nil, err
	}
	if len(pins) == 0 {
		return nil, errorAt(file, 0, ErrNoPins, "no pin definitions found")
	}
	sort.Slice(pins, func(i, j int) bool { return pins[i].ID < pins[j].ID })
	return &Board{Name: name, Tag: tag, Pins: pins}, nil
}

// parsePins parses the pin block: every content line is
//
//	<pin number> ':' ( '-' | <capability> (',' | whitespace)* ... )
//
// Comment lines are buffered and attached as documentation to the next pin
// definition; a comment run followed by end of file is discarded. A bare
// "N:" line reserves the pin number but produces no record.
func parsePins(file string, lines []string, first int) ([]Pin, error) {
	var (
		doc  []string
		pins []Pin
		seen = make(map[int]int)
	)
	for i := first; i < len(lines); i++ {
		s, kind := classify(lines[i])
		ln := i + 1
		switch kind {
		case blankLine:
			continue
		case commentLine:
			doc = append(doc, stripMarker(s))
			continue
		}
		j := strings.IndexByte(s, ':')
		if j <= 0 {
			return nil, errorAt(file, ln, ErrInvalidPinNumber, "malformed pin line %q", s)
		}
		txt := strings.TrimSpace(s[:j])
		id, err := strconv.ParseUint(txt, 10, 16)
		if err != nil {
			return nil, errorAt(file, ln, ErrInvalidPinNumber, "invalid pin number %q", txt)
		}
		if id > maxPin {
			return nil, errorAt(file, ln, ErrInvalidPinNumber,
				"pin number %d out of range (max %d)", id, maxPin)
		}
		if prev, ok := seen[int(id)]; ok {
			return nil, errorAt(file, ln, ErrDuplicatePin,
				"pin %d already defined on line %d", id, prev)
		}
		seen[int(id)] = ln
		rest := strings.TrimSpace(s[j+1:])
		if rest == "" {
			// Pin number reserved, no record. The buffered comments do not
			// carry over to the next pin.
			doc = nil
			continue
		}
		var caps []Capability
		if rest != "-" {
			for _, tok := range strings.FieldsFunc(rest, sepToken) {
				c, ok := ParseCapability(tok)
				if !ok {
					return nil, errorAt(file, ln, ErrUnknownCapability,
						"pin %d: unknown capability %q", id, tok)
				}
				caps = append(caps, c)
			}
		}
		set, err := checkConflicts(file, ln, int(id), caps)
		if err != nil {
			return nil, err
		}
		pins = append(pins, Pin{ID: int(id), Caps: set, Doc: doc})
		doc = nil
	}
	return pins, nil
}

func sepToken(r rune) bool { return r == ',' || r == ' ' || r == '\t' }
