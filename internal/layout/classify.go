// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import "strings"

type lineKind uint8

const (
	blankLine lineKind = iota
	commentLine
	contentLine
)

// classify trims raw and tags it as blank, comment ("//" or "#" prefix) or
// content. A "#" line is a comment here; whether it carries the board tag
// is decided by its position in the stream, not by classification.
func classify(raw string) (string, lineKind) {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return s, blankLine
	case strings.HasPrefix(s, "//"), strings.HasPrefix(s, "#"):
		return s, commentLine
	}
	return s, contentLine
}

// isPinLine reports whether a content line opens a pin definition, that is
// starts with a pin number followed by a colon.
func isPinLine(s string) bool {
	i := 0
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return false
	}
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i < len(s) && s[i] == ':'
}

// stripMarker removes the comment marker and the surrounding whitespace
// from a comment line, keeping the documentation text.
func stripMarker(s string) string {
	switch {
	case strings.HasPrefix(s, "//"):
		s = strings.TrimLeft(s[2:], "/")
	case strings.HasPrefix(s, "#"):
		s = strings.TrimLeft(s[1:], "#")
	}
	return strings.TrimSpace(s)
}
