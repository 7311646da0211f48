// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import "strings"

// parseHeader scans the classified stream from the top for the board
// display name (first content line) and the board tag (first "#" comment).
// Both must occur before the first pin definition line. Additional name or
// tag candidates are ignored so layout files can carry extra descriptive
// comments. It returns the index where the pin block starts: the first pin
// definition line, or the comment run directly preceding it so those
// comments document the first pin, or len(lines) if the file has no pins.
func parseHeader(file string, lines []string) (name, tag string, first int, err error) {
	run := -1 // start of the pending comment run, -1 if none
	for i, raw := range lines {
		s, kind := classify(raw)
		switch kind {
		case blankLine:
			continue
		case commentLine:
			if tag == "" && strings.HasPrefix(s, "#") {
				t := s[1:]
				if !validTag(t) {
					return "", "", 0, errorAt(file, i+1, ErrInvalidTag, "invalid tag %q", t)
				}
				tag = strings.ToLower(t)
				run = -1
				continue
			}
			if run < 0 {
				run = i
			}
		case contentLine:
			if isPinLine(s) {
				if name == "" || tag == "" {
					return "", "", 0, errorAt(file, i+1, ErrMissingHeader,
						"pin definitions start before the name and tag header")
				}
				if run >= 0 {
					return name, tag, run, nil
				}
				return name, tag, i, nil
			}
			run = -1
			if name != "" {
				continue
			}
			if !validName(s) {
				return "", "", 0, errorAt(file, i+1, ErrInvalidHeader, "invalid board name %q", s)
			}
			name = s
		}
	}
	if name == "" || tag == "" {
		return "", "", 0, errorAt(file, 0, ErrMissingHeader, "no name and tag header found")
	}
	return name, tag, len(lines), nil
}

// validName accepts board display names: at least two characters, all from
// [A-Za-z0-9_- [](){}@|].
func validName(s string) bool {
	if len(s) <= 1 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9':
		case c == '_' || c == '-' || c == ' ':
		case c == '[' || c == ']' || c == '(' || c == ')':
		case c == '{' || c == '}' || c == '@' || c == '|':
		default:
			return false
		}
	}
	return true
}

// validTag accepts board tags: at least two characters from [A-Za-z0-9_-],
// not starting with a digit, '_' or '-'. The tag names the generated file
// and the build constraint selecting it.
func validTag(s string) bool {
	if len(s) <= 1 {
		return false
	}
	if c := s[0]; '0' <= c && c <= '9' || c == '_' || c == '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9':
		case c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}
