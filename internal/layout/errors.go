// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"errors"
	"fmt"
)

// The error kinds a layout file can fail with. Every failure returned by
// Parse wraps exactly one of them; use errors.Is to classify.
var (
	ErrMissingHeader     = errors.New("missing header")
	ErrInvalidHeader     = errors.New("invalid header")
	ErrInvalidTag        = errors.New("invalid tag")
	ErrInvalidPinNumber  = errors.New("invalid pin number")
	ErrDuplicatePin      = errors.New("duplicate pin")
	ErrUnknownCapability = errors.New("unknown capability")
	ErrRoleConflict      = errors.New("role conflict")
	ErrNoPins            = errors.New("no pin definitions")
)

// Error describes a failure in a single layout file. A failing file never
// affects the rest of a compilation run.
type Error struct {
	File string
	Line int // 1-based, 0 if the error concerns the whole file
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

func errorAt(file string, line int, kind error, format string, args ...any) *Error {
	return &Error{
		File: file,
		Line: line,
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
	}
}
