// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

// checkConflicts enforces the role-exclusivity rules for one pin line: at
// most one capability per role family. An exact duplicate token is an
// error too — layouts are expected well-formed, never auto-corrected.
func checkConflicts(file string, line, id int, caps []Capability) (Set, error) {
	var (
		set   Set
		used  [numFamilies]bool
		first [numFamilies]Capability
	)
	for _, c := range caps {
		f := c.Family()
		if used[f] {
			if first[f] == c {
				return 0, errorAt(file, line, ErrRoleConflict,
					"pin %d: capability %s given twice", id, c)
			}
			return 0, errorAt(file, line, ErrRoleConflict,
				"pin %d: %s conflicts with %s (both claim %s)", id, c, first[f], f)
		}
		used[f], first[f] = true, c
		set.Add(c)
	}
	return set, nil
}
