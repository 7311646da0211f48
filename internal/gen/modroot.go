// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gen

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// ImportRoot derives the import path of the output directory from the
// enclosing go.mod. It returns "" if the directory is not inside a Go
// module; the aggregator then simply omits its import note.
func ImportRoot(outDir string) (string, error) {
	dir, err := filepath.Abs(outDir)
	if err != nil {
		return "", err
	}
	root := dir
	var gomod string
	for {
		gomod = filepath.Join(root, "go.mod")
		fi, err := os.Stat(gomod)
		if err == nil && fi.Mode().IsRegular() {
			break
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(root)
		if parent == root {
			return "", nil
		}
		root = parent
	}
	data, err := os.ReadFile(gomod)
	if err != nil {
		return "", err
	}
	f, err := modfile.ParseLax(gomod, data, nil)
	if err != nil {
		return "", err
	}
	if f.Module == nil {
		return "", nil
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return f.Module.Mod.Path, nil
	}
	return f.Module.Mod.Path + "/" + strings.ReplaceAll(rel, string(filepath.Separator), "/"), nil
}
