// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compile drives a boardgen run: it feeds every .layout file of a
// directory through the parse/validate/generate pipeline and renders the
// aggregator after all files are processed. Files are independent of each
// other; a failing file never stops the run, only the final exit status.
package compile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/embeddedgo/boardgen/internal/gen"
	"github.com/embeddedgo/boardgen/internal/layout"
)

// Options configures one run.
type Options struct {
	LayoutDir  string
	OutDir     string
	Package    string // generated package name
	ImportRoot string // import path of the generated package, "" = derive from go.mod
	Jobs       int    // max layout files parsed concurrently, <= 0 = GOMAXPROCS
	Check      bool   // parse and validate only, write nothing
	Logger     *log.Logger
}

// Result is the outcome for a single layout file.
type Result struct {
	File  string
	Board *layout.Board // nil if Err != nil
	Err   error
}

// Failed counts the files that did not compile.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Run compiles every .layout file in opts.LayoutDir. Parsing and
// validation run concurrently; generation happens afterwards in file name
// order so the outputs and any cross-file errors are deterministic. The
// aggregator is rendered last, from the successfully compiled boards only.
func Run(opts Options) ([]Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	files, err := filepath.Glob(filepath.Join(opts.LayoutDir, "*.layout"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no layout files found in %q", opts.LayoutDir)
	}
	sort.Strings(files)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(files))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, f := range files {
		g.Go(func() error {
			results[i].File = f
			src, err := os.ReadFile(f)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Board, results[i].Err = layout.Parse(f, src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Check {
		report(logger, results)
		return results, nil
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, err
	}
	cfg := gen.Config{Package: opts.Package, ImportRoot: opts.ImportRoot}
	if cfg.ImportRoot == "" {
		root, err := gen.ImportRoot(opts.OutDir)
		if err != nil {
			logger.Warn("cannot derive the import root", "err", err)
		}
		cfg.ImportRoot = root
	}

	reg := gen.NewRegistry(cfg.Package)
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			continue
		}
		b := r.Board
		e := gen.Entry{Tag: b.Tag, Name: b.Name, File: r.File}
		if err := reg.Add(e); err != nil {
			r.Err = fmt.Errorf("%s: %w", r.File, err)
			continue
		}
		out, err := gen.RenderBoard(cfg, b)
		if err != nil {
			r.Err = fmt.Errorf("%s: %w", r.File, err)
			continue
		}
		path := filepath.Join(opts.OutDir, gen.BoardFile(b))
		if err := os.WriteFile(path, out, 0o644); err != nil {
			r.Err = err
			continue
		}
		logger.Debug("compiled", "file", r.File, "tag", b.Tag, "pins", len(b.Pins))
	}
	report(logger, results)

	out, err := gen.RenderAggregator(cfg, reg.Entries())
	if err != nil {
		return results, err
	}
	path := filepath.Join(opts.OutDir, gen.AggregatorFile(cfg))
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return results, err
	}
	logger.Debug("wrote aggregator", "file", path, "boards", len(reg.Entries()))
	return results, nil
}

func report(logger *log.Logger, results []Result) {
	for _, r := range results {
		if r.Err != nil {
			logger.Error("failed", "file", r.File, "err", r.Err)
		}
	}
}
