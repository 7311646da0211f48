// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/embeddedgo/boardgen/internal/compile"
	"github.com/embeddedgo/boardgen/internal/config"
)

// version is set via -ldflags at release time.
var version = "dev"

var (
	verbose bool
	cfgFile string

	cfg    config.Config
	logger *log.Logger

	rootCmd = &cobra.Command{
		Use:   "boardgen",
		Short: "compile board layout files into generated pin packages",
		Long: `boardgen compiles .layout files, small text descriptions of a board's
pin capabilities, into Go source: one build-tag-guarded pin table per
board plus an aggregator file listing every supported board tag.

The board tags listed in the aggregator must be wired into the consuming
project's build configuration by hand; boardgen prints a reminder with
the tags after every successful run.`,
	}
)

func init() {
	cobra.OnInitialize(initRoot)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./boardgen.toml)")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(listCmd)
}

func initRoot() {
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: config.AppName})
	c, err := config.Load(cfgFile)
	if err != nil {
		logger.Warn("configuration not loaded", "err", err)
	}
	cfg = c
	if verbose || cfg.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
}

// runOptions merges the configuration with the command line; flags win.
func runOptions(args []string, check bool) compile.Options {
	opts := compile.Options{
		LayoutDir:  cfg.LayoutDir,
		OutDir:     cfg.OutDir,
		Package:    cfg.Package,
		ImportRoot: cfg.ImportRoot,
		Jobs:       cfg.Jobs,
		Check:      check,
		Logger:     logger,
	}
	if len(args) == 1 {
		opts.LayoutDir = args[0]
	}
	if outDir != "" {
		opts.OutDir = outDir
	}
	if pkgName != "" {
		opts.Package = pkgName
	}
	if importRoot != "" {
		opts.ImportRoot = importRoot
	}
	if jobs > 0 {
		opts.Jobs = jobs
	}
	return opts
}
