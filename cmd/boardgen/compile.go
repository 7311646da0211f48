// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/embeddedgo/boardgen/internal/compile"
)

var (
	outDir     string
	pkgName    string
	importRoot string
	jobs       int
)

var compileCmd = &cobra.Command{
	Use:   "compile [LAYOUT_DIR]",
	Short: "compile layout files and write the generated pin package",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCompile,
}

var checkCmd = &cobra.Command{
	Use:   "check [LAYOUT_DIR]",
	Short: "parse and validate layout files without writing anything",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	compileCmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config)")
	compileCmd.Flags().StringVarP(&pkgName, "package", "p", "", "generated package name (default from config)")
	compileCmd.Flags().StringVarP(&importRoot, "import-root", "r", "", "import path of the generated package (default derived from go.mod)")
	compileCmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "layout files parsed concurrently (0 = one per CPU)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	opts := runOptions(args, false)
	results, err := compile.Run(opts)
	if err != nil {
		return err
	}
	if failed := compile.Failed(results); failed > 0 {
		return fmt.Errorf("%d of %d layout files failed", failed, len(results))
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("compiled %d layout files to %s", len(results), opts.OutDir)))
	fmt.Fprintln(out, mutedStyle.Render("Make sure these board build tags are selectable in the consuming project:"))
	for _, r := range results {
		fmt.Fprintln(out, "  "+r.Board.Tag)
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts := runOptions(args, true)
	results, err := compile.Run(opts)
	if err != nil {
		return err
	}
	if failed := compile.Failed(results); failed > 0 {
		return fmt.Errorf("%d of %d layout files failed", failed, len(results))
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("%d layout files OK", len(results))))
	return nil
}
