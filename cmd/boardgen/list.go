// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/embeddedgo/boardgen/internal/compile"
)

var listCmd = &cobra.Command{
	Use:   "list [LAYOUT_DIR]",
	Short: "list the boards described by a layout directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	opts := runOptions(args, true)
	results, err := compile.Run(opts)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tNAME\tPINS\tFILE")
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		b := r.Board
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", b.Tag, b.Name, len(b.Pins), r.File)
	}
	tw.Flush()
	if failed := compile.Failed(results); failed > 0 {
		return fmt.Errorf("%d of %d layout files failed", failed, len(results))
	}
	return nil
}
