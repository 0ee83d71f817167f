// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aplane-algo/btswitch/internal/history"
	"github.com/aplane-algo/btswitch/internal/netconfig"
)

const defaultHistoryLimit = 10

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent network switches",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := netconfig.DefaultPath()
			if err != nil {
				return err
			}
			entries, err := history.Recent(historyPath(path), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No network switches recorded.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %s -> %s\n", e.Timestamp.UTC().Format(time.RFC3339), e.From, e.To)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "number of entries to show (0 = all)")
	return cmd
}
