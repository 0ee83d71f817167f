// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aplane-algo/btswitch/internal/netconfig"
	"github.com/aplane-algo/btswitch/internal/watch"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the network whenever the config file changes",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			sw, hl, err := openSwitcher(io.Discard)
			if err != nil {
				return err
			}
			defer func() { _ = hl.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", sw.Path())
			return watch.New(sw.Path(), sw).Run(ctx, func(n netconfig.Network) {
				fmt.Fprintf(out, "Current network: %s\n", n)
			})
		},
	}
}
