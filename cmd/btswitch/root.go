// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/aplane-algo/btswitch/internal/history"
	"github.com/aplane-algo/btswitch/internal/netconfig"
	"github.com/aplane-algo/btswitch/internal/util"
	"github.com/aplane-algo/btswitch/internal/version"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// usageError marks errors caused by bad command-line input.
type usageError struct {
	cmd *cobra.Command
	err error
}

func (e *usageError) Error() string {
	return e.err.Error()
}

func (e *usageError) Unwrap() error {
	return e.err
}

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{cmd: cmd, err: err}
		}
		return nil
	}
}

// networkValue is a --network flag value restricted to netconfig.Networks.
type networkValue struct {
	network netconfig.Network
}

var _ pflag.Value = (*networkValue)(nil)

func (v *networkValue) String() string { return string(v.network) }

func (v *networkValue) Type() string { return "network" }

func (v *networkValue) Set(s string) error {
	n, err := netconfig.ParseNetwork(s)
	if err != nil {
		return fmt.Errorf("invalid choice: '%s' (choose from %s)", s, netconfig.NetworkNames())
	}
	v.network = n
	return nil
}

type outputFormat string

const (
	outputText outputFormat = "text"
	outputJSON outputFormat = "json"
	outputYAML outputFormat = "yaml"
)

var outputFormats = []outputFormat{outputText, outputJSON, outputYAML}

// outputValue is a --output flag value restricted to outputFormats.
type outputValue struct {
	format outputFormat
}

var _ pflag.Value = (*outputValue)(nil)

func (v *outputValue) String() string { return string(v.format) }

func (v *outputValue) Type() string { return "format" }

func (v *outputValue) Set(s string) error {
	for _, f := range outputFormats {
		if string(f) == strings.ToLower(s) {
			v.format = f
			return nil
		}
	}
	return fmt.Errorf("invalid choice: '%s' (choose from text, json, yaml)", s)
}

type rootOptions struct {
	network networkValue
	check   bool
	output  outputValue
	debug   bool
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{output: outputValue{format: outputText}}

	root := &cobra.Command{
		Use:   "btswitch",
		Short: "Bittensor Network Switcher",
		Long: "Switch the Bittensor node client between mainnet and testnet.\n\n" +
			"Without flags an interactive menu is shown.",
		Version:       version.String(),
		Args:          usageArgs(cobra.NoArgs),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			util.InitLogger(opts.debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts)
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetVersionTemplate("btswitch {{.Version}}\n")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{cmd: cmd, err: err}
	})

	fs := root.Flags()
	fs.Var(&opts.network, "network", "switch to a specific network (mainnet, testnet)")
	fs.BoolVar(&opts.check, "check", false, "check current network")
	fs.VarP(&opts.output, "output", "o", "format for --check (text, json, yaml)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging (or set "+util.DebugEnv+")")

	root.AddCommand(newWatchCmd(), newHistoryCmd(), newTUICmd())
	return root
}

func runRoot(cmd *cobra.Command, opts *rootOptions) error {
	out := cmd.OutOrStdout()
	sw, hl, err := openSwitcher(out)
	if err != nil {
		return err
	}
	defer func() { _ = hl.Close() }()

	switch {
	case cmd.Flags().Changed("network"):
		return sw.Switch(string(opts.network.network))
	case opts.check:
		return printCheck(sw, opts.output.format, out)
	default:
		return runInteractive(sw, cmd.InOrStdin(), out)
	}
}

// openSwitcher resolves the config path under the home directory and wires
// the switch history log next to it.
func openSwitcher(out io.Writer) (*netconfig.Switcher, *history.Log, error) {
	path, err := netconfig.DefaultPath()
	if err != nil {
		return nil, nil, err
	}
	hl := history.Open(historyPath(path))
	sw, err := netconfig.New(path, netconfig.WithOutput(out), netconfig.WithRecorder(hl))
	if err != nil {
		return nil, nil, err
	}
	return sw, hl, nil
}

func historyPath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), history.FileName)
}

func printCheck(sw *netconfig.Switcher, format outputFormat, out io.Writer) error {
	switch format {
	case outputJSON:
		doc, err := sw.Read()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(doc.Bytes()))
		return err
	case outputYAML:
		doc, err := sw.Read()
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(out)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		_, err := sw.Check()
		return err
	}
}

// run executes the command line and returns the process exit code.
func run(args []string, in io.Reader, out, errOut io.Writer) int {
	if args == nil {
		args = []string{}
	}
	root := newRootCmd(in, out, errOut)
	root.SetArgs(args)
	return exitCode(root.ExecuteContext(context.Background()), errOut)
}

func exitCode(err error, errOut io.Writer) int {
	var usageErr *usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &usageErr):
		fmt.Fprintf(errOut, "Error: %v\n", usageErr.err)
		fmt.Fprint(errOut, usageErr.cmd.UsageString())
		return exitUsage
	case errors.Is(err, netconfig.ErrInvalidNetwork):
		// Switch has already told the user.
		return exitFailure
	default:
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return exitFailure
	}
}
