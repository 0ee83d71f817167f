// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"
	log "github.com/sirupsen/logrus"

	"github.com/aplane-algo/btswitch/internal/netconfig"
	"github.com/aplane-algo/btswitch/internal/util"
)

const menuPrompt = "Enter your choice (1-4): "

// menuSwitcher is what the interactive menu drives.
type menuSwitcher interface {
	Switch(network string) error
	Check() (netconfig.Network, error)
}

func printMenu(out io.Writer) {
	fmt.Fprintln(out, "🌐 Bittensor Network Switcher")
	fmt.Fprintln(out, "1. Switch to Mainnet")
	fmt.Fprintln(out, "2. Switch to Testnet")
	fmt.Fprintln(out, "3. Check Current Network")
	fmt.Fprintln(out, "4. Exit")
}

// runInteractive shows the menu and loops until the user exits.
// readline is used on a terminal; piped input falls back to a plain scanner.
func runInteractive(sw menuSwitcher, in io.Reader, out io.Writer) error {
	printMenu(out)
	if util.IsTerminal(in) && util.IsTerminal(out) {
		return startREPL(sw, in, out)
	}
	return startBasicREPL(sw, in, out)
}

func startREPL(sw menuSwitcher, in io.Reader, out io.Writer) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          util.Colorize(out, util.ColorGreen, menuPrompt),
		Stdout:          out,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(out, "Failed to create readline instance, falling back to basic input: %v\n", err)
		return startBasicREPL(sw, in, out)
	}
	defer func() {
		_ = rl.Close() // Best-effort close, errors during shutdown not critical
	}()

	return menuLoop(sw, rl.Readline, out)
}

type scannedLine struct {
	text string
	err  error
}

// startBasicREPL reads lines with bufio.Scanner. SIGINT is turned into
// readline.ErrInterrupt so both front-ends cancel the same way.
func startBasicREPL(sw menuSwitcher, in io.Reader, out io.Writer) error {
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	done := make(chan struct{})
	defer close(done)

	lines := make(chan scannedLine)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scannedLine{text: scanner.Text()}:
			case <-done:
				return
			}
		}
		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		select {
		case lines <- scannedLine{err: err}:
		case <-done:
		}
	}()

	readLine := func() (string, error) {
		fmt.Fprint(out, menuPrompt)
		select {
		case l := <-lines:
			return l.text, l.err
		case <-interrupts:
			fmt.Fprintln(out)
			return "", readline.ErrInterrupt
		}
	}
	return menuLoop(sw, readLine, out)
}

// menuLoop dispatches choices until exit, interrupt, or end of input.
// Only a failed switch or check ends the loop with an error.
func menuLoop(sw menuSwitcher, readLine func() (string, error), out io.Writer) error {
	for {
		line, err := readLine()
		if err != nil {
			switch {
			case errors.Is(err, readline.ErrInterrupt):
				fmt.Fprintln(out, "Operation cancelled.")
				return nil
			case errors.Is(err, io.EOF):
				fmt.Fprintln(out)
				return nil
			default:
				return fmt.Errorf("failed to read input: %w", err)
			}
		}

		quit, err := handleChoice(sw, line, out)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// handleChoice runs one menu choice and reports whether the loop should stop.
func handleChoice(sw menuSwitcher, choice string, out io.Writer) (bool, error) {
	choice = strings.TrimSpace(choice)
	log.WithField("choice", choice).Debug("Menu choice")

	switch choice {
	case "1":
		return false, sw.Switch(string(netconfig.Mainnet))
	case "2":
		return false, sw.Switch(string(netconfig.Testnet))
	case "3":
		_, err := sw.Check()
		return false, err
	case "4":
		return true, nil
	default:
		fmt.Fprintln(out, "Invalid choice. Please try again.")
		return false, nil
	}
}
