// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package tui implements the full-screen network switcher menu.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aplane-algo/btswitch/internal/netconfig"
)

// Switcher is the subset of netconfig.Switcher the menu needs.
type Switcher interface {
	Switch(network string) error
	Current() (netconfig.Network, error)
}

// Action is one menu entry.
type Action int

const (
	ActionMainnet Action = iota
	ActionTestnet
	ActionCheck
	ActionExit
)

type menuItem struct {
	key    string
	label  string
	action Action
}

var menuItems = []menuItem{
	{key: "1", label: "Switch to Mainnet", action: ActionMainnet},
	{key: "2", label: "Switch to Testnet", action: ActionTestnet},
	{key: "3", label: "Check Current Network", action: ActionCheck},
	{key: "4", label: "Exit", action: ActionExit},
}

// Model is the bubbletea model for the menu.
type Model struct {
	sw Switcher

	cursor   int
	current  netconfig.Network
	status   string
	lastErr  string
	quitting bool
}

// New returns a menu model bound to sw.
func New(sw Switcher) Model {
	return Model{sw: sw, current: netconfig.NotSet}
}

// Init loads the current network for the status line.
func (m Model) Init() tea.Cmd {
	return loadCurrentCmd(m.sw, false)
}

// Current returns the network last loaded from disk.
func (m Model) Current() netconfig.Network {
	return m.current
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}
