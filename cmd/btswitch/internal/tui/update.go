// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aplane-algo/btswitch/internal/netconfig"
)

// currentMsg carries the network read from disk.
type currentMsg struct {
	network netconfig.Network
	err     error
	report  bool // set the status line to the value (check action)
}

// switchedMsg reports the outcome of a switch.
type switchedMsg struct {
	network netconfig.Network
	err     error
}

func loadCurrentCmd(sw Switcher, report bool) tea.Cmd {
	return func() tea.Msg {
		n, err := sw.Current()
		return currentMsg{network: n, err: err, report: report}
	}
}

func switchCmd(sw Switcher, network netconfig.Network) tea.Cmd {
	return func() tea.Msg {
		return switchedMsg{network: network, err: sw.Switch(string(network))}
	}
}

// Update handles all TUI events and messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case currentMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			return m, nil
		}
		m.current = msg.network
		m.lastErr = ""
		if msg.report {
			m.status = fmt.Sprintf("Current network: %s", msg.network)
		}
		return m, nil

	case switchedMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			m.status = ""
			return m, nil
		}
		m.lastErr = ""
		m.status = fmt.Sprintf("✅ Successfully set network to %s. %s", msg.network, netconfig.RestartNote)
		return m, loadCurrentCmd(m.sw, false)
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
		return m, nil
	case "enter", " ":
		return m.selectAction(menuItems[m.cursor].action)
	}

	for i, item := range menuItems {
		if msg.String() == item.key {
			m.cursor = i
			return m.selectAction(item.action)
		}
	}
	return m, nil
}

func (m Model) selectAction(action Action) (tea.Model, tea.Cmd) {
	switch action {
	case ActionMainnet:
		return m, switchCmd(m.sw, netconfig.Mainnet)
	case ActionTestnet:
		return m, switchCmd(m.sw, netconfig.Testnet)
	case ActionCheck:
		return m, loadCurrentCmd(m.sw, true)
	default:
		m.quitting = true
		return m, tea.Quit
	}
}
