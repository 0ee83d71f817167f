// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aplane-algo/btswitch/internal/netconfig"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	mainnetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	testnetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	notSetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("255")).
			Bold(true)

	normalStyle = lipgloss.NewStyle()

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func styledNetwork(n netconfig.Network) string {
	switch n {
	case netconfig.Mainnet:
		return mainnetStyle.Render(string(n))
	case netconfig.Testnet:
		return testnetStyle.Render(string(n))
	default:
		return notSetStyle.Render(string(n))
	}
}

// View renders the menu.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("🌐 Bittensor Network Switcher"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Current network: "))
	b.WriteString(styledNetwork(m.current))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		line := item.key + ". " + item.label
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(normalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.lastErr != "" {
		b.WriteString(errorStyle.Render("Error: " + m.lastErr))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/↓ move • enter select • 1-4 choose • q quit"))
	b.WriteString("\n")
	return b.String()
}
