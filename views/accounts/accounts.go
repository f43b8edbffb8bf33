package accounts

import (
	"fmt"
	"strings"

	"chain-todo-tui/helpers"
	"chain-todo-tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
)

// Nav returns the navigation bar for the account popup
func Nav(width int) string {
	return styles.NavStyle.Width(width).Render(styles.Keys(
		"↑/↓", "move",
		"Enter", "switch",
		"Esc", "cancel",
	))
}

// RenderList renders the wallet's accounts, marking the active one.
func RenderList(accounts []common.Address, selectedIdx int, active common.Address) string {
	if len(accounts) == 0 {
		return lipgloss.NewStyle().Foreground(styles.CMuted).Render("The wallet exposes no accounts.")
	}

	var listItems []string
	for i, acc := range accounts {
		var itemStyle lipgloss.Style
		var marker string
		var fullAddr, shortAddr string

		if i == selectedIdx {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render("▶ ")
			itemStyle = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true)
			fullAddr = lipgloss.NewStyle().Foreground(styles.CText).Render(acc.Hex())
			shortAddr = helpers.ShortenAddr(acc.Hex())
		} else {
			marker = "  "
			itemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e1a2aa"))
			fullAddr = helpers.FadeString(acc.Hex(), "#7D5AFC", "#FF87D7")
			shortAddr = helpers.FadeString(helpers.ShortenAddr(acc.Hex()), "#F25D94", "#EDFF82")
		}

		if acc == active {
			shortAddr = "✓ " + shortAddr
		}
		listItems = append(listItems, marker+itemStyle.Render(shortAddr)+"\n  "+fullAddr)
	}

	return strings.Join(listItems, "\n\n")
}

// Render renders the account switch popup content.
func Render(accounts []common.Address, selectedIdx int, active common.Address) string {
	title := lipgloss.NewStyle().
		Foreground(styles.CAccent2).
		Bold(true).
		Align(lipgloss.Center).
		Width(70).
		Render("Select Account")

	help := lipgloss.NewStyle().
		Foreground(styles.CMuted).
		Align(lipgloss.Center).
		Width(70).
		MarginTop(1).
		Render(fmt.Sprintf("%d accounts • ↑/↓: Navigate • Enter: Select • Esc: Cancel", len(accounts)))

	return lipgloss.JoinVertical(lipgloss.Left, title, "", RenderList(accounts, selectedIdx, active), help)
}
