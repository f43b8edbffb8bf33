package settings

import (
	"strings"

	"chain-todo-tui/config"
	"chain-todo-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for settings view
func Nav(width int, editing bool) string {
	var left string
	if editing {
		left = styles.Keys(
			"l", "debug log",
			"Esc", "cancel",
		)
	} else {
		left = styles.Keys(
			"↑/↓", "select",
			"Enter", "activate",
			"a", "add",
			"e", "edit",
			"d", "delete",
			"h", "home",
			"l", "debug log",
			"Esc", "back",
		)
	}

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the RPC settings view. Activating a different endpoint
// counts as a network switch and resets the session.
func Render(rpcURLs []config.RPCUrl, selectedIdx int, contract string) string {
	h := styles.TitleStyle.Render("RPC Settings")

	lines := []string{h, ""}
	lines = append(lines, styles.MutedStyle.Render("Task contract: ")+lipgloss.NewStyle().Foreground(styles.CText).Render(contract))
	lines = append(lines, "")

	if len(rpcURLs) == 0 {
		lines = append(lines, styles.MutedStyle.Render("No RPC URLs configured."))
		lines = append(lines, "")
		lines = append(lines, styles.MutedStyle.Render("Press ")+styles.Key("a")+styles.MutedStyle.Render(" to add your first RPC URL."))
		return strings.Join(lines, "\n")
	}

	lines = append(lines, styles.MutedStyle.Render("Configured RPC Endpoints:"))
	lines = append(lines, "")

	for i, rpc := range rpcURLs {
		var marker string
		if rpc.Active {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent).Render("● ")
		} else {
			marker = lipgloss.NewStyle().Foreground(styles.CMuted).Render("○ ")
		}

		nameStyle := lipgloss.NewStyle().Foreground(styles.CText)
		urlStyle := lipgloss.NewStyle().Foreground(styles.CMuted)

		if i == selectedIdx {
			nameStyle = nameStyle.Background(styles.CPanel).Foreground(styles.CAccent2).Bold(true)
			urlStyle = urlStyle.Background(styles.CPanel)
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Render("▶ ")
		}

		lines = append(lines, marker+nameStyle.Render(rpc.Name))
		lines = append(lines, "  "+urlStyle.Render(rpc.URL))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
