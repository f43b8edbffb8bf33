package log

import (
	"fmt"

	"chain-todo-tui/helpers"
	"chain-todo-tui/styles"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// PanelHeight is the number of log lines shown for a terminal of height h:
// at most a third of the screen and never more than 15 lines.
func PanelHeight(h int) int {
	// header (3 lines), nav (1 line), title + borders (4 lines), margins (2 lines)
	const reserved = 10
	available := helpers.Max(5, h-reserved)
	return helpers.Min(available, helpers.Min(h/3, 15))
}

// Render renders the log panel. vp.Height is expected to already be
// PanelHeight(height).
func Render(width int, ready bool, spinnerView string, vp viewport.Model) string {
	title := lipgloss.NewStyle().
		Foreground(styles.CAccent2).
		Bold(true).
		Render("Log")

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		Width(helpers.Max(0, width-2)).
		Height(vp.Height + 2)

	if !ready {
		return border.Render(title + "\n\n" + "initializing...\n" + spinnerView)
	}

	if vp.TotalLineCount() > vp.Height {
		follow := "scrolled"
		if vp.AtBottom() {
			follow = "following"
		}
		title += styles.MutedStyle.Render(fmt.Sprintf(" [%d%% · %s]", int(vp.ScrollPercent()*100), follow))
	}

	return border.Render(title + "\n\n" + vp.View())
}
