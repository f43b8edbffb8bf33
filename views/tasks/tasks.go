package tasks

import (
	"fmt"
	"strings"

	"chain-todo-tui/config"
	"chain-todo-tui/helpers"
	"chain-todo-tui/styles"
	"chain-todo-tui/todo"

	"github.com/charmbracelet/lipgloss"
)

// listTop and listLeft place the first task row on screen: below the header
// panel (6 rows), the page panel border and padding (2), then title,
// subtitle and a blank line (3); right of the panel border and padding.
const (
	listTop  = 11
	listLeft = 3
)

// Nav returns the navigation bar for the task page. Mutating keys are left
// out while a call is in flight.
func Nav(width int, loading bool) string {
	var left string
	if loading {
		left = styles.Keys(
			"↑/↓", "move",
			"l", "debug log",
			"q", "quit",
		)
	} else {
		left = styles.Keys(
			"↑/↓", "move",
			"a", "add",
			"d", "delete",
			"r", "refresh",
			"p", "switch account",
			"f", "fund",
			"y", "copy address",
			"x", "disconnect",
			"s", "settings",
			"h", "home",
			"l", "debug log",
			"q", "quit",
		)
	}
	return styles.NavStyle.Width(width).Render(left)
}

// FormNav is shown while the add-task form has focus.
func FormNav(width int) string {
	return styles.NavStyle.Width(width).Render(styles.Keys(
		"Tab", "next field",
		"Enter", "submit",
		"Esc", "cancel",
	))
}

// RenderList renders the task list and the clickable rows of each task.
func RenderList(list []todo.Task, selectedIdx int, loading bool) (string, []config.ClickableArea) {
	var items []string
	var areas []config.ClickableArea
	y := listTop

	if len(list) == 0 {
		if loading {
			return "", nil
		}
		return styles.MutedStyle.Render("No tasks found. Press 'a' to add one."), nil
	}

	for i, t := range list {
		marker := "  "
		titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#e1a2aa"))
		textStyle := styles.MutedStyle
		if i == selectedIdx {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render("▶ ")
			titleStyle = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true)
			textStyle = lipgloss.NewStyle().Foreground(styles.CText)
		}

		id := styles.MutedStyle.Render(fmt.Sprintf("#%d ", t.ID))
		title := id + titleStyle.Render(helpers.Truncate(t.Title, 48))
		items = append(items, marker+title+"\n  "+textStyle.Render(helpers.Truncate(t.Text, 60)))

		areas = append(areas, config.ClickableArea{
			X:      listLeft,
			Y:      y,
			Width:  lipgloss.Width(title) + 2,
			Height: 2,
			TaskID: t.ID,
		})
		y += 3
	}

	return strings.Join(items, "\n\n"), areas
}

// Render renders the task list panel.
func Render(list []todo.Task, selectedIdx int, loading bool, loadingLabel, spinnerView, syncedAt string) (string, []config.ClickableArea) {
	header := styles.TitleStyle.Render("Task Manager")
	subtitle := styles.MutedStyle.Render("Tasks stored on-chain for the connected account")

	listView, areas := RenderList(list, selectedIdx, loading)

	var status string
	if loading {
		status = spinnerView + " " + loadingLabel
	} else {
		status = styles.MutedStyle.Render(fmt.Sprintf("%d tasks • synced %s", len(list), syncedAt))
	}

	content := header + "\n" + subtitle + "\n\n"
	if listView != "" {
		content += listView + "\n\n"
	}
	return content + status, areas
}

// RenderError renders the inline error banner, or nothing for an empty message.
func RenderError(msg string, width int) string {
	if msg == "" {
		return ""
	}
	return styles.ErrorBannerStyle.Width(helpers.Max(0, width-2)).Render("⚠ " + msg)
}
