package details

import (
	"fmt"
	"strings"

	"chain-todo-tui/styles"
	"chain-todo-tui/todo"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
)

// Render renders the detail pane for the highlighted task. The account
// is linked to its explorer page with an OSC 8 hyperlink.
func Render(task *todo.Task, account common.Address, explorer string, width int) string {
	h := styles.TitleStyle.Render("Task Details")

	if task == nil {
		return h + "\n\n" + styles.MutedStyle.Render("Select a task to see its details.")
	}

	label := func(s string) string {
		return styles.MutedStyle.Render(fmt.Sprintf("%-8s", s))
	}
	body := lipgloss.NewStyle().Foreground(styles.CText).Width(max(10, width))

	owner := styles.MutedStyle.Underline(true).Render(account.Hex())
	if explorer != "" {
		url := strings.TrimRight(explorer, "/") + "/address/" + account.Hex()
		owner = fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, owner)
	}

	lines := []string{
		h,
		"",
		label("ID") + lipgloss.NewStyle().Foreground(styles.CAccent).Render(fmt.Sprintf("#%d", task.ID)),
		label("Owner") + owner,
		"",
		label("Title"),
		body.Bold(true).Render(task.Title),
		"",
		label("Text"),
		body.Render(task.Text),
	}
	return strings.Join(lines, "\n")
}

// Explorer returns the block explorer base URL for the well-known chains,
// or "" when none is known.
func Explorer(chainID uint64) string {
	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 17000:
		return "https://holesky.etherscan.io"
	default:
		return ""
	}
}
