package connect

import (
	"strings"

	"chain-todo-tui/helpers"
	"chain-todo-tui/styles"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
)

// Form values. huh writes into these while the connect prompt is open.
var (
	TempAccount    string
	TempPassphrase string
	TempApprove    bool
)

// CreateForm builds the account access prompt: which account, its
// passphrase when the wallet is a keystore, and an explicit approve step.
func CreateForm(accounts []common.Address, needsPassphrase bool) *huh.Form {
	TempAccount = ""
	TempPassphrase = ""
	TempApprove = true

	opts := make([]huh.Option[string], 0, len(accounts))
	for _, a := range accounts {
		opts = append(opts, huh.NewOption(a.Hex(), a.Hex()))
	}
	if len(accounts) > 0 {
		TempAccount = accounts[0].Hex()
	}

	fields := []huh.Field{
		huh.NewSelect[string]().
			Title("Account").
			Description("The account tasks are read and written as").
			Options(opts...).
			Value(&TempAccount),
	}
	if needsPassphrase {
		fields = append(fields, huh.NewInput().
			Title("Passphrase").
			EchoMode(huh.EchoModePassword).
			Value(&TempPassphrase))
	}
	fields = append(fields, huh.NewConfirm().
		Title("Allow this app to use the account?").
		Affirmative("Connect").
		Negative("Reject").
		Value(&TempApprove))

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeCatppuccin())
	form.Init()
	return form
}

// Nav returns the navigation bar for the connect screen.
func Nav(width int, prompting bool) string {
	var left string
	if prompting {
		left = styles.Keys(
			"Tab", "next field",
			"Enter", "confirm",
			"Esc", "reject",
		)
	} else {
		left = styles.Keys(
			"c", "connect wallet",
			"s", "settings",
			"l", "debug log",
			"q", "quit",
		)
	}
	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the disconnected screen.
func Render(available bool, accounts []common.Address, connecting bool, spinnerView string, form *huh.Form) string {
	h := styles.TitleStyle.Render("Connect Wallet")

	if form != nil {
		return h + "\n\n" + form.View()
	}

	lines := []string{h, ""}
	if !available {
		lines = append(lines,
			lipgloss.NewStyle().Foreground(styles.CWarn).Render("No wallet found."),
			"",
			styles.MutedStyle.Render("Point ")+styles.Key("--keystore")+styles.MutedStyle.Render(" at a keystore directory, or export ")+
				styles.Key("TODO_PRIVATE_KEY")+styles.MutedStyle.Render("."),
		)
		return strings.Join(lines, "\n")
	}

	if len(accounts) > 0 {
		lines = append(lines, styles.MutedStyle.Render("Accounts available:"))
		for _, a := range accounts {
			lines = append(lines, "  "+helpers.FadeString(a.Hex(), "#7D5AFC", "#FF87D7"))
		}
		lines = append(lines, "")
	}

	if connecting {
		lines = append(lines, spinnerView+" waiting for approval…")
		return strings.Join(lines, "\n")
	}

	lines = append(lines, styles.ActiveButtonStyle.Render("Connect Wallet"))
	lines = append(lines, "", styles.MutedStyle.Render("Press ")+styles.Key("c")+styles.MutedStyle.Render(" to connect."))
	return strings.Join(lines, "\n")
}
