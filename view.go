package main

import (
	"fmt"
	"math/big"
	"strings"

	"chain-todo-tui/board"
	"chain-todo-tui/config"
	"chain-todo-tui/helpers"
	"chain-todo-tui/rpc"
	"chain-todo-tui/styles"
	"chain-todo-tui/views/accounts"
	"chain-todo-tui/views/connect"
	"chain-todo-tui/views/details"
	"chain-todo-tui/views/home"
	logview "chain-todo-tui/views/log"
	"chain-todo-tui/views/settings"
	"chain-todo-tui/views/tasks"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- VIEW --------------------

func (m *model) renderConfirmDialog(question string, yesSelected bool) string {
	msg := helpers.FadeString(question, "#F25D94", "#EDFF82")
	q := lipgloss.NewStyle().Width(50).Align(lipgloss.Center).Render(msg)

	// Apply active style to the selected button
	var okButton, cancelButton string
	if yesSelected {
		okButton = styles.ActiveButtonStyle.Render("Yes")
		cancelButton = styles.ButtonStyle.Render("No")
	} else {
		okButton = styles.ButtonStyle.MarginRight(2).Render("Yes")
		cancelButton = styles.ActiveButtonStyle.MarginRight(0).Render("No")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top, okButton, cancelButton)
	ui := lipgloss.JoinVertical(lipgloss.Center, q, buttons)

	// Center the dialog on screen
	return lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		styles.DialogBoxStyle.Render(ui),
	)
}

func (m *model) renderAccountListPopup() string {
	dialog := styles.DialogBoxStyle.
		Padding(1, 2).
		Background(cPanel).
		Render(accounts.Render(m.connector.CurrentAccounts(), m.accountListSelectedIdx, m.session.Account))

	return lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

func (m *model) renderFundingContent() string {
	content := styles.TitleStyle.Render("Fund This Account") + "\n\n"

	if !m.session.Connected() {
		return content + styles.MutedStyle.Render("Connect a wallet first.") +
			"\n\n" + styles.MutedStyle.Render("Press ESC or Enter to close")
	}

	uri := rpc.FundingURI(m.session.Account, m.chainIDOrNil())

	content += rpc.GenerateQRCode(uri) + "\n"
	content += lipgloss.NewStyle().Foreground(cAccent).Render("EIP-681 payment URI:") + "\n\n"
	content += uri + "\n\n"
	content += styles.MutedStyle.Render("Balance: ") + lipgloss.NewStyle().Foreground(cText).Render(helpers.FormatETH(m.balance))
	content += "\n\n" + styles.MutedStyle.Render("Send test ETH here to pay for task transactions")
	content += "\n" + styles.MutedStyle.Render("y copy address • ESC or Enter to close")

	if m.copiedMsg != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(cAccent).Bold(true).Render(m.copiedMsg)
	}
	return content
}

func (m *model) renderFundingPanel() string {
	contentWidth := helpers.Max(0, m.w-8)
	centered := lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Center).Render(m.renderFundingContent())
	content := panelStyle.Width(helpers.Max(0, m.w-4)).Render(centered)
	return appStyle.Render(lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		content,
	))
}

func (m *model) chainIDOrNil() *big.Int {
	if m.ethClient == nil {
		return nil
	}
	return m.ethClient.ChainID
}

func (m *model) globalHeader() string {
	availableWidth := helpers.Max(0, m.w-8) // Account for panel padding

	const addrLabel = "Account: "
	var addrDisplay string
	if m.session.Connected() {
		short := helpers.ShortenAddr(m.session.Account.Hex())
		addrDisplay = lipgloss.NewStyle().
			Foreground(cAccent2).
			Bold(true).
			Render(addrLabel + helpers.FadeString(short, "#F25D94", "#EDFF82"))
		if m.balance != nil {
			addrDisplay += styles.MutedStyle.Render("  " + helpers.FormatETH(m.balance))
		}

		// X: panel left border + padding; Y: panel top border + padding
		m.headerAddrX = 3 + len(addrLabel)
		m.headerAddrY = 2
		m.headerAddrWidth = lipgloss.Width(short)
	} else {
		addrDisplay = lipgloss.NewStyle().
			Foreground(cMuted).
			Render(addrLabel + "Not connected")
		m.headerAddrX = 0
		m.headerAddrY = 0
		m.headerAddrWidth = 0
	}

	// RPC Status with green dot
	var statusIcon string
	var statusColor lipgloss.Color
	var statusText string

	switch {
	case m.rpcURL == "":
		statusIcon = "○"
		statusColor = cDanger
		statusText = "No RPC"
	case m.rpcConnecting:
		statusIcon = "○"
		statusColor = cWarn
		statusText = "Connecting..."
	case !m.rpcConnected:
		statusIcon = "○"
		statusColor = cDanger
		statusText = "Connection Failed"
	default:
		statusIcon = "●"
		statusColor = cAccent
		for _, r := range m.cfg.RPCURLs {
			if r.Active && r.URL == m.rpcURL {
				statusText = r.Name
				break
			}
		}
		if statusText == "" {
			statusText = "Connected"
		}
		if id := m.chainIDOrNil(); id != nil {
			statusText += fmt.Sprintf(" · chain %s", id)
		}
	}

	rpcDisplay := lipgloss.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Render(statusIcon + " " + statusText)

	titleText := lipgloss.NewStyle().
		Bold(true).
		Render(helpers.FadeString("chain todo", "#7EE787", "#82CFFD"))

	// Calculate spacing to center the title
	totalOtherWidth := lipgloss.Width(addrDisplay) + lipgloss.Width(rpcDisplay) + lipgloss.Width(titleText)

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		// Not enough space, keep it on one line without the title
		headerLine = addrDisplay + "  " + rpcDisplay
	} else {
		// Three-column layout: Account | Title (centered) | RPC
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding

		headerLine = addrDisplay + strings.Repeat(" ", helpers.Max(1, leftPadding)) +
			titleText + strings.Repeat(" ", helpers.Max(1, rightPadding)) + rpcDisplay
	}

	separator := lipgloss.NewStyle().
		Foreground(cBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + separator
}

// loadingLabel tells what the pending call is waiting on.
func (m *model) loadingLabel() string {
	switch m.board.Phase {
	case board.Connecting:
		return "waiting for wallet approval…"
	case board.Mutating:
		return "waiting for the transaction to be mined…"
	default:
		return "fetching tasks…"
	}
}

func (m *model) renderTasksPage() (string, string) {
	if !m.board.Connected() {
		content := connect.Render(
			m.connector.Available(),
			m.connector.CurrentAccounts(),
			m.board.Phase == board.Connecting,
			m.spin.View(),
			m.connectForm,
		)
		if m.board.Err != "" {
			content += "\n\n" + tasks.RenderError(m.board.Err, helpers.Max(0, m.w-8))
		}
		return panelStyle.Width(helpers.Max(0, m.w-2)).Render(content), connect.Nav(m.w-2, m.connectForm != nil)
	}

	listWidth := helpers.Max(0, (m.w*5)/10-2)
	detailsWidth := helpers.Max(0, (m.w*5)/10-2)

	var left, nav string
	switch {
	case m.adding && m.addForm != nil:
		left = styles.TitleStyle.Render("Add Task") + "\n\n" + m.addForm.View()
		nav = tasks.FormNav(m.w - 2)
	case m.connectForm != nil:
		left = connect.Render(true, nil, false, "", m.connectForm)
		nav = connect.Nav(m.w-2, true)
	default:
		var areas []config.ClickableArea
		left, areas = tasks.Render(
			m.board.Visible(),
			m.selectedTask,
			m.board.Loading,
			m.loadingLabel(),
			m.spin.View(),
			helpers.LoadedAt(m.board.SyncedAt, false),
		)
		m.clickableAreas = append(m.clickableAreas, areas...)
		nav = tasks.Nav(m.w-2, m.board.Loading)
	}
	if m.board.Err != "" {
		left += "\n\n" + tasks.RenderError(m.board.Err, listWidth-4)
	}

	var chainID uint64
	if id := m.chainIDOrNil(); id != nil && id.IsUint64() {
		chainID = id.Uint64()
	}
	right := details.Render(m.selected(), m.session.Account, details.Explorer(chainID), detailsWidth-4)
	if m.copiedMsg != "" {
		right += "\n\n" + lipgloss.NewStyle().Foreground(cAccent).Render(m.copiedMsg)
	}

	// Match the detail pane height to the list panel
	leftPanel := panelStyle.Width(listWidth).Render(left)
	rightPanel := panelStyle.
		Width(detailsWidth + 1).
		Height(helpers.Max(0, lipgloss.Height(leftPanel)-2)).
		Render(right)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel), nav
}

func (m *model) View() string {
	// Clear clickable areas for fresh render
	m.clickableAreas = nil

	if m.showFundingPanel {
		return m.renderFundingPanel()
	}
	if m.showDeleteDialog {
		return m.renderConfirmDialog(fmt.Sprintf("Delete task #%d %q?", m.deleteDialogID, helpers.Truncate(m.deleteDialogTitle, 30)), m.deleteDialogYesSelected)
	}
	if m.showRPCDeleteDialog {
		return m.renderConfirmDialog("Are you sure you want to delete the RPC endpoint "+m.deleteRPCDialogName+"?", m.deleteRPCDialogYesSelected)
	}
	if m.showAccountListPopup {
		return m.renderAccountListPopup()
	}

	headerPanel := panelStyle.Width(helpers.Max(0, m.w-2)).Render(m.globalHeader())

	var pageContent string
	var nav string

	switch m.activePage {
	case config.PageHome:
		pageContent = panelStyle.Width(helpers.Max(0, m.w-2)).Render(home.Render(m.homeForm))
		nav = home.Nav(m.w - 2)

	case config.PageSettings:
		settingsContent := settings.Render(m.cfg.RPCURLs, m.selectedRPCIdx, m.cfg.Contract.Address)
		editing := (m.settingsMode == "add" || m.settingsMode == "edit") && m.form != nil
		if editing {
			settingsContent = styles.TitleStyle.Render("RPC Settings") + "\n\n" + m.form.View()
		}
		pageContent = panelStyle.Width(helpers.Max(0, m.w-2)).Render(settingsContent)
		nav = settings.Nav(m.w-2, editing)

	default:
		pageContent, nav = m.renderTasksPage()
	}

	sections := []string{headerPanel, pageContent, nav}

	// Render log panel only if enabled
	if m.logEnabled {
		m.logViewport.Height = logview.PanelHeight(m.h)
		sections = append(sections, logview.Render(m.w, m.logReady, m.logSpinner.View(), m.logViewport))
	}

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
