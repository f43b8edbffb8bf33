package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chain-todo-tui/board"
	"chain-todo-tui/config"
	"chain-todo-tui/helpers"
	"chain-todo-tui/rpc"
	"chain-todo-tui/views/connect"
	"chain-todo-tui/views/home"
	logview "chain-todo-tui/views/log"
	"chain-todo-tui/views/tasks"
	"chain-todo-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- TEMP FORM STORAGE --------------------
// Temporary form field storage (package-level to avoid pointer-to-copy issues)
var (
	tempRPCFormName string
	tempRPCFormURL  string
)

func validRPCURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("url is required")
	}
	for _, scheme := range []string{"http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(s, scheme) {
			return nil
		}
	}
	if strings.HasSuffix(s, ".ipc") {
		return nil
	}
	return errors.New("expected an http(s), ws(s) or .ipc endpoint")
}

func (m *model) createAddRPCForm() {
	tempRPCFormName = ""
	tempRPCFormURL = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("RPC Name").
				Description("A friendly name for this RPC endpoint").
				Value(&tempRPCFormName).
				Placeholder("Sepolia"),

			huh.NewInput().
				Title("RPC URL").
				Description("The complete RPC URL (https://...)").
				Value(&tempRPCFormURL).
				Validate(validRPCURL).
				Placeholder("https://ethereum-sepolia-rpc.publicnode.com"),
		),
	).WithTheme(huh.ThemeCatppuccin())

	// Initialize the form
	m.form.Init()
}

func (m *model) createEditRPCForm(idx int) {
	if idx < 0 || idx >= len(m.cfg.RPCURLs) {
		return
	}

	r := m.cfg.RPCURLs[idx]
	tempRPCFormName = r.Name
	tempRPCFormURL = r.URL

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("RPC Name").
				Value(&tempRPCFormName).
				Placeholder("My Node"),

			huh.NewInput().
				Title("RPC URL").
				Value(&tempRPCFormURL).
				Validate(validRPCURL).
				Placeholder("https://..."),
		),
	).WithTheme(huh.ThemeCatppuccin())

	// Initialize the form
	m.form.Init()
}

// saveConfig persists the current settings
func (m *model) saveConfig() {
	m.cfg.Logger = m.logEnabled
	if err := config.Save(m.configPath, m.cfg); err != nil {
		m.addLog("error", "saving config failed", "err", err)
	}
}

// activateRPC makes idx the active endpoint. Switching endpoints is a
// network change.
func (m *model) activateRPC(idx int) tea.Cmd {
	if idx < 0 || idx >= len(m.cfg.RPCURLs) {
		return nil
	}
	target := m.cfg.RPCURLs[idx]
	m.cfg.RPCURLs = m.cfg.WithActiveURL(target.URL)
	m.saveConfig()
	if target.URL == m.rpcURL && (m.rpcConnected || m.rpcConnecting) {
		return nil
	}
	m.addLog("info", fmt.Sprintf("Switching RPC endpoint to `%s`", target.Name))
	return m.resetNetwork("rpc endpoint changed")
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.updateLogViewport()
	return m, cmd
}

func (m *model) update(msg tea.Msg) tea.Cmd {
	// Async results are handled whatever has focus.
	if cmd, handled := m.handleResult(msg); handled {
		return cmd
	}

	// Forms get every other message, including huh's own.
	if m.connectForm != nil {
		return m.updateConnectForm(msg)
	}
	if m.adding && m.addForm != nil {
		return m.updateAddForm(msg)
	}
	if m.activePage == config.PageSettings && (m.settingsMode == "add" || m.settingsMode == "edit") && m.form != nil {
		return m.updateRPCForm(msg)
	}
	if m.activePage == config.PageHome && m.homeForm != nil {
		return m.updateHomeForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return nil
}

func (m *model) updateHomeForm(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.homeForm = nil
		m.activePage = config.PageTasks
		return nil
	}

	form, cmd := m.homeForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.homeForm = f
		switch m.homeForm.State {
		case huh.StateCompleted:
			m.homeForm = nil
			m.activePage = config.PageTasks
			if home.TempSelection == "settings" {
				m.activePage = config.PageSettings
				m.settingsMode = "list"
			}
			return nil
		case huh.StateAborted:
			m.homeForm = nil
			m.activePage = config.PageTasks
			return nil
		}
	}
	return cmd
}

// handleResult processes messages produced by commands. It reports false
// for messages that belong to whatever has focus.
func (m *model) handleResult(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {

	case logInitMsg:
		if !m.logEnabled {
			return nil, true
		}
		m.logReady = true
		m.logShown = -1
		m.addLog("info", "Logger enabled")
		return nil, true

	case rpcConnectedMsg:
		if msg.epoch != m.epoch {
			if msg.client != nil {
				msg.client.Close()
			}
			return nil, true
		}
		m.rpcConnecting = false
		if msg.err != nil {
			// Connection failed
			m.ethClient = nil
			m.rpcConnected = false
			m.addLog("error", fmt.Sprintf("RPC connection failed: `%s`", msg.err.Error()))
			return nil, true
		}

		m.ethClient = msg.client
		m.rpcConnected = true
		m.addLog("success", fmt.Sprintf("RPC connected to `%s`", msg.client.URL), "chain", msg.client.ChainID)

		ctx, cancel := context.WithCancel(context.Background())
		m.stopWatch = cancel
		m.chainChanges = rpc.WatchChain(ctx, msg.client.Client, m.chainPoll, msg.client.ChainID)

		return tea.Batch(
			waitChainChange(m.chainChanges, m.epoch),
			m.rebuildClient(),
			m.refreshBalance(),
			m.autoConnect(),
		), true

	case chainChangedMsg:
		if msg.epoch != m.epoch {
			return nil, true
		}
		m.addLog("warning", "Network changed, reloading", "chain", msg.chainID)
		return m.resetNetwork("chain changed"), true

	case walletConnectedMsg:
		if msg.epoch != m.epoch {
			if msg.session.Account != m.session.Account {
				m.connector.Disconnect(msg.session)
			}
			return nil, true
		}
		if msg.err != nil {
			m.board.Fail(board.OpConnect, msg.err)
			m.addLog("error", "Wallet connection failed", "err", msg.err)
			return nil, true
		}

		prev := m.session
		if prev.Connected() && prev.Account != msg.session.Account {
			m.connector.Disconnect(prev)
		}
		m.session = msg.session
		m.balance = nil
		if m.board.Connected() && m.board.Account != msg.session.Account {
			m.board.SwitchAccount(msg.session.Account)
			m.selectedTask = 0
			m.addLog("success", fmt.Sprintf("Switched to account %s", helpers.ShortenAddr(msg.session.Account.Hex())))
		} else {
			m.board.Connect(msg.session.Account)
			m.addLog("success", fmt.Sprintf("Connected account %s", helpers.ShortenAddr(msg.session.Account.Hex())))
		}
		return tea.Batch(m.rebuildClient(), m.refreshBalance()), true

	case tasksLoadedMsg:
		if msg.epoch != m.epoch {
			return nil, true
		}
		if msg.err != nil {
			m.board.Fail(board.OpFetch, msg.err)
			m.addLog("error", "Fetching tasks failed", "err", msg.err)
			return nil, true
		}
		m.board.Loaded(msg.tasks)
		if n := len(m.board.Visible()); m.selectedTask >= n {
			m.selectedTask = helpers.Max(0, n-1)
		}
		m.addLog("info", fmt.Sprintf("Loaded %d tasks", len(msg.tasks)))
		return nil, true

	case taskMutatedMsg:
		if msg.epoch != m.epoch {
			return nil, true
		}
		if msg.err != nil {
			m.board.Fail(msg.op, msg.err)
			m.addLog("error", fmt.Sprintf("%s failed", msg.op), "err", msg.err)
			return nil, true
		}
		m.addLog("success", fmt.Sprintf("Task %s mined", msg.op), "tx", helpers.ShortenAddr(msg.receipt.TxHash.Hex()), "block", msg.receipt.BlockNumber)
		if m.client == nil {
			m.board.Loaded(m.board.Tasks)
			return nil, true
		}
		// Still loading: the refetch is part of the same action.
		return tea.Batch(fetchTasks(m.client, m.epoch), m.refreshBalance()), true

	case walletEventMsg:
		next := waitWalletEvent(m.walletEvents)
		if msg.ev.Kind != wallet.AccountsChanged {
			return next, true
		}
		m.addLog("debug", "accountsChanged", "accounts", len(msg.ev.Accounts))
		if m.session.Connected() && !wallet.Has(msg.ev.Accounts, m.session.Account) {
			m.addLog("warning", "Active account left the wallet")
			m.endSession("account removed")
		}
		if m.accountListSelectedIdx >= len(msg.ev.Accounts) {
			m.accountListSelectedIdx = helpers.Max(0, len(msg.ev.Accounts)-1)
		}
		return next, true

	case balanceLoadedMsg:
		if msg.account != m.session.Account {
			return nil, true
		}
		if msg.err != nil {
			m.addLog("debug", "balance lookup failed", "err", msg.err)
			return nil, true
		}
		m.balance = msg.wei
		return nil, true

	case clipboardCopiedMsg:
		m.copiedMsg = "✓ Copied address to clipboard"
		m.copiedMsgTime = time.Now()
		return clearClipboardMsg(), true

	case clearCopiedMsg:
		if time.Since(m.copiedMsgTime) >= 2*time.Second {
			m.copiedMsg = ""
		}
		return nil, true

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height

		// Width accounts for border and padding
		m.logViewport.Width = helpers.Max(0, msg.Width-6)
		m.logViewport.Height = logview.PanelHeight(msg.Height)
		m.logShown = -1
		// forms need the size too
		return nil, false

	case spinner.TickMsg:
		var cmd tea.Cmd
		var cmds []tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		// Update log spinner too if log is enabled but not ready
		if m.logEnabled && !m.logReady {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return tea.Batch(cmds...), true

	default:
		return nil, false
	}
}

func (m *model) updateConnectForm(msg tea.Msg) tea.Cmd {
	// Intercept ESC key: closing the prompt rejects the request
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.connectForm = nil
		return connectWallet(m.connector, wallet.Approval{Declined: true}, m.epoch)
	}
	form, cmd := m.connectForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.connectForm = f

		if m.connectForm.State == huh.StateCompleted {
			m.connectForm = nil
			approval := wallet.Approval{
				Account:    common.HexToAddress(connect.TempAccount),
				Passphrase: connect.TempPassphrase,
				Declined:   !connect.TempApprove,
			}
			connect.TempPassphrase = ""
			return connectWallet(m.connector, approval, m.epoch)
		}
		if m.connectForm.State == huh.StateAborted {
			m.connectForm = nil
			return connectWallet(m.connector, wallet.Approval{Declined: true}, m.epoch)
		}
	}
	return cmd
}

func (m *model) updateAddForm(msg tea.Msg) tea.Cmd {
	// Intercept ESC key to cancel form
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.adding = false
		m.addForm = nil
		return nil
	}
	form, cmd := m.addForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.addForm = f

		if m.addForm.State == huh.StateCompleted {
			m.adding = false
			m.addForm = nil
			if m.client == nil {
				m.board.Fail(board.OpAdd, errNoRPC)
				return nil
			}
			if !m.board.BeginMutation() {
				return nil
			}
			title := strings.TrimSpace(tasks.TempTitle)
			text := strings.TrimSpace(tasks.TempText)
			m.addLog("info", fmt.Sprintf("Adding task `%s`", title))
			return addTask(m.client, title, text, m.epoch)
		}
		if m.addForm.State == huh.StateAborted {
			m.adding = false
			m.addForm = nil
			return nil
		}
	}
	return cmd
}

func (m *model) updateRPCForm(msg tea.Msg) tea.Cmd {
	// Intercept ESC key to cancel form
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.settingsMode = "list"
		m.form = nil
		return nil
	}
	form, cmd := m.form.Update(msg)
	f, ok := form.(*huh.Form)
	if !ok {
		return cmd
	}
	m.form = f

	if m.form.State == huh.StateAborted {
		m.settingsMode = "list"
		m.form = nil
		return nil
	}
	if m.form.State != huh.StateCompleted {
		return cmd
	}

	mode := m.settingsMode
	m.settingsMode = "list"
	m.form = nil
	name := strings.TrimSpace(tempRPCFormName)
	url := strings.TrimSpace(tempRPCFormURL)
	if name == "" {
		name = url
	}

	switch mode {
	case "add":
		m.cfg.RPCURLs = append(m.cfg.RPCURLs, config.RPCUrl{Name: name, URL: url, Active: len(m.cfg.RPCURLs) == 0})
		m.saveConfig()
		m.addLog("success", fmt.Sprintf("Added RPC endpoint: `%s` (%s)", name, url))
		if len(m.cfg.RPCURLs) == 1 {
			return m.resetNetwork("first rpc endpoint")
		}
	case "edit":
		if m.selectedRPCIdx < 0 || m.selectedRPCIdx >= len(m.cfg.RPCURLs) {
			return nil
		}
		r := &m.cfg.RPCURLs[m.selectedRPCIdx]
		changed := r.Active && r.URL != url
		r.Name = name
		r.URL = url
		m.saveConfig()
		m.addLog("success", fmt.Sprintf("Updated RPC endpoint: `%s`", name))
		if changed {
			return m.resetNetwork("active rpc endpoint edited")
		}
	}
	return nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Funding panel first (before any other keys)
	if m.showFundingPanel {
		switch msg.String() {
		case "y":
			return copyToClipboard(m.session.Account.Hex())
		case "esc", "enter", "f":
			m.showFundingPanel = false
		case "ctrl+c", "q":
			return tea.Quit
		}
		return nil
	}

	// Task delete confirmation
	if m.showDeleteDialog {
		switch msg.String() {
		case "left", "right", "tab":
			m.deleteDialogYesSelected = !m.deleteDialogYesSelected
		case "y", "Y":
			m.deleteDialogYesSelected = true
			return m.confirmDelete()
		case "enter":
			return m.confirmDelete()
		case "n", "N", "esc":
			m.showDeleteDialog = false
		}
		return nil
	}

	// RPC delete confirmation
	if m.showRPCDeleteDialog {
		switch msg.String() {
		case "left", "right", "tab":
			m.deleteRPCDialogYesSelected = !m.deleteRPCDialogYesSelected
		case "enter":
			m.showRPCDeleteDialog = false
			if !m.deleteRPCDialogYesSelected {
				return nil
			}
			return m.deleteRPC(m.deleteRPCDialogIdx)
		case "esc":
			m.showRPCDeleteDialog = false
		}
		return nil
	}

	// Handle account list popup
	if m.showAccountListPopup {
		accounts := m.connector.CurrentAccounts()
		switch msg.String() {
		case "up", "k":
			if m.accountListSelectedIdx > 0 {
				m.accountListSelectedIdx--
			}
		case "down", "j":
			if m.accountListSelectedIdx < len(accounts)-1 {
				m.accountListSelectedIdx++
			}
		case "enter":
			m.showAccountListPopup = false
			if m.accountListSelectedIdx < 0 || m.accountListSelectedIdx >= len(accounts) {
				return nil
			}
			return m.switchAccount(accounts[m.accountListSelectedIdx])
		case "esc":
			m.showAccountListPopup = false
		}
		return nil
	}

	// global keys
	if !m.textInputActive() {
		switch msg.String() {
		case "ctrl+c", "q":
			return tea.Quit

		case "l", "L":
			// Toggle logger
			m.logEnabled = !m.logEnabled
			m.saveConfig()
			if m.logEnabled {
				if m.w > 0 {
					m.logViewport.Width = m.w - 6
				}
				m.logReady = false
				return tea.Batch(initLogViewport(), m.logSpinner.Tick)
			}
			// Clear logs when disabling
			m.logBuffer.Reset()
			m.logShown = 0
			m.logReady = false
			return nil

		case "pageup", "pagedown":
			// Allow scrolling in log viewport when enabled
			if m.logEnabled && m.logReady {
				var cmd tea.Cmd
				m.logViewport, cmd = m.logViewport.Update(msg)
				return cmd
			}
		}
	}

	// page-specific behavior
	switch m.activePage {
	case config.PageSettings:
		return m.handleSettingsKey(msg)
	case config.PageHome:
		if m.homeForm == nil {
			m.homeForm = home.CreateForm()
		}
		return nil
	}

	if !m.board.Connected() {
		switch msg.String() {
		case "c", "C", "enter":
			m.startConnect(common.Address{})
		case "s", "S":
			m.activePage = config.PageSettings
			m.settingsMode = "list"
		case "h", "H":
			m.activePage = config.PageHome
			m.homeForm = home.CreateForm()
		case "esc":
			m.board.ClearError()
		}
		return nil
	}

	visible := m.board.Visible()
	switch msg.String() {
	case "up", "k":
		if m.selectedTask > 0 {
			m.selectedTask--
		}
	case "down", "j":
		if m.selectedTask < len(visible)-1 {
			m.selectedTask++
		}
	case "esc":
		m.board.ClearError()

	case "a", "A":
		if m.board.Loading {
			return nil
		}
		if m.client == nil {
			m.board.Fail(board.OpAdd, errNoRPC)
			return nil
		}
		m.adding = true
		m.addForm = tasks.CreateForm()

	case "d", "D", "delete", "backspace":
		if m.board.Loading {
			return nil
		}
		if t := m.selected(); t != nil {
			m.showDeleteDialog = true
			m.deleteDialogID = t.ID
			m.deleteDialogTitle = t.Title
			m.deleteDialogYesSelected = false
		}

	case "r", "R":
		if m.client == nil {
			m.board.Fail(board.OpFetch, errNoRPC)
			return nil
		}
		if m.board.BeginRefresh() {
			return tea.Batch(fetchTasks(m.client, m.epoch), m.refreshBalance())
		}

	case "p", "P":
		if m.board.Loading {
			return nil
		}
		m.openAccountPopup()

	case "x", "X":
		if m.board.Loading {
			return nil
		}
		m.endSession("disconnected by user")

	case "f", "F":
		m.showFundingPanel = true

	case "y":
		return copyToClipboard(m.session.Account.Hex())

	case "s", "S":
		m.activePage = config.PageSettings
		m.settingsMode = "list"

	case "h", "H":
		m.activePage = config.PageHome
		m.homeForm = home.CreateForm()
	}
	return nil
}

func (m *model) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	n := len(m.cfg.RPCURLs)
	switch msg.String() {
	case "up", "k":
		if m.selectedRPCIdx > 0 {
			m.selectedRPCIdx--
		}
	case "down", "j":
		if m.selectedRPCIdx < n-1 {
			m.selectedRPCIdx++
		}
	case "enter":
		return m.activateRPC(m.selectedRPCIdx)
	case "a", "A":
		m.settingsMode = "add"
		m.createAddRPCForm()
	case "e", "E":
		if m.selectedRPCIdx < n {
			m.settingsMode = "edit"
			m.createEditRPCForm(m.selectedRPCIdx)
		}
	case "d", "D", "delete", "backspace":
		if m.selectedRPCIdx < n {
			m.showRPCDeleteDialog = true
			m.deleteRPCDialogIdx = m.selectedRPCIdx
			m.deleteRPCDialogName = m.cfg.RPCURLs[m.selectedRPCIdx].Name
			m.deleteRPCDialogYesSelected = false
		}
	case "h", "H":
		m.activePage = config.PageHome
		m.homeForm = home.CreateForm()
	case "esc":
		m.activePage = config.PageTasks
	}
	return nil
}

func (m *model) deleteRPC(idx int) tea.Cmd {
	if idx < 0 || idx >= len(m.cfg.RPCURLs) {
		return nil
	}
	removed := m.cfg.RPCURLs[idx]
	m.cfg.RPCURLs = append(m.cfg.RPCURLs[:idx:idx], m.cfg.RPCURLs[idx+1:]...)
	if removed.Active && len(m.cfg.RPCURLs) > 0 {
		m.cfg.RPCURLs[0].Active = true
	}
	if m.selectedRPCIdx >= len(m.cfg.RPCURLs) {
		m.selectedRPCIdx = helpers.Max(0, len(m.cfg.RPCURLs)-1)
	}
	m.saveConfig()
	m.addLog("success", fmt.Sprintf("Deleted RPC endpoint: `%s`", removed.Name))

	if m.cfg.ActiveRPC() != m.rpcURL {
		return m.resetNetwork("active rpc endpoint deleted")
	}
	return nil
}

func (m *model) confirmDelete() tea.Cmd {
	m.showDeleteDialog = false
	if !m.deleteDialogYesSelected {
		return nil
	}
	if m.client == nil {
		m.board.Fail(board.OpDelete, errNoRPC)
		return nil
	}
	if !m.board.BeginMutation() {
		return nil
	}
	m.addLog("info", fmt.Sprintf("Deleting task #%d", m.deleteDialogID))
	return deleteTask(m.client, m.deleteDialogID, m.epoch)
}

func (m *model) openAccountPopup() {
	m.showAccountListPopup = true
	m.accountListSelectedIdx = accountIndex(m.connector.CurrentAccounts(), m.session.Account)
	m.addLog("debug", "Opening account list popup")
}

// switchAccount reconnects as account. Keystore accounts are unlocked
// through the connect prompt.
func (m *model) switchAccount(account common.Address) tea.Cmd {
	if account == m.session.Account {
		return nil
	}
	if m.connector.NeedsPassphrase() {
		m.startConnect(account)
		return nil
	}
	if !m.board.BeginConnect() {
		return nil
	}
	return connectWallet(m.connector, wallet.Approval{Account: account}, m.epoch)
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			if m.logEnabled && m.logReady {
				var cmd tea.Cmd
				m.logViewport, cmd = m.logViewport.Update(msg)
				return cmd
			}
		}
		return nil
	}
	if m.showDeleteDialog || m.showRPCDeleteDialog || m.showFundingPanel {
		return nil
	}

	now := time.Now()
	double := now.Sub(m.lastClickTime) < 500*time.Millisecond && m.lastClickX == msg.X && m.lastClickY == msg.Y
	m.lastClickTime = now
	m.lastClickX = msg.X
	m.lastClickY = msg.Y

	// Double-click on the header account opens the account list
	if m.session.Connected() && m.headerAddrWidth > 0 &&
		msg.Y == m.headerAddrY && msg.X >= m.headerAddrX && msg.X < m.headerAddrX+m.headerAddrWidth {
		if double && !m.board.Loading {
			m.openAccountPopup()
		} else if !double {
			return copyToClipboard(m.session.Account.Hex())
		}
		return nil
	}

	if m.activePage != config.PageTasks {
		return nil
	}
	for _, area := range m.clickableAreas {
		if !area.Contains(msg.X, msg.Y) {
			continue
		}
		for i, t := range m.board.Visible() {
			if t.ID == area.TaskID {
				m.selectedTask = i
				m.addLog("debug", fmt.Sprintf("Selected task #%d", t.ID))
				break
			}
		}
		return nil
	}
	return nil
}
