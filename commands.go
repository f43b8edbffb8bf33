package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"chain-todo-tui/board"
	"chain-todo-tui/config"
	"chain-todo-tui/helpers"
	"chain-todo-tui/rpc"
	"chain-todo-tui/todo"
	"chain-todo-tui/views/connect"
	"chain-todo-tui/wallet"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
)

const (
	fetchTimeout      = 20 * time.Second
	chainPollInterval = 4 * time.Second
)

var errNoRPC = errors.New("no RPC connection")

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

// connectRPC establishes an RPC connection to the Ethereum node
func connectRPC(url string, epoch int) tea.Cmd {
	return func() tea.Msg {
		result := rpc.Connect(url)
		return rpcConnectedMsg{client: result.Client, err: result.Error, epoch: epoch}
	}
}

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// connectWallet asks the connector for a session
func connectWallet(c *wallet.Connector, a wallet.Approval, epoch int) tea.Cmd {
	return func() tea.Msg {
		s, err := c.Connect(a)
		return walletConnectedMsg{session: s, err: err, epoch: epoch}
	}
}

// fetchTasks reads the session account's tasks
func fetchTasks(c *todo.Client, epoch int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		tasks, err := c.ListMyTasks(ctx)
		return tasksLoadedMsg{tasks: tasks, err: err, epoch: epoch}
	}
}

// addTask submits addTask and waits for it to be mined. A submitted
// transaction is never abandoned, so there is no deadline.
func addTask(c *todo.Client, title, text string, epoch int) tea.Cmd {
	return func() tea.Msg {
		r, err := c.AddTask(context.Background(), title, text)
		return taskMutatedMsg{op: board.OpAdd, receipt: r, err: err, epoch: epoch}
	}
}

// deleteTask submits deleteTask and waits for it to be mined
func deleteTask(c *todo.Client, id uint64, epoch int) tea.Cmd {
	return func() tea.Msg {
		r, err := c.DeleteTask(context.Background(), id)
		return taskMutatedMsg{op: board.OpDelete, receipt: r, err: err, epoch: epoch}
	}
}

// waitWalletEvent blocks for the next provider event. It is re-armed after
// every delivery.
func waitWalletEvent(ch <-chan wallet.Event) tea.Cmd {
	return func() tea.Msg {
		ev := <-ch
		return walletEventMsg{ev: ev}
	}
}

// waitChainChange blocks for the next chain id change. A closed channel
// means the watcher was stopped.
func waitChainChange(ch <-chan *big.Int, epoch int) tea.Cmd {
	return func() tea.Msg {
		id, ok := <-ch
		if !ok {
			return nil
		}
		return chainChangedMsg{chainID: id, epoch: epoch}
	}
}

// loadBalance fetches the gas balance of addr
func loadBalance(client *rpc.Client, addr common.Address) tea.Cmd {
	return func() tea.Msg {
		wei, err := rpc.LoadBalance(client, addr)
		return balanceLoadedMsg{account: addr, wei: wei, err: err}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(text)
		if err == nil {
			return clipboardCopiedMsg{}
		}
		return nil
	}
}

// clearClipboardMsg waits 2 seconds then clears the clipboard feedback
func clearClipboardMsg() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// -------------------- MODEL HELPER METHODS --------------------
// These methods help with state management and command generation

// addLog adds a log entry with the given level
func (m *model) addLog(logType, message string, keyvals ...interface{}) {
	if m.logger == nil {
		return
	}

	switch logType {
	case "info":
		m.logger.Info(message, keyvals...)
	case "success":
		m.logger.Info("✓ "+message, keyvals...)
	case "error":
		m.logger.Error(message, keyvals...)
	case "warning":
		m.logger.Warn(message, keyvals...)
	case "debug":
		m.logger.Debug(message, keyvals...)
	default:
		m.logger.Print(message, keyvals...)
	}

	m.updateLogViewport()
}

// updateLogViewport refreshes the viewport content with log output. The
// contract client and the connector log from command goroutines, so this
// also runs after every Update.
func (m *model) updateLogViewport() {
	if !m.logReady || m.logBuffer == nil {
		return
	}
	n := m.logBuffer.Len()
	if n == m.logShown {
		return
	}
	m.logShown = n
	m.logViewport.SetContent(m.logBuffer.String())
	m.logViewport.GotoBottom()
}

// rebuildClient builds the contract client for the current session and
// chain and starts a fetch. A client is bound to one account on one chain.
func (m *model) rebuildClient() tea.Cmd {
	m.client = nil
	if !m.session.Connected() || m.ethClient == nil {
		return nil
	}

	c, err := todo.New(todo.Params{
		Backend:      m.ethClient.Client,
		Address:      common.HexToAddress(m.cfg.Contract.Address),
		ChainID:      m.ethClient.ChainID,
		Signer:       m.session.Signer,
		Logger:       m.logger,
		PollInterval: m.cfg.ReceiptPollInterval(),
	})
	if err != nil {
		m.board.Fail(board.OpFetch, err)
		return nil
	}
	m.client = c
	m.addLog("debug", "contract client ready", "contract", helpers.ShortenAddr(m.cfg.Contract.Address), "chain", m.ethClient.ChainID)

	if !m.board.BeginRefresh() {
		return nil
	}
	return fetchTasks(c, m.epoch)
}

// refreshBalance reloads the header balance for the session account
func (m *model) refreshBalance() tea.Cmd {
	if !m.session.Connected() || m.ethClient == nil {
		return nil
	}
	return loadBalance(m.ethClient, m.session.Account)
}

// autoConnect restores a session without prompting when the wallet can
// grant one silently, as a raw key can. Keystore accounts always prompt.
func (m *model) autoConnect() tea.Cmd {
	if !m.connector.Available() || m.connector.NeedsPassphrase() || m.session.Connected() {
		return nil
	}
	accounts := m.connector.CurrentAccounts()
	if len(accounts) == 0 || !m.board.BeginConnect() {
		return nil
	}
	m.addLog("info", "restoring session", "account", helpers.ShortenAddr(accounts[0].Hex()))
	return connectWallet(m.connector, wallet.Approval{Account: accounts[0]}, m.epoch)
}

// startConnect opens the account access prompt, preselecting account when set.
func (m *model) startConnect(account common.Address) {
	if !m.connector.Available() {
		m.board.Fail(board.OpConnect, wallet.ErrNoWallet)
		return
	}
	if !m.board.BeginConnect() {
		return
	}
	accounts := m.connector.CurrentAccounts()
	if account != (common.Address{}) {
		ordered := []common.Address{account}
		for _, a := range accounts {
			if a != account {
				ordered = append(ordered, a)
			}
		}
		accounts = ordered
	}
	m.connectForm = connect.CreateForm(accounts, m.connector.NeedsPassphrase())
}

// endSession drops the session and everything read through it.
func (m *model) endSession(reason string) {
	m.epoch++
	if m.session.Connected() {
		m.connector.Disconnect(m.session)
		m.addLog("info", "session ended", "account", helpers.ShortenAddr(m.session.Account.Hex()), "reason", reason)
	}
	m.session = wallet.Session{}
	m.client = nil
	m.balance = nil
	m.selectedTask = 0
	m.closeOverlays()
	m.board.Disconnect()
}

// resetNetwork discards all state and reconnects from scratch, the way a
// browser dapp reloads on chainChanged.
func (m *model) resetNetwork(reason string) tea.Cmd {
	m.endSession(reason)
	m.board.Reset()

	if m.stopWatch != nil {
		m.stopWatch()
		m.stopWatch = nil
	}
	if m.ethClient != nil {
		m.ethClient.Close()
		m.ethClient = nil
	}
	m.rpcConnected = false
	m.rpcConnecting = false
	m.rpcURL = m.cfg.ActiveRPC()

	cmds := []tea.Cmd{m.autoConnect()}
	if m.rpcURL != "" {
		m.rpcConnecting = true
		m.addLog("info", fmt.Sprintf("connecting to `%s`", m.rpcURL))
		cmds = append(cmds, connectRPC(m.rpcURL, m.epoch))
	}
	return tea.Batch(cmds...)
}

// closeOverlays hides every dialog, popup and form tied to a session.
func (m *model) closeOverlays() {
	m.showDeleteDialog = false
	m.showAccountListPopup = false
	m.showFundingPanel = false
	m.adding = false
	m.addForm = nil
	m.connectForm = nil
}

// textInputActive returns true if any text input is currently active
func (m *model) textInputActive() bool {
	if m.adding && m.addForm != nil {
		return true
	}
	if m.connectForm != nil {
		return true
	}
	if (m.settingsMode == "add" || m.settingsMode == "edit") && m.form != nil {
		return true
	}
	return m.activePage == config.PageHome && m.homeForm != nil
}
