package main

import (
	"context"
	"math/big"
	"time"

	"chain-todo-tui/board"
	"chain-todo-tui/config"
	"chain-todo-tui/rpc"
	"chain-todo-tui/styles"
	"chain-todo-tui/todo"
	"chain-todo-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
)

// -------------------- MODEL --------------------

// model represents the application state following The Elm Architecture
type model struct {
	w, h int

	activePage config.Page

	cfg        config.Config
	configPath string

	// epoch is bumped whenever the session or the network is discarded;
	// async results from an older epoch are ignored.
	epoch int

	// node
	rpcURL        string
	ethClient     *rpc.Client
	rpcConnected  bool // true if RPC is successfully connected
	rpcConnecting bool // true if connection attempt is in progress
	stopWatch     context.CancelFunc
	chainChanges  <-chan *big.Int
	chainPoll     time.Duration

	// wallet
	connector    *wallet.Connector
	walletEvents chan wallet.Event
	walletSub    event.Subscription
	session      wallet.Session
	balance      *big.Int
	connectForm  *huh.Form

	// tasks
	board        board.State
	client       *todo.Client
	selectedTask int
	adding       bool
	addForm      *huh.Form
	spin         spinner.Model

	// clipboard feedback
	copiedMsg     string
	copiedMsgTime time.Time

	// settings state
	settingsMode   string // "list", "add", "edit"
	selectedRPCIdx int
	form           *huh.Form

	// home form
	homeForm *huh.Form

	// clickable areas for mouse support
	clickableAreas []config.ClickableArea

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *logBuffer
	logShown    int
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model

	// delete confirmation dialogs
	showDeleteDialog           bool
	deleteDialogID             uint64
	deleteDialogTitle          string
	deleteDialogYesSelected    bool // true = Yes button, false = No button
	showRPCDeleteDialog        bool
	deleteRPCDialogName        string
	deleteRPCDialogIdx         int
	deleteRPCDialogYesSelected bool

	// funding QR panel
	showFundingPanel bool

	// Double-click detection
	lastClickTime time.Time
	lastClickX    int
	lastClickY    int

	// Account list popup (p, or double-click of the account in the header)
	showAccountListPopup   bool
	accountListSelectedIdx int
	headerAddrX            int // X position of active address in header
	headerAddrY            int // Y position of active address in header
	headerAddrWidth        int // Width of active address display in header
}

// -------------------- INIT --------------------

// newLogger creates the charm logger behind the log panel
func newLogger(w *logBuffer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           log.DebugLevel,
	})
	logger.SetStyles(&log.Styles{
		Timestamp: lipgloss.NewStyle().Foreground(cMuted),
		Caller:    lipgloss.NewStyle().Faint(true),
		Prefix:    lipgloss.NewStyle().Bold(true).Foreground(cAccent2),
		Message:   lipgloss.NewStyle().Foreground(cText),
		Key:       lipgloss.NewStyle().Foreground(cAccent),
		Value:     lipgloss.NewStyle().Foreground(cText),
		Separator: lipgloss.NewStyle().Faint(true),
		Levels: map[log.Level]lipgloss.Style{
			log.DebugLevel: lipgloss.NewStyle().Foreground(cMuted).SetString("DEBUG"),
			log.InfoLevel:  lipgloss.NewStyle().Foreground(cAccent2).SetString("INFO"),
			log.WarnLevel:  lipgloss.NewStyle().Foreground(cWarn).SetString("WARN"),
			log.ErrorLevel: lipgloss.NewStyle().Foreground(cDanger).SetString("ERROR"),
		},
	})
	return logger
}

// newModel creates the initial model. provider may be nil when no wallet
// is configured.
func newModel(cfg config.Config, configPath string, provider wallet.Provider) model {
	// spinner
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	// Initialize log viewport
	vp := viewport.New(0, 20) // Will be resized in Update on first WindowSizeMsg
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	// Initialize log spinner
	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	buf := &logBuffer{}
	logger := newLogger(buf)

	return model{
		activePage:   config.PageTasks,
		cfg:          cfg,
		configPath:   configPath,
		rpcURL:       cfg.ActiveRPC(),
		chainPoll:    chainPollInterval,
		connector:    wallet.NewConnector(provider, logger),
		walletEvents: make(chan wallet.Event, 8),
		spin:         sp,
		settingsMode: "list",
		logEnabled:   cfg.Logger,
		logger:       logger,
		logBuffer:    buf,
		logViewport:  vp,
		logSpinner:   logSpin,
	}
}

// Init implements tea.Model interface and returns initial commands
func (m *model) Init() tea.Cmd {
	m.walletSub = m.connector.Watch(m.walletEvents)

	cmds := []tea.Cmd{m.spin.Tick, waitWalletEvent(m.walletEvents)}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}
	// eth_accounts: pick up an already authorized account without a prompt
	cmds = append(cmds, m.autoConnect())
	// connect if rpc is set
	if m.rpcURL != "" {
		m.rpcConnecting = true
		cmds = append(cmds, connectRPC(m.rpcURL, m.epoch))
	}
	return tea.Batch(cmds...)
}

// shutdown releases the node connection, the chain watcher and the wallet.
func (m *model) shutdown() {
	if m.walletSub != nil {
		m.walletSub.Unsubscribe()
	}
	if m.stopWatch != nil {
		m.stopWatch()
	}
	if m.session.Connected() {
		m.connector.Disconnect(m.session)
	}
	if m.ethClient != nil {
		m.ethClient.Close()
	}
}

// selected returns the highlighted visible task, if any.
func (m *model) selected() *todo.Task {
	visible := m.board.Visible()
	if m.selectedTask < 0 || m.selectedTask >= len(visible) {
		return nil
	}
	t := visible[m.selectedTask]
	return &t
}

// accountIndex returns the position of addr in the wallet's account list.
func accountIndex(accounts []common.Address, addr common.Address) int {
	for i, a := range accounts {
		if a == addr {
			return i
		}
	}
	return 0
}
