package main

import (
	"math/big"

	"chain-todo-tui/board"
	"chain-todo-tui/rpc"
	"chain-todo-tui/todo"
	"chain-todo-tui/wallet"

	"github.com/ethereum/go-ethereum/common"
)

// -------------------- TEA MESSAGES --------------------
// Results of async commands. Messages that belong to a session carry the
// epoch they were issued in; anything from an older epoch is dropped.

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}

// rpcConnectedMsg contains result of RPC connection attempt
type rpcConnectedMsg struct {
	client *rpc.Client
	err    error
	epoch  int
}

// walletConnectedMsg is the outcome of an account access request
type walletConnectedMsg struct {
	session wallet.Session
	err     error
	epoch   int
}

// tasksLoadedMsg carries a fresh getMyTask snapshot
type tasksLoadedMsg struct {
	tasks []todo.Task
	err   error
	epoch int
}

// taskMutatedMsg reports a mined (or failed) addTask/deleteTask
type taskMutatedMsg struct {
	op      board.Op
	receipt todo.Receipt
	err     error
	epoch   int
}

// walletEventMsg forwards a provider notification
type walletEventMsg struct {
	ev wallet.Event
}

// chainChangedMsg means the node now reports a different chain id
type chainChangedMsg struct {
	chainID *big.Int
	epoch   int
}

// balanceLoadedMsg contains the session account's ETH balance
type balanceLoadedMsg struct {
	account common.Address
	wei     *big.Int
	err     error
}

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct{}

// clearCopiedMsg hides the clipboard feedback again
type clearCopiedMsg struct{}
