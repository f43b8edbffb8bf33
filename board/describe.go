package board

import (
	"context"
	"errors"

	"chain-todo-tui/todo"
	"chain-todo-tui/wallet"
)

// Describe turns an action's error into the banner text.
func Describe(op Op, err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, wallet.ErrNoWallet):
		return "Please install a wallet! Set a keystore directory or a private key."
	case errors.Is(err, todo.ErrNoSigner):
		return "Please connect your wallet first"
	}

	var prefix string
	switch op {
	case OpConnect:
		prefix = "Failed to connect wallet: "
	case OpAdd:
		prefix = "Failed to add task: "
	case OpDelete:
		prefix = "Failed to delete task: "
	case OpFetch:
		prefix = "Failed to fetch tasks: "
	}

	switch {
	case errors.Is(err, wallet.ErrUserRejected):
		return prefix + "request rejected"
	case errors.Is(err, todo.ErrReverted):
		return prefix + "transaction reverted"
	case errors.Is(err, context.DeadlineExceeded):
		return prefix + "timed out"
	}
	return prefix + err.Error()
}
