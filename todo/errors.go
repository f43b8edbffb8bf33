package todo

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrNoSigner means a mutating call was attempted without a connected account.
	ErrNoSigner = errors.New("no signer: connect a wallet first")

	// ErrReverted means the transaction was mined with a failed status.
	ErrReverted = errors.New("transaction reverted")
)

// TransactionError reports a failed addTask or deleteTask, either before
// submission (estimate, signing, broadcast) or after it (revert, abandoned wait).
type TransactionError struct {
	Method string
	TxHash common.Hash // zero if the transaction never reached the node
	Err    error
}

func (e *TransactionError) Error() string {
	if e.TxHash == (common.Hash{}) {
		return fmt.Sprintf("%s: %v", e.Method, e.Err)
	}
	return fmt.Sprintf("%s: tx %s: %v", e.Method, e.TxHash.Hex(), e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }

// QueryError reports a failed read call.
type QueryError struct {
	Method string
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Method, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }
