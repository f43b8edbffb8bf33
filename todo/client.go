package todo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Backend is the slice of the JSON-RPC API the client uses.
// *ethclient.Client satisfies it.
type Backend interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Signer authorizes transactions for one account.
type Signer interface {
	Address() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// Params configures a Client.
type Params struct {
	Backend Backend
	Address common.Address // deployed contract
	ChainID *big.Int
	// Signer may be nil, in which case only ListMyTasks works and it queries
	// as Account.
	Signer  Signer
	Account common.Address

	Logger       *log.Logger
	PollInterval time.Duration // receipt polling, default 1s
}

// Client calls the task contract on behalf of a single account on a single
// chain. Build a new one when either changes.
type Client struct {
	backend Backend
	address common.Address
	chainID *big.Int
	signer  Signer
	account common.Address
	abi     abi.ABI
	logger  *log.Logger
	poll    time.Duration
}

// New builds a contract client.
func New(p Params) (*Client, error) {
	if p.Backend == nil {
		return nil, errors.New("todo: nil backend")
	}
	if p.ChainID == nil {
		return nil, errors.New("todo: chain id required")
	}
	parsed, err := ParsedABI()
	if err != nil {
		return nil, err
	}

	c := &Client{
		backend: p.Backend,
		address: p.Address,
		chainID: new(big.Int).Set(p.ChainID),
		signer:  p.Signer,
		account: p.Account,
		abi:     parsed,
		logger:  p.Logger,
		poll:    p.PollInterval,
	}
	if c.signer != nil {
		c.account = c.signer.Address()
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.poll <= 0 {
		c.poll = time.Second
	}
	return c, nil
}

// Account is the address the client reads and writes as.
func (c *Client) Account() common.Address { return c.account }

// Address is the contract address.
func (c *Client) Address() common.Address { return c.address }

// ChainID is the chain the client signs for.
func (c *Client) ChainID() *big.Int { return new(big.Int).Set(c.chainID) }

// AddTask stores a new task and waits for the transaction to be mined.
func (c *Client) AddTask(ctx context.Context, title, text string) (Receipt, error) {
	// The deployed contract takes the text before the title.
	return c.transact(ctx, methodAddTask, eventAddTask, text, title, false)
}

// DeleteTask removes task id and waits for the transaction to be mined.
func (c *Client) DeleteTask(ctx context.Context, id uint64) (Receipt, error) {
	return c.transact(ctx, methodDeleteTask, eventDeleteTask, new(big.Int).SetUint64(id))
}

// ListMyTasks returns the caller's tasks in contract order.
func (c *Client) ListMyTasks(ctx context.Context) ([]Task, error) {
	input, err := c.abi.Pack(methodGetMyTask)
	if err != nil {
		return nil, &QueryError{Method: methodGetMyTask, Err: err}
	}

	msg := ethereum.CallMsg{
		From: c.account,
		To:   &c.address,
		Data: input,
	}
	out, err := c.backend.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, &QueryError{Method: methodGetMyTask, Err: err}
	}
	if len(out) == 0 {
		// No code at the address answers with empty data.
		return nil, &QueryError{Method: methodGetMyTask, Err: fmt.Errorf("no contract at %s", c.address.Hex())}
	}

	values, err := c.abi.Unpack(methodGetMyTask, out)
	if err != nil {
		return nil, &QueryError{Method: methodGetMyTask, Err: fmt.Errorf("decoding result: %w", err)}
	}
	if len(values) != 1 {
		return nil, &QueryError{Method: methodGetMyTask, Err: fmt.Errorf("decoding result: got %d values", len(values))}
	}
	raw := *abi.ConvertType(values[0], new([]contractTask)).(*[]contractTask)

	tasks, err := fromContract(raw)
	if err != nil {
		return nil, &QueryError{Method: methodGetMyTask, Err: err}
	}
	c.logger.Debug("fetched tasks", "account", c.account.Hex(), "count", len(tasks))
	return tasks, nil
}

func (c *Client) transact(ctx context.Context, method, eventName string, args ...interface{}) (Receipt, error) {
	fail := func(hash common.Hash, err error) (Receipt, error) {
		c.logger.Error("transaction failed", "method", method, "err", err)
		return Receipt{}, &TransactionError{Method: method, TxHash: hash, Err: err}
	}

	if c.signer == nil {
		return fail(common.Hash{}, ErrNoSigner)
	}

	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return fail(common.Hash{}, err)
	}

	from := c.signer.Address()
	nonce, err := c.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return fail(common.Hash{}, fmt.Errorf("nonce: %w", err))
	}
	gasPrice, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return fail(common.Hash{}, fmt.Errorf("gas price: %w", err))
	}
	gas, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:     from,
		To:       &c.address,
		GasPrice: gasPrice,
		Data:     input,
	})
	if err != nil {
		// Estimation executes the call, so a revert surfaces here first.
		return fail(common.Hash{}, fmt.Errorf("estimate gas: %w", err))
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &c.address,
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     input,
	})
	signed, err := c.signer.SignTx(tx, c.chainID)
	if err != nil {
		return fail(common.Hash{}, err)
	}
	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return fail(common.Hash{}, err)
	}
	c.logger.Info("transaction sent", "method", method, "tx", signed.Hash().Hex(), "nonce", nonce)

	receipt, err := c.waitMined(ctx, signed.Hash())
	if err != nil {
		return fail(signed.Hash(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fail(signed.Hash(), ErrReverted)
	}

	r := Receipt{
		TxHash:  receipt.TxHash,
		GasUsed: receipt.GasUsed,
	}
	if receipt.BlockNumber != nil {
		r.BlockNumber = receipt.BlockNumber.Uint64()
	}
	if id, ok := c.taskIDFromLogs(eventName, receipt.Logs); ok {
		r.TaskID, r.HasTaskID = id, true
	}
	c.logger.Info("transaction mined", "method", method, "tx", r.TxHash.Hex(), "block", r.BlockNumber)
	return r, nil
}

// waitMined polls for the receipt until it shows up or ctx ends. Lookup
// errors other than "not found" are logged and retried.
func (c *Client) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			c.logger.Debug("receipt lookup failed", "tx", hash.Hex(), "err", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) taskIDFromLogs(eventName string, logs []*types.Log) (uint64, bool) {
	ev, ok := c.abi.Events[eventName]
	if !ok {
		return 0, false
	}
	for _, l := range logs {
		if l == nil || l.Address != c.address || len(l.Topics) == 0 || l.Topics[0] != ev.ID {
			continue
		}
		fields := ev.Inputs.NonIndexed()
		values, err := fields.Unpack(l.Data)
		if err != nil {
			continue
		}
		for i, in := range fields {
			if in.Name != "taskId" {
				continue
			}
			if id, ok := values[i].(*big.Int); ok && id.IsUint64() {
				return id.Uint64(), true
			}
		}
	}
	return 0, false
}
