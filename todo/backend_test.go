package todo

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// fakeChain is an in-memory node running the task contract. It decodes
// calldata with the real ABI so argument order mistakes show up in tests.
type fakeChain struct {
	mu sync.Mutex

	abi      abi.ABI
	contract common.Address
	chainID  *big.Int
	signer   types.Signer

	tasks    []fakeTask
	nonces   map[common.Address]uint64
	receipts map[common.Hash]*types.Receipt
	polls    map[common.Hash]int
	sent     []*types.Transaction
	block    int64

	// pendingPolls is how many receipt lookups report NotFound before a
	// transaction counts as mined.
	pendingPolls int
	callErr      error
	sendErr      error
}

type fakeTask struct {
	owner common.Address
	task  contractTask
}

func newFakeChain(t *testing.T) *fakeChain {
	t.Helper()
	parsed, err := ParsedABI()
	if err != nil {
		t.Fatalf("ParsedABI: %v", err)
	}
	chainID := big.NewInt(31337)
	return &fakeChain{
		abi:      parsed,
		contract: common.HexToAddress("0xC43A3A899BAd036a8d6D30B31A6046a1fA48a036"),
		chainID:  chainID,
		signer:   types.LatestSignerForChainID(chainID),
		nonces:   make(map[common.Address]uint64),
		receipts: make(map[common.Hash]*types.Receipt),
		polls:    make(map[common.Hash]int),
	}
}

func (f *fakeChain) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.callErr != nil {
		return nil, f.callErr
	}
	if call.To == nil || *call.To != f.contract {
		return nil, nil
	}
	method, err := f.abi.MethodById(call.Data)
	if err != nil {
		return nil, err
	}
	if method.Name != methodGetMyTask {
		return nil, fmt.Errorf("unexpected call %s", method.Name)
	}

	mine := []contractTask{}
	for _, ft := range f.tasks {
		if ft.owner == call.From && !ft.task.IsDeleted {
			mine = append(mine, ft.task)
		}
	}
	return method.Outputs.Pack(mine)
}

func (f *fakeChain) PendingNonceAt(_ context.Context, account common.Address) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nonces[account], nil
}

func (f *fakeChain) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeChain) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 90_000, nil
}

func (f *fakeChain) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sendErr != nil {
		return f.sendErr
	}
	from, err := types.Sender(f.signer, tx)
	if err != nil {
		return err
	}
	if tx.Nonce() != f.nonces[from] {
		return fmt.Errorf("nonce too low: have %d want %d", tx.Nonce(), f.nonces[from])
	}
	f.nonces[from]++
	f.sent = append(f.sent, tx)
	f.block++

	receipt := &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      tx.Hash(),
		BlockNumber: big.NewInt(f.block),
		GasUsed:     42_000,
	}
	f.receipts[tx.Hash()] = receipt

	method, err := f.abi.MethodById(tx.Data())
	if err != nil {
		receipt.Status = types.ReceiptStatusFailed
		return nil
	}
	args, err := method.Inputs.Unpack(tx.Data()[4:])
	if err != nil {
		receipt.Status = types.ReceiptStatusFailed
		return nil
	}

	switch method.Name {
	case methodAddTask:
		id := big.NewInt(int64(len(f.tasks)))
		f.tasks = append(f.tasks, fakeTask{owner: from, task: contractTask{
			Id:        id,
			TaskText:  args[0].(string),
			TaskTitle: args[1].(string),
			IsDeleted: args[2].(bool),
		}})
		receipt.Logs = append(receipt.Logs, f.eventLog(eventAddTask, from, id))
	case methodDeleteTask:
		id := args[0].(*big.Int)
		if !id.IsInt64() || id.Int64() >= int64(len(f.tasks)) || f.tasks[id.Int64()].owner != from {
			receipt.Status = types.ReceiptStatusFailed
			return nil
		}
		f.tasks[id.Int64()].task.IsDeleted = true
		receipt.Logs = append(receipt.Logs, f.eventLog(eventDeleteTask, id, true))
	default:
		receipt.Status = types.ReceiptStatusFailed
	}
	return nil
}

func (f *fakeChain) eventLog(name string, args ...interface{}) *types.Log {
	ev := f.abi.Events[name]
	data, err := ev.Inputs.Pack(args...)
	if err != nil {
		panic(err)
	}
	return &types.Log{Address: f.contract, Topics: []common.Hash{ev.ID}, Data: data}
}

func (f *fakeChain) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	receipt, ok := f.receipts[hash]
	if !ok {
		return nil, ethereum.NotFound
	}
	if f.polls[hash] < f.pendingPolls {
		f.polls[hash]++
		return nil, ethereum.NotFound
	}
	return receipt, nil
}

func (f *fakeChain) ownedTasks(owner common.Address) []fakeTask {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []fakeTask
	for _, ft := range f.tasks {
		if ft.owner == owner {
			out = append(out, ft)
		}
	}
	return out
}

// testSigner signs with a raw key.
type testSigner struct {
	key *ecdsa.PrivateKey
}

func newTestSigner(t *testing.T) *testSigner {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	return &testSigner{key: key}
}

func (s *testSigner) Address() common.Address { return crypto.PubkeyToAddress(s.key.PublicKey) }

func (s *testSigner) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key)
}

// rejectingSigner models a wallet whose user declines every signature.
type rejectingSigner struct{ testSigner }

var errDeclined = errors.New("user declined")

func (s *rejectingSigner) SignTx(*types.Transaction, *big.Int) (*types.Transaction, error) {
	return nil, errDeclined
}
