package rpc

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

// Integration tests in this package may leave keep-alive connections open.
var leakOpts = []goleak.Option{
	goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
	goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
}

// scriptedChain answers eth_chainId from a script, repeating the last entry.
type scriptedChain struct {
	mu     sync.Mutex
	script []interface{} // *big.Int or error
	calls  int
}

func (s *scriptedChain) ChainID(context.Context) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	if i >= len(s.script) {
		i = len(s.script) - 1
	}
	s.calls++
	switch v := s.script[i].(type) {
	case error:
		return nil, v
	default:
		return v.(*big.Int), nil
	}
}

func TestWatchChainReportsSwitch(t *testing.T) {
	chain := &scriptedChain{script: []interface{}{
		big.NewInt(1),
		errors.New("timeout"),
		big.NewInt(1),
		big.NewInt(11155111),
	}}

	defer goleak.VerifyNone(t, leakOpts...)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := WatchChain(ctx, chain, time.Millisecond, big.NewInt(1))

	select {
	case id := <-changes:
		if id.Int64() != 11155111 {
			t.Errorf("changed to %s, want 11155111", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no chain change reported")
	}

	// Same id again is not a change.
	select {
	case id, ok := <-changes:
		if ok {
			t.Errorf("duplicate change %s", id)
		}
	case <-time.After(20 * time.Millisecond):
	}
}

func TestWatchChainStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t, leakOpts...)
	chain := &scriptedChain{script: []interface{}{big.NewInt(5)}}
	ctx, cancel := context.WithCancel(context.Background())

	changes := WatchChain(ctx, chain, time.Millisecond, big.NewInt(5))
	cancel()

	select {
	case _, ok := <-changes:
		if ok {
			t.Error("expected channel to close without a change")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
