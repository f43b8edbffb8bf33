package rpc

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
)

// ChainIDReader is the part of the node API the chain watcher polls.
type ChainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// Client shadows the method with its ChainID field; watch the embedded
// ethclient instead.
var _ ChainIDReader = (*ethclient.Client)(nil)

// WatchChain polls the node's chain id every interval and sends the new id
// on the returned channel whenever it differs from last. Poll errors are
// skipped; a flaky node is not a network switch. The channel is closed when
// ctx ends.
func WatchChain(ctx context.Context, reader ChainIDReader, interval time.Duration, last *big.Int) <-chan *big.Int {
	out := make(chan *big.Int, 1)
	current := new(big.Int)
	if last != nil {
		current.Set(last)
	}

	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			pollCtx, cancel := context.WithTimeout(ctx, interval)
			id, err := reader.ChainID(pollCtx)
			cancel()
			if err != nil || id == nil || id.Cmp(current) == 0 {
				continue
			}
			current.Set(id)

			select {
			case out <- new(big.Int).Set(id):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
