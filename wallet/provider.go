package wallet

import (
	"fmt"
	"math/big"
	"os"
	"strings"

	"chain-todo-tui/config"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
)

// Signer authorizes transactions on behalf of a single account.
type Signer interface {
	Address() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// Provider is the capability the connector needs from a wallet backend.
type Provider interface {
	// Accounts lists the addresses the provider can sign for, without prompting.
	Accounts() []common.Address
	// Unlock grants signing access for account.
	Unlock(account common.Address, passphrase string) (Signer, error)
	// Lock revokes access granted by Unlock.
	Lock(account common.Address)
	// Subscribe delivers AccountsChanged events until the subscription ends.
	Subscribe(ch chan<- Event) event.Subscription
}

// EventKind tells what changed on the provider or the network.
type EventKind int

const (
	AccountsChanged EventKind = iota
	ChainChanged
)

func (k EventKind) String() string {
	switch k {
	case AccountsChanged:
		return "accountsChanged"
	case ChainChanged:
		return "chainChanged"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a provider or network notification.
type Event struct {
	Kind     EventKind
	Accounts []common.Address
	ChainID  *big.Int
}

// Open picks the wallet provider described by cfg. A private key in the
// configured environment variable wins over the keystore, which only counts
// when it holds at least one key. It returns a nil Provider and no error when
// neither is present.
func Open(cfg config.WalletConfig) (Provider, error) {
	if cfg.PrivateKeyEnv != "" {
		if hexKey := strings.TrimSpace(os.Getenv(cfg.PrivateKeyEnv)); hexKey != "" {
			p, err := NewKeyProvider(hexKey)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", cfg.PrivateKeyEnv, err)
			}
			return p, nil
		}
	}

	if cfg.KeystoreDir != "" {
		if fi, err := os.Stat(cfg.KeystoreDir); err == nil && fi.IsDir() {
			if p := NewKeystoreProvider(cfg.KeystoreDir); len(p.Accounts()) > 0 {
				return p, nil
			}
		}
	}

	return nil, nil
}
