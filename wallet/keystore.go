package wallet

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
)

// KeystoreProvider serves accounts from an encrypted go-ethereum keystore
// directory. Keys are decrypted on Unlock and dropped again on Lock.
type KeystoreProvider struct {
	ks *keystore.KeyStore
}

// NewKeystoreProvider opens the keystore in dir with the standard scrypt cost.
func NewKeystoreProvider(dir string) *KeystoreProvider {
	return &KeystoreProvider{ks: keystore.NewKeyStore(dir, keystore.StandardScryptN, keystore.StandardScryptP)}
}

func (p *KeystoreProvider) Accounts() []common.Address {
	accs := p.ks.Accounts()
	out := make([]common.Address, 0, len(accs))
	for _, a := range accs {
		out = append(out, a.Address)
	}
	return out
}

func (p *KeystoreProvider) Unlock(account common.Address, passphrase string) (Signer, error) {
	acc, err := p.ks.Find(accounts.Account{Address: account})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, account.Hex())
	}
	if err := p.ks.Unlock(acc, passphrase); err != nil {
		return nil, err
	}
	return &keystoreSigner{ks: p.ks, acc: acc}, nil
}

func (p *KeystoreProvider) Lock(account common.Address) {
	_ = p.ks.Lock(account)
}

// Subscribe forwards keystore wallet arrivals and drops as AccountsChanged.
func (p *KeystoreProvider) Subscribe(ch chan<- Event) event.Subscription {
	raw := make(chan accounts.WalletEvent, 8)
	sub := p.ks.Subscribe(raw)

	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer sub.Unsubscribe()

		for {
			select {
			case ev := <-raw:
				if ev.Kind == accounts.WalletOpened {
					continue
				}
				select {
				case ch <- Event{Kind: AccountsChanged, Accounts: p.Accounts()}:
				case <-quit:
					return nil
				}
			case err := <-sub.Err():
				return err
			case <-quit:
				return nil
			}
		}
	})
}

type keystoreSigner struct {
	ks  *keystore.KeyStore
	acc accounts.Account
}

func (s *keystoreSigner) Address() common.Address { return s.acc.Address }

func (s *keystoreSigner) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	signed, err := s.ks.SignTx(s.acc, tx, chainID)
	if err != nil {
		// A locked key here means the session was ended underneath us.
		return nil, fmt.Errorf("%w: %w", ErrUserRejected, err)
	}
	return signed, nil
}
