package wallet

import (
	"crypto/ecdsa"
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/event"
)

// KeyProvider holds a single raw private key, typically from the environment.
// It never prompts and its account never changes.
type KeyProvider struct {
	key  *ecdsa.PrivateKey
	addr common.Address
}

// NewKeyProvider parses a hex encoded secp256k1 key, with or without 0x.
func NewKeyProvider(hexKey string) (*KeyProvider, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, errors.New("invalid private key")
	}
	return NewKeyProviderFromKey(key), nil
}

// NewKeyProviderFromKey wraps an already parsed key.
func NewKeyProviderFromKey(key *ecdsa.PrivateKey) *KeyProvider {
	return &KeyProvider{key: key, addr: crypto.PubkeyToAddress(key.PublicKey)}
}

func (p *KeyProvider) Accounts() []common.Address {
	return []common.Address{p.addr}
}

func (p *KeyProvider) Unlock(account common.Address, _ string) (Signer, error) {
	if account != p.addr {
		return nil, ErrUnknownAccount
	}
	return &keySigner{key: p.key, addr: p.addr}, nil
}

func (p *KeyProvider) Lock(common.Address) {}

func (p *KeyProvider) Subscribe(chan<- Event) event.Subscription {
	return event.NewSubscription(func(quit <-chan struct{}) error {
		<-quit
		return nil
	})
}

type keySigner struct {
	key  *ecdsa.PrivateKey
	addr common.Address
}

func (s *keySigner) Address() common.Address { return s.addr }

func (s *keySigner) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key)
}
