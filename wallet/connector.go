package wallet

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
)

// Approval carries the user's answer to an account access prompt.
type Approval struct {
	Account    common.Address // zero picks the provider's first account
	Passphrase string
	Declined   bool
}

// Session is the connected identity. The zero Session is disconnected.
type Session struct {
	Account common.Address
	Signer  Signer
}

// Connected reports whether the session can sign.
func (s Session) Connected() bool { return s.Signer != nil }

// Connector brokers account access between the UI and a wallet Provider.
// The provider may be nil, which every method treats as "no wallet".
type Connector struct {
	provider Provider
	logger   *log.Logger
}

// NewConnector wraps p. A nil logger discards output.
func NewConnector(p Provider, logger *log.Logger) *Connector {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Connector{provider: p, logger: logger}
}

// Available reports whether a provider is present.
func (c *Connector) Available() bool { return c.provider != nil }

// NeedsPassphrase reports whether Connect needs a passphrase to unlock keys.
func (c *Connector) NeedsPassphrase() bool {
	_, ok := c.provider.(*KeystoreProvider)
	return ok
}

// CurrentAccounts lists the accounts the provider exposes without prompting.
func (c *Connector) CurrentAccounts() []common.Address {
	if c.provider == nil {
		return nil
	}
	return c.provider.Accounts()
}

// Connect turns an approval into a signing session.
func (c *Connector) Connect(a Approval) (Session, error) {
	if c.provider == nil {
		return Session{}, ErrNoWallet
	}
	if a.Declined {
		c.logger.Info("account access declined")
		return Session{}, ErrUserRejected
	}

	account := a.Account
	if account == (common.Address{}) {
		accs := c.provider.Accounts()
		if len(accs) == 0 {
			return Session{}, fmt.Errorf("%w: wallet has no accounts", ErrUnknownAccount)
		}
		account = accs[0]
	}

	signer, err := c.provider.Unlock(account, a.Passphrase)
	if err != nil {
		if errors.Is(err, ErrUnknownAccount) {
			return Session{}, err
		}
		if errors.Is(err, keystore.ErrDecrypt) {
			err = errors.New("wrong passphrase")
		}
		c.logger.Warn("unlock failed", "account", account.Hex(), "err", err)
		return Session{}, fmt.Errorf("%w: %w", ErrUserRejected, err)
	}

	c.logger.Info("connected", "account", account.Hex())
	return Session{Account: account, Signer: signer}, nil
}

// Disconnect releases the session's key material.
func (c *Connector) Disconnect(s Session) {
	if c.provider == nil || !s.Connected() {
		return
	}
	c.provider.Lock(s.Account)
	c.logger.Info("disconnected", "account", s.Account.Hex())
}

// Watch subscribes ch to account changes. Without a provider the
// subscription simply idles until unsubscribed.
func (c *Connector) Watch(ch chan<- Event) event.Subscription {
	if c.provider == nil {
		return event.NewSubscription(func(quit <-chan struct{}) error {
			<-quit
			return nil
		})
	}
	return c.provider.Subscribe(ch)
}

// Has reports whether account is still offered by the provider.
func Has(accounts []common.Address, account common.Address) bool {
	for _, a := range accounts {
		if a == account {
			return true
		}
	}
	return false
}
