package wallet

import "errors"

var (
	// ErrNoWallet means no wallet provider is available: no private key in the
	// environment and no keystore directory on disk.
	ErrNoWallet = errors.New("no wallet provider found")

	// ErrUserRejected means the user declined the account access prompt or
	// could not unlock the chosen account.
	ErrUserRejected = errors.New("user rejected the request")

	// ErrUnknownAccount means the requested account is not managed by the provider.
	ErrUnknownAccount = errors.New("account not available in wallet")
)
