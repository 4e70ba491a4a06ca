package vault

import "github.com/iov-one/tenor/errors"

var (
	// ErrNotActive is returned when using a disabled yield source.
	ErrNotActive = errors.Register(1050, "yield source is not active")

	// ErrInsufficientShares is returned when burning more shares than
	// owned, or when the vault cannot cover a computed payout.
	ErrInsufficientShares = errors.Register(1051, "insufficient shares")
)
