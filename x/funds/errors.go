package funds

import "github.com/iov-one/tenor/errors"

var (
	// ErrInsufficientFunds is returned when a wallet cannot cover a
	// transfer.
	ErrInsufficientFunds = errors.Register(1010, "insufficient funds")
)
