package deposit

import "github.com/iov-one/tenor/errors"

var (
	// ErrNotActive is returned when the protocol is paused.
	ErrNotActive = errors.Register(1060, "protocol not active")

	// ErrMonthlyLimit is returned when a deposit would exceed the
	// tier's rolling monthly allowance.
	ErrMonthlyLimit = errors.Register(1061, "monthly deposit limit exceeded")

	// ErrSlippage is returned when a conversion would settle below the
	// depositor's minimum output.
	ErrSlippage = errors.Register(1062, "output below minimum")

	// ErrNoYield is returned when a claim finds no unrealized yield.
	ErrNoYield = errors.Register(1063, "no yield to claim")
)
