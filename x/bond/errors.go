package bond

import "github.com/iov-one/tenor/errors"

var (
	// ErrRegistryFull is returned when registering past the fixed
	// registry capacity.
	ErrRegistryFull = errors.Register(1040, "bond registry is full")

	// ErrNotActive is returned when using a bond type that is disabled.
	ErrNotActive = errors.Register(1041, "bond type is not active")
)
