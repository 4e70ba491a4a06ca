package rates

import "github.com/iov-one/tenor/errors"

var (
	// ErrStaleRate is returned when a feed update is too old to use.
	ErrStaleRate = errors.Register(1030, "oracle rate is stale")

	// ErrInvalidRate is returned when a feed holds a non-positive rate.
	ErrInvalidRate = errors.Register(1031, "oracle rate is invalid")
)
