package compliance

import "github.com/iov-one/tenor/errors"

var (
	// ErrRequired is returned when a user has no usable compliance
	// record.
	ErrRequired = errors.Register(1020, "compliance verification required")

	// ErrJurisdiction is returned for users from a blocked
	// jurisdiction.
	ErrJurisdiction = errors.Register(1021, "jurisdiction not allowed")

	// ErrComplianceExpired is returned when the verification lapsed.
	ErrComplianceExpired = errors.Register(1022, "compliance verification expired")

	// ErrTierTooLow is returned when the tier does not grant the
	// requested access.
	ErrTierTooLow = errors.Register(1023, "tier does not allow this operation")
)
