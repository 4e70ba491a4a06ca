// Package bond implements the instrument registry: which sovereign bond
// types exist, their currencies and terms, and who may register them.
package bond

import (
	"github.com/iov-one/tenor/errors"
)

// Type enumerates the supported sovereign bond types. Values are
// persisted as single-byte ordinals and must never be reordered.
type Type uint8

const (
	UsTBill Type = iota
	MxCetes
	BrTesouro
	JpJgb
	Custom
)

func (t Type) String() string {
	switch t {
	case UsTBill:
		return "US T-Bill"
	case MxCetes:
		return "MX CETES"
	case BrTesouro:
		return "BR Tesouro"
	case JpJgb:
		return "JP JGB"
	case Custom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// Currency returns the ISO code of the bond's native denomination.
func (t Type) Currency() string {
	switch t {
	case MxCetes:
		return "MXN"
	case BrTesouro:
		return "BRL"
	case JpJgb:
		return "JPY"
	default:
		return "USD"
	}
}

// DefaultAPYBps returns the baseline yield in basis points.
func (t Type) DefaultAPYBps() uint16 {
	switch t {
	case UsTBill:
		return 450
	case MxCetes:
		return 900
	case BrTesouro:
		return 1300
	case JpJgb:
		return 40
	default:
		return 0
	}
}

// Validate ensures this is a declared bond type.
func (t Type) Validate() error {
	if t > Custom {
		return errors.Wrapf(errors.ErrType, "unknown bond type: %d", t)
	}
	return nil
}

// SourceType enumerates the yield source categories. Values are
// persisted as single-byte ordinals and must never be reordered.
type SourceType uint8

const (
	TBill SourceType = iota
	Lending
	Staking
	Synthetic
	SovereignBond
)

func (s SourceType) String() string {
	switch s {
	case TBill:
		return "T-Bill"
	case Lending:
		return "Lending"
	case Staking:
		return "Staking"
	case Synthetic:
		return "Synthetic"
	case SovereignBond:
		return "Sovereign Bond"
	default:
		return "Unknown"
	}
}

// Validate ensures this is a declared source type.
func (s SourceType) Validate() error {
	if s > SovereignBond {
		return errors.Wrapf(errors.ErrType, "unknown yield source type: %d", s)
	}
	return nil
}
