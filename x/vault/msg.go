package vault

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
	"github.com/iov-one/tenor/x/bond"
)

const (
	pathRegister  = "vault/register"
	pathAccrue    = "vault/accrue"
	pathUpdateNav = "vault/update_nav"
	pathUpdate    = "vault/update"
)

// RegisterYieldSourceMsg creates a new yield source with NAV 1.000000.
type RegisterYieldSourceMsg struct {
	Metadata            *tenor.Metadata
	Name                string
	SourceType          bond.SourceType
	BondType            bond.Type
	OracleFeed          string
	CouponRateBps       uint16
	MaturityDate        tenor.UnixTime
	HaircutBps          uint16
	TargetAPYBps        uint16
	AllocationWeightBps uint16
	MinDeposit          int64
	MaxAllocation       int64
}

var _ tenor.Msg = (*RegisterYieldSourceMsg)(nil)

func (RegisterYieldSourceMsg) Path() string {
	return pathRegister
}

func (m *RegisterYieldSourceMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	if m.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	if err := m.SourceType.Validate(); err != nil {
		return err
	}
	if err := m.BondType.Validate(); err != nil {
		return err
	}
	if m.OracleFeed == "" {
		return errors.Wrap(errors.ErrEmpty, "oracle feed")
	}
	if err := m.MaturityDate.Validate(); err != nil {
		return errors.Wrap(err, "maturity date")
	}
	if m.TargetAPYBps > MaxTargetAPYBps {
		return errors.Wrapf(errors.ErrMsg, "target apy above %d bps", MaxTargetAPYBps)
	}
	if m.MinDeposit < 0 || m.MaxAllocation < 0 {
		return errors.Wrap(errors.ErrMsg, "negative deposit bounds")
	}
	return nil
}

// AccrueMsg advances the NAV of one yield source to the current time.
type AccrueMsg struct {
	Metadata *tenor.Metadata
	BondType bond.Type
}

var _ tenor.Msg = (*AccrueMsg)(nil)

func (AccrueMsg) Path() string {
	return pathAccrue
}

func (m *AccrueMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	return m.BondType.Validate()
}

// UpdateNavMsg re-prices a yield source from an external valuation. The
// new NAV must be positive; it may move in either direction.
type UpdateNavMsg struct {
	Metadata *tenor.Metadata
	BondType bond.Type
	Nav      int64
	// APYBps of zero leaves the current target rate unchanged.
	APYBps uint16
}

var _ tenor.Msg = (*UpdateNavMsg)(nil)

func (UpdateNavMsg) Path() string {
	return pathUpdateNav
}

func (m *UpdateNavMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	if err := m.BondType.Validate(); err != nil {
		return err
	}
	if m.Nav <= 0 {
		return errors.Wrap(errors.ErrMsg, "nav must be positive")
	}
	if m.APYBps > MaxTargetAPYBps {
		return errors.Wrapf(errors.ErrMsg, "target apy above %d bps", MaxTargetAPYBps)
	}
	return nil
}

// UpdateYieldSourceMsg partially updates the administrative parameters
// of a yield source. Nil fields stay unchanged.
type UpdateYieldSourceMsg struct {
	Metadata            *tenor.Metadata
	BondType            bond.Type
	AllocationWeightBps *uint16
	MinDeposit          *int64
	MaxAllocation       *int64
	TargetAPYBps        *uint16
	Active              *bool
}

var _ tenor.Msg = (*UpdateYieldSourceMsg)(nil)

func (UpdateYieldSourceMsg) Path() string {
	return pathUpdate
}

func (m *UpdateYieldSourceMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	if err := m.BondType.Validate(); err != nil {
		return err
	}
	if m.MinDeposit != nil && *m.MinDeposit < 0 {
		return errors.Wrap(errors.ErrMsg, "negative min deposit")
	}
	if m.MaxAllocation != nil && *m.MaxAllocation < 0 {
		return errors.Wrap(errors.ErrMsg, "negative max allocation")
	}
	if m.TargetAPYBps != nil && *m.TargetAPYBps > MaxTargetAPYBps {
		return errors.Wrapf(errors.ErrMsg, "target apy above %d bps", MaxTargetAPYBps)
	}
	return nil
}
