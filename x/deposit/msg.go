package deposit

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
	"github.com/iov-one/tenor/x/bond"
)

const (
	pathDeposit      = "deposit/deposit"
	pathCrossDeposit = "deposit/cross"
	pathConvert      = "deposit/convert"
	pathWithdraw     = "deposit/withdraw"
	pathClaim        = "deposit/claim"
	pathUpdateConfig = "deposit/update_config"
	pathPause        = "deposit/pause"
	pathResume       = "deposit/resume"
)

// DepositMsg deposits settlement currency directly into a bond's yield
// source, crediting shares immediately.
type DepositMsg struct {
	Metadata *tenor.Metadata
	BondType bond.Type
	// Amount in settlement currency minor units.
	Amount int64
}

var _ tenor.Msg = (*DepositMsg)(nil)

func (DepositMsg) Path() string {
	return pathDeposit
}

func (m *DepositMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	if err := m.BondType.Validate(); err != nil {
		return err
	}
	if m.Amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "deposit must be positive")
	}
	return nil
}

// CrossDepositMsg deposits the bond's native currency. The value is
// parked in the holding vault as a pending deposit until a keeper
// converts it to settlement currency.
type CrossDepositMsg struct {
	Metadata *tenor.Metadata
	BondType bond.Type
	// Amount in source currency minor units.
	Amount int64
	// MinOutput is the least acceptable settlement output.
	MinOutput int64
}

var _ tenor.Msg = (*CrossDepositMsg)(nil)

func (CrossDepositMsg) Path() string {
	return pathCrossDeposit
}

func (m *CrossDepositMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	if err := m.BondType.Validate(); err != nil {
		return err
	}
	if m.Amount <= 0 {
		return errors.Wrap(errors.ErrAmount, "deposit must be positive")
	}
	if m.MinOutput < 0 {
		return errors.Wrap(errors.ErrAmount, "negative min output")
	}
	return nil
}

// ExecuteConversionMsg settles one pending deposit at the current
// oracle rate. Any authenticated keeper may send it.
type ExecuteConversionMsg struct {
	Metadata  *tenor.Metadata
	Depositor tenor.Address
	Nonce     uint64
	// FeedID names the oracle feed to price against. It must match the
	// feed configured on the bond's yield source.
	FeedID string
}

var _ tenor.Msg = (*ExecuteConversionMsg)(nil)

func (ExecuteConversionMsg) Path() string {
	return pathConvert
}

func (m *ExecuteConversionMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	if err := m.Depositor.Validate(); err != nil {
		return errors.Wrap(err, "depositor")
	}
	if m.Nonce == 0 {
		return errors.Wrap(errors.ErrEmpty, "nonce")
	}
	if m.FeedID == "" {
		return errors.Wrap(errors.ErrEmpty, "feed id")
	}
	return nil
}

// WithdrawMsg redeems shares for settlement currency at the current NAV.
type WithdrawMsg struct {
	Metadata *tenor.Metadata
	BondType bond.Type
	Shares   int64
}

var _ tenor.Msg = (*WithdrawMsg)(nil)

func (WithdrawMsg) Path() string {
	return pathWithdraw
}

func (m *WithdrawMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	if err := m.BondType.Validate(); err != nil {
		return err
	}
	if m.Shares <= 0 {
		return errors.Wrap(errors.ErrAmount, "shares must be positive")
	}
	return nil
}

// ClaimYieldMsg pays out the unrealized yield of a position, net of the
// performance fee. Shares stay untouched.
type ClaimYieldMsg struct {
	Metadata *tenor.Metadata
	BondType bond.Type
}

var _ tenor.Msg = (*ClaimYieldMsg)(nil)

func (ClaimYieldMsg) Path() string {
	return pathClaim
}

func (m *ClaimYieldMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	return m.BondType.Validate()
}

// UpdateConfigMsg partially updates the fee schedule and treasury. Nil
// fields stay unchanged.
type UpdateConfigMsg struct {
	Metadata          *tenor.Metadata
	Treasury          tenor.Address
	ConversionFeeBps  *uint16
	ManagementFeeBps  *uint16
	PerformanceFeeBps *uint16
}

var _ tenor.Msg = (*UpdateConfigMsg)(nil)

func (UpdateConfigMsg) Path() string {
	return pathUpdateConfig
}

func (m *UpdateConfigMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	if len(m.Treasury) != 0 {
		if err := m.Treasury.Validate(); err != nil {
			return errors.Wrap(err, "treasury")
		}
	}
	if m.ConversionFeeBps != nil && *m.ConversionFeeBps > MaxConversionFeeBps {
		return errors.Wrapf(errors.ErrMsg, "conversion fee above %d bps", MaxConversionFeeBps)
	}
	if m.ManagementFeeBps != nil && *m.ManagementFeeBps > MaxManagementFeeBps {
		return errors.Wrapf(errors.ErrMsg, "management fee above %d bps", MaxManagementFeeBps)
	}
	if m.PerformanceFeeBps != nil && *m.PerformanceFeeBps > MaxPerformanceFeeBps {
		return errors.Wrapf(errors.ErrMsg, "performance fee above %d bps", MaxPerformanceFeeBps)
	}
	return nil
}

// PauseMsg halts all deposit operations.
type PauseMsg struct {
	Metadata *tenor.Metadata
}

var _ tenor.Msg = (*PauseMsg)(nil)

func (PauseMsg) Path() string {
	return pathPause
}

func (m *PauseMsg) Validate() error {
	return m.Metadata.Validate()
}

// ResumeMsg lifts a pause.
type ResumeMsg struct {
	Metadata *tenor.Metadata
}

var _ tenor.Msg = (*ResumeMsg)(nil)

func (ResumeMsg) Path() string {
	return pathResume
}

func (m *ResumeMsg) Validate() error {
	return m.Metadata.Validate()
}
