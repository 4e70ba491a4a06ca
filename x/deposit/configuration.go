// Package deposit implements the deposit lifecycle: direct settlement
// deposits, cross-currency deposits with pending conversion, keeper
// execution of conversions against the oracle, withdrawals and yield
// claims. It ties together the compliance gate, the tier policy, the
// bond registry, the rate feeds and the vault share accounting.
package deposit

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/codec"
	"github.com/iov-one/tenor/errors"
	"github.com/iov-one/tenor/orm"
)

const (
	// MaxConversionFeeBps caps the cross-currency conversion fee at 10%.
	MaxConversionFeeBps = 1000

	// MaxManagementFeeBps caps the annualized management fee at 5%.
	MaxManagementFeeBps = 500

	// MaxPerformanceFeeBps caps the fee on claimed yield at 50%.
	MaxPerformanceFeeBps = 5000
)

// Configuration is the protocol-wide deposit state: the administrative
// addresses, the fee schedule and running totals.
type Configuration struct {
	Metadata  *tenor.Metadata
	Authority tenor.Address
	// Treasury collects conversion and performance fees.
	Treasury tenor.Address
	// SettlementVault holds the settlement liquidity conversions are
	// paid from.
	SettlementVault tenor.Address
	// SettlementTicker is the currency all positions settle in.
	SettlementTicker  string
	ConversionFeeBps  uint16
	ManagementFeeBps  uint16
	PerformanceFeeBps uint16
	// TotalDeposits is the settlement value across all deposit vaults.
	TotalDeposits int64
	// TotalYieldEarned is the gross yield realized by all users.
	TotalYieldEarned int64
	// PendingConversion is the source value awaiting conversion.
	PendingConversion int64
	Active            bool
	CreatedAt         tenor.UnixTime
	UpdatedAt         tenor.UnixTime
}

var _ orm.Model = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return err
	}
	if err := c.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if err := c.Treasury.Validate(); err != nil {
		return errors.Wrap(err, "treasury")
	}
	if err := c.SettlementVault.Validate(); err != nil {
		return errors.Wrap(err, "settlement vault")
	}
	if c.SettlementTicker == "" {
		return errors.Wrap(errors.ErrEmpty, "settlement ticker")
	}
	if c.ConversionFeeBps > MaxConversionFeeBps {
		return errors.Wrapf(errors.ErrModel, "conversion fee above %d bps", MaxConversionFeeBps)
	}
	if c.ManagementFeeBps > MaxManagementFeeBps {
		return errors.Wrapf(errors.ErrModel, "management fee above %d bps", MaxManagementFeeBps)
	}
	if c.PerformanceFeeBps > MaxPerformanceFeeBps {
		return errors.Wrapf(errors.ErrModel, "performance fee above %d bps", MaxPerformanceFeeBps)
	}
	if c.TotalDeposits < 0 || c.TotalYieldEarned < 0 || c.PendingConversion < 0 {
		return errors.Wrap(errors.ErrModel, "negative totals")
	}
	return nil
}

func (c *Configuration) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	w.Uint32(c.Metadata.Schema)
	w.WriteBytes(c.Authority)
	w.WriteBytes(c.Treasury)
	w.WriteBytes(c.SettlementVault)
	w.String(c.SettlementTicker)
	w.Uint16(c.ConversionFeeBps)
	w.Uint16(c.ManagementFeeBps)
	w.Uint16(c.PerformanceFeeBps)
	w.Int64(c.TotalDeposits)
	w.Int64(c.TotalYieldEarned)
	w.Int64(c.PendingConversion)
	w.Bool(c.Active)
	w.Int64(int64(c.CreatedAt))
	w.Int64(int64(c.UpdatedAt))
	return w.Bytes()
}

func (c *Configuration) Unmarshal(raw []byte) error {
	r := codec.NewReader(raw)
	c.Metadata = &tenor.Metadata{Schema: r.Uint32()}
	c.Authority = tenor.Address(r.ReadBytes())
	c.Treasury = tenor.Address(r.ReadBytes())
	c.SettlementVault = tenor.Address(r.ReadBytes())
	c.SettlementTicker = r.String()
	c.ConversionFeeBps = r.Uint16()
	c.ManagementFeeBps = r.Uint16()
	c.PerformanceFeeBps = r.Uint16()
	c.TotalDeposits = r.Int64()
	c.TotalYieldEarned = r.Int64()
	c.PendingConversion = r.Int64()
	c.Active = r.Bool()
	c.CreatedAt = tenor.UnixTime(r.Int64())
	c.UpdatedAt = tenor.UnixTime(r.Int64())
	return r.Close()
}

var (
	configuration = orm.NewSingleton("deposit")
	nonceSeq      = orm.NewSequence("deposit", "nonce")
)

// SettlementVaultAddr derives the deterministic address of the
// settlement liquidity vault.
func SettlementVaultAddr() tenor.Address {
	return tenor.NewCondition("deposit", "holding", []byte("settlement")).Address()
}

// HoldingVaultAddr derives the deterministic address of the holding
// vault for a source currency awaiting conversion.
func HoldingVaultAddr(ticker string) tenor.Address {
	return tenor.NewCondition("deposit", "holding", []byte(ticker)).Address()
}

// LoadConfiguration reads the protocol configuration.
func LoadConfiguration(db tenor.ReadOnlyKVStore) (*Configuration, error) {
	var c Configuration
	if err := configuration.Load(db, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// SaveConfiguration persists the protocol configuration.
func SaveConfiguration(db tenor.KVStore, c *Configuration) error {
	return configuration.Save(db, c)
}
