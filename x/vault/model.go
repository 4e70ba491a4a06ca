package vault

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/codec"
	"github.com/iov-one/tenor/errors"
	"github.com/iov-one/tenor/orm"
	"github.com/iov-one/tenor/x/bond"
)

// YieldSource is one bond-backed vault: it tracks pooled deposits, the
// outstanding shares and the NAV that ties them together.
type YieldSource struct {
	Metadata   *tenor.Metadata
	Name       string
	SourceType bond.SourceType
	BondType   bond.Type
	// DepositVault holds the pooled settlement value.
	DepositVault tenor.Address
	// NavPerShare is scaled by NavScale.
	NavPerShare         int64
	TotalDeposited      int64
	TotalShares         int64
	AllocationWeightBps uint16
	MinDeposit          int64
	MaxAllocation       int64
	Active              bool
	LastAccrual         tenor.UnixTime
	// OracleFeed quotes the bond's native currency per settlement.
	OracleFeed    string
	CouponRateBps uint16
	// MaturityDate of zero means a rolling instrument.
	MaturityDate tenor.UnixTime
	TargetAPYBps uint16
	HaircutBps   uint16
}

var _ orm.Model = (*YieldSource)(nil)

func (ys *YieldSource) Validate() error {
	if err := ys.Metadata.Validate(); err != nil {
		return err
	}
	if ys.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	if err := ys.SourceType.Validate(); err != nil {
		return err
	}
	if err := ys.BondType.Validate(); err != nil {
		return err
	}
	if err := ys.DepositVault.Validate(); err != nil {
		return errors.Wrap(err, "deposit vault")
	}
	if ys.NavPerShare <= 0 {
		return errors.Wrap(errors.ErrModel, "nav must be positive")
	}
	if ys.TotalDeposited < 0 || ys.TotalShares < 0 {
		return errors.Wrap(errors.ErrModel, "negative totals")
	}
	if ys.MinDeposit < 0 || ys.MaxAllocation < 0 {
		return errors.Wrap(errors.ErrModel, "negative deposit bounds")
	}
	if err := ys.LastAccrual.Validate(); err != nil {
		return errors.Wrap(err, "last accrual")
	}
	if err := ys.MaturityDate.Validate(); err != nil {
		return errors.Wrap(err, "maturity date")
	}
	if ys.TargetAPYBps > MaxTargetAPYBps {
		return errors.Wrapf(errors.ErrModel, "target apy above %d bps", MaxTargetAPYBps)
	}
	return nil
}

// Accrue advances the NAV for the time elapsed since the last accrual.
// It is a no-op at or past maturity, with zero elapsed time, or with no
// shares outstanding. Returns true when the NAV changed.
func (ys *YieldSource) Accrue(now tenor.UnixTime) (bool, error) {
	if ys.MaturityDate > 0 && now >= ys.MaturityDate {
		return false, nil
	}
	elapsed := int64(now - ys.LastAccrual)
	if elapsed <= 0 || ys.TotalShares == 0 {
		return false, nil
	}
	inc, err := accrualIncrement(ys.NavPerShare, ys.TargetAPYBps, elapsed)
	if err != nil {
		return false, err
	}
	nav, err := addChecked(ys.NavPerShare, inc)
	if err != nil {
		return false, err
	}
	ys.NavPerShare = nav
	ys.LastAccrual = now
	return inc > 0, nil
}

func addChecked(a, b int64) (int64, error) {
	sum := a + b
	if b > 0 && sum < a {
		return 0, errors.Wrap(errors.ErrOverflow, "addition")
	}
	return sum, nil
}

func (ys *YieldSource) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	w.Uint32(ys.Metadata.Schema)
	w.String(ys.Name)
	w.Uint8(uint8(ys.SourceType))
	w.Uint8(uint8(ys.BondType))
	w.WriteBytes(ys.DepositVault)
	w.Int64(ys.NavPerShare)
	w.Int64(ys.TotalDeposited)
	w.Int64(ys.TotalShares)
	w.Uint16(ys.AllocationWeightBps)
	w.Int64(ys.MinDeposit)
	w.Int64(ys.MaxAllocation)
	w.Bool(ys.Active)
	w.Int64(int64(ys.LastAccrual))
	w.String(ys.OracleFeed)
	w.Uint16(ys.CouponRateBps)
	w.Int64(int64(ys.MaturityDate))
	w.Uint16(ys.TargetAPYBps)
	w.Uint16(ys.HaircutBps)
	return w.Bytes()
}

func (ys *YieldSource) Unmarshal(raw []byte) error {
	r := codec.NewReader(raw)
	ys.Metadata = &tenor.Metadata{Schema: r.Uint32()}
	ys.Name = r.String()
	ys.SourceType = bond.SourceType(r.Uint8())
	ys.BondType = bond.Type(r.Uint8())
	ys.DepositVault = tenor.Address(r.ReadBytes())
	ys.NavPerShare = r.Int64()
	ys.TotalDeposited = r.Int64()
	ys.TotalShares = r.Int64()
	ys.AllocationWeightBps = r.Uint16()
	ys.MinDeposit = r.Int64()
	ys.MaxAllocation = r.Int64()
	ys.Active = r.Bool()
	ys.LastAccrual = tenor.UnixTime(r.Int64())
	ys.OracleFeed = r.String()
	ys.CouponRateBps = r.Uint16()
	ys.MaturityDate = tenor.UnixTime(r.Int64())
	ys.TargetAPYBps = r.Uint16()
	ys.HaircutBps = r.Uint16()
	return r.Close()
}

var sources = orm.NewModelBucket("vault")

// Key returns the bucket key of a yield source.
func Key(t bond.Type) []byte {
	return []byte{uint8(t)}
}

// DepositVaultAddr derives the deterministic address of the deposit
// vault for a bond type.
func DepositVaultAddr(t bond.Type) tenor.Address {
	return tenor.NewCondition("vault", "deposit", Key(t)).Address()
}

// LoadSource reads the yield source for a bond type.
func LoadSource(db tenor.ReadOnlyKVStore, t bond.Type) (*YieldSource, error) {
	var ys YieldSource
	if err := sources.One(db, Key(t), &ys); err != nil {
		return nil, err
	}
	return &ys, nil
}

// SaveSource persists a yield source.
func SaveSource(db tenor.KVStore, ys *YieldSource) error {
	return sources.Put(db, Key(ys.BondType), ys)
}

// HasSource returns true if a yield source exists for the bond type.
func HasSource(db tenor.ReadOnlyKVStore, t bond.Type) (bool, error) {
	return sources.Has(db, Key(t))
}

// IterateSources calls fn for every registered yield source.
func IterateSources(db tenor.ReadOnlyKVStore, fn func(*YieldSource) error) error {
	it, err := sources.Iterator(db, nil)
	if err != nil {
		return err
	}
	defer it.Release()
	for {
		_, raw, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return nil
		}
		if err != nil {
			return err
		}
		var ys YieldSource
		if err := ys.Unmarshal(raw); err != nil {
			return err
		}
		if err := fn(&ys); err != nil {
			return err
		}
	}
}
