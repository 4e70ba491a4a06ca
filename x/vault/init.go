package vault

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
	"github.com/iov-one/tenor/x/bond"
)

// Initializer creates yield sources from genesis.
type Initializer struct{}

var _ tenor.Initializer = (*Initializer)(nil)

// FromGenesis reads the "vault" genesis section:
//
//	"vault": {
//	  "sources": [
//	    {"name": "US T-Bill Vault", "bond_type": 0, "source_type": 4,
//	     "oracle_feed": "fx-USD", "target_apy_bps": 450, ...}
//	  ]
//	}
func (Initializer) FromGenesis(opts tenor.Options, db tenor.KVStore) error {
	var conf struct {
		Sources []struct {
			Name                string         `json:"name"`
			SourceType          uint8          `json:"source_type"`
			BondType            uint8          `json:"bond_type"`
			OracleFeed          string         `json:"oracle_feed"`
			CouponRateBps       uint16         `json:"coupon_rate_bps"`
			MaturityDate        tenor.UnixTime `json:"maturity_date"`
			HaircutBps          uint16         `json:"haircut_bps"`
			TargetAPYBps        uint16         `json:"target_apy_bps"`
			AllocationWeightBps uint16         `json:"allocation_weight_bps"`
			MinDeposit          int64          `json:"min_deposit"`
			MaxAllocation       int64          `json:"max_allocation"`
			LastAccrual         tenor.UnixTime `json:"last_accrual"`
		} `json:"sources"`
	}
	if err := opts.ReadOptions("vault", &conf); err != nil {
		return err
	}
	for _, s := range conf.Sources {
		bt := bond.Type(s.BondType)
		switch exists, err := HasSource(db, bt); {
		case err != nil:
			return err
		case exists:
			return errors.Wrapf(errors.ErrDuplicate, "genesis yield source for %s", bt)
		}
		ys := YieldSource{
			Metadata:            &tenor.Metadata{Schema: 1},
			Name:                s.Name,
			SourceType:          bond.SourceType(s.SourceType),
			BondType:            bt,
			DepositVault:        DepositVaultAddr(bt),
			NavPerShare:         NavScale,
			AllocationWeightBps: s.AllocationWeightBps,
			MinDeposit:          s.MinDeposit,
			MaxAllocation:       s.MaxAllocation,
			Active:              true,
			LastAccrual:         s.LastAccrual,
			OracleFeed:          s.OracleFeed,
			CouponRateBps:       s.CouponRateBps,
			MaturityDate:        s.MaturityDate,
			TargetAPYBps:        s.TargetAPYBps,
			HaircutBps:          s.HaircutBps,
		}
		if err := SaveSource(db, &ys); err != nil {
			return err
		}
	}
	return nil
}
