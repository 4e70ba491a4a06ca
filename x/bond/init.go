package bond

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
)

// Initializer creates the bond registry from genesis.
type Initializer struct{}

var _ tenor.Initializer = (*Initializer)(nil)

// FromGenesis reads the "bond" genesis section:
//
//	"bond": {
//	  "authority": "<hex address>",
//	  "bonds": [ {"type": 0, "settlement_ticker": "USD", ...}, ... ]
//	}
func (Initializer) FromGenesis(opts tenor.Options, db tenor.KVStore) error {
	var conf struct {
		Authority tenor.Address `json:"authority"`
		Bonds     []struct {
			Type             uint8          `json:"type"`
			SettlementTicker string         `json:"settlement_ticker"`
			NativeTicker     string         `json:"native_ticker"`
			OracleFeed       string         `json:"oracle_feed"`
			CouponRateBps    uint16         `json:"coupon_rate_bps"`
			MaturityDate     tenor.UnixTime `json:"maturity_date"`
			FaceValue        int64          `json:"face_value"`
			HaircutBps       uint16         `json:"haircut_bps"`
			DefaultAPYBps    uint16         `json:"default_apy_bps"`
			MinTier          uint8          `json:"min_tier"`
		} `json:"bonds"`
	}
	if err := opts.ReadOptions("bond", &conf); err != nil {
		return err
	}
	if conf.Authority == nil {
		return nil
	}

	reg := Registry{
		Metadata:  &tenor.Metadata{Schema: 1},
		Authority: conf.Authority,
	}
	for _, b := range conf.Bonds {
		apy := b.DefaultAPYBps
		if apy == 0 {
			apy = Type(b.Type).DefaultAPYBps()
		}
		cfg := Config{
			Metadata:         &tenor.Metadata{Schema: 1},
			Type:             Type(b.Type),
			SettlementTicker: b.SettlementTicker,
			NativeTicker:     b.NativeTicker,
			OracleFeed:       b.OracleFeed,
			CouponRateBps:    b.CouponRateBps,
			MaturityDate:     b.MaturityDate,
			FaceValue:        b.FaceValue,
			HaircutBps:       b.HaircutBps,
			DefaultAPYBps:    apy,
			MinTier:          b.MinTier,
			Active:           true,
		}
		if cfg.NativeTicker == "" {
			cfg.NativeTicker = cfg.Type.Currency()
		}
		if err := reg.Add(cfg); err != nil {
			return errors.Wrap(err, "genesis bond")
		}
	}
	return SaveRegistry(db, &reg)
}
