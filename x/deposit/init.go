package deposit

import (
	tenor "github.com/iov-one/tenor"
)

// Initializer creates the protocol configuration from genesis.
type Initializer struct{}

var _ tenor.Initializer = (*Initializer)(nil)

// FromGenesis reads the "deposit" genesis section:
//
//	"deposit": {
//	  "authority": "C1B1...",
//	  "treasury": "A4F2...",
//	  "settlement_ticker": "USD",
//	  "conversion_fee_bps": 50,
//	  "performance_fee_bps": 1000
//	}
func (Initializer) FromGenesis(opts tenor.Options, db tenor.KVStore) error {
	var conf struct {
		Authority         tenor.Address  `json:"authority"`
		Treasury          tenor.Address  `json:"treasury"`
		SettlementTicker  string         `json:"settlement_ticker"`
		ConversionFeeBps  uint16         `json:"conversion_fee_bps"`
		ManagementFeeBps  uint16         `json:"management_fee_bps"`
		PerformanceFeeBps uint16         `json:"performance_fee_bps"`
		CreatedAt         tenor.UnixTime `json:"created_at"`
	}
	if err := opts.ReadOptions("deposit", &conf); err != nil {
		return err
	}
	c := Configuration{
		Metadata:          &tenor.Metadata{Schema: 1},
		Authority:         conf.Authority,
		Treasury:          conf.Treasury,
		SettlementVault:   SettlementVaultAddr(),
		SettlementTicker:  conf.SettlementTicker,
		ConversionFeeBps:  conf.ConversionFeeBps,
		ManagementFeeBps:  conf.ManagementFeeBps,
		PerformanceFeeBps: conf.PerformanceFeeBps,
		Active:            true,
		CreatedAt:         conf.CreatedAt,
		UpdatedAt:         conf.CreatedAt,
	}
	return SaveConfiguration(db, &c)
}
