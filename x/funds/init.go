package funds

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/coin"
	"github.com/iov-one/tenor/errors"
)

// Initializer seeds wallets from genesis.
type Initializer struct{}

var _ tenor.Initializer = (*Initializer)(nil)

// FromGenesis reads the "funds" genesis section:
//
//	"funds": {
//	  "wallets": [
//	    {"address": "<hex>", "coins": [{"ticker": "USD", "amount": 1000000}]}
//	  ]
//	}
func (Initializer) FromGenesis(opts tenor.Options, db tenor.KVStore) error {
	var conf struct {
		Wallets []struct {
			Address tenor.Address `json:"address"`
			Coins   []struct {
				Ticker string `json:"ticker"`
				Amount int64  `json:"amount"`
			} `json:"coins"`
		} `json:"wallets"`
	}
	if err := opts.ReadOptions("funds", &conf); err != nil {
		return err
	}
	for _, g := range conf.Wallets {
		if err := g.Address.Validate(); err != nil {
			return errors.Wrap(err, "genesis wallet")
		}
		w := Wallet{Metadata: &tenor.Metadata{Schema: 1}}
		for _, c := range g.Coins {
			updated, err := w.Coins.Combine(coin.NewCoin(c.Amount, c.Ticker))
			if err != nil {
				return errors.Wrapf(err, "wallet %s", g.Address)
			}
			w.Coins = updated
		}
		if err := saveWallet(db, g.Address, &w); err != nil {
			return err
		}
	}
	return nil
}
