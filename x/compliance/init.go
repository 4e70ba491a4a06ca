package compliance

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/errors"
)

// Initializer seeds user compliance and identity records from genesis.
type Initializer struct{}

var _ tenor.Initializer = (*Initializer)(nil)

// FromGenesis reads the "compliance" genesis section:
//
//	"compliance": {
//	  "users": [
//	    {"address": "<hex>", "tier": 2, "jurisdiction": 1, "expires_at": 0}
//	  ]
//	}
func (Initializer) FromGenesis(opts tenor.Options, db tenor.KVStore) error {
	var conf struct {
		Users []struct {
			Address      tenor.Address  `json:"address"`
			Tier         uint8          `json:"tier"`
			Jurisdiction uint16         `json:"jurisdiction"`
			ExpiresAt    tenor.UnixTime `json:"expires_at"`
		} `json:"users"`
	}
	if err := opts.ReadOptions("compliance", &conf); err != nil {
		return err
	}
	for _, u := range conf.Users {
		if err := u.Address.Validate(); err != nil {
			return errors.Wrap(err, "genesis user")
		}
		entry := Entry{
			Metadata:     &tenor.Metadata{Schema: 1},
			Active:       true,
			Jurisdiction: u.Jurisdiction,
			ExpiresAt:    u.ExpiresAt,
		}
		if err := SaveEntry(db, u.Address, &entry); err != nil {
			return err
		}
		identity := Identity{
			Metadata: &tenor.Metadata{Schema: 1},
			Tier:     u.Tier,
		}
		if err := SaveIdentity(db, u.Address, &identity); err != nil {
			return err
		}
	}
	return nil
}
