package main

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog"

	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/app"
	"github.com/iov-one/tenor/errors"
	"github.com/iov-one/tenor/x/bond"
	"github.com/iov-one/tenor/x/compliance"
	"github.com/iov-one/tenor/x/deposit"
	"github.com/iov-one/tenor/x/funds"
	"github.com/iov-one/tenor/x/vault"
)

// bootstrapGenesis initializes an empty store from the genesis document.
// A store that already carries a protocol configuration is left alone.
func bootstrapGenesis(ledger *app.Ledger, path string, logger zerolog.Logger) error {
	switch _, err := deposit.LoadConfiguration(ledger.Store()); {
	case err == nil:
		logger.Debug().Msg("store already initialized")
		return nil
	case !errors.ErrNotFound.Is(err):
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "cannot read genesis %q", path)
	}
	var opts tenor.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrap(err, "cannot parse genesis")
	}

	err = ledger.InitGenesis(opts,
		deposit.Initializer{},
		bond.Initializer{},
		compliance.Initializer{},
		vault.Initializer{},
		funds.Initializer{},
	)
	if err != nil {
		return err
	}
	logger.Info().Str("genesis", path).Msg("store initialized")
	return nil
}
