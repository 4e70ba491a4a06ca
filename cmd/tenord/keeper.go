package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/app"
	"github.com/iov-one/tenor/x"
	"github.com/iov-one/tenor/x/bond"
	"github.com/iov-one/tenor/x/vault"
)

// opTx is the transaction envelope for operations the daemon submits to
// its own ledger.
type opTx struct {
	msg tenor.Msg
}

var _ tenor.Tx = opTx{}

func (tx opTx) GetMsg() (tenor.Msg, error) {
	return tx.msg, nil
}

// keeper drives the periodic maintenance operations, signing them with
// the configured keeper identity.
type keeper struct {
	ledger *app.Ledger
	auth   x.CtxAuth
	addr   tenor.Address
	logger zerolog.Logger
}

func newKeeper(ledger *app.Ledger, auth x.CtxAuth, addr tenor.Address, logger zerolog.Logger) *keeper {
	return &keeper{
		ledger: ledger,
		auth:   auth,
		addr:   addr,
		logger: logger.With().Str("component", "keeper").Logger(),
	}
}

// accrueAll advances the NAV of every active yield source. Failures are
// logged per source and do not stop the run.
func (k *keeper) accrueAll() {
	var targets []bond.Type
	err := vault.IterateSources(k.ledger.Store(), func(ys *vault.YieldSource) error {
		if ys.Active {
			targets = append(targets, ys.BondType)
		}
		return nil
	})
	if err != nil {
		k.logger.Error().Err(err).Msg("cannot list yield sources")
		return
	}

	now := time.Now()
	ctx := k.auth.SetSigners(context.Background(), k.addr)
	for _, bt := range targets {
		tx := opTx{msg: &vault.AccrueMsg{
			Metadata: &tenor.Metadata{Schema: 1},
			BondType: bt,
		}}
		res, err := k.ledger.DeliverTx(ctx, now, tx)
		if err != nil {
			k.logger.Error().Err(err).Stringer("bond", bt).Msg("accrual failed")
			continue
		}
		k.logger.Debug().Stringer("bond", bt).Str("result", res.Log).Msg("accrued")
	}
}
