// Package funds implements the value-transfer collaborator: wallets of
// coins per address and a controller moving value between them. Within
// an operation's cache wrap a move either fully succeeds or fully fails.
package funds

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/codec"
	"github.com/iov-one/tenor/coin"
	"github.com/iov-one/tenor/orm"
)

// Wallet is the set of coins held by one address.
type Wallet struct {
	Metadata *tenor.Metadata
	Coins    coin.Coins
}

var _ orm.Model = (*Wallet)(nil)

func (w *Wallet) Validate() error {
	if err := w.Metadata.Validate(); err != nil {
		return err
	}
	return w.Coins.Validate()
}

func (w *Wallet) Marshal() ([]byte, error) {
	wr := codec.NewWriter()
	wr.Uint32(w.Metadata.Schema)
	wr.Uint16(uint16(len(w.Coins)))
	for _, c := range w.Coins {
		wr.String(c.Ticker)
		wr.Int64(c.Amount)
	}
	return wr.Bytes()
}

func (w *Wallet) Unmarshal(raw []byte) error {
	r := codec.NewReader(raw)
	w.Metadata = &tenor.Metadata{Schema: r.Uint32()}
	n := int(r.Uint16())
	w.Coins = make(coin.Coins, n)
	for i := 0; i < n; i++ {
		w.Coins[i].Ticker = r.String()
		w.Coins[i].Amount = r.Int64()
	}
	return r.Close()
}

var wallets = orm.NewModelBucket("wallet")

func loadWallet(db tenor.ReadOnlyKVStore, addr tenor.Address) (*Wallet, error) {
	var w Wallet
	switch err := wallets.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	default:
		return nil, err
	}
}

func saveWallet(db tenor.KVStore, addr tenor.Address, w *Wallet) error {
	return wallets.Put(db, addr, w)
}
