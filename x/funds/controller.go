package funds

import (
	tenor "github.com/iov-one/tenor"
	"github.com/iov-one/tenor/coin"
	"github.com/iov-one/tenor/errors"
)

// Controller moves value between wallets. Handlers depend on this
// interface, never on the wallet records directly.
type Controller interface {
	// MoveCoins transfers the amount from src to dest.
	MoveCoins(db tenor.KVStore, src, dest tenor.Address, amount coin.Coin) error

	// IssueCoins creates new value in the dest wallet.
	IssueCoins(db tenor.KVStore, dest tenor.Address, amount coin.Coin) error

	// Balance returns the owned amount in one currency.
	Balance(db tenor.ReadOnlyKVStore, addr tenor.Address, ticker string) (int64, error)
}

// BankController is the standard wallet-backed Controller.
type BankController struct{}

var _ Controller = BankController{}

// NewController returns the standard controller.
func NewController() BankController {
	return BankController{}
}

// MoveCoins debits src and credits dest by the given positive amount. An
// insufficient source balance fails the whole move.
func (BankController) MoveCoins(db tenor.KVStore, src, dest tenor.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "transfer must be positive: %s", amount)
	}

	sender, err := loadWallet(db, src)
	if errors.ErrNotFound.Is(err) {
		return errors.Wrapf(ErrInsufficientFunds, "%s has no wallet", src)
	} else if err != nil {
		return err
	}
	updated, err := sender.Coins.Combine(amount.Negative())
	if err != nil {
		if errors.ErrAmount.Is(err) {
			return errors.Wrapf(ErrInsufficientFunds, "%s holds %d %s", src, sender.Coins.Amount(amount.Ticker), amount.Ticker)
		}
		return err
	}
	sender.Coins = updated
	if err := saveWallet(db, src, sender); err != nil {
		return err
	}

	return credit(db, dest, amount)
}

// IssueCoins credits dest with newly created value.
func (BankController) IssueCoins(db tenor.KVStore, dest tenor.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "issue must be positive: %s", amount)
	}
	return credit(db, dest, amount)
}

// Balance returns the amount of one currency held by the address, zero
// for addresses without a wallet.
func (BankController) Balance(db tenor.ReadOnlyKVStore, addr tenor.Address, ticker string) (int64, error) {
	w, err := loadWallet(db, addr)
	if errors.ErrNotFound.Is(err) {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	return w.Coins.Amount(ticker), nil
}

func credit(db tenor.KVStore, addr tenor.Address, amount coin.Coin) error {
	w, err := loadWallet(db, addr)
	if errors.ErrNotFound.Is(err) {
		w = &Wallet{Metadata: &tenor.Metadata{Schema: 1}}
	} else if err != nil {
		return err
	}
	updated, err := w.Coins.Combine(amount)
	if err != nil {
		return err
	}
	w.Coins = updated
	return saveWallet(db, addr, w)
}
