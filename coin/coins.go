package coin

import (
	"sort"
	"strings"

	"github.com/iov-one/tenor/errors"
)

// Coins is a set of coins, at most one per currency, sorted by ticker.
// All amounts are positive; a coin that reaches zero is removed from the
// set.
type Coins []Coin

// NewCoins normalizes the given coins into a valid set.
func NewCoins(coins ...Coin) (Coins, error) {
	var set Coins
	for _, c := range coins {
		var err error
		if set, err = set.Combine(c); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Amount returns the owned amount in the given currency, zero when the
// currency is not in the set.
func (cs Coins) Amount(ticker string) int64 {
	for _, c := range cs {
		if c.Ticker == ticker {
			return c.Amount
		}
	}
	return 0
}

// Combine returns a new set with the given coin added. A negative coin
// subtracts. Driving any currency below zero is an error, reaching zero
// removes it.
func (cs Coins) Combine(add Coin) (Coins, error) {
	if err := add.Validate(); err != nil {
		return nil, err
	}
	out := make(Coins, 0, len(cs)+1)
	combined := false
	for _, c := range cs {
		if !c.SameType(add) {
			out = append(out, c)
			continue
		}
		sum, err := c.Add(add)
		if err != nil {
			return nil, err
		}
		if sum.Amount < 0 {
			return nil, errors.Wrapf(errors.ErrAmount, "negative balance: %s", sum)
		}
		combined = true
		if !sum.IsZero() {
			out = append(out, sum)
		}
	}
	if !combined {
		if add.Amount < 0 {
			return nil, errors.Wrapf(errors.ErrAmount, "negative balance: %s", add)
		}
		if !add.IsZero() {
			out = append(out, add)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Ticker < out[j].Ticker
	})
	return out, nil
}

// Validate ensures the set is sorted, unique and all positive.
func (cs Coins) Validate() error {
	last := ""
	for _, c := range cs {
		if err := c.Validate(); err != nil {
			return err
		}
		if !c.IsPositive() {
			return errors.Wrapf(errors.ErrAmount, "non-positive amount in set: %s", c)
		}
		if c.Ticker <= last {
			return errors.Wrap(errors.ErrModel, "coins not sorted by ticker")
		}
		last = c.Ticker
	}
	return nil
}

// Clone returns an independent copy of the set.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	out := make(Coins, len(cs))
	copy(out, cs)
	return out
}

func (cs Coins) String() string {
	if len(cs) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
