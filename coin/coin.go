// Package coin defines the monetary values moved by the ledger. Amounts
// are integers in the currency's minor unit, so there is no fractional
// representation and no rounding in transfers.
package coin

import (
	"fmt"
	"regexp"

	"github.com/iov-one/tenor/errors"
)

// IsCC checks if the given string is a valid currency ticker.
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

// Coin is an amount of one currency, expressed in minor units.
type Coin struct {
	Ticker string
	Amount int64
}

// NewCoin creates a coin with the given ticker and amount.
func NewCoin(amount int64, ticker string) Coin {
	return Coin{
		Ticker: ticker,
		Amount: amount,
	}
}

// Add combines two amounts of the same currency. It returns an error on
// a ticker mismatch or an int64 overflow.
func (c Coin) Add(o Coin) (Coin, error) {
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrAmount, "cannot add %s and %s", c.Ticker, o.Ticker)
	}
	sum := c.Amount + o.Amount
	if (o.Amount > 0 && sum < c.Amount) || (o.Amount < 0 && sum > c.Amount) {
		return Coin{}, errors.Wrap(errors.ErrOverflow, "coin addition")
	}
	return Coin{Ticker: c.Ticker, Amount: sum}, nil
}

// Subtract returns c minus o.
func (c Coin) Subtract(o Coin) (Coin, error) {
	return c.Add(o.Negative())
}

// Negative returns the same amount with the opposite sign.
func (c Coin) Negative() Coin {
	return Coin{Ticker: c.Ticker, Amount: -c.Amount}
}

// SameType returns true if both coins are of the same currency.
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// IsPositive returns true if the amount is greater than zero.
func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// IsNonNegative returns true if the amount is zero or greater.
func (c Coin) IsNonNegative() bool {
	return c.Amount >= 0
}

// IsZero returns true for a zero amount.
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// Equals returns true if both currency and amount match.
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// IsGTE returns true if c is of the same currency and not smaller than o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Amount >= o.Amount
}

// Validate ensures the coin is well formed. Negative amounts are valid
// here; contexts that require positive amounts must check separately.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrAmount, "invalid currency: %s", c.Ticker)
	}
	return nil
}

func (c Coin) String() string {
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}
