package coin

import (
	"math"
	"testing"

	"github.com/iov-one/tenor/errors"
)

func TestCoinAdd(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		want    Coin
		wantErr *errors.Error
	}{
		"same currency": {
			a:    NewCoin(100, "USD"),
			b:    NewCoin(25, "USD"),
			want: NewCoin(125, "USD"),
		},
		"negative operand": {
			a:    NewCoin(100, "MXN"),
			b:    NewCoin(-40, "MXN"),
			want: NewCoin(60, "MXN"),
		},
		"currency mismatch": {
			a:       NewCoin(1, "USD"),
			b:       NewCoin(1, "BRL"),
			wantErr: errors.ErrAmount,
		},
		"overflow": {
			a:       NewCoin(math.MaxInt64, "JPY"),
			b:       NewCoin(1, "JPY"),
			wantErr: errors.ErrOverflow,
		},
		"underflow": {
			a:       NewCoin(math.MinInt64, "JPY"),
			b:       NewCoin(-1, "JPY"),
			wantErr: errors.ErrOverflow,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("want %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("add: %+v", err)
			}
			if !got.Equals(tc.want) {
				t.Fatalf("want %s, got %s", tc.want, got)
			}
		})
	}
}

func TestCoinValidate(t *testing.T) {
	if err := NewCoin(1, "USD").Validate(); err != nil {
		t.Fatalf("valid coin: %+v", err)
	}
	if err := NewCoin(1, "usd").Validate(); !errors.ErrAmount.Is(err) {
		t.Fatal("lowercase ticker must be rejected")
	}
	if err := NewCoin(1, "TOOLONG").Validate(); !errors.ErrAmount.Is(err) {
		t.Fatal("long ticker must be rejected")
	}
}

func TestCoinsCombine(t *testing.T) {
	set, err := NewCoins(NewCoin(100, "USD"), NewCoin(50, "MXN"))
	if err != nil {
		t.Fatalf("new coins: %+v", err)
	}

	set, err = set.Combine(NewCoin(25, "USD"))
	if err != nil {
		t.Fatalf("combine: %+v", err)
	}
	if got := set.Amount("USD"); got != 125 {
		t.Fatalf("USD: got %d", got)
	}
	if got := set.Amount("MXN"); got != 50 {
		t.Fatalf("MXN: got %d", got)
	}
	if got := set.Amount("BRL"); got != 0 {
		t.Fatalf("BRL: got %d", got)
	}

	// Subtracting everything removes the currency from the set.
	set, err = set.Combine(NewCoin(-125, "USD"))
	if err != nil {
		t.Fatalf("combine: %+v", err)
	}
	if len(set) != 1 || set[0].Ticker != "MXN" {
		t.Fatalf("bad set: %s", set)
	}

	// Going below zero is not allowed.
	if _, err := set.Combine(NewCoin(-51, "MXN")); !errors.ErrAmount.Is(err) {
		t.Fatalf("want amount error, got %v", err)
	}
}

func TestCoinsSorted(t *testing.T) {
	set, err := NewCoins(NewCoin(1, "MXN"), NewCoin(1, "BRL"), NewCoin(1, "USD"))
	if err != nil {
		t.Fatalf("new coins: %+v", err)
	}
	if err := set.Validate(); err != nil {
		t.Fatalf("validate: %+v", err)
	}
	if set[0].Ticker != "BRL" || set[1].Ticker != "MXN" || set[2].Ticker != "USD" {
		t.Fatalf("not sorted: %s", set)
	}
}
