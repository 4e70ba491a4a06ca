// Package vault implements the yield sources: per-bond deposit vaults
// with share accounting against a fixed-point NAV, keeper-driven yield
// accrual, and external re-pricing.
package vault

import (
	sdkmath "cosmossdk.io/math"

	"github.com/iov-one/tenor/errors"
)

const (
	// NavScale is the fixed-point scale of NAV per share: a NAV of
	// 1,000,000 redeems one share for exactly one minor unit.
	NavScale = 1_000_000

	// SecondsPerYear is the accrual year length.
	SecondsPerYear = 365 * 24 * 60 * 60

	// MaxTargetAPYBps caps the configurable target yield at 50%.
	MaxTargetAPYBps = 5000
)

// SharesForValue returns floor(amount * NavScale / nav). Intermediate
// math is wide, narrowing overflow is rejected rather than wrapped.
func SharesForValue(amount, nav int64) (int64, error) {
	if amount < 0 {
		return 0, errors.Wrap(errors.ErrAmount, "negative amount")
	}
	if nav <= 0 {
		return 0, errors.Wrap(errors.ErrState, "nav must be positive")
	}
	shares := sdkmath.NewInt(amount).MulRaw(NavScale).QuoRaw(nav)
	if !shares.IsInt64() {
		return 0, errors.Wrap(errors.ErrOverflow, "share count")
	}
	return shares.Int64(), nil
}

// ValueForShares returns floor(shares * nav / NavScale), the inverse of
// SharesForValue up to rounding loss.
func ValueForShares(shares, nav int64) (int64, error) {
	if shares < 0 {
		return 0, errors.Wrap(errors.ErrAmount, "negative share count")
	}
	if nav <= 0 {
		return 0, errors.Wrap(errors.ErrState, "nav must be positive")
	}
	value := sdkmath.NewInt(shares).MulRaw(nav).QuoRaw(NavScale)
	if !value.IsInt64() {
		return 0, errors.Wrap(errors.ErrOverflow, "share value")
	}
	return value.Int64(), nil
}

// accrualIncrement returns nav * apyBps * elapsed / (10000 * SecondsPerYear).
func accrualIncrement(nav int64, apyBps uint16, elapsed int64) (int64, error) {
	inc := sdkmath.NewInt(nav).
		MulRaw(int64(apyBps)).
		MulRaw(elapsed).
		QuoRaw(10_000 * SecondsPerYear)
	if !inc.IsInt64() {
		return 0, errors.Wrap(errors.ErrOverflow, "accrual increment")
	}
	return inc.Int64(), nil
}
