// Package tier implements the access policy: which bond types and yield
// source categories each verification tier may use, and how much value a
// tier may deposit per rolling month. The policy is pure lookup with no
// state; every set grows with the tier and tier 0 has no access.
package tier

import (
	"math"

	"github.com/iov-one/tenor/x/bond"
)

// Tiers, lowest to highest:
//
//	0 Unverified  - no access
//	1 Bronze      - basic KYC
//	2 Silver      - enhanced KYC
//	3 Gold        - accredited investor
//	4 Diamond     - institutional

// Unlimited is the monthly limit sentinel of the top tier.
const Unlimited = math.MaxInt64

// MonthlyLimit returns the rolling 30-day deposit ceiling for the given
// tier and bond type, in minor units of the bond's native currency.
// Unknown tiers and disallowed combinations return zero.
func MonthlyLimit(tier uint8, t bond.Type) int64 {
	switch t {
	case bond.UsTBill, bond.Custom:
		switch tier {
		case 1:
			return 5_000_000_000 // $5,000
		case 2:
			return 50_000_000_000 // $50,000
		case 3:
			return 500_000_000_000 // $500,000
		case 4:
			return Unlimited
		}
	case bond.MxCetes:
		switch tier {
		case 1:
			return 100_000_000_000 // MXN 100,000
		case 2:
			return 1_000_000_000_000 // MXN 1,000,000
		case 3:
			return 10_000_000_000_000 // MXN 10,000,000
		case 4:
			return Unlimited
		}
	case bond.BrTesouro:
		switch tier {
		case 1:
			return 25_000_000_000 // BRL 25,000
		case 2:
			return 250_000_000_000 // BRL 250,000
		case 3:
			return 2_500_000_000_000 // BRL 2,500,000
		case 4:
			return Unlimited
		}
	case bond.JpJgb:
		switch tier {
		case 1:
			return 500_000_000_000 // JPY 500,000
		case 2:
			return 5_000_000_000_000 // JPY 5,000,000
		case 3:
			return 50_000_000_000_000 // JPY 50,000,000
		case 4:
			return Unlimited
		}
	}
	return 0
}

// AllowedBonds returns the bond types the tier may deposit into.
func AllowedBonds(tier uint8) []bond.Type {
	switch tier {
	case 1:
		return []bond.Type{bond.UsTBill, bond.JpJgb}
	case 2:
		return []bond.Type{bond.UsTBill, bond.JpJgb, bond.MxCetes}
	case 3:
		return []bond.Type{bond.UsTBill, bond.JpJgb, bond.MxCetes, bond.BrTesouro}
	case 4:
		return []bond.Type{bond.UsTBill, bond.JpJgb, bond.MxCetes, bond.BrTesouro, bond.Custom}
	default:
		return nil
	}
}

// AllowedSources returns the yield source categories the tier may use.
func AllowedSources(tier uint8) []bond.SourceType {
	switch tier {
	case 1:
		return []bond.SourceType{bond.TBill, bond.SovereignBond}
	case 2:
		return []bond.SourceType{bond.TBill, bond.Lending, bond.SovereignBond}
	case 3:
		return []bond.SourceType{bond.TBill, bond.Lending, bond.Staking, bond.SovereignBond}
	case 4:
		return []bond.SourceType{bond.TBill, bond.Lending, bond.Staking, bond.Synthetic, bond.SovereignBond}
	default:
		return nil
	}
}

// Allows returns true if the tier may deposit into the bond type.
func Allows(tier uint8, t bond.Type) bool {
	for _, allowed := range AllowedBonds(tier) {
		if allowed == t {
			return true
		}
	}
	return false
}

// AllowsSource returns true if the tier may use the source category.
func AllowsSource(tier uint8, s bond.SourceType) bool {
	for _, allowed := range AllowedSources(tier) {
		if allowed == s {
			return true
		}
	}
	return false
}

// Name returns the tier display name.
func Name(tier uint8) string {
	switch tier {
	case 0:
		return "Unverified"
	case 1:
		return "Bronze"
	case 2:
		return "Silver"
	case 3:
		return "Gold"
	case 4:
		return "Diamond"
	default:
		return "Unknown"
	}
}
