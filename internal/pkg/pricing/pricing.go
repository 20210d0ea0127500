package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/landmark-crm/landmark/internal/pkg/entitlements"
)

// Additional-seat caps per tier. The base plan includes exactly one user.
const (
	SeatCapSingleUser = 0
	SeatCapTeam       = 19
	SeatCapCorporate  = 74
)

// YearlyDiscount is the discount applied to yearly billing. Catalog yearly
// prices are already discount-adjusted; the calculator only applies it to
// per-seat cost.
var YearlyDiscount = decimal.RequireFromString("0.2")

// Plan is the pricing shape of one tier. A zero PerSeatPrice means the plan
// sells no additional seats.
type Plan struct {
	Tier         entitlements.Tier
	MonthlyPrice decimal.Decimal
	YearlyPrice  decimal.Decimal
	PerSeatPrice decimal.Decimal
	SeatCap      int64
}

// SeatBreakdown splits an additional-seat request into within-cap and
// over-cap counts for display callers. The calculator itself charges the
// same flat per-seat rate on both sides of the cap; the split only drives
// the overage flag in the UI.
type SeatBreakdown struct {
	WithinCap  int64
	OverCap    int64
	HasOverage bool
}

// Seats computes the seat breakdown for a requested additional-seat count.
func (p Plan) Seats(additionalUsers int64) SeatBreakdown {
	if additionalUsers < 0 {
		additionalUsers = 0
	}
	within := additionalUsers
	if within > p.SeatCap {
		within = p.SeatCap
	}
	over := additionalUsers - within
	return SeatBreakdown{
		WithinCap:  within,
		OverCap:    over,
		HasOverage: over > 0,
	}
}

// CalculateTotal computes the displayed total for a plan. It is a pure
// function: out-of-range seat counts are computed, not rejected — the
// checkout boundary owns rejection. Results are fixed to 2 decimal places
// and every call recomputes from scratch.
func CalculateTotal(plan Plan, yearly bool, additionalUsers int64) decimal.Decimal {
	base := plan.MonthlyPrice
	if yearly {
		base = plan.YearlyPrice
	}

	if plan.PerSeatPrice.IsZero() || additionalUsers <= 0 {
		return base.Round(2)
	}

	seats := plan.Seats(additionalUsers)
	seatCost := plan.PerSeatPrice.Mul(decimal.NewFromInt(seats.WithinCap + seats.OverCap))
	if yearly {
		seatCost = seatCost.
			Mul(decimal.NewFromInt(12)).
			Mul(decimal.NewFromInt(1).Sub(YearlyDiscount))
	}
	return base.Add(seatCost).Round(2)
}

// DefaultPlans returns the catalog-level pricing table. Yearly prices carry
// the yearly discount already applied.
func DefaultPlans() map[entitlements.Tier]Plan {
	return map[entitlements.Tier]Plan{
		entitlements.TierSingleUser: {
			Tier:         entitlements.TierSingleUser,
			MonthlyPrice: decimal.RequireFromString("29.00"),
			YearlyPrice:  decimal.RequireFromString("278.40"),
			PerSeatPrice: decimal.Zero,
			SeatCap:      SeatCapSingleUser,
		},
		entitlements.TierTeam: {
			Tier:         entitlements.TierTeam,
			MonthlyPrice: decimal.RequireFromString("49.00"),
			YearlyPrice:  decimal.RequireFromString("470.40"),
			PerSeatPrice: decimal.RequireFromString("15.00"),
			SeatCap:      SeatCapTeam,
		},
		entitlements.TierCorporate: {
			Tier:         entitlements.TierCorporate,
			MonthlyPrice: decimal.RequireFromString("99.00"),
			YearlyPrice:  decimal.RequireFromString("950.40"),
			PerSeatPrice: decimal.RequireFromString("12.00"),
			SeatCap:      SeatCapCorporate,
		},
	}
}

// PlanForTier resolves a tier name to its plan, falling back to the base
// plan for unknown tiers.
func PlanForTier(tier string) Plan {
	plans := DefaultPlans()
	if p, ok := plans[entitlements.NormalizeTier(tier)]; ok {
		return p
	}
	return plans[entitlements.TierSingleUser]
}
