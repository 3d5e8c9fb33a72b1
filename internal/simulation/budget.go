package simulation

import (
	"github.com/shopspring/decimal"
)

const (
	minTrust = 0
	maxTrust = 100
)

// OneTimeSpend is the sum of the cost of all cards funded with one-time money.
func OneTimeSpend(decisions []Card) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range decisions {
		if d.Selected == SelectionOneTime {
			sum = sum.Add(d.Cost)
		}
	}
	return sum
}

// ProjectBudget computes the state that results from applying the decisions to the base state.
//
// Recurring costs change the structural gap regardless of how they are paid for.
// The fund balance pays for recurring funding and for one-time funding that exceeds
// the federal one-time money available. Every funded card costs trust according to its risk.
func ProjectBudget(base GameState, decisions []Card) GameState {
	recurringAdjustment := decimal.Zero
	recurringSpend := decimal.Zero
	trustDelta := 0

	for _, d := range decisions {
		if !d.Selected.Funded() {
			continue
		}

		if d.IsRecurring {
			recurringAdjustment = recurringAdjustment.Add(d.Cost)
		}

		if d.Selected == SelectionFund {
			recurringSpend = recurringSpend.Add(d.Cost)
		}

		trustDelta -= d.RiskFactor.TrustPenalty()
	}

	excessOneTimeSpend := decimal.Max(decimal.Zero, OneTimeSpend(decisions).Sub(base.Revenue.FederalOneTime))

	derived := base
	derived.StructuralGap = base.StructuralGap.Sub(recurringAdjustment)
	derived.FundBalance = base.FundBalance.Sub(recurringSpend.Add(excessOneTimeSpend))
	derived.CommunityTrust = clampTrust(base.CommunityTrust + trustDelta)

	return derived
}

func clampTrust(trust int) int {
	return max(minTrust, min(maxTrust, trust))
}
