package opendata

import (
	"github.com/edunomics/superintendent/internal/simulation"
	"github.com/shopspring/decimal"
)

var (
	// The census does not split revenue by source, the state share is a placeholder.
	stateRevenue = decimal.NewFromInt(10_000_000)
	fixedCosts   = decimal.NewFromInt(1_000_000)
)

// ApplyFinancials replaces the money figures of a state with reported financials.
//
// Enrollment, fund balance, trust and year are kept.
func ApplyFinancials(state simulation.GameState, f Financials) simulation.GameState {
	state.Revenue = simulation.Revenue{
		Local:          decimal.Max(decimal.Zero, f.Revenue.Sub(f.FederalRevenue).Sub(stateRevenue)),
		State:          stateRevenue,
		FederalOneTime: f.FederalRevenue,
	}

	state.Expenditures = simulation.Expenditures{
		Personnel:  f.Salaries,
		Operations: decimal.Max(decimal.Zero, f.Expenditure.Sub(f.Salaries).Sub(fixedCosts)),
		Fixed:      fixedCosts,
	}

	state.StructuralGap = f.Revenue.Sub(f.Expenditure)
	return state
}
