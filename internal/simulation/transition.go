package simulation

import (
	"github.com/shopspring/decimal"
)

// Inflation is the growth of the structural deficit from one year to the next.
var Inflation = decimal.NewFromInt(1_500_000)

// Transition is the start of a new budget year.
type Transition struct {
	Base         GameState       // Base state of the new year
	FundedUnique map[string]bool // Unique cards funded in any year so far
	Hand         []Card          // Fresh proposals for the new year
}

// FiscalCliff is the recurring cost that was paid for with one-time money
// and comes back as a deficit when that money runs out.
func FiscalCliff(decisions []Card) decimal.Decimal {
	cliff := decimal.Zero
	for _, d := range decisions {
		if d.Selected == SelectionOneTime && d.IsRecurring {
			cliff = cliff.Add(d.Cost)
		}
	}
	return cliff
}

// Advance rolls the derived state of a finished year into the base state of the next.
//
// state is the projected state for the decisions. Grants do not roll over, so the
// federal one-time revenue of the new year is zero.
func Advance(gen *Generator, scenarioID string, state GameState, decisions []Card, fundedUnique map[string]bool) Transition {
	funded := make(map[string]bool, len(fundedUnique))
	for id, ok := range fundedUnique {
		if ok {
			funded[id] = true
		}
	}

	pool := gen.Pool()
	for _, d := range decisions {
		if !d.Selected.Funded() {
			continue
		}
		if c, ok := pool.Lookup(d.ID); ok && c.Unique {
			funded[d.ID] = true
		}
	}

	base := state
	base.Year = state.Year + 1
	base.StructuralGap = state.StructuralGap.Sub(FiscalCliff(decisions)).Sub(Inflation)
	base.Revenue.FederalOneTime = decimal.Zero

	return Transition{
		Base:         base,
		FundedUnique: funded,
		Hand:         gen.Generate(scenarioID, base.StructuralGap, funded),
	}
}
