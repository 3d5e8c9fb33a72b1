package simulation

import (
	"strings"

	"github.com/shopspring/decimal"
)

const CategoryCustom = "Custom"

// CustomCard builds a player authored proposal.
//
// amount is the magnitude, savings flips its sign. The effects are inferred
// from the title.
func CustomCard(id, title string, amount decimal.Decimal, savings, recurring bool) Card {
	cost := amount.Abs()
	if savings {
		cost = cost.Neg()
	}

	return Card{
		ID:              id,
		Title:           strings.TrimSpace(title),
		Description:     "Custom user proposal",
		Cost:            cost,
		IsRecurring:     recurring,
		RiskFactor:      RiskMedium,
		RiskDescription: "User generated strategy",
		Category:        CategoryCustom,
		Effects:         EffectsForTitle(title),
		Selected:        SelectionNone,
	}
}
