package opendata_test

import (
	"testing"

	"github.com/edunomics/superintendent/internal/opendata"
	"github.com/edunomics/superintendent/internal/simulation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestApplyFinancials(t *testing.T) {
	scenario, err := simulation.LookupScenario(simulation.ScenarioSuburban)
	assert.Nil(t, err)

	state := opendata.ApplyFinancials(scenario.InitialState, opendata.Financials{
		Revenue:        decimal.NewFromInt(125_000_000),
		Expenditure:    decimal.NewFromInt(128_000_000),
		Salaries:       decimal.NewFromInt(90_000_000),
		FederalRevenue: decimal.NewFromInt(9_000_000),
	})

	assert.True(t, decimal.NewFromInt(106_000_000).Equal(state.Revenue.Local))
	assert.True(t, decimal.NewFromInt(10_000_000).Equal(state.Revenue.State))
	assert.True(t, decimal.NewFromInt(9_000_000).Equal(state.Revenue.FederalOneTime))
	assert.True(t, decimal.NewFromInt(90_000_000).Equal(state.Expenditures.Personnel))
	assert.True(t, decimal.NewFromInt(37_000_000).Equal(state.Expenditures.Operations))
	assert.True(t, decimal.NewFromInt(1_000_000).Equal(state.Expenditures.Fixed))
	assert.True(t, decimal.NewFromInt(-3_000_000).Equal(state.StructuralGap))

	assert.Equal(t, scenario.InitialState.Enrollment, state.Enrollment)
	assert.Equal(t, scenario.InitialState.CommunityTrust, state.CommunityTrust)
	assert.True(t, scenario.InitialState.FundBalance.Equal(state.FundBalance))
}

func TestApplyFinancialsSmallDistrict(t *testing.T) {
	state := opendata.ApplyFinancials(simulation.GameState{}, opendata.Financials{
		Revenue:        decimal.NewFromInt(8_000_000),
		Expenditure:    decimal.NewFromInt(1_500_000),
		Salaries:       decimal.NewFromInt(1_000_000),
		FederalRevenue: decimal.NewFromInt(500_000),
	})

	assert.True(t, state.Revenue.Local.IsZero())
	assert.True(t, state.Expenditures.Operations.IsZero())
	assert.True(t, decimal.NewFromInt(6_500_000).Equal(state.StructuralGap))
}
