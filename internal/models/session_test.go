package models_test

import (
	"time"

	"github.com/edunomics/superintendent/internal/models"
	"github.com/edunomics/superintendent/internal/simulation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestSessionRoundTrip() {
	scenario, err := simulation.LookupScenario(simulation.ScenarioUrban)
	suite.Require().NoError(err)

	hand := []simulation.Card{
		{ID: "u_c2", Title: "Hire Reading Specialists", Cost: decimal.NewFromInt(600_000), Effects: []simulation.Effect{simulation.EffectReadingBoost}, Selected: simulation.SelectionNone},
	}
	moved := append([]simulation.Card{}, hand...)
	moved[0].Selected = simulation.SelectionFund

	session := suite.createTestSession(models.Session{
		ScenarioID:   scenario.ID,
		Title:        scenario.Title,
		District:     simulation.District{Name: "Springfield Public Schools", State: "Illinois"},
		Base:         scenario.InitialState,
		Schools:      scenario.InitialSchools,
		History:      [][]simulation.Card{hand, moved},
		HistoryIndex: 1,
		FundedUnique: map[string]bool{"u_c1": true},
	})
	suite.Assert().NotEqual(uuid.Nil, session.ID)

	found, err := models.FindSession(models.DB, session.ID)
	suite.Require().NoError(err)

	suite.Assert().Equal(models.PhasePlaying, found.Phase)
	suite.Assert().Equal("Springfield Public Schools", found.District.Name)
	suite.Assert().True(scenario.InitialState.StructuralGap.Equal(found.Base.StructuralGap))
	suite.Assert().Len(found.Schools, len(scenario.InitialSchools))
	suite.Assert().Equal(1, found.HistoryIndex)
	suite.Assert().Equal(simulation.SelectionFund, found.History[1][0].Selected)
	suite.Assert().Equal(simulation.SelectionNone, found.History[0][0].Selected)
	suite.Assert().True(found.History[1][0].Cost.Equal(decimal.NewFromInt(600_000)))
	suite.Assert().True(found.FundedUnique["u_c1"])
	suite.Assert().Nil(found.Verdict)
	suite.Assert().Equal(time.UTC, found.CreatedAt.Location())
}

func (suite *TestSuiteStandard) TestSessionVerdictAndChat() {
	session := suite.createTestSession(models.Session{ScenarioID: simulation.ScenarioRural})

	session.Phase = models.PhaseJudged
	session.Verdict = &simulation.Verdict{Approved: true, VoteCount: "5-2", Feedback: "Well done."}
	session.Chat = []simulation.ChatMessage{{Role: simulation.RoleBoard, Text: "Well done."}}
	suite.Require().NoError(models.DB.Save(&session).Error)

	found, err := models.FindSession(models.DB, session.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(found.Verdict)
	suite.Assert().Equal("5-2", found.Verdict.VoteCount)
	suite.Assert().Equal(session.Chat, found.Chat)
}

func (suite *TestSuiteStandard) TestSessionInvalidPhase() {
	session := models.Session{ScenarioID: simulation.ScenarioUrban, Phase: "finished"}
	err := models.DB.Create(&session).Error
	suite.Assert().ErrorIs(err, models.ErrInvalidPhase)
}

func (suite *TestSuiteStandard) TestSessionNotFound() {
	_, err := models.FindSession(models.DB, uuid.New())
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Contains(err.Error(), "there is no session matching your query")
}

func (suite *TestSuiteStandard) TestSessionDeleted() {
	session := suite.createTestSession(models.Session{ScenarioID: simulation.ScenarioUrban})
	suite.Require().NoError(models.DB.Delete(&session).Error)

	_, err := models.FindSession(models.DB, session.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestYearResults() {
	session := suite.createTestSession(models.Session{ScenarioID: simulation.ScenarioSuburban})

	for _, year := range []int{2026, 2025} {
		result := models.YearResult{
			SessionID: session.ID,
			Year:      year,
			Verdict:   simulation.Verdict{Approved: true, VoteCount: "7-0"},
			State:     simulation.GameState{Year: year, StructuralGap: decimal.NewFromInt(-1_500_000)},
		}
		suite.Require().NoError(models.DB.Omit("Session").Create(&result).Error)
	}

	results, err := session.YearResults(models.DB)
	suite.Require().NoError(err)
	suite.Require().Len(results, 2)
	suite.Assert().Equal(2025, results[0].Year)
	suite.Assert().Equal(2026, results[1].Year)
	suite.Assert().True(results[0].State.StructuralGap.Equal(decimal.NewFromInt(-1_500_000)))
}

func (suite *TestSuiteStandard) TestYearResultUnknownSession() {
	result := models.YearResult{SessionID: uuid.New(), Year: 2025}
	err := models.DB.Omit("Session").Create(&result).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral, "foreign key violations are driver errors")
}

func (suite *TestSuiteStandard) TestClosedDatabase() {
	suite.CloseDB()

	_, err := models.FindSession(models.DB, uuid.New())
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
