package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/edunomics/superintendent/internal/controllers/v1"
	"github.com/edunomics/superintendent/internal/game"
	"github.com/edunomics/superintendent/internal/httputil"
	"github.com/edunomics/superintendent/internal/models"
	"github.com/edunomics/superintendent/internal/oracle"
	"github.com/edunomics/superintendent/internal/simulation"
	"github.com/edunomics/superintendent/internal/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCreateSession() {
	session := suite.createTestSession(simulation.ScenarioUrban)

	scenario, _ := simulation.LookupScenario(simulation.ScenarioUrban)
	suite.Assert().Equal(models.PhaseBriefing, session.Phase)
	suite.Assert().Equal(scenario.Title, session.Title)
	suite.Assert().Len(session.Hand, simulation.HandSize)
	suite.Assert().Equal("http://example.com/v1/sessions/"+session.ID.String(), session.Links.Self)
	suite.Assert().Equal(session.Links.Self+"/narrative-template", session.Links.NarrativeTemplate)
}

func (suite *TestSuiteStandard) TestCreateSessionFails() {
	tests := []struct {
		name   string
		body   any
		status int
		err    string
	}{
		{"Empty body", nil, http.StatusBadRequest, httputil.ErrRequestBodyEmpty.Error()},
		{"Broken body", `{ "scenario": 3 }`, http.StatusBadRequest, "scenario must be of type string"},
		{"No scenario", v1.SessionCreate{}, http.StatusBadRequest, game.ErrMissingScenario.Error()},
		{"Unknown scenario", v1.SessionCreate{Scenario: "lunar"}, http.StatusBadRequest, simulation.ErrUnknownScenario.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.router, http.MethodPost, "http://example.com/v1/sessions", tt.body)
			test.AssertHTTPStatus(t, tt.status, &r)
			assert.Contains(t, test.DecodeError(t, r.Body.Bytes()), tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestCreateSessionDistrictFallback() {
	response := suite.do(http.MethodPost, "/v1/sessions", v1.SessionCreate{
		District: &simulation.District{Name: "Springfield Public Schools", Location: "Springfield, IL", State: "Illinois"},
	}, http.StatusCreated)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(simulation.ScenarioSuburban, response.Data.ScenarioID, "without a model, district sessions fall back to the suburban scenario")
}

func (suite *TestSuiteStandard) TestCreateSessionDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), suite.router, http.MethodPost, "http://example.com/v1/sessions", v1.SessionCreate{Scenario: simulation.ScenarioRural})
	test.AssertHTTPStatus(suite.T(), http.StatusInternalServerError, &r)
	suite.Assert().Equal(models.ErrGeneral.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))
}

func (suite *TestSuiteStandard) TestGetSession() {
	session := suite.createTestSession(simulation.ScenarioRural)

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing", session.ID.String(), http.StatusOK},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"No session with this ID", uuid.NewString(), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.router, http.MethodGet, "http://example.com/v1/sessions/"+tt.id, nil)
			test.AssertHTTPStatus(t, tt.status, &r)
		})
	}
}

func (suite *TestSuiteStandard) TestDeleteSession() {
	session := suite.createTestSession(simulation.ScenarioRural)
	path := "http://example.com/v1/sessions/" + session.ID.String()

	r := test.Request(suite.T(), suite.router, http.MethodDelete, path, nil)
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)

	r = test.Request(suite.T(), suite.router, http.MethodGet, path, nil)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
	suite.Assert().Equal("there is no session matching your query", test.DecodeError(suite.T(), r.Body.Bytes()))

	r = test.Request(suite.T(), suite.router, http.MethodDelete, path, nil)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}

func (suite *TestSuiteStandard) TestAcceptBriefing() {
	session := suite.playingSession(simulation.ScenarioSuburban)
	suite.Assert().Equal(models.PhasePlaying, session.Phase)

	r := test.Request(suite.T(), suite.router, http.MethodPost, session.Links.Accept, nil)
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
	suite.Assert().Contains(test.DecodeError(suite.T(), r.Body.Bytes()), game.ErrWrongPhase.Error())
}

func (suite *TestSuiteStandard) TestMovesUndoRedo() {
	session := suite.playingSession(simulation.ScenarioUrban)
	id := session.ID.String()
	card := session.Hand[0]

	response := suite.do(http.MethodPost, "/v1/sessions/"+id+"/moves", v1.MoveCreate{Card: card.ID, Selection: simulation.SelectionReject}, http.StatusOK)
	suite.Assert().Equal(simulation.SelectionReject, response.Data.Hand[0].Selected)
	suite.Assert().True(response.Data.CanUndo)
	suite.Assert().False(response.Data.CanRedo)

	response = suite.do(http.MethodPost, "/v1/sessions/"+id+"/undo", nil, http.StatusOK)
	suite.Assert().Equal(simulation.SelectionNone, response.Data.Hand[0].Selected)
	suite.Assert().False(response.Data.CanUndo)
	suite.Assert().True(response.Data.CanRedo)

	response = suite.do(http.MethodPost, "/v1/sessions/"+id+"/redo", nil, http.StatusOK)
	suite.Assert().Equal(simulation.SelectionReject, response.Data.Hand[0].Selected)

	response = suite.do(http.MethodPost, "/v1/sessions/"+id+"/redo", nil, http.StatusOK)
	suite.Assert().Equal(simulation.SelectionReject, response.Data.Hand[0].Selected, "redo at the end of the history does nothing")
}

func (suite *TestSuiteStandard) TestMoveFails() {
	session := suite.playingSession(simulation.ScenarioUrban)

	var savings simulation.Card
	for _, c := range session.Hand {
		if c.Cost.IsNegative() {
			savings = c
			break
		}
	}
	suite.Require().NotEmpty(savings.ID, "the urban hand contains savings")

	tests := []struct {
		name string
		move v1.MoveCreate
		err  error
	}{
		{"Unknown card", v1.MoveCreate{Card: "p_unknown", Selection: simulation.SelectionFund}, simulation.ErrUnknownCard},
		{"Invalid selection", v1.MoveCreate{Card: session.Hand[0].ID, Selection: "Maybe"}, simulation.ErrInvalidSelection},
		{"Savings with one-time money", v1.MoveCreate{Card: savings.ID, Selection: simulation.SelectionOneTime}, simulation.ErrSavingsOneTime},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.router, http.MethodPost, session.Links.Moves, tt.move)
			test.AssertHTTPStatus(t, http.StatusBadRequest, &r)
			assert.Contains(t, test.DecodeError(t, r.Body.Bytes()), tt.err.Error())
		})
	}
}

func (suite *TestSuiteStandard) TestCreateProposal() {
	session := suite.playingSession(simulation.ScenarioRural)

	response := suite.do(http.MethodPost, "/v1/sessions/"+session.ID.String()+"/proposals", v1.ProposalCreate{
		Title:     "Sell the bus depot",
		Amount:    decimal.NewFromInt(300_000),
		Type:      "savings",
		Frequency: "onetime",
	}, http.StatusCreated)

	hand := response.Data.Hand
	suite.Require().Len(hand, simulation.HandSize+1)
	custom := hand[len(hand)-1]
	suite.Assert().Equal(simulation.CategoryCustom, custom.Category)
	suite.Assert().True(custom.Cost.Equal(decimal.NewFromInt(-300_000)))
	suite.Assert().False(custom.IsRecurring)
}

func (suite *TestSuiteStandard) TestCreateProposalFails() {
	session := suite.playingSession(simulation.ScenarioRural)

	tests := []struct {
		name     string
		proposal v1.ProposalCreate
		err      string
	}{
		{"Unknown type", v1.ProposalCreate{Title: "Coaches", Amount: decimal.NewFromInt(10), Type: "gift", Frequency: "onetime"}, "the type of a proposal must be one of expense, savings"},
		{"Unknown frequency", v1.ProposalCreate{Title: "Coaches", Amount: decimal.NewFromInt(10), Type: "expense", Frequency: "weekly"}, "the frequency of a proposal must be one of recurring, onetime"},
		{"No title", v1.ProposalCreate{Amount: decimal.NewFromInt(10), Type: "expense", Frequency: "onetime"}, game.ErrInvalidProposal.Error()},
		{"No amount", v1.ProposalCreate{Title: "Coaches", Type: "expense", Frequency: "onetime"}, game.ErrInvalidProposal.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.router, http.MethodPost, session.Links.Proposals, tt.proposal)
			test.AssertHTTPStatus(t, http.StatusBadRequest, &r)
			assert.Equal(t, tt.err, test.DecodeError(t, r.Body.Bytes()))
		})
	}
}

func (suite *TestSuiteStandard) TestNarrativeTemplate() {
	session := suite.playingSession(simulation.ScenarioSuburban)

	r := test.Request(suite.T(), suite.router, http.MethodGet, session.Links.NarrativeTemplate, nil)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.NarrativeTemplateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(simulation.NarrativeTemplate(session.Hand), response.Data.Narrative)
}

func (suite *TestSuiteStandard) TestSubmitChatAdvance() {
	session := suite.sortAll(suite.playingSession(simulation.ScenarioSuburban))
	id := session.ID.String()
	suite.Require().True(session.AllSorted)

	r := test.Request(suite.T(), suite.router, http.MethodPost, session.Links.Submissions, v1.SubmissionCreate{Narrative: "Too short"})
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
	suite.Assert().Equal(game.ErrNarrativeTooShort.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))

	response := suite.do(http.MethodPost, "/v1/sessions/"+id+"/submissions", v1.SubmissionCreate{Narrative: "We hold the line on every new program this year."}, http.StatusOK)
	suite.Assert().Equal(models.PhaseJudged, response.Data.Phase)
	suite.Require().NotNil(response.Data.Verdict)
	suite.Assert().Equal(oracle.FallbackVerdict(), *response.Data.Verdict)

	response = suite.do(http.MethodPost, "/v1/sessions/"+id+"/chat", v1.ChatCreate{Message: "Why did it pass?"}, http.StatusOK)
	chat := response.Data.Chat
	suite.Require().Len(chat, 3)
	suite.Assert().Equal(simulation.RoleUser, chat[1].Role)
	suite.Assert().Equal(oracle.ChatUnavailable, chat[2].Text)

	response = suite.do(http.MethodPost, "/v1/sessions/"+id+"/advance", nil, http.StatusOK)
	suite.Assert().Equal(models.PhasePlaying, response.Data.Phase)
	suite.Assert().Nil(response.Data.Verdict)
	suite.Assert().Len(response.Data.Hand, simulation.HandSize)

	r = test.Request(suite.T(), suite.router, http.MethodGet, session.Links.Years, nil)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var years v1.YearListResponse
	test.DecodeResponse(suite.T(), &r, &years)
	suite.Require().Len(years.Data, 1)
	suite.Assert().Equal("We hold the line on every new program this year.", years.Data[0].Narrative)
}

func (suite *TestSuiteStandard) TestReviseAndChatFails() {
	session := suite.sortAll(suite.playingSession(simulation.ScenarioRural))

	r := test.Request(suite.T(), suite.router, http.MethodPost, session.Links.Chat, v1.ChatCreate{Message: "Hello?"})
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
	suite.Assert().Equal(game.ErrWrongPhase.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))

	suite.do(http.MethodPost, "/v1/sessions/"+session.ID.String()+"/submissions", v1.SubmissionCreate{Narrative: "A careful and balanced plan."}, http.StatusOK)

	r = test.Request(suite.T(), suite.router, http.MethodPost, session.Links.Chat, v1.ChatCreate{Message: "   "})
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
	suite.Assert().Equal(game.ErrEmptyMessage.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))

	response := suite.do(http.MethodPost, "/v1/sessions/"+session.ID.String()+"/revise", nil, http.StatusOK)
	suite.Assert().Equal(models.PhasePlaying, response.Data.Phase)
	suite.Assert().Nil(response.Data.Verdict)
	suite.Assert().Empty(response.Data.Chat)
}

func (suite *TestSuiteStandard) TestSessionOptions() {
	session := suite.createTestSession(simulation.ScenarioRural)
	id := session.ID.String()

	tests := []struct {
		name   string
		path   string
		status int
		allow  string
	}{
		{"List", "/v1/sessions", http.StatusNoContent, "OPTIONS, POST"},
		{"Detail", "/v1/sessions/" + id, http.StatusNoContent, "OPTIONS, GET, DELETE"},
		{"Moves", "/v1/sessions/" + id + "/moves", http.StatusNoContent, "OPTIONS, POST"},
		{"Advance", "/v1/sessions/" + id + "/advance", http.StatusNoContent, "OPTIONS, POST"},
		{"Years", "/v1/sessions/" + id + "/years", http.StatusNoContent, "OPTIONS, GET"},
		{"Narrative template", "/v1/sessions/" + id + "/narrative-template", http.StatusNoContent, "OPTIONS, GET"},
		{"Not a valid UUID", "/v1/sessions/NotParseableAsUUID", http.StatusBadRequest, ""},
		{"No session with this ID", "/v1/sessions/" + uuid.NewString() + "/chat", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.router, http.MethodOptions, "http://example.com"+tt.path, nil)
			test.AssertHTTPStatus(t, tt.status, &r)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}
}
