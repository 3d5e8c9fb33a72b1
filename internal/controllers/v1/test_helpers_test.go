package v1_test

import (
	"net/http"

	v1 "github.com/edunomics/superintendent/internal/controllers/v1"
	"github.com/edunomics/superintendent/internal/simulation"
	"github.com/edunomics/superintendent/internal/test"
)

// do sends a request to the v1 API and decodes a session response.
func (suite *TestSuiteStandard) do(method, path string, body any, expectedStatus int) v1.SessionResponse {
	t := suite.T()

	r := test.Request(t, suite.router, method, "http://example.com"+path, body)
	test.AssertHTTPStatus(t, expectedStatus, &r)

	var response v1.SessionResponse
	test.DecodeResponse(t, &r, &response)
	return response
}

// createTestSession starts a session for the scenario.
func (suite *TestSuiteStandard) createTestSession(scenario string) v1.Session {
	response := suite.do(http.MethodPost, "/v1/sessions", v1.SessionCreate{Scenario: scenario}, http.StatusCreated)
	suite.Require().NotNil(response.Data)
	return *response.Data
}

// playingSession starts a session for the scenario and accepts its briefing.
func (suite *TestSuiteStandard) playingSession(scenario string) v1.Session {
	session := suite.createTestSession(scenario)

	response := suite.do(http.MethodPost, "/v1/sessions/"+session.ID.String()+"/accept", nil, http.StatusOK)
	suite.Require().NotNil(response.Data)
	return *response.Data
}

// sortAll rejects every card in the hand.
func (suite *TestSuiteStandard) sortAll(session v1.Session) v1.Session {
	for _, card := range session.Hand {
		response := suite.do(http.MethodPost, "/v1/sessions/"+session.ID.String()+"/moves", v1.MoveCreate{Card: card.ID, Selection: simulation.SelectionReject}, http.StatusOK)
		session = *response.Data
	}
	return session
}
