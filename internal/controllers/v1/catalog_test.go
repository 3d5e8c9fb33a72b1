package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/edunomics/superintendent/internal/controllers/v1"
	"github.com/edunomics/superintendent/internal/oracle"
	"github.com/edunomics/superintendent/internal/simulation"
	"github.com/edunomics/superintendent/internal/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestGetRoot() {
	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1", nil)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.Response
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(v1.Links{
		Scenarios: "http://example.com/v1/scenarios",
		Cards:     "http://example.com/v1/cards",
		Facts:     "http://example.com/v1/facts",
		Sessions:  "http://example.com/v1/sessions",
	}, response.Links)
}

func (suite *TestSuiteStandard) TestGetScenarios() {
	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/scenarios", nil)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.ScenarioListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	ids := make([]string, 0, len(response.Data))
	for _, s := range response.Data {
		ids = append(ids, s.ID)
	}
	suite.Assert().ElementsMatch([]string{simulation.ScenarioUrban, simulation.ScenarioSuburban, simulation.ScenarioRural}, ids)
}

func (suite *TestSuiteStandard) TestGetCards() {
	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/cards?scenario=rural", nil)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.CardListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotEmpty(response.Data)
	for _, c := range response.Data {
		suite.Assert().True(c.ValidFor(simulation.ScenarioRural), "card %s is not valid in the rural scenario", c.ID)
	}
}

func (suite *TestSuiteStandard) TestGetCardsFails() {
	tests := []struct {
		name  string
		query string
		err   string
	}{
		{"No scenario", "", "the scenario query parameter must be set"},
		{"Unknown scenario", "?scenario=lunar", simulation.ErrUnknownScenario.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.router, http.MethodGet, "http://example.com/v1/cards"+tt.query, nil)
			test.AssertHTTPStatus(t, http.StatusBadRequest, &r)
			assert.Contains(t, test.DecodeError(t, r.Body.Bytes()), tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestGetFact() {
	r := test.Request(suite.T(), suite.router, http.MethodGet, "http://example.com/v1/facts", nil)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.FactResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Contains(oracle.Facts(), response.Data.Text)
}

func (suite *TestSuiteStandard) TestCatalogOptions() {
	for _, path := range []string{"/v1", "/v1/scenarios", "/v1/cards", "/v1/facts"} {
		suite.T().Run(path, func(t *testing.T) {
			r := test.Request(t, suite.router, http.MethodOptions, "http://example.com"+path, nil)
			test.AssertHTTPStatus(t, http.StatusNoContent, &r)
			assert.Equal(t, "OPTIONS, GET", r.Header().Get("allow"))
		})
	}
}
