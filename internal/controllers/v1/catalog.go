package v1

import (
	"net/http"

	"github.com/edunomics/superintendent/internal/httputil"
	"github.com/edunomics/superintendent/internal/simulation"
	"github.com/gin-gonic/gin"
)

// RegisterScenarioRoutes registers the routes for scenarios with
// the RouterGroup that is passed.
func (co Controller) RegisterScenarioRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsScenarioList)
	r.GET("", co.GetScenarios)
}

// RegisterCardRoutes registers the routes for the card catalog with
// the RouterGroup that is passed.
func (co Controller) RegisterCardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsCardList)
	r.GET("", co.GetCards)
}

// RegisterFactRoutes registers the routes for education facts with
// the RouterGroup that is passed.
func (co Controller) RegisterFactRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsFact)
	r.GET("", co.GetFact)
}

type ScenarioListResponse struct {
	Data  []simulation.Scenario `json:"data"`                                                     // List of scenarios
	Error *string               `json:"error" example:"the scenario query parameter must be set"` // The error, if any occurred
}

type CardListResponse struct {
	Data  []simulation.PoolCard `json:"data"`                                              // Cards that can be proposed in the scenario
	Error *string               `json:"error" example:"there is no scenario with this id"` // The error, if any occurred
}

type Fact struct {
	Text string `json:"text" example:"About 22% of school spending goes to teacher salaries."` // An education statistic
}

type FactResponse struct {
	Data Fact `json:"data"` // The fact
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Scenarios
// @Success		204
// @Router			/v1/scenarios [options]
func (co Controller) OptionsScenarioList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		List scenarios
// @Description	Returns the built-in scenarios with their initial budget and schools
// @Tags			Scenarios
// @Produce		json
// @Success		200	{object}	ScenarioListResponse
// @Router			/v1/scenarios [get]
func (co Controller) GetScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, ScenarioListResponse{Data: simulation.Scenarios()})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Cards
// @Success		204
// @Router			/v1/cards [options]
func (co Controller) OptionsCardList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		List cards
// @Description	Returns the cards of the catalog that can be proposed in a scenario
// @Tags			Cards
// @Produce		json
// @Success		200	{object}	CardListResponse
// @Failure		400	{object}	CardListResponse
// @Param			scenario	query	string	true	"ID of the scenario"
// @Router			/v1/cards [get]
func (co Controller) GetCards(c *gin.Context) {
	var query QueryScenario
	if err := c.ShouldBindQuery(&query); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, CardListResponse{Error: &s})
		return
	}

	if query.Scenario == "" {
		s := errScenarioNotSetInQuery.Error()
		c.JSON(http.StatusBadRequest, CardListResponse{Error: &s})
		return
	}

	if _, err := simulation.LookupScenario(query.Scenario); err != nil {
		s := err.Error()
		c.JSON(status(err), CardListResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, CardListResponse{
		Data: co.Service.Generator().Pool().Eligible(query.Scenario, nil),
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Facts
// @Success		204
// @Router			/v1/facts [options]
func (co Controller) OptionsFact(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get fact
// @Description	Returns a statistic about education funding. Falls back to a built-in list when no model is available.
// @Tags			Facts
// @Produce		json
// @Success		200	{object}	FactResponse
// @Router			/v1/facts [get]
func (co Controller) GetFact(c *gin.Context) {
	c.JSON(http.StatusOK, FactResponse{Data: Fact{Text: co.Service.Fact(c.Request.Context())}})
}
