// Package v1 implements the v1 HTTP API of the superintendent simulation.
package v1

import (
	"net/http"

	"github.com/edunomics/superintendent/internal/game"
	"github.com/edunomics/superintendent/internal/httputil"
	"github.com/edunomics/superintendent/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Controller serves the v1 API from a game service.
type Controller struct {
	Service *game.Service
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	co.RegisterRootRoutes(r.Group(""))
	co.RegisterScenarioRoutes(r.Group("/scenarios"))
	co.RegisterCardRoutes(r.Group("/cards"))
	co.RegisterFactRoutes(r.Group("/facts"))
	co.RegisterSessionRoutes(r.Group("/sessions"))
}

func (co Controller) RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", co.Get)
	r.OPTIONS("", co.Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Scenarios string `json:"scenarios" example:"https://example.com/api/v1/scenarios"` // URL of Scenario collection endpoint
	Cards     string `json:"cards" example:"https://example.com/api/v1/cards"`         // URL of Card collection endpoint
	Facts     string `json:"facts" example:"https://example.com/api/v1/facts"`         // URL of the education fact endpoint
	Sessions  string `json:"sessions" example:"https://example.com/api/v1/sessions"`   // URL of Session collection endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func (co Controller) Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Scenarios: url + "/v1/scenarios",
			Cards:     url + "/v1/cards",
			Facts:     url + "/v1/facts",
			Sessions:  url + "/v1/sessions",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func (co Controller) Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// sessionID binds the session ID from the path. If that fails,
// the error response is written and ok is false.
func sessionID(c *gin.Context) (id uuid.UUID, ok bool) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidUUID.Error(),
		})
		return uuid.Nil, false
	}

	return uri.ID.UUID, true
}
