package healthz

import (
	"net/http"

	"github.com/edunomics/superintendent/internal/httputil"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Controller reports the health of the database connection.
type Controller struct {
	DB *gorm.DB
}

// RegisterRoutes registers the routes for the healthz endpoint.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.Options)
	r.GET("", co.Get)
}

// Options returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/healthz [options]
func (co Controller) Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// Get returns data about the application health
//
//	@Summary		Get health
//	@Description	Returns the application health and, if not healthy, an error
//	@Tags			General
//	@Produce		json
//	@Success		204
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/healthz [get]
func (co Controller) Get(c *gin.Context) {
	sqlDB, err := co.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, httputil.HTTPError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
