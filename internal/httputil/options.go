package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func options(methods string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("allow", methods)
		c.Status(http.StatusNoContent)
	}
}

var (
	OptionsGet       = options("OPTIONS, GET")
	OptionsPost      = options("OPTIONS, POST")
	OptionsGetPost   = options("OPTIONS, GET, POST")
	OptionsGetDelete = options("OPTIONS, GET, DELETE")
)
