package httputil_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edunomics/superintendent/internal/httputil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBindData(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{"Valid", `{ "name": "Drink more water!" }`, nil},
		{"Broken JSON", `{ broken json: "Drink more water!" }`, httputil.ErrInvalidBody},
		{"Empty", "", httputil.ErrRequestBodyEmpty},
		{"Wrong type", `{ "name": 17 }`, httputil.ErrInvalidBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o struct {
				Name string `json:"name"`
			}

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodPost, "http://example.com/", bytes.NewBufferString(tt.body))

			err := httputil.BindData(c, &o)
			if tt.err == nil {
				assert.NoError(t, err)
				assert.Equal(t, "Drink more water!", o.Name)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestOptions(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodOptions, "http://example.com/", nil)

	httputil.OptionsGetDelete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "OPTIONS, GET, DELETE", w.Header().Get("allow"))
}
