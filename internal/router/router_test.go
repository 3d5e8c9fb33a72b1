package router_test

import (
	"net/http"
	"net/url"
	"os"
	"testing"

	"github.com/edunomics/superintendent/internal/router"
	"github.com/edunomics/superintendent/internal/test"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// engine creates an engine with all routes attached at the root.
func engine(t *testing.T) *gin.Engine {
	url, _ := url.Parse("http://example.com/api")

	r, teardown, err := router.Config(url)
	require.Nil(t, err, "Error on router initialization")
	t.Cleanup(teardown)

	router.AttachRoutes(router.Controllers{}, r.Group("/"))
	return r
}

func TestGinMode(t *testing.T) {
	os.Setenv("GIN_MODE", "debug")
	defer os.Unsetenv("GIN_MODE")
	gin.SetMode(os.Getenv("GIN_MODE"))
	defer gin.SetMode(gin.TestMode)

	engine(t)
	assert.True(t, gin.IsDebugging())
}

func TestPprofOn(t *testing.T) {
	os.Setenv("ENABLE_PPROF", "true")
	defer os.Unsetenv("ENABLE_PPROF")

	var routes []string
	for _, r := range engine(t).Routes() {
		routes = append(routes, r.Path)
	}
	assert.Contains(t, routes, "/debug/pprof/")
}

func TestPprofOff(t *testing.T) {
	for _, r := range engine(t).Routes() {
		assert.NotContains(t, r.Path, "pprof", "pprof routes are registered erroneously! Route: %s", r)
	}
}

// TestCorsSetting checks that setting of CORS works.
// It does not check the actual headers as this is already done in testing of the module.
func TestCorsSetting(t *testing.T) {
	os.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:3000 https://example.com")
	defer os.Unsetenv("CORS_ALLOW_ORIGINS")

	engine(t)
}

func TestConfigTwice(t *testing.T) {
	url, _ := url.Parse("http://example.com")

	_, teardown, err := router.Config(url)
	require.Nil(t, err)
	defer teardown()

	_, _, err = router.Config(url)
	assert.ErrorContains(t, err, "could not register")
}

func TestGetRoot(t *testing.T) {
	r := test.Request(t, engine(t), http.MethodGet, "http://example.com/", nil)
	test.AssertHTTPStatus(t, http.StatusOK, &r)

	var response router.RootResponse
	test.DecodeResponse(t, &r, &response)

	assert.Equal(t, router.RootLinks{
		Docs:    "http://example.com/api/docs/index.html",
		Healthz: "http://example.com/api/healthz",
		Version: "http://example.com/api/version",
		Metrics: "http://example.com/api/metrics",
		V1:      "http://example.com/api/v1",
	}, response.Links)
}

func TestGetVersion(t *testing.T) {
	r := test.Request(t, engine(t), http.MethodGet, "http://example.com/version", nil)
	test.AssertHTTPStatus(t, http.StatusOK, &r)

	var response router.VersionResponse
	test.DecodeResponse(t, &r, &response)
	assert.Equal(t, "0.0.0", response.Data.Version)
}

func TestOptions(t *testing.T) {
	handler := engine(t)

	for _, path := range []string{"/", "/version"} {
		r := test.Request(t, handler, http.MethodOptions, "http://example.com"+path, nil)
		test.AssertHTTPStatus(t, http.StatusNoContent, &r)
		assert.Equal(t, "OPTIONS, GET", r.Header().Get("allow"))
	}
}

func TestMethodNotAllowed(t *testing.T) {
	r := test.Request(t, engine(t), http.MethodDelete, "http://example.com/version", nil)
	test.AssertHTTPStatus(t, http.StatusMethodNotAllowed, &r)
	assert.Equal(t, "this HTTP method is not allowed for the endpoint you called", test.DecodeError(t, r.Body.Bytes()))
}

func TestMetrics(t *testing.T) {
	handler := engine(t)

	_ = test.Request(t, handler, http.MethodGet, "http://example.com/version", nil)

	r := test.Request(t, handler, http.MethodGet, "http://example.com/metrics", nil)
	test.AssertHTTPStatus(t, http.StatusOK, &r)
	assert.Contains(t, r.Body.String(), `requests_total{code="200",method="GET",url="/version"}`)
}
