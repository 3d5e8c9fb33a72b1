package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/edunomics/superintendent/internal/httputil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TmpFile returns the path to a unique file to be used in tests
func TmpFile(t *testing.T) string {
	dir := t.TempDir()
	return filepath.Join(dir, uuid.New().String())
}

// Request is a helper method to simplify making a HTTP request for tests.
//
// A string body is sent as is, everything else is marshalled to JSON.
func Request(t *testing.T, handler http.Handler, method, url string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	var byteStr []byte
	var err error

	switch b := body.(type) {
	case nil:
	case string:
		byteStr = []byte(b)
	default:
		byteStr, err = json.Marshal(body)
		if err != nil {
			assert.FailNow(t, "Request body could not be marshalled from object input", err)
		}
	}

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest(method, url, bytes.NewBuffer(byteStr))

	for _, headerMap := range headers {
		for header, value := range headerMap {
			req.Header.Set(header, value)
		}
	}

	handler.ServeHTTP(recorder, req)

	return *recorder
}

func AssertHTTPStatus(t *testing.T, expected int, r *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, expected, r.Code, "HTTP status is wrong. Response body: %s", r.Body.String())
}

// DecodeResponse decodes an HTTP response into a target struct.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target any) {
	err := json.NewDecoder(r.Body).Decode(target)
	if err != nil {
		assert.FailNow(t, "Parsing error", "Unable to parse response from server %q into %v, '%v'", r.Body, reflect.TypeOf(target), err)
	}
}

// DecodeError returns the error message of an error response body.
func DecodeError(t *testing.T, s []byte) string {
	var r httputil.HTTPError
	if err := json.Unmarshal(s, &r); err != nil {
		assert.Fail(t, "Not valid JSON!", "%s", s)
	}

	return r.Error
}
