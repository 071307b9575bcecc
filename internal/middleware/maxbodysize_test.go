package middleware_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-journal/backend/internal/middleware"
)

// drainHandler reads the whole body the way a JSON decoder would and reports
// the outcome in the status code: 200 read, 413 truncated by the limit.
var drainHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	var tooLarge *http.MaxBytesError
	if _, err := io.ReadAll(r.Body); errors.As(err, &tooLarge) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return
	}
	w.WriteHeader(http.StatusOK)
})

func TestMaxBodySizeHandler(t *testing.T) {
	const limit = 64

	tests := []struct {
		name          string
		size          int
		contentLength int64 // -1: streamed, unknown length
		want          int
	}{
		{"under the limit", 40, 40, http.StatusOK},
		{"exactly the limit", limit, limit, http.StatusOK},
		{"streamed under the limit", 40, -1, http.StatusOK},
		{"streamed over the limit", 3 * limit, -1, http.StatusRequestEntityTooLarge},
	}
	h := middleware.NewMaxBodySizeHandler(limit)(drainHandler)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/visits", strings.NewReader(strings.Repeat("x", tc.size)))
			req.ContentLength = tc.contentLength
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

// An oversized Content-Length never reaches the handler and gets the JSON
// error envelope.
func TestMaxBodySizeHandler_RejectsAdvertisedLength(t *testing.T) {
	reached := false
	h := middleware.NewMaxBodySizeHandler(64)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		reached = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/visits", strings.NewReader(strings.Repeat("x", 200)))
	req.ContentLength = 200
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.False(t, reached)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "body_too_large", body.Error.Code)
}
