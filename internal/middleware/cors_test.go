package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/travel-journal/backend/internal/middleware"
)

const spaOrigin = "http://localhost:5173"

// okHandler always answers 200.
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORSHandler_SimpleRequests(t *testing.T) {
	tests := []struct {
		name        string
		origin      string
		allowOrigin string
		credentials string
	}{
		{"configured origin", spaOrigin, spaOrigin, "true"},
		{"foreign origin", "http://evil.example.com", "", ""},
		{"same-origin request without Origin", "", "", ""},
	}
	h := middleware.NewCORSHandler([]string{spaOrigin})(okHandler)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/journal/export?format=csv", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			// The response is served either way; the browser enforces the headers.
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.allowOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tc.credentials, rec.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}

func TestCORSHandler_ExposesContentDisposition(t *testing.T) {
	h := middleware.NewCORSHandler([]string{spaOrigin})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/journal/export?format=csv", nil)
	req.Header.Set("Origin", spaOrigin)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

// Browsers preflight PUT and DELETE as well as JSON bodies.
func TestCORSHandler_Preflight(t *testing.T) {
	h := middleware.NewCORSHandler([]string{spaOrigin})(okHandler)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/visits/"+"5a4b7c1e-8f3d-4e21-9b6a-0c2d1e3f4a5b", nil)
			req.Header.Set("Origin", spaOrigin)
			req.Header.Set("Access-Control-Request-Method", method)
			// Fetch sends request header names lowercased; rs/cors compares verbatim.
			req.Header.Set("Access-Control-Request-Headers", "content-type")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Contains(t, []int{http.StatusOK, http.StatusNoContent}, rec.Code)
			assert.Equal(t, spaOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, method, rec.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}

func TestCORSHandler_PreflightRejectsPatch(t *testing.T) {
	h := middleware.NewCORSHandler([]string{spaOrigin})(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/adventures", nil)
	req.Header.Set("Origin", spaOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}
