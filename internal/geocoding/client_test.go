package geocoding_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/geocoding"
)

func newClient(t *testing.T, h http.HandlerFunc, cache *geocoding.Cache) *geocoding.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return geocoding.NewClient(geocoding.Options{
		BaseURL:   srv.URL,
		Language:  "en-US",
		UserAgent: "travel-journal-test",
		Timeout:   2 * time.Second,
		Retries:   2,
		Cache:     cache,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_Reverse_FallbacksAndHeaders(t *testing.T) {
	var gotLang, gotUA, gotPath, gotLat string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotLang = r.Header.Get("Accept-Language")
		gotUA = r.Header.Get("User-Agent")
		gotPath = r.URL.Path
		gotLat = r.URL.Query().Get("lat")
		_, _ = w.Write([]byte(`{"lat":"45.9","lon":"6.8","address":{"village":"Argentière","city":"Chamonix","state":"Auvergne-Rhône-Alpes","postcode":"74400","country":"France"}}`))
	}, nil)

	got, err := c.Reverse(context.Background(), 45.92, 6.87)

	require.NoError(t, err)
	assert.Equal(t, "en-US", gotLang)
	assert.Equal(t, "travel-journal-test", gotUA)
	assert.Equal(t, "/reverse", gotPath)
	assert.Equal(t, "45.92", gotLat)
	assert.Equal(t, domain.Address{
		City:      "Argentière",
		State:     "Auvergne-Rhône-Alpes",
		PostCode:  "74400",
		Country:   "France",
		Latitude:  45.92,
		Longitude: 6.87,
	}, got, "village wins over city; coordinates echo the request")
}

func TestClient_Search_FirstHit(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Sagres", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`[{"lat":"37.0","lon":"-8.94","address":{"town":"Sagres","county":"Vila do Bispo","state":"Faro","country":"Portugal"}}]`))
	}, nil)

	got, err := c.Search(context.Background(), "Sagres")

	require.NoError(t, err)
	assert.Equal(t, "Sagres", got.City)
	assert.Equal(t, "Vila do Bispo", got.State, "county wins over state")
	assert.InDelta(t, -8.94, got.Longitude, 1e-9)
}

func TestClient_Search_NoHits(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}, nil)

	_, err := c.Search(context.Background(), "nowhere at all")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"address":{"city":"Lyon"}}`))
	}, nil)

	got, err := c.Reverse(context.Background(), 45.76, 4.83)

	require.NoError(t, err)
	assert.Equal(t, "Lyon", got.City)
	assert.EqualValues(t, 2, calls.Load())
}

func TestClient_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}, nil)

	_, err := c.Reverse(context.Background(), 1, 2)

	assert.ErrorIs(t, err, geocoding.ErrUpstream)
	assert.EqualValues(t, 1, calls.Load())
}

func TestClient_UsesCache(t *testing.T) {
	var calls atomic.Int32
	cache := geocoding.NewCache(time.Hour, time.Now)
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"address":{"town":"Annecy"}}`))
	}, cache)

	for i := 0; i < 3; i++ {
		got, err := c.Reverse(context.Background(), 45.9, 6.12)
		require.NoError(t, err)
		assert.Equal(t, "Annecy", got.City)
	}
	assert.EqualValues(t, 1, calls.Load())
}
