// Package geocoding resolves coordinates and free-text queries into
// addresses through a Nominatim server.
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// ErrUpstream is returned when the geocoding server cannot be reached or
// answers with an error status. Handlers map it to 502.
var ErrUpstream = errors.New("geocoding upstream error")

// Options configures a Client.
type Options struct {
	BaseURL   string        // e.g. https://nominatim.openstreetmap.org
	Language  string        // Accept-Language sent upstream
	UserAgent string        // Nominatim's usage policy requires one
	Timeout   time.Duration // per upstream request
	Retries   uint64        // extra attempts after a 5xx or network failure
	Cache     *Cache        // optional
}

// Client is a small Nominatim client.
type Client struct {
	opts Options
	http *http.Client
	log  *slog.Logger
}

// NewClient constructs a Client.
func NewClient(opts Options, log *slog.Logger) *Client {
	return &Client{
		opts: opts,
		http: &http.Client{Timeout: opts.Timeout},
		log:  log,
	}
}

// nominatimPlace is the subset of a jsonv2 place the API exposes.
type nominatimPlace struct {
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
	Address struct {
		Town         string `json:"town"`
		Village      string `json:"village"`
		Municipality string `json:"municipality"`
		City         string `json:"city"`
		County       string `json:"county"`
		State        string `json:"state"`
		Suburb       string `json:"suburb"`
		Province     string `json:"province"`
		Postcode     string `json:"postcode"`
		Country      string `json:"country"`
	} `json:"address"`
}

// Reverse returns the address at lat, lng. The returned coordinates are the
// requested ones, not the upstream place's centroid.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (domain.Address, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))

	key := "reverse:" + q.Encode()
	if a, ok := c.opts.Cache.Get(key); ok {
		return a, nil
	}

	var place nominatimPlace
	if err := c.get(ctx, "/reverse", q, &place); err != nil {
		return domain.Address{}, fmt.Errorf("geocoding.Client.Reverse: %w", err)
	}

	a := toAddress(place)
	a.Latitude, a.Longitude = lat, lng
	c.opts.Cache.Put(key, a)
	return a, nil
}

// Search returns the best match for a free-text query.
// Returns domain.ErrNotFound when nothing matches.
func (c *Client) Search(ctx context.Context, query string) (domain.Address, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("addressdetails", "1")
	q.Set("limit", "1")
	q.Set("q", query)

	key := "search:" + q.Encode()
	if a, ok := c.opts.Cache.Get(key); ok {
		return a, nil
	}

	var places []nominatimPlace
	if err := c.get(ctx, "/search", q, &places); err != nil {
		return domain.Address{}, fmt.Errorf("geocoding.Client.Search: %w", err)
	}
	if len(places) == 0 {
		return domain.Address{}, fmt.Errorf("geocoding.Client.Search: %w", domain.ErrNotFound)
	}

	a := toAddress(places[0])
	a.Latitude, _ = strconv.ParseFloat(places[0].Lat, 64)
	a.Longitude, _ = strconv.ParseFloat(places[0].Lon, 64)
	c.opts.Cache.Put(key, a)
	return a, nil
}

// get performs one upstream call, retrying server errors with exponential backoff.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.opts.BaseURL + path + "?" + q.Encode()
	backoff := retry.WithMaxRetries(c.opts.Retries, retry.NewExponential(200*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		if c.opts.Language != "" {
			req.Header.Set("Accept-Language", c.opts.Language)
		}
		if c.opts.UserAgent != "" {
			req.Header.Set("User-Agent", c.opts.UserAgent)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			c.log.WarnContext(ctx, "geocoder request failed", "path", path, "error", err)
			return retry.RetryableError(fmt.Errorf("%w: %v", ErrUpstream, err))
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= http.StatusInternalServerError:
			c.log.WarnContext(ctx, "geocoder server error", "path", path, "status", resp.StatusCode)
			return retry.RetryableError(fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode))
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode: %v", ErrUpstream, err)
		}
		return nil
	})
}

// toAddress applies the field fallbacks: city is the town, else the village,
// else the municipality, else the city; state is the county, else the state,
// else the suburb, else the province.
func toAddress(p nominatimPlace) domain.Address {
	a := p.Address
	return domain.Address{
		City:     firstNonEmpty(a.Town, a.Village, a.Municipality, a.City),
		State:    firstNonEmpty(a.County, a.State, a.Suburb, a.Province),
		PostCode: a.Postcode,
		Country:  a.Country,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
