// Package geocode resolves free-text location hints to viewport bounding
// boxes via the Google Geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/zonescout/zonescout/internal/model"
)

const (
	defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultCountry = "USA"
)

// Client resolves a location hint to its declared viewport rectangle.
type Client interface {
	Viewport(ctx context.Context, hint string) (model.BoundingBox, error)
}

// StatusError reports a non-OK provider status.
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("geocode: provider status %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("geocode: provider status %s", e.Status)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithCountry overrides the country qualifier appended on the ZERO_RESULTS retry.
func WithCountry(country string) Option {
	return func(c *httpClient) {
		if country != "" {
			c.country = country
		}
	}
}

// WithRateLimit sets a per-second limit on outbound geocode calls.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	country string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Google Geocoding client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		country: defaultCountry,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(10, 10),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// geocodeResponse is the JSON response from the Geocoding API.
type geocodeResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message"`
	Results      []geocodeResult `json:"results"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type geocodeResult struct {
	Geometry struct {
		Viewport struct {
			Northeast latLng `json:"northeast"`
			Southwest latLng `json:"southwest"`
		} `json:"viewport"`
	} `json:"geometry"`
}

// Viewport geocodes the hint and extracts the first result's viewport.
// A ZERO_RESULTS status triggers exactly one retry with the country
// qualifier appended; any other non-OK status is returned as a StatusError.
func (c *httpClient) Viewport(ctx context.Context, hint string) (model.BoundingBox, error) {
	resp, err := c.lookup(ctx, hint)
	if err != nil {
		return model.BoundingBox{}, err
	}

	if resp.Status == "ZERO_RESULTS" {
		zap.L().Warn("geocode: no result, retrying with country qualifier",
			zap.String("hint", hint),
			zap.String("country", c.country),
		)
		resp, err = c.lookup(ctx, hint+", "+c.country)
		if err != nil {
			return model.BoundingBox{}, err
		}
	}

	if resp.Status != "OK" || len(resp.Results) == 0 {
		return model.BoundingBox{}, &StatusError{Status: resp.Status, Message: resp.ErrorMessage}
	}

	vp := resp.Results[0].Geometry.Viewport
	return model.BoundingBox{
		North: vp.Northeast.Lat,
		South: vp.Southwest.Lat,
		East:  vp.Northeast.Lng,
		West:  vp.Southwest.Lng,
	}, nil
}

func (c *httpClient) lookup(ctx context.Context, address string) (*geocodeResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "geocode: rate limit")
		}
	}

	params := url.Values{
		"address": {address},
		"key":     {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: read body")
	}

	var decoded geocodeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, eris.Wrap(err, "geocode: parse response")
	}

	return &decoded, nil
}
