// Package places wraps the Google Places Text Search API with a strict
// rectangular location restriction.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/zonescout/zonescout/internal/model"
)

const defaultBaseURL = "https://places.googleapis.com/v1"

// fieldMask limits returned attributes to what the pipeline consumes,
// bounding response size and cost.
const fieldMask = "places.displayName,places.formattedAddress,places.editorialSummary," +
	"places.types,places.websiteUri,places.rating,places.nationalPhoneNumber," +
	"places.googleMapsUri,places.reviews"

// Client performs Places API operations.
type Client interface {
	SearchRect(ctx context.Context, query string, box model.BoundingBox) (*SearchResponse, error)
}

// APIError reports a non-200 response from the Places API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return eris.Errorf("places: unexpected status %d: %s", e.StatusCode, e.Body).Error()
}

// SearchResponse is the response from a text search. Places is empty (not
// nil-checked by callers) when the zone holds no matches.
type SearchResponse struct {
	Places []Place `json:"places"`
}

// Place is a single business record returned by the API.
type Place struct {
	DisplayName         LocalizedText `json:"displayName"`
	FormattedAddress    string        `json:"formattedAddress"`
	EditorialSummary    LocalizedText `json:"editorialSummary"`
	Types               []string      `json:"types"`
	WebsiteURI          string        `json:"websiteUri"`
	Rating              float64       `json:"rating"`
	NationalPhoneNumber string        `json:"nationalPhoneNumber"`
	GoogleMapsURI       string        `json:"googleMapsUri"`
	Reviews             []Review      `json:"reviews"`
}

// LocalizedText holds a localized text field.
type LocalizedText struct {
	Text string `json:"text"`
}

// Review is a single place review.
type Review struct {
	Text LocalizedText `json:"text"`
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

// WithRateLimit sets a per-second limit on outbound search calls.
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
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Places API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
		limiter: rate.NewLimiter(10, 10),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type rectangle struct {
	Low  latLng `json:"low"`
	High latLng `json:"high"`
}

type locationRestriction struct {
	Rectangle rectangle `json:"rectangle"`
}

type searchRequest struct {
	TextQuery           string              `json:"textQuery"`
	LocationRestriction locationRestriction `json:"locationRestriction"`
}

// SearchRect runs a text search restricted to the exact rectangle of box.
// A rectangle restriction (not a radius) excludes results whose centroid
// falls outside it.
func (c *httpClient) SearchRect(ctx context.Context, query string, box model.BoundingBox) (*SearchResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "places: rate limit")
		}
	}

	payload := searchRequest{
		TextQuery: query,
		LocationRestriction: locationRestriction{
			Rectangle: rectangle{
				Low:  latLng{Latitude: box.South, Longitude: box.West},
				High: latLng{Latitude: box.North, Longitude: box.East},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, eris.Wrap(err, "places: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/places:searchText", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "places: create request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "places: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "places: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var result SearchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "places: unmarshal response")
	}

	return &result, nil
}
