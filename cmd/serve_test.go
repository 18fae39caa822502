package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zonescout/zonescout/internal/excerpt"
	"github.com/zonescout/zonescout/internal/model"
	"github.com/zonescout/zonescout/internal/scout"
	"github.com/zonescout/zonescout/internal/search"
	"github.com/zonescout/zonescout/internal/verify"
	"github.com/zonescout/zonescout/internal/zone"
	"github.com/zonescout/zonescout/pkg/anthropic"
	"github.com/zonescout/zonescout/pkg/geocode"
	"github.com/zonescout/zonescout/pkg/places"
)

type stubGeocoder struct {
	box model.BoundingBox
	err error
}

func (s *stubGeocoder) Viewport(_ context.Context, _ string) (model.BoundingBox, error) {
	return s.box, s.err
}

type stubPlaces struct{ resp *places.SearchResponse }

func (s *stubPlaces) SearchRect(_ context.Context, _ string, _ model.BoundingBox) (*places.SearchResponse, error) {
	return s.resp, nil
}

type rejectAllLLM struct{}

func (rejectAllLLM) CreateMessage(_ context.Context, _ anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{
			Type: "text",
			Text: `{"status": "REJECTED", "reason": "does not fit", "pros": [], "cons": ["wrong type"]}`,
		}},
	}, nil
}

func testRunner(geo *stubGeocoder, resp *places.SearchResponse) *scout.Runner {
	resolver := zone.NewResolver(geo, nil)
	searcher := search.NewSearcher(&stubPlaces{resp: resp}, 3)
	verifier := verify.NewVerifier(rejectAllLLM{}, "m", 1024)
	orch := verify.NewOrchestrator(verifier, excerpt.NewFetcher(0, 0), 0)
	return scout.NewRunner(resolver, searcher, orch)
}

func validGeo() *stubGeocoder {
	return &stubGeocoder{box: model.BoundingBox{North: 41, South: 40, East: -73, West: -74}}
}

func TestServe_Health(t *testing.T) {
	router := newRouter(testRunner(validGeo(), &places.SearchResponse{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServe_Scout(t *testing.T) {
	resp := &places.SearchResponse{Places: []places.Place{
		{DisplayName: places.LocalizedText{Text: "Alpha"}},
	}}
	router := newRouter(testRunner(validGeo(), resp))

	body := `{"zip": "10001", "query": "coffee shop", "criteria": "serves espresso"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/scout", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var result model.ScoutResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.RawCount)
	require.Len(t, result.Leads, 1)
	assert.Equal(t, "Alpha", result.Leads[0].Name)
	assert.Equal(t, model.StatusRejected, result.Leads[0].Verdict.Status)
}

func TestServe_Scout_BadBody(t *testing.T) {
	router := newRouter(testRunner(validGeo(), &places.SearchResponse{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/scout", strings.NewReader("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServe_Scout_MissingFields(t *testing.T) {
	router := newRouter(testRunner(validGeo(), &places.SearchResponse{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/scout", strings.NewReader(`{"zip": "10001"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServe_Scout_UnresolvableZone(t *testing.T) {
	geo := &stubGeocoder{err: &geocode.StatusError{Status: "ZERO_RESULTS"}}
	router := newRouter(testRunner(geo, &places.SearchResponse{}))

	body := `{"zip": "00000", "query": "coffee shop", "criteria": "serves espresso"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/scout", strings.NewReader(body)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
