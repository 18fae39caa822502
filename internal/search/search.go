// Package search finds business candidates inside a bounding box and maps
// them into the pipeline's candidate model.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/zonescout/zonescout/internal/model"
	"github.com/zonescout/zonescout/pkg/places"
)

// SearchError means the provider rejected the search. Fatal to a run: a
// failed search is not an empty zone.
type SearchError struct {
	Status int
	Body   string
	Err    error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search: provider returned status %d: %s", e.Status, e.Body)
}

func (e *SearchError) Unwrap() error { return e.Err }

// IsSearchError reports whether the error chain contains a SearchError.
func IsSearchError(err error) bool {
	var se *SearchError
	return errors.As(err, &se)
}

// Searcher finds candidates matching a query within a bounding box.
type Searcher struct {
	places     places.Client
	maxReviews int
}

// NewSearcher creates a Searcher. maxReviews caps the reviews carried on
// each candidate; zero or negative keeps all the provider returns.
func NewSearcher(client places.Client, maxReviews int) *Searcher {
	return &Searcher{places: client, maxReviews: maxReviews}
}

// Find returns candidates in provider order. An empty slice is a valid
// outcome (nobody matches in the zone), distinct from an error.
func (s *Searcher) Find(ctx context.Context, query string, box model.BoundingBox) ([]model.Candidate, error) {
	if strings.TrimSpace(query) == "" {
		return nil, eris.New("search: empty query")
	}
	if err := box.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.places.SearchRect(ctx, query, box)
	if err != nil {
		var apiErr *places.APIError
		if errors.As(err, &apiErr) {
			return nil, &SearchError{Status: apiErr.StatusCode, Body: apiErr.Body, Err: err}
		}
		return nil, &SearchError{Body: err.Error(), Err: err}
	}

	candidates := make([]model.Candidate, 0, len(resp.Places))
	for _, p := range resp.Places {
		candidates = append(candidates, s.toCandidate(p))
	}

	zap.L().Info("search complete",
		zap.String("query", query),
		zap.Int("candidates", len(candidates)))

	return candidates, nil
}

func (s *Searcher) toCandidate(p places.Place) model.Candidate {
	reviews := make([]model.Review, 0, len(p.Reviews))
	for _, rev := range p.Reviews {
		if s.maxReviews > 0 && len(reviews) >= s.maxReviews {
			break
		}
		if text := strings.TrimSpace(rev.Text.Text); text != "" {
			reviews = append(reviews, model.Review{Text: text})
		}
	}

	return model.Candidate{
		Name:       p.DisplayName.Text,
		Address:    p.FormattedAddress,
		Summary:    p.EditorialSummary.Text,
		Categories: p.Types,
		Website:    p.WebsiteURI,
		Rating:     p.Rating,
		Phone:      p.NationalPhoneNumber,
		MapsURL:    p.GoogleMapsURI,
		Reviews:    reviews,
	}
}
