// Package scout ties the pipeline together: zone resolution, candidate
// search, concurrent verification, and result assembly.
package scout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/zonescout/zonescout/internal/model"
	"github.com/zonescout/zonescout/internal/search"
	"github.com/zonescout/zonescout/internal/verify"
	"github.com/zonescout/zonescout/internal/zone"
)

// Request describes one scouting run. Exactly one of Zip or Image must be
// set; Query and Criteria are required.
type Request struct {
	Zip       string `json:"zip,omitempty"`
	Image     []byte `json:"image_b64,omitempty"`
	ImageMIME string `json:"image_mime,omitempty"`
	Query     string `json:"query"`
	Criteria  string `json:"criteria"`
}

// Validate checks the request shape before any provider is called.
func (r Request) Validate() error {
	if r.Query == "" {
		return eris.New("scout: query is required")
	}
	if r.Criteria == "" {
		return eris.New("scout: criteria is required")
	}
	hasZip := r.Zip != ""
	hasImage := len(r.Image) > 0
	if hasZip == hasImage {
		return eris.New("scout: exactly one of zip or image must be provided")
	}
	return nil
}

// Runner executes scouting runs.
type Runner struct {
	resolver     *zone.Resolver
	searcher     *search.Searcher
	orchestrator *verify.Orchestrator
}

// NewRunner creates a Runner from the assembled pipeline stages.
func NewRunner(resolver *zone.Resolver, searcher *search.Searcher, orchestrator *verify.Orchestrator) *Runner {
	return &Runner{resolver: resolver, searcher: searcher, orchestrator: orchestrator}
}

// Run executes the full pipeline. Zone resolution and search failures are
// fatal; per-candidate verification failures are not, surfacing instead as
// ERROR verdicts in the result.
func (r *Runner) Run(ctx context.Context, req Request) (*model.ScoutResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	started := time.Now()

	zap.L().Info("scout run starting",
		zap.String("run_id", runID),
		zap.String("query", req.Query))

	var (
		box model.BoundingBox
		err error
	)
	if req.Zip != "" {
		box, err = r.resolver.FromText(ctx, req.Zip)
	} else {
		box, err = r.resolver.FromImage(ctx, req.Image, req.ImageMIME)
	}
	if err != nil {
		return nil, err
	}

	candidates, err := r.searcher.Find(ctx, req.Query, box)
	if err != nil {
		return nil, err
	}

	leads := r.orchestrator.VerifyAll(ctx, candidates, req.Criteria)
	approved, rejected, errored := verify.PartitionVerdicts(leads).Counts()

	result := &model.ScoutResult{
		RunID:    runID,
		Query:    req.Query,
		Criteria: req.Criteria,
		Box:      box,
		RawCount: len(candidates),
		Leads:    leads,
		Approved: approved,
		Rejected: rejected,
		Errored:  errored,
		Elapsed:  time.Since(started),
	}

	zap.L().Info("scout run complete",
		zap.String("run_id", runID),
		zap.Int("raw", result.RawCount),
		zap.Int("approved", approved),
		zap.Int("rejected", rejected),
		zap.Int("errored", errored),
		zap.Duration("elapsed", result.Elapsed))

	return result, nil
}
