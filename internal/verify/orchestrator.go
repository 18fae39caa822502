package verify

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zonescout/zonescout/internal/model"
)

// ExcerptFetcher produces the website excerpt included in the evidence
// packet. Implemented by excerpt.Fetcher.
type ExcerptFetcher interface {
	Excerpt(ctx context.Context, website string) string
}

// Orchestrator fans candidate verification out across goroutines and
// gathers verdicts back in candidate order.
type Orchestrator struct {
	verifier    *Verifier
	fetcher     ExcerptFetcher
	concurrency int
}

// NewOrchestrator creates an Orchestrator. concurrency bounds in-flight
// verifications; zero means one goroutine per candidate.
func NewOrchestrator(verifier *Verifier, fetcher ExcerptFetcher, concurrency int) *Orchestrator {
	return &Orchestrator{verifier: verifier, fetcher: fetcher, concurrency: concurrency}
}

// VerifyAll enriches and verifies every candidate concurrently. The result
// slice is index-aligned with the input: results[i] is always candidates[i]
// with its verdict attached. Per-candidate failures surface as ERROR
// verdicts, so the gather never loses a candidate.
func (o *Orchestrator) VerifyAll(ctx context.Context, candidates []model.Candidate, criteria string) []model.VerifiedCandidate {
	results := make([]model.VerifiedCandidate, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	if o.concurrency > 0 {
		g.SetLimit(o.concurrency)
	}

	for i, cand := range candidates {
		g.Go(func() error {
			excerpt := o.fetcher.Excerpt(ctx, cand.Website)
			verdict := o.verifier.Verify(ctx, cand, criteria, excerpt)
			results[i] = model.VerifiedCandidate{Candidate: cand, Verdict: verdict}
			return nil
		})
	}

	// Workers never return errors; failures are data (ERROR verdicts).
	_ = g.Wait()

	approved, rejected, errored := PartitionVerdicts(results).Counts()
	zap.L().Info("verification complete",
		zap.Int("candidates", len(candidates)),
		zap.Int("approved", approved),
		zap.Int("rejected", rejected),
		zap.Int("errored", errored))

	return results
}

// PartitionVerdicts splits verified candidates into approved, rejected,
// and errored buckets, preserving relative order within each.
func PartitionVerdicts(leads []model.VerifiedCandidate) model.Partition {
	var p model.Partition
	for _, lead := range leads {
		switch lead.Verdict.Status {
		case model.StatusApproved:
			p.Approved = append(p.Approved, lead)
		case model.StatusRejected:
			p.Rejected = append(p.Rejected, lead)
		default:
			p.Errored = append(p.Errored, lead)
		}
	}
	return p
}
