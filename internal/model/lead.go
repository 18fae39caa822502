// Package model defines the data types shared across the scouting pipeline.
package model

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// BoundingBox is a rectangle in latitude/longitude space used to restrict a
// places search. Providers do not enforce the corner ordering, so callers
// must Validate before use.
type BoundingBox struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Validate checks the corner invariants: North > South and East > West.
func (b BoundingBox) Validate() error {
	if b.North <= b.South {
		return eris.Errorf("bbox: north (%f) must exceed south (%f)", b.North, b.South)
	}
	if b.East <= b.West {
		return eris.Errorf("bbox: east (%f) must exceed west (%f)", b.East, b.West)
	}
	return nil
}

// bounds returns the box as a go-geom Bounds in (lng, lat) order.
func (b BoundingBox) bounds() *geom.Bounds {
	return geom.NewBounds(geom.XY).Set(b.West, b.South, b.East, b.North)
}

// Center returns the midpoint of the box, used for map centering.
func (b BoundingBox) Center() (lat, lng float64) {
	bb := b.bounds()
	return (bb.Min(1) + bb.Max(1)) / 2, (bb.Min(0) + bb.Max(0)) / 2
}

// Contains reports whether the given point falls inside the box.
func (b BoundingBox) Contains(lat, lng float64) bool {
	pt := geom.NewBounds(geom.XY).Set(lng, lat, lng, lat)
	return b.bounds().Overlaps(geom.XY, pt)
}

// Review is a single review-text entry attached to a candidate.
type Review struct {
	Text string `json:"text"`
}

// Candidate is a business record returned by a places search, prior to
// verification. Immutable once created; the verifier attaches a Verdict by
// wrapping it in a VerifiedCandidate rather than mutating it.
type Candidate struct {
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Summary    string   `json:"summary,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Website    string   `json:"website,omitempty"`
	Rating     float64  `json:"rating,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	MapsURL    string   `json:"maps_url,omitempty"`
	Reviews    []Review `json:"reviews,omitempty"`
}

// VerdictStatus is the outcome class of a verification.
type VerdictStatus string

const (
	StatusApproved VerdictStatus = "APPROVED"
	StatusRejected VerdictStatus = "REJECTED"
	StatusError    VerdictStatus = "ERROR"
)

// Verdict is the structured outcome of criteria checking for one candidate.
type Verdict struct {
	Status VerdictStatus `json:"status"`
	Reason string        `json:"reason"`
	Pros   []string      `json:"pros"`
	Cons   []string      `json:"cons"`
}

// VerifiedCandidate pairs a candidate with its verdict — the unit handed to
// the presentation layer.
type VerifiedCandidate struct {
	Candidate
	Verdict Verdict `json:"verdict"`
}

// Partition splits verified candidates by verdict status. Slices preserve
// the relative input ordering.
type Partition struct {
	Approved []VerifiedCandidate `json:"approved"`
	Rejected []VerifiedCandidate `json:"rejected"`
	Errored  []VerifiedCandidate `json:"errored"`
}

// Counts returns the size of each bucket.
func (p Partition) Counts() (approved, rejected, errored int) {
	return len(p.Approved), len(p.Rejected), len(p.Errored)
}

// ScoutResult is the full outcome of one scouting run.
type ScoutResult struct {
	RunID    string              `json:"run_id"`
	Query    string              `json:"query"`
	Criteria string              `json:"criteria"`
	Box      BoundingBox         `json:"box"`
	RawCount int                 `json:"raw_count"`
	Leads    []VerifiedCandidate `json:"leads"`
	Approved int                 `json:"approved"`
	Rejected int                 `json:"rejected"`
	Errored  int                 `json:"errored"`
	Elapsed  time.Duration       `json:"elapsed_ns"`
}
