package report

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/zonescout/zonescout/internal/model"
)

func sampleResult() model.ScoutResult {
	leads := []model.VerifiedCandidate{
		{
			Candidate: model.Candidate{
				Name:       "Alpha Cafe",
				Address:    "123 Main St",
				Phone:      "(212) 555-0101",
				Website:    "https://alphacafe.example",
				Rating:     4.6,
				MapsURL:    "https://maps.example/alpha",
				Categories: []string{"cafe"},
			},
			Verdict: model.Verdict{
				Status: model.StatusApproved,
				Reason: "serves espresso",
				Pros:   []string{"espresso bar"},
				Cons:   []string{},
			},
		},
		{
			Candidate: model.Candidate{Name: "Beta Legal", Address: "45 Court St", Categories: []string{"lawyer"}},
			Verdict: model.Verdict{
				Status: model.StatusRejected,
				Reason: "not a coffee shop",
				Pros:   []string{},
				Cons:   []string{"law office"},
			},
		},
		{
			Candidate: model.Candidate{Name: "Gamma Deli", Address: "9 Side Ave"},
			Verdict:   model.Verdict{Status: model.StatusError, Reason: "AI Timeout", Pros: []string{}, Cons: []string{}},
		},
	}
	return model.ScoutResult{
		RunID:    "run-123",
		Query:    "coffee shop",
		Criteria: "serves espresso",
		Box:      model.BoundingBox{North: 40.8, South: 40.7, East: -73.9, West: -74.0},
		RawCount: 3,
		Leads:    leads,
		Approved: 1,
		Rejected: 1,
		Errored:  1,
		Elapsed:  3 * time.Second,
	}
}

func TestSummary(t *testing.T) {
	out := Summary(sampleResult())

	assert.Contains(t, out, "run-123")
	assert.Contains(t, out, `Query: "coffee shop"`)
	assert.Contains(t, out, "3 found, 1 approved, 1 rejected, 1 errored")

	assert.Contains(t, out, "=== APPROVED ===")
	assert.Contains(t, out, "Alpha Cafe")
	assert.Contains(t, out, "(212) 555-0101")
	assert.Contains(t, out, "+ espresso bar")
	assert.Contains(t, out, "Outreach: Instagram")

	assert.Contains(t, out, "=== REJECTED ===")
	assert.Contains(t, out, "- law office")

	assert.Contains(t, out, "=== NEEDS MANUAL REVIEW ===")
	assert.Contains(t, out, "Gamma Deli (9 Side Ave): AI Timeout")
}

func TestSummary_ApprovedBeforeRejected(t *testing.T) {
	out := Summary(sampleResult())
	approvedIdx := strings.Index(out, "=== APPROVED ===")
	rejectedIdx := strings.Index(out, "=== REJECTED ===")
	require.GreaterOrEqual(t, approvedIdx, 0)
	require.GreaterOrEqual(t, rejectedIdx, 0)
	assert.Less(t, approvedIdx, rejectedIdx)
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.xlsx")
	require.NoError(t, WriteXLSX(path, sampleResult()))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 3)
	assert.Equal(t, "Approved", file.Sheets[0].Name)
	assert.Equal(t, "Rejected", file.Sheets[1].Name)
	assert.Equal(t, "Errored", file.Sheets[2].Name)

	approved := file.Sheets[0]
	require.GreaterOrEqual(t, len(approved.Rows), 2)
	assert.Equal(t, "Name", approved.Rows[0].Cells[0].String())
	assert.Equal(t, "Alpha Cafe", approved.Rows[1].Cells[0].String())
	assert.Equal(t, "4.6", approved.Rows[1].Cells[4].String())
	assert.Equal(t, "APPROVED", approved.Rows[1].Cells[6].String())
}

func TestWriteXLSX_EmptyRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	result := sampleResult()
	result.Leads = nil

	require.NoError(t, WriteXLSX(path, result))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 3)
	// Header row only.
	assert.Len(t, file.Sheets[0].Rows, 1)
}
