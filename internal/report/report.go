// Package report renders scouting results for humans: a terminal summary
// and an XLSX workbook.
package report

import (
	"fmt"
	"strings"

	"github.com/zonescout/zonescout/internal/model"
	"github.com/zonescout/zonescout/internal/verify"
)

// Summary renders a human-readable run report. Approved leads come first
// with full contact detail; rejected and errored candidates follow with
// just enough to audit the verdicts.
func Summary(result model.ScoutResult) string {
	var b strings.Builder

	lat, lng := result.Box.Center()
	fmt.Fprintf(&b, "Scout run %s\n", result.RunID)
	fmt.Fprintf(&b, "Query: %q  Criteria: %q\n", result.Query, result.Criteria)
	fmt.Fprintf(&b, "Zone: N %.4f  S %.4f  E %.4f  W %.4f (center %.4f, %.4f)\n",
		result.Box.North, result.Box.South, result.Box.East, result.Box.West, lat, lng)
	fmt.Fprintf(&b, "Candidates: %d found, %d approved, %d rejected, %d errored (%.1fs)\n",
		result.RawCount, result.Approved, result.Rejected, result.Errored, result.Elapsed.Seconds())

	p := verify.PartitionVerdicts(result.Leads)

	if len(p.Approved) > 0 {
		b.WriteString("\n=== APPROVED ===\n")
		for _, lead := range p.Approved {
			writeLead(&b, lead, true)
		}
	}

	if len(p.Rejected) > 0 {
		b.WriteString("\n=== REJECTED ===\n")
		for _, lead := range p.Rejected {
			writeLead(&b, lead, false)
		}
	}

	if len(p.Errored) > 0 {
		b.WriteString("\n=== NEEDS MANUAL REVIEW ===\n")
		for _, lead := range p.Errored {
			fmt.Fprintf(&b, "- %s (%s): %s\n", lead.Name, lead.Address, lead.Verdict.Reason)
		}
	}

	return b.String()
}

func writeLead(b *strings.Builder, lead model.VerifiedCandidate, full bool) {
	fmt.Fprintf(b, "\n%s\n", lead.Name)
	fmt.Fprintf(b, "  %s\n", lead.Address)
	if lead.Verdict.Reason != "" {
		fmt.Fprintf(b, "  Verdict: %s\n", lead.Verdict.Reason)
	}
	for _, pro := range lead.Verdict.Pros {
		fmt.Fprintf(b, "  + %s\n", pro)
	}
	for _, con := range lead.Verdict.Cons {
		fmt.Fprintf(b, "  - %s\n", con)
	}

	if !full {
		return
	}

	if lead.Phone != "" {
		fmt.Fprintf(b, "  Phone: %s\n", lead.Phone)
	}
	if lead.Website != "" {
		fmt.Fprintf(b, "  Website: %s\n", lead.Website)
	}
	if lead.Rating > 0 {
		fmt.Fprintf(b, "  Rating: %.1f\n", lead.Rating)
	}
	if lead.MapsURL != "" {
		fmt.Fprintf(b, "  Maps: %s\n", lead.MapsURL)
	}
	platform, link := model.SocialSuggestion(lead.Name, lead.Categories)
	fmt.Fprintf(b, "  Outreach: %s %s\n", platform, link)
}
