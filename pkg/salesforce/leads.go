package salesforce

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/zonescout/zonescout/internal/model"
)

// LeadRecord maps an approved lead onto the Salesforce Lead SObject.
// Lead requires Company and LastName; the contact person is unknown at
// scouting time, so LastName carries a placeholder for sales to fill in.
func LeadRecord(lead model.VerifiedCandidate) map[string]any {
	record := map[string]any{
		"Company":    lead.Name,
		"LastName":   "Unknown",
		"LeadSource": "ZoneScout",
		"Street":     lead.Address,
	}

	if lead.Phone != "" {
		record["Phone"] = lead.Phone
	}
	if lead.Website != "" {
		record["Website"] = lead.Website
	}

	var desc strings.Builder
	desc.WriteString(lead.Verdict.Reason)
	if len(lead.Verdict.Pros) > 0 {
		desc.WriteString("\nPros: " + strings.Join(lead.Verdict.Pros, "; "))
	}
	if len(lead.Verdict.Cons) > 0 {
		desc.WriteString("\nCons: " + strings.Join(lead.Verdict.Cons, "; "))
	}
	platform, link := model.SocialSuggestion(lead.Name, lead.Categories)
	desc.WriteString("\nOutreach: " + platform + " " + link)
	record["Description"] = desc.String()

	return record
}

// InsertLeads pushes approved leads as Lead records in one collection
// insert. Per-record failures are logged and returned in the results; only
// a request-level failure is an error.
func InsertLeads(ctx context.Context, c Client, leads []model.VerifiedCandidate) ([]CollectionResult, error) {
	if len(leads) == 0 {
		return nil, nil
	}

	records := make([]map[string]any, len(leads))
	for i, lead := range leads {
		records[i] = LeadRecord(lead)
	}

	results, err := c.InsertCollection(ctx, "Lead", records)
	if err != nil {
		return nil, eris.Wrap(err, "sf: insert leads")
	}

	for i, r := range results {
		if !r.Success && i < len(leads) {
			zap.L().Warn("salesforce lead rejected",
				zap.String("company", leads[i].Name),
				zap.Strings("errors", r.Errors))
		}
	}

	return results, nil
}
