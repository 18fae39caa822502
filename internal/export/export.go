// Package export delivers approved leads to downstream CRM targets.
package export

import (
	"context"

	"go.uber.org/zap"

	"github.com/zonescout/zonescout/internal/model"
	"github.com/zonescout/zonescout/pkg/notion"
	"github.com/zonescout/zonescout/pkg/salesforce"
)

// Targets holds the configured delivery destinations. A nil client skips
// that destination.
type Targets struct {
	Notion   notion.Client
	NotionDB string

	Salesforce salesforce.Client
}

// Delivery summarizes what reached each destination. Delivery is
// best-effort per lead: one rejected record does not stop the rest.
type Delivery struct {
	NotionCreated int
	NotionFailed  int

	SalesforceCreated int
	SalesforceFailed  int
}

// Deliver pushes approved leads to every configured target. Errors are
// demoted to counts and logs; by the time leads are approved, losing one
// delivery is an annoyance, not a reason to abandon the run.
func Deliver(ctx context.Context, targets Targets, approved []model.VerifiedCandidate) Delivery {
	var d Delivery
	if len(approved) == 0 {
		return d
	}

	if targets.Notion != nil && targets.NotionDB != "" {
		d.NotionCreated, d.NotionFailed = deliverNotion(ctx, targets, approved)
	}

	if targets.Salesforce != nil {
		d.SalesforceCreated, d.SalesforceFailed = deliverSalesforce(ctx, targets.Salesforce, approved)
	}

	return d
}

func deliverNotion(ctx context.Context, targets Targets, approved []model.VerifiedCandidate) (created, failed int) {
	for _, lead := range approved {
		if _, err := notion.CreateLead(ctx, targets.Notion, targets.NotionDB, lead); err != nil {
			failed++
			zap.L().Warn("notion delivery failed",
				zap.String("lead", lead.Name),
				zap.Error(err))
			continue
		}
		created++
	}

	zap.L().Info("notion delivery complete",
		zap.Int("created", created),
		zap.Int("failed", failed))
	return created, failed
}

func deliverSalesforce(ctx context.Context, client salesforce.Client, approved []model.VerifiedCandidate) (created, failed int) {
	results, err := salesforce.InsertLeads(ctx, client, approved)
	if err != nil {
		zap.L().Warn("salesforce delivery failed", zap.Error(err))
		return 0, len(approved)
	}

	for _, r := range results {
		if r.Success {
			created++
		} else {
			failed++
		}
	}

	zap.L().Info("salesforce delivery complete",
		zap.Int("created", created),
		zap.Int("failed", failed))
	return created, failed
}
