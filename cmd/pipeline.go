package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/zonescout/zonescout/internal/excerpt"
	"github.com/zonescout/zonescout/internal/export"
	"github.com/zonescout/zonescout/internal/scout"
	"github.com/zonescout/zonescout/internal/search"
	"github.com/zonescout/zonescout/internal/verify"
	"github.com/zonescout/zonescout/internal/zone"
	"github.com/zonescout/zonescout/pkg/anthropic"
	"github.com/zonescout/zonescout/pkg/gemini"
	"github.com/zonescout/zonescout/pkg/geocode"
	"github.com/zonescout/zonescout/pkg/notion"
	"github.com/zonescout/zonescout/pkg/places"
	"github.com/zonescout/zonescout/pkg/salesforce"
)

// buildRunner assembles the pipeline from configuration. The Gemini client
// is optional: without it only zip-based zone resolution works.
func buildRunner(ctx context.Context) (*scout.Runner, error) {
	if cfg.Google.APIKey == "" {
		return nil, eris.New("google.api_key is required (ZONESCOUT_GOOGLE_API_KEY)")
	}
	if cfg.Anthropic.Key == "" {
		return nil, eris.New("anthropic.key is required (ZONESCOUT_ANTHROPIC_KEY)")
	}

	geocoder := geocode.NewClient(cfg.Google.APIKey, geocode.WithCountry(cfg.Google.Country))

	var vision gemini.Client
	if cfg.Gemini.APIKey != "" {
		v, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return nil, err
		}
		vision = v
	} else {
		zap.L().Debug("gemini.api_key not set; image zone resolution disabled")
	}

	resolver := zone.NewResolver(geocoder, vision)
	searcher := search.NewSearcher(places.NewClient(cfg.Google.APIKey), cfg.Scout.MaxReviews)

	verifier := verify.NewVerifier(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)
	fetcher := excerpt.NewFetcher(time.Duration(cfg.Scout.FetchTimeoutSecs)*time.Second, cfg.Scout.ExcerptMaxChars)
	orchestrator := verify.NewOrchestrator(verifier, fetcher, cfg.Verify.Concurrency)

	return scout.NewRunner(resolver, searcher, orchestrator), nil
}

// buildTargets assembles the requested delivery destinations.
func buildTargets(pushNotion, pushSalesforce bool) (export.Targets, error) {
	var targets export.Targets

	if pushNotion {
		if cfg.Notion.Token == "" || cfg.Notion.LeadDB == "" {
			return targets, eris.New("notion.token and notion.lead_db are required for --notion")
		}
		targets.Notion = notion.NewClient(cfg.Notion.Token)
		targets.NotionDB = cfg.Notion.LeadDB
	}

	if pushSalesforce {
		if cfg.Salesforce.ClientID == "" || cfg.Salesforce.Username == "" || cfg.Salesforce.KeyPath == "" {
			return targets, eris.New("salesforce.client_id, salesforce.username, and salesforce.key_path are required for --salesforce")
		}
		sf, err := salesforce.Connect(cfg.Salesforce.LoginURL, cfg.Salesforce.Username, cfg.Salesforce.ClientID, cfg.Salesforce.KeyPath)
		if err != nil {
			return targets, err
		}
		targets.Salesforce = sf
	}

	return targets, nil
}
