// Package verify checks candidates against user criteria with an LLM and
// attaches a structured verdict to each one.
package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/zonescout/zonescout/internal/llmjson"
	"github.com/zonescout/zonescout/internal/model"
	"github.com/zonescout/zonescout/internal/resilience"
	"github.com/zonescout/zonescout/pkg/anthropic"
)

// systemPrompt frames the model as a strict auditor. Absence of evidence
// counts against the candidate, never for it.
const systemPrompt = `You are a strict lead-qualification auditor. You are given evidence about ONE business and a set of acceptance criteria.

Judge only from the evidence provided. If the evidence does not support a criterion, treat the criterion as unmet; never assume missing facts in the business's favor.

Respond with ONLY a JSON object, no prose, no markdown fences:
{"status": "APPROVED" or "REJECTED", "reason": "<one sentence>", "pros": ["..."], "cons": ["..."]}

APPROVED only when the evidence affirmatively satisfies every criterion.`

// aiTimeoutReason is the reason attached to error verdicts. The candidate
// stays in the run: an unverifiable lead is reviewed by a human, not lost.
const aiTimeoutReason = "AI Timeout"

// Verifier produces a verdict for a single candidate.
type Verifier struct {
	llm       anthropic.Client
	model     string
	maxTokens int64
	breaker   *resilience.CircuitBreaker
}

// NewVerifier creates a Verifier using the given model.
func NewVerifier(llm anthropic.Client, modelID string, maxTokens int64) *Verifier {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &Verifier{
		llm:       llm,
		model:     modelID,
		maxTokens: maxTokens,
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			ShouldTrip: resilience.IsTransient,
		}),
	}
}

// Verify judges one candidate against the criteria. It always returns a
// verdict: any model failure, malformed reply, or open circuit degrades to
// an ERROR verdict rather than an error.
func (v *Verifier) Verify(ctx context.Context, cand model.Candidate, criteria, excerpt string) model.Verdict {
	temp := 0.0
	req := anthropic.MessageRequest{
		Model:       v.model,
		MaxTokens:   v.maxTokens,
		System:      systemPrompt,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: buildEvidence(cand, criteria, excerpt)},
		},
	}

	cfg := resilience.RetryConfig{OnRetry: resilience.RetryLogger("verify", "create_message")}
	resp, err := resilience.ExecuteVal(ctx, v.breaker, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return resilience.DoVal(ctx, cfg, func(ctx context.Context) (*anthropic.MessageResponse, error) {
			return v.llm.CreateMessage(ctx, req)
		})
	})
	if err != nil {
		zap.L().Warn("verification failed",
			zap.String("candidate", cand.Name),
			zap.Error(err))
		return errorVerdict()
	}

	resp.Usage.LogCost(v.model, "verify")

	verdict, ok := parseVerdict(resp.Text())
	if !ok {
		zap.L().Warn("unparsable verdict",
			zap.String("candidate", cand.Name),
			zap.String("reply", resp.Text()))
		return errorVerdict()
	}
	return verdict
}

// errorVerdict is the degraded outcome for an unverifiable candidate.
func errorVerdict() model.Verdict {
	return model.Verdict{
		Status: model.StatusError,
		Reason: aiTimeoutReason,
		Pros:   []string{},
		Cons:   []string{},
	}
}

// buildEvidence assembles the evidence packet the auditor judges from.
func buildEvidence(cand model.Candidate, criteria, excerpt string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ACCEPTANCE CRITERIA:\n%s\n\n", criteria)
	fmt.Fprintf(&b, "BUSINESS: %s\n", cand.Name)
	if len(cand.Categories) > 0 {
		fmt.Fprintf(&b, "CATEGORIES: %s\n", strings.Join(cand.Categories, ", "))
	}
	if cand.Summary != "" {
		fmt.Fprintf(&b, "SUMMARY: %s\n", cand.Summary)
	}

	b.WriteString("\nREVIEWS:\n")
	if len(cand.Reviews) == 0 {
		b.WriteString("(none)\n")
	}
	for i, rev := range cand.Reviews {
		if i >= 3 {
			break
		}
		fmt.Fprintf(&b, "- %s\n", rev.Text)
	}

	fmt.Fprintf(&b, "\nWEBSITE EXCERPT:\n%s\n", excerpt)

	return b.String()
}

// verdictPayload mirrors the JSON shape the auditor is told to emit.
type verdictPayload struct {
	Status string   `json:"status"`
	Reason string   `json:"reason"`
	Pros   []string `json:"pros"`
	Cons   []string `json:"cons"`
}

// parseVerdict extracts a verdict from the model reply. Replies wrapped in
// markdown fences or surrounded by prose are tolerated; anything that does
// not decode to a binary status is not.
func parseVerdict(reply string) (model.Verdict, bool) {
	var p verdictPayload
	if err := json.Unmarshal([]byte(llmjson.Clean(reply)), &p); err != nil {
		return model.Verdict{}, false
	}

	status := model.VerdictStatus(strings.ToUpper(strings.TrimSpace(p.Status)))
	if status != model.StatusApproved && status != model.StatusRejected {
		return model.Verdict{}, false
	}

	if p.Pros == nil {
		p.Pros = []string{}
	}
	if p.Cons == nil {
		p.Cons = []string{}
	}

	return model.Verdict{
		Status: status,
		Reason: strings.TrimSpace(p.Reason),
		Pros:   p.Pros,
		Cons:   p.Cons,
	}, true
}
