// =============================================================================
// Balance Sheet Recon - Gemini Summarizer
// =============================================================================
//
// GeminiSummarizer sends a compact JSON payload of the reconciliation to the
// Gemini API and parses the structured commentary it returns. Every failure
// mode (client creation, timeout, empty or malformed response) surfaces as a
// CollaboratorUnavailableError; the caller keeps the computed records.
//
// The call is bounded by its own timeout so a slow collaborator cannot hold
// up a run indefinitely.
//
// =============================================================================

package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/ginjaninja78/balance-sheet-recon/internal/report"
)

// GeminiSummarizer generates narrative commentary via the Gemini API.
type GeminiSummarizer struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiSummarizer builds a summarizer. Credentials come from the
// environment, the same way the genai SDK resolves them everywhere.
func NewGeminiSummarizer(ctx context.Context, model string, timeout time.Duration) (*GeminiSummarizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, &CollaboratorUnavailableError{Err: fmt.Errorf("create genai client: %w", err)}
	}
	return &GeminiSummarizer{client: client, model: model, timeout: timeout}, nil
}

// payloadAccount is the compact per-account form sent to the model.
type payloadAccount struct {
	Account     string `json:"account"`
	Category    string `json:"category"`
	BalanceType string `json:"balance_type"`
	Net         string `json:"net"`
	Status      string `json:"status"`
	Review      bool   `json:"review"`
	Commentary  string `json:"commentary"`
}

type payloadSummary struct {
	Pass           int      `json:"pass"`
	Mismatch       int      `json:"mismatch"`
	NotApplicable  int      `json:"not_applicable"`
	TotalDebit     string   `json:"total_debit"`
	TotalCredit    string   `json:"total_credit"`
	Balanced       bool     `json:"balanced"`
	RequiresAction []string `json:"requires_action"`
}

type payload struct {
	Summary  payloadSummary   `json:"summary"`
	Accounts []payloadAccount `json:"accounts"`
}

// Summarize implements Summarizer.
func (g *GeminiSummarizer) Summarize(ctx context.Context, records []report.ReconciliationRecord, summary report.PortfolioSummary) (*Narrative, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	body, err := json.Marshal(buildPayload(records, summary))
	if err != nil {
		return nil, &CollaboratorUnavailableError{Err: fmt.Errorf("marshal payload: %w", err)}
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: reviewerPrompt},
				{Text: string(body)},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, &CollaboratorUnavailableError{Err: fmt.Errorf("generate content: %w", err)}
	}

	raw := resp.Text()
	if raw == "" {
		return nil, &CollaboratorUnavailableError{Err: fmt.Errorf("empty response from model")}
	}

	var n Narrative
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &n); err != nil {
		return nil, &CollaboratorUnavailableError{Err: fmt.Errorf("unmarshal response: %w", err)}
	}
	return &n, nil
}

// buildPayload compacts the record set for the model: every account, with
// amounts as fixed-point strings.
func buildPayload(records []report.ReconciliationRecord, summary report.PortfolioSummary) payload {
	p := payload{
		Summary: payloadSummary{
			Pass:           summary.PassCount,
			Mismatch:       summary.MismatchCount,
			NotApplicable:  summary.NotApplicableCount,
			TotalDebit:     summary.TotalDebit.StringFixed(2),
			TotalCredit:    summary.TotalCredit.StringFixed(2),
			Balanced:       summary.Balanced,
			RequiresAction: summary.RequiresAction,
		},
	}
	for _, r := range records {
		p.Accounts = append(p.Accounts, payloadAccount{
			Account:     r.Account.Raw,
			Category:    r.Account.Category,
			BalanceType: r.Verdict.Balance.String(),
			Net:         r.Account.Net().StringFixed(2),
			Status:      r.Verdict.Status.String(),
			Review:      r.Verdict.ReviewFlag,
			Commentary:  r.Verdict.Commentary,
		})
	}
	return p
}

// cleanModelJSON strips Markdown code fences when the model ignores the
// raw-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
