// =============================================================================
// Balance Sheet Recon - Narrative Generator
// =============================================================================
//
// Narrative generation is an external collaborator behind a small interface
// so the pipeline can be tested deterministically with a stub. A failed or
// skipped narrative never invalidates the computed reconciliation: callers
// treat a CollaboratorUnavailableError as a degraded run, not a failed one.
//
// =============================================================================

package narrative

import (
	"context"
	"fmt"

	"github.com/ginjaninja78/balance-sheet-recon/internal/report"
)

// Narrative is the collaborator's output: an overall portfolio commentary
// plus optional per-account commentary keyed by raw account identifier.
type Narrative struct {
	Overall  string            `json:"overall"`
	Accounts map[string]string `json:"accounts"`
}

// Summarizer turns a record set into human-readable commentary.
type Summarizer interface {
	Summarize(ctx context.Context, records []report.ReconciliationRecord, summary report.PortfolioSummary) (*Narrative, error)
}

// CollaboratorUnavailableError reports a narrative collaborator failure
// (timeout, auth, quota, malformed response). The core reconciliation output
// remains valid.
type CollaboratorUnavailableError struct {
	Err error
}

// Error implements the error interface.
func (e *CollaboratorUnavailableError) Error() string {
	return fmt.Sprintf("narrative collaborator unavailable: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *CollaboratorUnavailableError) Unwrap() error {
	return e.Err
}

// NoopSummarizer is the stand-in when narrative generation is disabled. It
// returns no narrative and no error.
type NoopSummarizer struct{}

// Summarize implements Summarizer.
func (NoopSummarizer) Summarize(context.Context, []report.ReconciliationRecord, report.PortfolioSummary) (*Narrative, error) {
	return nil, nil
}
