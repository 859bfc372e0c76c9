// =============================================================================
// Balance Sheet Recon - Analysis Engine
// =============================================================================
//
// Runs one analysis: ingest -> normalize -> classify -> analytics ->
// aggregate, then narrative generation last. Each run is a pure function of
// its input files producing an independent result graph; nothing is shared
// across runs and nothing survives past one invocation.
//
// DEGRADATION POLICY:
//   - Trial balance failure is fatal for the run: no partial classification.
//   - Mapping or general ledger file failures degrade the run: classification
//     proceeds without them and the failure is recorded on the result.
//   - Row-level errors are collected alongside the results, never swallowed.
//   - Narrative failure leaves the computed records untouched.
//
// =============================================================================

package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/balance-sheet-recon/internal/analytics"
	"github.com/ginjaninja78/balance-sheet-recon/internal/classify"
	"github.com/ginjaninja78/balance-sheet-recon/internal/config"
	"github.com/ginjaninja78/balance-sheet-recon/internal/ingest"
	"github.com/ginjaninja78/balance-sheet-recon/internal/ledger"
	"github.com/ginjaninja78/balance-sheet-recon/internal/logger"
	"github.com/ginjaninja78/balance-sheet-recon/internal/narrative"
	"github.com/ginjaninja78/balance-sheet-recon/internal/report"
)

// Inputs names the files of one analysis run.
type Inputs struct {
	// TrialBalancePath is required.
	TrialBalancePath string

	// GeneralLedgerPaths are optional transaction-detail files.
	GeneralLedgerPaths []string

	// MappingPath is the optional category mapping file.
	MappingPath string

	// AsOf is the analysis date aging is measured against.
	AsOf time.Time
}

// RowError is one collected row-level problem with its source file.
type RowError struct {
	Source string
	Err    error
}

// Stats are the run counters reported to the user.
type Stats struct {
	AccountCount     int
	TransactionCount int
	MappedAccounts   int
	RowErrorCount    int

	// FailedFiles are optional input files that could not be parsed; the
	// run proceeded without them.
	FailedFiles []string
}

// Result is the complete output graph of one run.
type Result struct {
	RunID   uuid.UUID
	AsOf    time.Time
	Records []report.ReconciliationRecord
	Summary report.PortfolioSummary

	// Narrative is nil when generation was disabled, skipped or failed.
	Narrative *narrative.Narrative

	// NarrativeErr records a collaborator failure. The records above remain
	// valid.
	NarrativeErr error

	RowErrors []RowError
	Stats     Stats
}

// Engine runs analyses. It is stateless between runs.
type Engine struct {
	cfg        *config.Config
	summarizer narrative.Summarizer
}

// New builds an engine. A nil summarizer disables narrative generation.
func New(cfg *config.Config, summarizer narrative.Summarizer) *Engine {
	if summarizer == nil {
		summarizer = narrative.NoopSummarizer{}
	}
	return &Engine{cfg: cfg, summarizer: summarizer}
}

// Run executes one analysis.
func (e *Engine) Run(ctx context.Context, in Inputs) (*Result, error) {
	log := logger.FromContext(ctx)
	scanRows := e.cfg.Rules.HeaderScanRows

	result := &Result{RunID: uuid.New(), AsOf: in.AsOf}

	// Trial balance: required, failure is fatal.
	tbTable, err := ingest.ParseFile(in.TrialBalancePath, ingest.TrialBalance, scanRows)
	if err != nil {
		return nil, err
	}
	accounts, rowErrs := ledger.NormalizeTrialBalance(tbTable)
	result.addRowErrors(tbTable.Source, rowErrs)
	log.Info().Int("accounts", len(accounts)).Str("file", in.TrialBalancePath).
		Msg("trial balance normalized")

	// Category mapping: optional, failure degrades to unmapped accounts.
	mapping := ledger.NewCategoryMapping(nil)
	if in.MappingPath != "" {
		mapTable, err := ingest.ParseFile(in.MappingPath, ingest.CategoryMapping, scanRows)
		if err != nil {
			log.Warn().Err(err).Str("file", in.MappingPath).
				Msg("category mapping unusable, accounts remain unmapped")
			result.Stats.FailedFiles = append(result.Stats.FailedFiles, in.MappingPath)
		} else {
			mapping = ledger.NewCategoryMapping(mapTable)
		}
	}
	result.Stats.MappedAccounts = mapping.Apply(accounts)

	// General ledger: optional, per-file failures degrade to absent detail.
	var txns []ledger.Transaction
	for _, path := range in.GeneralLedgerPaths {
		glTable, err := ingest.ParseFile(path, ingest.GeneralLedger, scanRows)
		if err != nil {
			log.Warn().Err(err).Str("file", path).
				Msg("general ledger file unusable, detail degrades to absence")
			result.Stats.FailedFiles = append(result.Stats.FailedFiles, path)
			continue
		}
		fileTxns, rowErrs := ledger.NormalizeGeneralLedger(glTable, len(txns))
		result.addRowErrors(glTable.Source, rowErrs)
		txns = append(txns, fileTxns...)
	}

	txnsByAccount := make(map[string][]ledger.Transaction)
	for _, t := range txns {
		key := t.AccountKey()
		txnsByAccount[key] = append(txnsByAccount[key], t)
	}

	classifier := classify.NewClassifier(e.cfg.Tolerance())
	opts := analytics.Options{
		AsOf:           in.AsOf,
		BucketDays:     e.cfg.Rules.AgingBucketDays,
		TopN:           e.cfg.Rules.TopComponents,
		WriteOffCutoff: e.cfg.WriteOffCutoff(),
		Tolerance:      e.cfg.Tolerance(),
	}

	result.Records = report.BuildRecords(accounts, classifier, txnsByAccount, opts)
	result.Summary = report.Summarize(result.Records, e.cfg.Tolerance())
	result.Stats.AccountCount = len(accounts)
	result.Stats.TransactionCount = len(txns)
	result.Stats.RowErrorCount = len(result.RowErrors)

	log.Info().
		Int("pass", result.Summary.PassCount).
		Int("mismatch", result.Summary.MismatchCount).
		Int("not_applicable", result.Summary.NotApplicableCount).
		Msg("classification complete")

	// Narrative last: the core output above is already complete and valid.
	n, err := e.summarizer.Summarize(ctx, result.Records, result.Summary)
	if err != nil {
		log.Warn().Err(err).Msg("narrative generation failed, core results unaffected")
		result.NarrativeErr = err
	} else {
		result.Narrative = n
	}

	return result, nil
}

func (r *Result) addRowErrors(source string, errs []error) {
	for _, err := range errs {
		r.RowErrors = append(r.RowErrors, RowError{Source: source, Err: err})
	}
}
