// =============================================================================
// Balance Sheet Recon - Analyze Command
// =============================================================================
//
// This file defines the 'analyze' command, the main workflow of the CLI:
//   1. Load configuration and set up logging
//   2. Run the analysis engine over the input files
//   3. Write the Excel workbook, text reports and error log
//   4. Optionally archive the processed input files
//
// COMMAND USAGE:
//   recon analyze --tb trial_balance.xlsx
//   recon analyze --tb tb.csv --gl gl1.csv --gl gl2.csv --mapping map.csv
//   recon analyze --tb tb.csv --as-of 2026-06-30 --mismatches-only
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/balance-sheet-recon/internal/classify"
	"github.com/ginjaninja78/balance-sheet-recon/internal/engine"
	"github.com/ginjaninja78/balance-sheet-recon/internal/ingest"
	"github.com/ginjaninja78/balance-sheet-recon/internal/logger"
	"github.com/ginjaninja78/balance-sheet-recon/internal/narrative"
	"github.com/ginjaninja78/balance-sheet-recon/internal/report"
	"github.com/ginjaninja78/balance-sheet-recon/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	// tbPath is the required trial balance file.
	tbPath string

	// glPaths are the optional general ledger files (repeatable).
	glPaths []string

	// mappingPath is the optional category mapping file.
	mappingPath string

	// outDir overrides the configured output directory when set.
	outDir string

	// asOfFlag is the analysis date, "2006-01-02". Empty means today.
	asOfFlag string

	// mismatchesOnly restricts the detail report to mismatched accounts.
	mismatchesOnly bool

	// withNarrative forces narrative generation on for this run.
	withNarrative bool

	// archiveInputs moves the input files to the archive after the run.
	archiveInputs bool
)

// =============================================================================
// ANALYZE COMMAND DEFINITION
// =============================================================================

// analyzeCmd represents the 'analyze' command.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Classify and reconcile a trial balance",
	Long: `Analyze a trial balance: classify every account, check each balance
against its expected side, compute transaction-level analytics from optional
general ledger detail, and write the reconciliation workbook and reports.`,
	RunE: runAnalyze,
}

// runAnalyze executes the full analysis workflow.
func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if outDir != "" {
		cfg.OutputDir = outDir
	}

	log := logger.New(cfg.LogLevel)
	ctx := logger.WithContext(context.Background(), log)

	asOf := time.Now()
	if asOfFlag != "" {
		asOf, err = time.Parse("2006-01-02", asOfFlag)
		if err != nil {
			return fmt.Errorf("invalid --as-of date %q: %w", asOfFlag, err)
		}
	}

	fm := utils.NewFileManager(cfg.OutputDir, cfg.InputArchiveDir)
	fm.ArchiveOnSuccess = archiveInputs
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	var summarizer narrative.Summarizer
	if withNarrative || cfg.Narrative.Enabled {
		timeout := time.Duration(cfg.Narrative.TimeoutSeconds) * time.Second
		summarizer, err = narrative.NewGeminiSummarizer(ctx, cfg.Narrative.Model, timeout)
		if err != nil {
			log.Warn().Err(err).Msg("narrative collaborator unavailable, continuing without it")
			summarizer = nil
		}
	}

	eng := engine.New(cfg, summarizer)
	result, err := eng.Run(ctx, engine.Inputs{
		TrialBalancePath:   tbPath,
		GeneralLedgerPaths: glPaths,
		MappingPath:        mappingPath,
		AsOf:               asOf,
	})
	if err != nil {
		return err
	}

	if err := writeOutputs(cfg.OutputDir, result, log); err != nil {
		return err
	}

	fmt.Print(report.RenderSummaryText(result.Summary, result.AsOf))

	if archiveInputs {
		inputs := append([]string{tbPath}, glPaths...)
		if mappingPath != "" {
			inputs = append(inputs, mappingPath)
		}
		archiveAll(fm, log, inputs)
	}

	return nil
}

// =============================================================================
// OUTPUT WRITING
// =============================================================================

// writeOutputs writes the workbook, text reports, narrative and error log
// into the output directory, named by run.
func writeOutputs(outputDir string, result *engine.Result, log zerolog.Logger) error {
	run := result.RunID.String()[:8]
	params := map[string]string{"run": run}

	// The summary always covers the full record set; --mismatches-only
	// narrows the workbook and detail views.
	workbookRecords := result.Records
	if mismatchesOnly {
		workbookRecords = nil
		for _, r := range result.Records {
			if r.Verdict.Status == classify.Mismatch {
				workbookRecords = append(workbookRecords, r)
			}
		}
	}

	workbookPath := filepath.Join(outputDir,
		utils.GenerateOutputFileName("reconciliation_{timestamp}_{run}.xlsx", params))
	if err := report.WriteWorkbook(workbookPath, workbookRecords, result.Summary); err != nil {
		return err
	}
	log.Info().Str("file", workbookPath).Msg("workbook written")

	summaryPath := filepath.Join(outputDir,
		utils.GenerateOutputFileName("summary_{timestamp}_{run}.txt", params))
	summaryText := report.RenderSummaryText(result.Summary, result.AsOf)
	if err := os.WriteFile(summaryPath, []byte(summaryText), 0644); err != nil {
		return fmt.Errorf("failed to write summary report: %w", err)
	}
	log.Info().Str("file", summaryPath).Msg("summary report written")

	detailPath := filepath.Join(outputDir,
		utils.GenerateOutputFileName("detail_{timestamp}_{run}.txt", params))
	detailText := report.RenderAccountDetail(result.Records, mismatchesOnly)
	if err := os.WriteFile(detailPath, []byte(detailText), 0644); err != nil {
		return fmt.Errorf("failed to write detail report: %w", err)
	}
	log.Info().Str("file", detailPath).Msg("detail report written")

	if result.Narrative != nil {
		narrativePath := filepath.Join(outputDir,
			utils.GenerateOutputFileName("narrative_{timestamp}_{run}.txt", params))
		if err := os.WriteFile(narrativePath, []byte(renderNarrative(result.Narrative)), 0644); err != nil {
			return fmt.Errorf("failed to write narrative report: %w", err)
		}
		log.Info().Str("file", narrativePath).Msg("narrative written")
	}

	logPath, err := utils.WriteErrorLog(errorEntries(result), outputDir)
	if err != nil {
		return err
	}
	if logPath != "" {
		log.Warn().Int("errors", result.Stats.RowErrorCount).Str("file", logPath).
			Msg("row errors recorded")
	}

	return nil
}

// renderNarrative lays the collaborator's commentary out as plain text.
func renderNarrative(n *narrative.Narrative) string {
	text := n.Overall + "\n"
	for account, commentary := range n.Accounts {
		text += fmt.Sprintf("\n%s:\n  %s\n", account, commentary)
	}
	return text
}

// errorEntries converts the run's row errors into error log entries.
func errorEntries(result *engine.Result) []utils.ErrorLogEntry {
	now := time.Now()
	entries := make([]utils.ErrorLogEntry, 0, len(result.RowErrors))
	for _, re := range result.RowErrors {
		entry := utils.ErrorLogEntry{
			Timestamp:    now,
			FileName:     re.Source,
			ErrorType:    "RowError",
			ErrorMessage: re.Err.Error(),
		}

		var amountErr *ingest.InvalidAmountError
		var dateErr *ingest.UnparseableDateError
		switch {
		case errors.As(re.Err, &amountErr):
			entry.ErrorType = "InvalidAmount"
			entry.RowNumber = amountErr.SourceRow
		case errors.As(re.Err, &dateErr):
			entry.ErrorType = "UnparseableDate"
			entry.RowNumber = dateErr.SourceRow
		}
		entries = append(entries, entry)
	}
	return entries
}

// archiveAll moves the processed inputs to the archive directory. Failures
// are logged, not fatal: the reports are already written.
func archiveAll(fm *utils.FileManager, log zerolog.Logger, paths []string) {
	for _, path := range paths {
		archived, err := fm.ArchiveInputFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("failed to archive input file")
			continue
		}
		log.Info().Str("file", path).Str("archived", archived).Msg("input archived")
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the analyze command and its flags with the root command.
func init() {
	analyzeCmd.Flags().StringVar(&tbPath, "tb", "", "Path to the trial balance file (required)")
	analyzeCmd.Flags().StringArrayVar(&glPaths, "gl", nil, "Path to a general ledger file (repeatable)")
	analyzeCmd.Flags().StringVar(&mappingPath, "mapping", "", "Path to the category mapping file")
	analyzeCmd.Flags().StringVar(&outDir, "out", "", "Output directory (overrides configuration)")
	analyzeCmd.Flags().StringVar(&asOfFlag, "as-of", "", "Analysis date for aging, YYYY-MM-DD (default today)")
	analyzeCmd.Flags().BoolVar(&mismatchesOnly, "mismatches-only", false, "Restrict the detail report to mismatched accounts")
	analyzeCmd.Flags().BoolVar(&withNarrative, "narrative", false, "Generate narrative commentary for this run")
	analyzeCmd.Flags().BoolVar(&archiveInputs, "archive", false, "Move input files to the archive after the run")

	analyzeCmd.MarkFlagRequired("tb")

	rootCmd.AddCommand(analyzeCmd)
}
