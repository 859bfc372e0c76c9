// =============================================================================
// Balance Sheet Recon - Normalizer
// =============================================================================
//
// Turns parsed tables into the clean domain model.
//
// TRIAL BALANCE CLEANING RULES (applied per row, in order):
//   1. Blank account identifier        -> skipped silently (noise)
//   2. Summary rows ("Total ...",
//      "Subtotal", "Grand Total",
//      "Sum", "Opening Balance")       -> skipped silently (not accounts)
//   3. Unparseable debit or credit     -> skipped, recorded as row error
//   4. Both amounts zero               -> skipped silently (noise)
//
// Surviving rows are merged by case-insensitive account identifier, summing
// debit and credit. First-seen order is preserved.
//
// GENERAL LEDGER RULES:
//   - Unparseable debit or credit      -> row skipped, recorded as row error
//   - Unparseable date                 -> row KEPT without a date, recorded
//                                         as row error (drops aging only)
//
// =============================================================================

package ledger

import (
	"strings"

	"github.com/ginjaninja78/balance-sheet-recon/internal/ingest"
)

// summaryExact are identifiers that mark a summary row outright.
var summaryExact = map[string]bool{
	"total":       true,
	"subtotal":    true,
	"grand total": true,
	"sum":         true,
}

// isSummaryRow reports whether an account identifier denotes a summary or
// carried-forward row rather than a real account.
func isSummaryRow(identifier string) bool {
	k := Key(identifier)
	if summaryExact[k] {
		return true
	}
	if strings.HasPrefix(k, "total ") || strings.HasPrefix(k, "total-") {
		return true
	}
	if strings.Contains(k, "opening balance") {
		return true
	}
	return false
}

// NormalizeTrialBalance cleans and merges a parsed trial balance table.
//
// RETURNS:
//   - accounts in first-seen input order, duplicates merged
//   - per-row errors (invalid amounts); the rows behind them were skipped
func NormalizeTrialBalance(table *ingest.Table) ([]*Account, []error) {
	var (
		accounts []*Account
		byKey    = make(map[string]*Account)
		rowErrs  []error
	)

	for _, row := range table.Rows {
		identifier := strings.TrimSpace(row.Get(ingest.ColAccount))
		if identifier == "" || isSummaryRow(identifier) {
			continue
		}

		debit, err := ingest.ParseAmountCell(row, ingest.ColDebit)
		if err != nil {
			rowErrs = append(rowErrs, err)
			continue
		}
		credit, err := ingest.ParseAmountCell(row, ingest.ColCredit)
		if err != nil {
			rowErrs = append(rowErrs, err)
			continue
		}

		if debit.IsZero() && credit.IsZero() {
			continue
		}

		key := Key(identifier)
		acct, ok := byKey[key]
		if !ok {
			acct = NewAccount(identifier)
			byKey[key] = acct
			accounts = append(accounts, acct)
		}
		acct.Add(debit, credit)
	}

	return accounts, rowErrs
}

// NormalizeGeneralLedger cleans a parsed general ledger table into
// transactions. Index numbering covers kept transactions only and continues
// from startIndex so multiple ledger files share one ordering.
func NormalizeGeneralLedger(table *ingest.Table, startIndex int) ([]Transaction, []error) {
	var (
		txns    []Transaction
		rowErrs []error
	)
	index := startIndex

	for _, row := range table.Rows {
		account := strings.TrimSpace(row.Get(ingest.ColAccount))
		if account == "" {
			continue
		}

		debit, err := ingest.ParseAmountCell(row, ingest.ColDebit)
		if err != nil {
			rowErrs = append(rowErrs, err)
			continue
		}
		credit, err := ingest.ParseAmountCell(row, ingest.ColCredit)
		if err != nil {
			rowErrs = append(rowErrs, err)
			continue
		}

		date, hasDate, err := ingest.ParseDateCell(row)
		if err != nil {
			// Keep the transaction; it just cannot be aged.
			rowErrs = append(rowErrs, err)
		}

		txns = append(txns, Transaction{
			Index:       index,
			SourceRow:   row.SourceRow,
			Source:      table.Source,
			Account:     account,
			Date:        date,
			HasDate:     hasDate,
			Debit:       debit,
			Credit:      credit,
			Description: strings.TrimSpace(row.Get(ingest.ColDescription)),
		})
		index++
	}

	return txns, rowErrs
}
