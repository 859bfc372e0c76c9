// =============================================================================
// Balance Sheet Recon - Reconciliation Aggregator
// =============================================================================
//
// Joins classifier verdicts with optional analytics into one reconciliation
// record per account, then rolls the record set up into a portfolio summary.
// Pure transformation over the provided entities: no IO, no side effects.
//
// KEY RISKS:
//   Mismatched accounts, unclassified accounts, aged payables and clearing
//   residuals each contribute a risk item. Risks are deduplicated by account
//   identifier (first reason wins) and ordered by absolute net balance
//   descending, identifier ascending on ties.
//
// =============================================================================

package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/balance-sheet-recon/internal/analytics"
	"github.com/ginjaninja78/balance-sheet-recon/internal/classify"
	"github.com/ginjaninja78/balance-sheet-recon/internal/ledger"
)

// ReconciliationRecord is the unit handed to downstream reporting: one
// account with its verdict and, when GL detail exists, its analytics.
type ReconciliationRecord struct {
	Account *ledger.Account
	Verdict classify.Verdict

	// Analytics is nil for accounts without GL detail.
	Analytics *analytics.AccountAnalytics
}

// KeyRisk is one flagged risk item in the portfolio summary.
type KeyRisk struct {
	// Account is the raw account identifier.
	Account string

	// Balance is the account's net balance.
	Balance decimal.Decimal

	// Reason is the one-line explanation of the flag.
	Reason string
}

// CategoryStats aggregates per mapped category.
type CategoryStats struct {
	Category string
	Count    int
	Pass     int
	Mismatch int
	NetTotal decimal.Decimal
}

// PortfolioSummary is the portfolio-level rollup. Derived, recomputed each
// run, never persisted.
type PortfolioSummary struct {
	PassCount          int
	MismatchCount      int
	NotApplicableCount int

	// TotalDebit and TotalCredit are summed across every account.
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal

	// Balanced is true when total debits equal total credits within
	// tolerance.
	Balanced bool

	// RequiresAction lists the identifiers of every mismatched account, in
	// record order.
	RequiresAction []string

	// KeyRisks are the flagged items, deduplicated and ordered.
	KeyRisks []KeyRisk

	// ByCategory aggregates accounts per mapped category, ordered by
	// category name.
	ByCategory []CategoryStats
}

// BuildRecords classifies every account and attaches analytics built from
// its matched transactions. Record order follows account order.
func BuildRecords(accounts []*ledger.Account, classifier *classify.Classifier,
	txnsByAccount map[string][]ledger.Transaction, opts analytics.Options) []ReconciliationRecord {

	records := make([]ReconciliationRecord, 0, len(accounts))
	for _, acct := range accounts {
		records = append(records, ReconciliationRecord{
			Account:   acct,
			Verdict:   classifier.Classify(acct),
			Analytics: analytics.Build(acct, txnsByAccount[acct.Key()], opts),
		})
	}
	return records
}

// Summarize rolls a record set up into a portfolio summary.
func Summarize(records []ReconciliationRecord, tolerance decimal.Decimal) PortfolioSummary {
	s := PortfolioSummary{
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	var risks []KeyRisk
	seen := make(map[string]bool)
	addRisk := func(acct *ledger.Account, reason string) {
		key := acct.Key()
		if seen[key] {
			return
		}
		seen[key] = true
		risks = append(risks, KeyRisk{Account: acct.Raw, Balance: acct.Net(), Reason: reason})
	}

	byCategory := make(map[string]*CategoryStats)

	for _, r := range records {
		s.TotalDebit = s.TotalDebit.Add(r.Account.Debit)
		s.TotalCredit = s.TotalCredit.Add(r.Account.Credit)

		switch r.Verdict.Status {
		case classify.Pass:
			s.PassCount++
		case classify.Mismatch:
			s.MismatchCount++
			s.RequiresAction = append(s.RequiresAction, r.Account.Raw)
			addRisk(r.Account, r.Verdict.Commentary)
		default:
			s.NotApplicableCount++
		}

		if r.Verdict.Balance == classify.Unclassified {
			addRisk(r.Account, "Unclassified account")
		}
		if r.Analytics != nil {
			if ap := r.Analytics.Summary.AccountsPayable; ap != nil && ap.WriteOffRecommended {
				addRisk(r.Account, "Aged payables before write-off cutoff")
			}
			if cl := r.Analytics.Summary.Clearing; cl != nil && cl.RequiresInvestigation {
				addRisk(r.Account, "Clearing residual requires investigation")
			}
		}

		category := r.Account.Category
		if category == "" {
			category = ledger.UnmappedCategory
		}
		cs, ok := byCategory[category]
		if !ok {
			cs = &CategoryStats{Category: category, NetTotal: decimal.Zero}
			byCategory[category] = cs
		}
		cs.Count++
		cs.NetTotal = cs.NetTotal.Add(r.Account.Net())
		switch r.Verdict.Status {
		case classify.Pass:
			cs.Pass++
		case classify.Mismatch:
			cs.Mismatch++
		}
	}

	s.Balanced = s.TotalDebit.Sub(s.TotalCredit).Abs().LessThanOrEqual(tolerance)

	sort.SliceStable(risks, func(i, j int) bool {
		a, b := risks[i], risks[j]
		if !a.Balance.Abs().Equal(b.Balance.Abs()) {
			return a.Balance.Abs().GreaterThan(b.Balance.Abs())
		}
		return a.Account < b.Account
	})
	s.KeyRisks = risks

	for _, cs := range byCategory {
		s.ByCategory = append(s.ByCategory, *cs)
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		return s.ByCategory[i].Category < s.ByCategory[j].Category
	})

	return s
}
