// =============================================================================
// Balance Sheet Recon - Category Summaries
// =============================================================================
//
// The category-specific summary is a tagged union: one Kind plus exactly one
// populated payload arm. The arm shapes differ because the questions differ:
// AP cares about write-off candidates, AR about collection, Clearing about
// residual, fixed assets about depreciation evidence, intercompany about
// counterparties, deferred revenue about period movement.
//
// Category detection reads the mapped category/subcategory first and falls
// back to the account name. Accounts matching nothing get the generic arm.
//
// =============================================================================

package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/balance-sheet-recon/internal/ledger"
)

// SummaryKind tags which payload arm of a CategorySummary is populated.
type SummaryKind int

const (
	// KindGeneric is the fallback summary for unrecognized categories.
	KindGeneric SummaryKind = iota

	// KindAccountsPayable flags aged open items for write-off review.
	KindAccountsPayable

	// KindAccountsReceivable recommends a collection action from aging.
	KindAccountsReceivable

	// KindClearing reports the residual balance.
	KindClearing

	// KindFixedAssets checks for depreciation activity.
	KindFixedAssets

	// KindIntercompany groups activity by counterparty.
	KindIntercompany

	// KindDeferredRevenue builds a period-over-period waterfall.
	KindDeferredRevenue
)

// String returns the human-readable name of the summary kind.
func (k SummaryKind) String() string {
	switch k {
	case KindAccountsPayable:
		return "Accounts Payable"
	case KindAccountsReceivable:
		return "Accounts Receivable"
	case KindClearing:
		return "Clearing"
	case KindFixedAssets:
		return "Fixed Assets"
	case KindIntercompany:
		return "Intercompany"
	case KindDeferredRevenue:
		return "Deferred Revenue"
	default:
		return "General"
	}
}

// CategorySummary is the tagged union. Exactly the arm matching Kind is
// non-nil.
type CategorySummary struct {
	Kind SummaryKind

	AccountsPayable    *APSummary
	AccountsReceivable *ARSummary
	Clearing           *ClearingSummary
	FixedAssets        *FixedAssetsSummary
	Intercompany       *IntercompanySummary
	DeferredRevenue    *DeferredRevenueSummary
	Generic            *GenericSummary
}

// APSummary flags Accounts Payable items dated before the write-off cutoff.
type APSummary struct {
	// AgedCount is the number of items dated before the cutoff.
	AgedCount int

	// AgedTotal is their signed sum.
	AgedTotal decimal.Decimal

	// WriteOffRecommended is true when any aged item exists.
	WriteOffRecommended bool
}

// ARSummary keys a collection recommendation off the oldest aging bucket.
type ARSummary struct {
	// OverdueCount and OverdueTotal cover the open-ended oldest bucket.
	OverdueCount int
	OverdueTotal decimal.Decimal

	// Action is the suggested collection action.
	Action string
}

// ClearingSummary restates the residual explicitly, independent of the
// classifier verdict.
type ClearingSummary struct {
	Residual              decimal.Decimal
	RequiresInvestigation bool
}

// FixedAssetsSummary reports whether depreciation activity is visible in the
// ledger detail.
type FixedAssetsSummary struct {
	// Additions is the sum of debits, Reductions the sum of credits.
	Additions  decimal.Decimal
	Reductions decimal.Decimal

	// DepreciationSeen is true when any transaction description mentions
	// depreciation or amortization.
	DepreciationSeen bool
}

// CounterpartyTotal is one counterparty's aggregate activity.
type CounterpartyTotal struct {
	Counterparty string
	Count        int
	Total        decimal.Decimal
}

// IntercompanySummary groups activity by counterparty inferred from the
// transaction description.
type IntercompanySummary struct {
	// Counterparties are ordered by absolute total descending, name
	// ascending on ties.
	Counterparties []CounterpartyTotal
}

// PeriodMovement is one month's net movement in a waterfall.
type PeriodMovement struct {
	// Period is the calendar month, "2006-01" format.
	Period string
	Net    decimal.Decimal
}

// DeferredRevenueSummary is the month-by-month net movement, ordered by
// period ascending. Undated transactions are excluded.
type DeferredRevenueSummary struct {
	Waterfall []PeriodMovement
}

// GenericSummary carries the minimal detail for unrecognized categories.
type GenericSummary struct {
	NetActivity decimal.Decimal
}

// =============================================================================
// KIND DETECTION
// =============================================================================

// kindFor decides the summary kind from the mapped category, the mapped
// subcategory, then the account name. First recognized signal wins.
func kindFor(acct *ledger.Account) SummaryKind {
	for _, signal := range []string{acct.Subcategory, acct.Category, acct.Raw} {
		s := strings.ToLower(signal)
		switch {
		case s == "":
			continue
		case strings.Contains(s, "intercompany"):
			return KindIntercompany
		case strings.Contains(s, "deferred revenue"), strings.Contains(s, "unearned revenue"):
			return KindDeferredRevenue
		case strings.Contains(s, "clearing"), strings.Contains(s, "suspense"):
			return KindClearing
		case strings.Contains(s, "payable"):
			return KindAccountsPayable
		case strings.Contains(s, "receivable"):
			return KindAccountsReceivable
		case strings.Contains(s, "fixed asset"), strings.Contains(s, "property"),
			strings.Contains(s, "equipment"), strings.Contains(s, "ppe"):
			return KindFixedAssets
		}
	}
	return KindGeneric
}

// buildSummary dispatches to the arm builder for the detected kind.
func buildSummary(acct *ledger.Account, txns []ledger.Transaction, aging []AgingBucket, opts Options) CategorySummary {
	kind := kindFor(acct)
	switch kind {
	case KindAccountsPayable:
		return CategorySummary{Kind: kind, AccountsPayable: buildAP(txns, opts)}
	case KindAccountsReceivable:
		return CategorySummary{Kind: kind, AccountsReceivable: buildAR(aging)}
	case KindClearing:
		return CategorySummary{Kind: kind, Clearing: buildClearing(acct, opts)}
	case KindFixedAssets:
		return CategorySummary{Kind: kind, FixedAssets: buildFixedAssets(txns)}
	case KindIntercompany:
		return CategorySummary{Kind: kind, Intercompany: buildIntercompany(txns)}
	case KindDeferredRevenue:
		return CategorySummary{Kind: kind, DeferredRevenue: buildDeferredRevenue(txns)}
	default:
		return CategorySummary{Kind: KindGeneric, Generic: buildGeneric(txns)}
	}
}

// =============================================================================
// ARM BUILDERS
// =============================================================================

func buildAP(txns []ledger.Transaction, opts Options) *APSummary {
	s := &APSummary{AgedTotal: decimal.Zero}
	for _, t := range txns {
		if t.HasDate && t.Date.Before(opts.WriteOffCutoff) {
			s.AgedCount++
			s.AgedTotal = s.AgedTotal.Add(t.Amount())
		}
	}
	s.WriteOffRecommended = s.AgedCount > 0
	return s
}

func buildAR(aging []AgingBucket) *ARSummary {
	s := &ARSummary{OverdueTotal: decimal.Zero}
	if len(aging) > 0 {
		oldest := aging[len(aging)-1]
		s.OverdueCount = oldest.Count
		s.OverdueTotal = oldest.Total
	}
	switch {
	case s.OverdueCount == 0:
		s.Action = "No collection action required"
	case s.OverdueTotal.Abs().GreaterThan(decimal.NewFromInt(10000)):
		s.Action = "Escalate to collections"
	default:
		s.Action = "Send payment reminder"
	}
	return s
}

func buildClearing(acct *ledger.Account, opts Options) *ClearingSummary {
	residual := acct.Net()
	return &ClearingSummary{
		Residual:              residual,
		RequiresInvestigation: residual.Abs().GreaterThan(opts.Tolerance),
	}
}

func buildFixedAssets(txns []ledger.Transaction) *FixedAssetsSummary {
	s := &FixedAssetsSummary{Additions: decimal.Zero, Reductions: decimal.Zero}
	for _, t := range txns {
		s.Additions = s.Additions.Add(t.Debit)
		s.Reductions = s.Reductions.Add(t.Credit)
		desc := strings.ToLower(t.Description)
		if strings.Contains(desc, "depreciation") || strings.Contains(desc, "amortization") {
			s.DepreciationSeen = true
		}
	}
	return s
}

func buildIntercompany(txns []ledger.Transaction) *IntercompanySummary {
	totals := make(map[string]*CounterpartyTotal)
	for _, t := range txns {
		name := counterparty(t.Description)
		ct, ok := totals[name]
		if !ok {
			ct = &CounterpartyTotal{Counterparty: name, Total: decimal.Zero}
			totals[name] = ct
		}
		ct.Count++
		ct.Total = ct.Total.Add(t.Amount())
	}

	s := &IntercompanySummary{}
	for _, ct := range totals {
		s.Counterparties = append(s.Counterparties, *ct)
	}
	sort.Slice(s.Counterparties, func(i, j int) bool {
		a, b := s.Counterparties[i], s.Counterparties[j]
		if !a.Total.Abs().Equal(b.Total.Abs()) {
			return a.Total.Abs().GreaterThan(b.Total.Abs())
		}
		return a.Counterparty < b.Counterparty
	})
	return s
}

// counterparty infers the counterparty token from a description: the first
// hyphen-delimited segment, or the whole description when none.
func counterparty(description string) string {
	d := strings.TrimSpace(description)
	if d == "" {
		return "Unknown"
	}
	if idx := strings.Index(d, " - "); idx >= 0 {
		return strings.TrimSpace(d[:idx])
	}
	return d
}

func buildDeferredRevenue(txns []ledger.Transaction) *DeferredRevenueSummary {
	byPeriod := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if !t.HasDate {
			continue
		}
		period := t.Date.Format("2006-01")
		byPeriod[period] = byPeriod[period].Add(t.Amount())
	}

	s := &DeferredRevenueSummary{}
	for period, net := range byPeriod {
		s.Waterfall = append(s.Waterfall, PeriodMovement{Period: period, Net: net})
	}
	sort.Slice(s.Waterfall, func(i, j int) bool {
		return s.Waterfall[i].Period < s.Waterfall[j].Period
	})
	return s
}

func buildGeneric(txns []ledger.Transaction) *GenericSummary {
	net := decimal.Zero
	for _, t := range txns {
		net = net.Add(t.Amount())
	}
	return &GenericSummary{NetActivity: net}
}
