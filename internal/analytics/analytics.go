// =============================================================================
// Balance Sheet Recon - Account Analytics Engine
// =============================================================================
//
// Computes transaction-level detail for accounts that have general ledger
// data: top components, aging buckets and a category-specific summary.
//
// PRESENCE CONTRACT:
//   An account without GL transactions has NO analytics (nil), not an empty
//   structure. Downstream consumers treat presence as "has detail".
//
// ORDERING:
//   Top components sort by absolute amount descending; ties keep original
//   input order. Aging buckets are emitted in bucket order even when empty.
//
// =============================================================================

package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/balance-sheet-recon/internal/ledger"
)

// Options carries the tunable analytics constants.
type Options struct {
	// AsOf is the analysis date aging is measured against.
	AsOf time.Time

	// BucketDays are the upper bounds (in days) of the aging buckets; the
	// last bucket is open-ended.
	BucketDays []int

	// TopN is how many top components to keep.
	TopN int

	// WriteOffCutoff marks Accounts Payable items as write-off candidates
	// when dated before it.
	WriteOffCutoff time.Time

	// Tolerance is the zero-comparison tolerance for residual checks.
	Tolerance decimal.Decimal
}

// Component is one ranked transaction in the top-components list.
type Component struct {
	// Description is the transaction memo, or the account identifier when
	// the memo is blank.
	Description string

	// Amount is the signed transaction amount.
	Amount decimal.Decimal

	// SourceRow locates the transaction in its source file.
	SourceRow int
}

// AgingBucket is one aging range with its aggregate.
type AgingBucket struct {
	// Label is the range label, e.g. "0-30" or "90+".
	Label string

	// Count is the number of dated transactions in the range.
	Count int

	// Total is the signed sum of their amounts.
	Total decimal.Decimal
}

// AccountAnalytics is the transaction-level detail for one account.
type AccountAnalytics struct {
	// AccountKey is the normalized identifier the detail belongs to.
	AccountKey string

	// TransactionCount is the number of GL transactions matched.
	TransactionCount int

	// UndatedCount is how many of them carry no usable date.
	UndatedCount int

	// TopComponents are the largest transactions by absolute amount.
	TopComponents []Component

	// Aging holds the aging buckets over the dated transactions.
	Aging []AgingBucket

	// Summary is the category-specific payload.
	Summary CategorySummary
}

// Build computes analytics for one account from its matched transactions.
// Returns nil when the account has no transactions.
func Build(acct *ledger.Account, txns []ledger.Transaction, opts Options) *AccountAnalytics {
	if len(txns) == 0 {
		return nil
	}

	a := &AccountAnalytics{
		AccountKey:       acct.Key(),
		TransactionCount: len(txns),
		TopComponents:    TopComponents(acct, txns, opts.TopN),
		Aging:            BuildAging(txns, opts.AsOf, opts.BucketDays),
	}
	for _, t := range txns {
		if !t.HasDate {
			a.UndatedCount++
		}
	}
	a.Summary = buildSummary(acct, txns, a.Aging, opts)
	return a
}

// TopComponents ranks transactions by absolute amount descending, keeping
// input order on ties, and takes the first n.
func TopComponents(acct *ledger.Account, txns []ledger.Transaction, n int) []Component {
	ranked := make([]ledger.Transaction, len(txns))
	copy(ranked, txns)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount().Abs().GreaterThan(ranked[j].Amount().Abs())
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	components := make([]Component, 0, n)
	for _, t := range ranked[:n] {
		desc := t.Description
		if desc == "" {
			desc = acct.Raw
		}
		components = append(components, Component{
			Description: desc,
			Amount:      t.Amount(),
			SourceRow:   t.SourceRow,
		})
	}
	return components
}

// BuildAging buckets dated transactions by elapsed days from their date to
// the as-of date. Every bucket is present in the result, empty or not.
// Undated transactions are excluded.
func BuildAging(txns []ledger.Transaction, asOf time.Time, bucketDays []int) []AgingBucket {
	if len(bucketDays) == 0 {
		bucketDays = []int{30, 60, 90}
	}
	buckets := make([]AgingBucket, len(bucketDays)+1)
	lower := 0
	for i, upper := range bucketDays {
		buckets[i] = AgingBucket{Label: fmt.Sprintf("%d-%d", lower, upper), Total: decimal.Zero}
		lower = upper + 1
	}
	buckets[len(bucketDays)] = AgingBucket{
		Label: fmt.Sprintf("%d+", bucketDays[len(bucketDays)-1]),
		Total: decimal.Zero,
	}

	for _, t := range txns {
		if !t.HasDate {
			continue
		}
		idx := len(bucketDays)
		age := t.AgeDays(asOf)
		for i, upper := range bucketDays {
			if age <= upper {
				idx = i
				break
			}
		}
		buckets[idx].Count++
		buckets[idx].Total = buckets[idx].Total.Add(t.Amount())
	}
	return buckets
}
