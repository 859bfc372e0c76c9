// =============================================================================
// Balance Sheet Recon - Text Renderer
// =============================================================================
//
// Renders the plain-text companion reports: the portfolio summary and the
// per-account detail listing. Both are deterministic functions of the record
// set; the narrative collaborator's output, when present, is appended by the
// caller.
//
// =============================================================================

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/ginjaninja78/balance-sheet-recon/internal/analytics"
	"github.com/ginjaninja78/balance-sheet-recon/internal/classify"
)

const divider = "================================================================"

// RenderSummaryText renders the portfolio summary as plain text.
func RenderSummaryText(summary PortfolioSummary, asOf time.Time) string {
	var b strings.Builder

	fmt.Fprintln(&b, divider)
	fmt.Fprintln(&b, "BALANCE SHEET RECONCILIATION SUMMARY")
	fmt.Fprintf(&b, "As of: %s\n", asOf.Format("2006-01-02"))
	fmt.Fprintln(&b, divider)
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "Pass:            %d\n", summary.PassCount)
	fmt.Fprintf(&b, "Mismatch:        %d\n", summary.MismatchCount)
	fmt.Fprintf(&b, "Not applicable:  %d\n", summary.NotApplicableCount)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Total debits:    %s\n", summary.TotalDebit.StringFixed(2))
	fmt.Fprintf(&b, "Total credits:   %s\n", summary.TotalCredit.StringFixed(2))
	if summary.Balanced {
		fmt.Fprintln(&b, "Trial balance is in balance.")
	} else {
		fmt.Fprintf(&b, "Trial balance is OUT OF BALANCE by %s.\n",
			summary.TotalDebit.Sub(summary.TotalCredit).StringFixed(2))
	}

	if len(summary.RequiresAction) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "REQUIRES ACTION")
		for _, account := range summary.RequiresAction {
			fmt.Fprintf(&b, "  - %s\n", account)
		}
	}

	if len(summary.KeyRisks) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "KEY RISKS")
		for _, risk := range summary.KeyRisks {
			fmt.Fprintf(&b, "  - %-30s %15s  %s\n",
				risk.Account, risk.Balance.StringFixed(2), risk.Reason)
		}
	}

	if len(summary.ByCategory) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "BY CATEGORY")
		for _, cs := range summary.ByCategory {
			fmt.Fprintf(&b, "  %-30s %4d accounts  %d pass  %d mismatch  net %15s\n",
				cs.Category, cs.Count, cs.Pass, cs.Mismatch, cs.NetTotal.StringFixed(2))
		}
	}

	return b.String()
}

// RenderAccountDetail renders the per-account listing. When mismatchesOnly
// is set, passing and not-applicable accounts are omitted.
func RenderAccountDetail(records []ReconciliationRecord, mismatchesOnly bool) string {
	var b strings.Builder

	fmt.Fprintln(&b, divider)
	fmt.Fprintln(&b, "ACCOUNT DETAIL")
	fmt.Fprintln(&b, divider)

	for _, r := range records {
		if mismatchesOnly && r.Verdict.Status != classify.Mismatch {
			continue
		}

		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "%s [%s]\n", r.Account.Raw, r.Verdict.Status)
		fmt.Fprintf(&b, "  Type: %s  Expected: %s  Net: %s\n",
			r.Verdict.Balance, r.Verdict.Expected, r.Account.Net().StringFixed(2))
		fmt.Fprintf(&b, "  %s\n", r.Verdict.Commentary)

		if r.Analytics == nil {
			continue
		}
		writeAnalyticsDetail(&b, r.Analytics)
	}

	return b.String()
}

func writeAnalyticsDetail(b *strings.Builder, a *analytics.AccountAnalytics) {
	fmt.Fprintf(b, "  Transactions: %d", a.TransactionCount)
	if a.UndatedCount > 0 {
		fmt.Fprintf(b, " (%d undated, excluded from aging)", a.UndatedCount)
	}
	fmt.Fprintln(b)

	if len(a.TopComponents) > 0 {
		fmt.Fprintln(b, "  Top components:")
		for _, c := range a.TopComponents {
			fmt.Fprintf(b, "    %15s  %s\n", c.Amount.StringFixed(2), c.Description)
		}
	}

	hasAged := false
	for _, bucket := range a.Aging {
		if bucket.Count > 0 {
			hasAged = true
			break
		}
	}
	if hasAged {
		fmt.Fprintln(b, "  Aging:")
		for _, bucket := range a.Aging {
			fmt.Fprintf(b, "    %-6s %4d items  %15s\n",
				bucket.Label, bucket.Count, bucket.Total.StringFixed(2))
		}
	}

	writeSummaryDetail(b, a.Summary)
}

func writeSummaryDetail(b *strings.Builder, s analytics.CategorySummary) {
	switch s.Kind {
	case analytics.KindAccountsPayable:
		ap := s.AccountsPayable
		if ap.WriteOffRecommended {
			fmt.Fprintf(b, "  AP: %d aged item(s) totalling %s - consider write-off\n",
				ap.AgedCount, ap.AgedTotal.StringFixed(2))
		} else {
			fmt.Fprintln(b, "  AP: no items before write-off cutoff")
		}
	case analytics.KindAccountsReceivable:
		ar := s.AccountsReceivable
		fmt.Fprintf(b, "  AR: %d overdue item(s) totalling %s - %s\n",
			ar.OverdueCount, ar.OverdueTotal.StringFixed(2), ar.Action)
	case analytics.KindClearing:
		cl := s.Clearing
		if cl.RequiresInvestigation {
			fmt.Fprintf(b, "  Clearing: residual %s requires investigation\n",
				cl.Residual.StringFixed(2))
		} else {
			fmt.Fprintln(b, "  Clearing: residual within tolerance")
		}
	case analytics.KindFixedAssets:
		fa := s.FixedAssets
		fmt.Fprintf(b, "  Fixed assets: additions %s, reductions %s",
			fa.Additions.StringFixed(2), fa.Reductions.StringFixed(2))
		if fa.DepreciationSeen {
			fmt.Fprint(b, ", depreciation activity present")
		} else {
			fmt.Fprint(b, ", no depreciation activity seen")
		}
		fmt.Fprintln(b)
	case analytics.KindIntercompany:
		fmt.Fprintln(b, "  Intercompany by counterparty:")
		for _, ct := range s.Intercompany.Counterparties {
			fmt.Fprintf(b, "    %-24s %4d items  %15s\n",
				ct.Counterparty, ct.Count, ct.Total.StringFixed(2))
		}
	case analytics.KindDeferredRevenue:
		fmt.Fprintln(b, "  Deferred revenue movement:")
		for _, pm := range s.DeferredRevenue.Waterfall {
			fmt.Fprintf(b, "    %s  %15s\n", pm.Period, pm.Net.StringFixed(2))
		}
	default:
		fmt.Fprintf(b, "  Net activity: %s\n", s.Generic.NetActivity.StringFixed(2))
	}
}
