package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/balance-sheet-recon/internal/ledger"
)

var asOf = time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

func testOptions() Options {
	return Options{
		AsOf:           asOf,
		BucketDays:     []int{30, 60, 90},
		TopN:           5,
		WriteOffCutoff: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Tolerance:      decimal.RequireFromString("0.01"),
	}
}

// txn builds a dated transaction with a signed amount.
func txn(index int, account, date, description string, amount int64) ledger.Transaction {
	t := ledger.Transaction{
		Index:       index,
		SourceRow:   index + 2,
		Account:     account,
		Description: description,
		Debit:       decimal.Zero,
		Credit:      decimal.Zero,
	}
	if amount >= 0 {
		t.Debit = decimal.NewFromInt(amount)
	} else {
		t.Credit = decimal.NewFromInt(-amount)
	}
	if date != "" {
		t.Date, _ = time.Parse("2006-01-02", date)
		t.HasDate = true
	}
	return t
}

// ============================================================================
// Top Components Tests
// ============================================================================

func TestTopComponents_OrderedByAbsoluteAmount(t *testing.T) {
	acct := ledger.NewAccount("1100 - Trade Receivables")
	txns := []ledger.Transaction{
		txn(0, acct.Raw, "2026-06-01", "a", 10),
		txn(1, acct.Raw, "2026-06-01", "b", -50),
		txn(2, acct.Raw, "2026-06-01", "c", 30),
		txn(3, acct.Raw, "2026-06-01", "d", 5),
		txn(4, acct.Raw, "2026-06-01", "e", 100),
	}

	components := TopComponents(acct, txns, 5)

	require.Len(t, components, 5)
	var amounts []string
	for _, c := range components {
		amounts = append(amounts, c.Amount.String())
	}
	assert.Equal(t, []string{"100", "-50", "30", "10", "5"}, amounts)
}

func TestTopComponents_TieBreakKeepsInputOrder(t *testing.T) {
	acct := ledger.NewAccount("1100 - Trade Receivables")
	txns := []ledger.Transaction{
		txn(0, acct.Raw, "2026-06-01", "first", 40),
		txn(1, acct.Raw, "2026-06-01", "second", -40),
		txn(2, acct.Raw, "2026-06-01", "third", 40),
	}

	components := TopComponents(acct, txns, 3)

	require.Len(t, components, 3)
	assert.Equal(t, "first", components[0].Description)
	assert.Equal(t, "second", components[1].Description)
	assert.Equal(t, "third", components[2].Description)
}

func TestTopComponents_BlankDescriptionFallsBackToAccount(t *testing.T) {
	acct := ledger.NewAccount("1100 - Trade Receivables")
	txns := []ledger.Transaction{txn(0, acct.Raw, "2026-06-01", "", 40)}

	components := TopComponents(acct, txns, 5)
	require.Len(t, components, 1)
	assert.Equal(t, "1100 - Trade Receivables", components[0].Description)
}

// ============================================================================
// Aging Tests
// ============================================================================

func TestBuildAging_BucketBoundaries(t *testing.T) {
	txns := []ledger.Transaction{
		txn(0, "a", "2026-06-25", "5 days old", 10),    // 0-30
		txn(1, "a", "2026-05-16", "45 days old", 20),   // 31-60
		txn(2, "a", "2026-04-16", "75 days old", 30),   // 61-90
		txn(3, "a", "2025-12-01", "211 days old", 40),  // 90+
		txn(4, "a", "", "undated, excluded", 999),
	}

	buckets := BuildAging(txns, asOf, []int{30, 60, 90})

	require.Len(t, buckets, 4)
	assert.Equal(t, "0-30", buckets[0].Label)
	assert.Equal(t, "31-60", buckets[1].Label)
	assert.Equal(t, "61-90", buckets[2].Label)
	assert.Equal(t, "90+", buckets[3].Label)

	assert.Equal(t, "10", buckets[0].Total.String())
	assert.Equal(t, "20", buckets[1].Total.String())
	assert.Equal(t, "30", buckets[2].Total.String())
	assert.Equal(t, "40", buckets[3].Total.String())
	assert.Equal(t, 1, buckets[3].Count)
}

func TestBuildAging_EmptyBucketsPresent(t *testing.T) {
	buckets := BuildAging(nil, asOf, []int{30, 60, 90})
	require.Len(t, buckets, 4)
	for _, b := range buckets {
		assert.Equal(t, 0, b.Count)
		assert.True(t, b.Total.IsZero())
	}
}

// ============================================================================
// Build Tests
// ============================================================================

func TestBuild_NilWithoutTransactions(t *testing.T) {
	acct := ledger.NewAccount("1000 - Cash")
	assert.Nil(t, Build(acct, nil, testOptions()))
}

func TestBuild_CountsUndated(t *testing.T) {
	acct := ledger.NewAccount("1100 - Trade Receivables")
	txns := []ledger.Transaction{
		txn(0, acct.Raw, "2026-06-01", "dated", 10),
		txn(1, acct.Raw, "", "undated", 20),
	}

	a := Build(acct, txns, testOptions())
	require.NotNil(t, a)
	assert.Equal(t, 2, a.TransactionCount)
	assert.Equal(t, 1, a.UndatedCount)
}

// ============================================================================
// Category Summary Tests
// ============================================================================

func TestSummary_APWriteOffCutoff(t *testing.T) {
	acct := ledger.NewAccount("2000 - Accounts Payable")
	txns := []ledger.Transaction{
		txn(0, acct.Raw, "2023-11-15", "old invoice", -500),
		txn(1, acct.Raw, "2026-06-01", "recent invoice", -200),
	}

	a := Build(acct, txns, testOptions())
	require.NotNil(t, a)
	require.Equal(t, KindAccountsPayable, a.Summary.Kind)

	ap := a.Summary.AccountsPayable
	require.NotNil(t, ap)
	assert.Equal(t, 1, ap.AgedCount)
	assert.Equal(t, "-500", ap.AgedTotal.String())
	assert.True(t, ap.WriteOffRecommended)
}

func TestSummary_ARCollectionAction(t *testing.T) {
	acct := ledger.NewAccount("1100 - Trade Receivables")
	txns := []ledger.Transaction{
		txn(0, acct.Raw, "2025-06-01", "very old invoice", 25000),
	}

	a := Build(acct, txns, testOptions())
	require.Equal(t, KindAccountsReceivable, a.Summary.Kind)

	ar := a.Summary.AccountsReceivable
	require.NotNil(t, ar)
	assert.Equal(t, 1, ar.OverdueCount)
	assert.Equal(t, "Escalate to collections", ar.Action)
}

func TestSummary_ClearingResidual(t *testing.T) {
	acct := ledger.NewAccount("9000 - Payroll Clearing")
	acct.Add(decimal.NewFromInt(50), decimal.Zero)
	txns := []ledger.Transaction{txn(0, acct.Raw, "2026-06-01", "run 12", 50)}

	a := Build(acct, txns, testOptions())
	require.Equal(t, KindClearing, a.Summary.Kind)
	assert.Equal(t, "50", a.Summary.Clearing.Residual.String())
	assert.True(t, a.Summary.Clearing.RequiresInvestigation)
}

func TestSummary_FixedAssetsDepreciationDetected(t *testing.T) {
	acct := ledger.NewAccount("1500 - Plant and Equipment")
	txns := []ledger.Transaction{
		txn(0, acct.Raw, "2026-01-10", "New press", 8000),
		txn(1, acct.Raw, "2026-01-31", "Monthly depreciation", -300),
	}

	a := Build(acct, txns, testOptions())
	require.Equal(t, KindFixedAssets, a.Summary.Kind)
	fa := a.Summary.FixedAssets
	assert.Equal(t, "8000", fa.Additions.String())
	assert.Equal(t, "300", fa.Reductions.String())
	assert.True(t, fa.DepreciationSeen)
}

func TestSummary_IntercompanyCounterpartyGrouping(t *testing.T) {
	acct := ledger.NewAccount("1400 - Intercompany Receivable")
	txns := []ledger.Transaction{
		txn(0, acct.Raw, "2026-06-01", "SubCo UK - management fee", 100),
		txn(1, acct.Raw, "2026-06-02", "SubCo UK - recharge", 200),
		txn(2, acct.Raw, "2026-06-03", "SubCo DE - recharge", 50),
	}

	a := Build(acct, txns, testOptions())
	require.Equal(t, KindIntercompany, a.Summary.Kind)

	cps := a.Summary.Intercompany.Counterparties
	require.Len(t, cps, 2)
	assert.Equal(t, "SubCo UK", cps[0].Counterparty)
	assert.Equal(t, "300", cps[0].Total.String())
	assert.Equal(t, 2, cps[0].Count)
	assert.Equal(t, "SubCo DE", cps[1].Counterparty)
}

func TestSummary_DeferredRevenueWaterfall(t *testing.T) {
	acct := ledger.NewAccount("2400 - Deferred Revenue")
	txns := []ledger.Transaction{
		txn(0, acct.Raw, "2026-04-15", "billing", -900),
		txn(1, acct.Raw, "2026-05-01", "recognition", 300),
		txn(2, acct.Raw, "2026-04-20", "recognition", 300),
	}

	a := Build(acct, txns, testOptions())
	require.Equal(t, KindDeferredRevenue, a.Summary.Kind)

	waterfall := a.Summary.DeferredRevenue.Waterfall
	require.Len(t, waterfall, 2)
	assert.Equal(t, "2026-04", waterfall[0].Period)
	assert.Equal(t, "-600", waterfall[0].Net.String())
	assert.Equal(t, "2026-05", waterfall[1].Period)
	assert.Equal(t, "300", waterfall[1].Net.String())
}

func TestSummary_GenericFallback(t *testing.T) {
	acct := ledger.NewAccount("3000 - Retained Earnings")
	txns := []ledger.Transaction{txn(0, acct.Raw, "2026-06-01", "closing entry", -75)}

	a := Build(acct, txns, testOptions())
	require.Equal(t, KindGeneric, a.Summary.Kind)
	assert.Equal(t, "-75", a.Summary.Generic.NetActivity.String())
}
