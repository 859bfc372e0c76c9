package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/balance-sheet-recon/internal/ingest"
)

// tbTable builds a trial balance table from (account, debit, credit) rows.
func tbTable(rows ...[3]string) *ingest.Table {
	table := &ingest.Table{Kind: ingest.TrialBalance, Source: "tb.csv", HeaderRow: 1}
	for i, r := range rows {
		table.Rows = append(table.Rows, ingest.Row{
			SourceRow: i + 2,
			Cells: map[string]string{
				ingest.ColAccount: r[0],
				ingest.ColDebit:   r[1],
				ingest.ColCredit:  r[2],
			},
		})
	}
	return table
}

func TestNormalizeTrialBalance_MergesDuplicateAccounts(t *testing.T) {
	accounts, rowErrs := NormalizeTrialBalance(tbTable(
		[3]string{"1000 - Cash", "100", "0"},
		[3]string{"1000 - cash", "50", "20"},
	))

	assert.Empty(t, rowErrs)
	require.Len(t, accounts, 1)
	assert.Equal(t, "1000 - Cash", accounts[0].Raw)
	assert.Equal(t, "130", accounts[0].Net().String())
	assert.Equal(t, "1000", accounts[0].Number)
	assert.Equal(t, "Cash", accounts[0].Name)
}

func TestNormalizeTrialBalance_SkipsSummaryRows(t *testing.T) {
	accounts, rowErrs := NormalizeTrialBalance(tbTable(
		[3]string{"1000 - Cash", "100", "0"},
		[3]string{"Total Assets", "100", "0"},
		[3]string{"Subtotal", "100", "0"},
		[3]string{"Grand Total", "100", "100"},
		[3]string{"Opening Balance b/f", "50", "0"},
		[3]string{"", "10", "0"},
	))

	assert.Empty(t, rowErrs)
	require.Len(t, accounts, 1)
	assert.Equal(t, "1000 - Cash", accounts[0].Raw)
}

func TestNormalizeTrialBalance_SkipsZeroZeroRows(t *testing.T) {
	accounts, rowErrs := NormalizeTrialBalance(tbTable(
		[3]string{"1000 - Cash", "100", "0"},
		[3]string{"1500 - Dormant", "0", "0"},
		[3]string{"1600 - Also Dormant", "", ""},
	))

	assert.Empty(t, rowErrs)
	require.Len(t, accounts, 1)
}

func TestNormalizeTrialBalance_InvalidAmountSkippedAndCounted(t *testing.T) {
	accounts, rowErrs := NormalizeTrialBalance(tbTable(
		[3]string{"1000 - Cash", "100", "0"},
		[3]string{"2000 - AP", "garbage", "0"},
	))

	require.Len(t, accounts, 1)
	require.Len(t, rowErrs, 1)

	var amountErr *ingest.InvalidAmountError
	require.ErrorAs(t, rowErrs[0], &amountErr)
	assert.Equal(t, 3, amountErr.SourceRow)
}

func TestNormalizeGeneralLedger_KeepsUndatedRows(t *testing.T) {
	table := &ingest.Table{Kind: ingest.GeneralLedger, Source: "gl.csv"}
	table.Rows = []ingest.Row{
		{SourceRow: 2, Cells: map[string]string{
			ingest.ColAccount: "1100 - AR", ingest.ColDate: "2026-05-01",
			ingest.ColDebit: "200", ingest.ColCredit: "0",
			ingest.ColDescription: "Invoice 41",
		}},
		{SourceRow: 3, Cells: map[string]string{
			ingest.ColAccount: "1100 - AR", ingest.ColDate: "??",
			ingest.ColDebit: "75", ingest.ColCredit: "0",
		}},
	}

	txns, rowErrs := NormalizeGeneralLedger(table, 0)

	require.Len(t, txns, 2)
	assert.True(t, txns[0].HasDate)
	assert.False(t, txns[1].HasDate)
	assert.Equal(t, "75", txns[1].Amount().String())
	assert.Equal(t, 0, txns[0].Index)
	assert.Equal(t, 1, txns[1].Index)

	// The bad date is reported, not swallowed.
	require.Len(t, rowErrs, 1)
	var dateErr *ingest.UnparseableDateError
	assert.ErrorAs(t, rowErrs[0], &dateErr)
}

func TestNormalizeGeneralLedger_InvalidAmountDropsRow(t *testing.T) {
	table := &ingest.Table{Kind: ingest.GeneralLedger, Source: "gl.csv"}
	table.Rows = []ingest.Row{
		{SourceRow: 2, Cells: map[string]string{
			ingest.ColAccount: "1100 - AR", ingest.ColDate: "2026-05-01",
			ingest.ColDebit: "bad", ingest.ColCredit: "0",
		}},
	}

	txns, rowErrs := NormalizeGeneralLedger(table, 0)
	assert.Empty(t, txns)
	assert.Len(t, rowErrs, 1)
}

func TestSplitIdentifier(t *testing.T) {
	number, name := SplitIdentifier("1000 - Cash")
	assert.Equal(t, "1000", number)
	assert.Equal(t, "Cash", name)

	number, name = SplitIdentifier("Cash on Hand")
	assert.Equal(t, "", number)
	assert.Equal(t, "Cash on Hand", name)

	number, name = SplitIdentifier("2100-Accrued Liabilities")
	assert.Equal(t, "2100", number)
	assert.Equal(t, "Accrued Liabilities", name)
}
