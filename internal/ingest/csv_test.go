package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTempCSV writes content to a temp file and returns its path.
func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseCSV_TrialBalance(t *testing.T) {
	path := writeTempCSV(t,
		"Account,Debit,Credit\n"+
			"1000 - Cash,500,0\n"+
			"2000 - Accounts Payable,0,300\n")

	table, err := ParseCSV(path, TrialBalance, 20)
	require.NoError(t, err)

	assert.Equal(t, TrialBalance, table.Kind)
	assert.Equal(t, 1, table.HeaderRow)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "1000 - Cash", table.Rows[0].Get(ColAccount))
	assert.Equal(t, "500", table.Rows[0].Get(ColDebit))
	assert.Equal(t, 2, table.Rows[0].SourceRow)
}

func TestParseCSV_HeaderBelowPreamble(t *testing.T) {
	// encoding/csv drops the fully blank line, so the header lands on the
	// third parsed row.
	path := writeTempCSV(t,
		"Trial Balance Export\n"+
			"Period: June 2026\n"+
			"\n"+
			"Account No,Debit Amount,Credit Amount\n"+
			"1000 - Cash,500,0\n")

	table, err := ParseCSV(path, TrialBalance, 20)
	require.NoError(t, err)

	assert.Equal(t, 3, table.HeaderRow)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "1000 - Cash", table.Rows[0].Get(ColAccount))
	assert.Equal(t, "Account No", table.Columns[ColAccount])
}

func TestParseCSV_MissingDebitColumn(t *testing.T) {
	path := writeTempCSV(t,
		"Account,Credit\n"+
			"1000 - Cash,0\n")

	_, err := ParseCSV(path, TrialBalance, 20)
	require.Error(t, err)

	var missing *MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{ColDebit}, missing.Missing)
	assert.Contains(t, missing.Error(), "Debit")
}

func TestParseCSV_BlankRowsSkipped(t *testing.T) {
	path := writeTempCSV(t,
		"Account,Debit,Credit\n"+
			"1000 - Cash,500,0\n"+
			",,\n"+
			"2000 - AP,0,300\n")

	table, err := ParseCSV(path, TrialBalance, 20)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 4, table.Rows[1].SourceRow)
}

func TestMatchColumns_SubcategoryBeforeCategory(t *testing.T) {
	headers := []string{"Account", "Subcategory", "Category"}

	matched, missing := MatchColumns(headers, CategoryMapping.Spec())
	assert.Empty(t, missing)
	assert.Equal(t, 1, matched[ColSubcategory])
	assert.Equal(t, 2, matched[ColCategory])
}

func TestMatchColumns_DescriptionSynonyms(t *testing.T) {
	headers := []string{"Account", "Txn Date", "Memo", "Debit", "Credit"}

	matched, missing := MatchColumns(headers, GeneralLedger.Spec())
	assert.Empty(t, missing)
	assert.Equal(t, 2, matched[ColDescription])
	assert.Equal(t, 1, matched[ColDate])
}
