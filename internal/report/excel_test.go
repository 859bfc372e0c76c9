package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook_RoundTrip(t *testing.T) {
	records := buildTestRecords(t,
		account("1000 - Cash", 500, 0),
		account("9000 - Payroll Clearing", 50, 0),
	)
	summary := Summarize(records, tolerance)
	path := filepath.Join(t.TempDir(), "recon.xlsx")

	require.NoError(t, WriteWorkbook(path, records, summary))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{reconSheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(reconSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per account")
	assert.Equal(t, "Account", rows[0][0])
	assert.Equal(t, "1000 - Cash", rows[1][0])
	assert.Equal(t, "PASS", rows[1][10])
	assert.Equal(t, "MISMATCH", rows[2][10])
}
