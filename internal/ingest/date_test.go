package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_AcceptedLayouts(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2026-06-30", "2026-06-30"},
		{"2026/06/30", "2026-06-30"},
		{"06/30/2026", "2026-06-30"},
		{"6/3/2026", "2026-06-03"},
		{"30-06-2026", "2026-06-30"},
		{"30.06.2026", "2026-06-30"},
		{"30 Jun 2026", "2026-06-30"},
		{"Jun 30, 2026", "2026-06-30"},
	}

	for _, tc := range cases {
		got, ok, err := ParseDate(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		require.True(t, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got.Format("2006-01-02"), "input %q", tc.in)
	}
}

func TestParseDate_BlankHasNoDate(t *testing.T) {
	_, ok, err := ParseDate("  ")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestParseDateCell_Unparseable(t *testing.T) {
	row := Row{SourceRow: 12, Cells: map[string]string{ColDate: "not a date"}}

	_, ok, err := ParseDateCell(row)
	assert.False(t, ok)
	require.Error(t, err)

	var dateErr *UnparseableDateError
	require.ErrorAs(t, err, &dateErr)
	assert.Equal(t, 12, dateErr.SourceRow)
	assert.Equal(t, "not a date", dateErr.Value)
}
