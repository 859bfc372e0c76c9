// =============================================================================
// Balance Sheet Recon - Date Parsing
// =============================================================================
//
// Transaction dates arrive in whatever format the source system emits. A
// fixed set of layouts is tried in order; the first hit wins. An unparseable
// date is an UnparseableDateError: the transaction is kept for amount-based
// analytics but excluded from aging, never dropped entirely.
//
// =============================================================================

package ingest

import (
	"fmt"
	"strings"
	"time"
)

// UnparseableDateError reports a date cell that matched no known layout.
// The transaction keeps its amounts; only aging is affected.
type UnparseableDateError struct {
	// SourceRow is the 1-based row number in the source file.
	SourceRow int

	// Value is the raw cell value.
	Value string
}

// Error implements the error interface.
func (e *UnparseableDateError) Error() string {
	return fmt.Sprintf("row %d: cannot parse date %q", e.SourceRow, e.Value)
}

// dateLayouts are tried in order. ISO first, then the common regional and
// spreadsheet export formats.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-01-2006",
	"02.01.2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC3339,
}

// ParseDate converts a raw date cell into a time. A blank cell returns the
// zero time with ok=false and no error; the row simply has no date.
func ParseDate(raw string) (time.Time, bool, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("cannot parse date %q", raw)
}

// ParseDateCell is ParseDate with row context attached to the error.
func ParseDateCell(row Row) (time.Time, bool, error) {
	t, ok, err := ParseDate(row.Get(ColDate))
	if err != nil {
		return time.Time{}, false, &UnparseableDateError{
			SourceRow: row.SourceRow,
			Value:     row.Get(ColDate),
		}
	}
	return t, ok, nil
}
