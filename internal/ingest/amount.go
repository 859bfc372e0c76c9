// =============================================================================
// Balance Sheet Recon - Amount Parsing
// =============================================================================
//
// Amount cells arrive in accounting formats: currency symbols, thousands
// separators, parenthesized negatives, trailing minus signs. Blank cells are
// zero. Anything else that does not parse is an InvalidAmountError, recorded
// per row by the caller; it never aborts the file.
//
// All amounts are decimals, never floats. Debit/credit totals are summed and
// compared exactly.
//
// =============================================================================

package ingest

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// InvalidAmountError reports an amount cell that is non-blank and non-numeric.
// The offending row is skipped and counted; file processing continues.
type InvalidAmountError struct {
	// SourceRow is the 1-based row number in the source file.
	SourceRow int

	// Column is the canonical column of the offending cell.
	Column string

	// Value is the raw cell value.
	Value string
}

// Error implements the error interface.
func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("row %d: column %s: cannot parse amount %q", e.SourceRow, e.Column, e.Value)
}

// currencyReplacer strips currency symbols and thousands separators before
// numeric parsing.
var currencyReplacer = strings.NewReplacer("€", "", "$", "", "£", "", ",", "", " ", "")

// ParseAmount converts a raw amount cell into a decimal.
//
// ACCEPTED FORMS:
//   - blank / whitespace        -> 0
//   - "1,234.56", "$500", "€ 3" -> positive
//   - "(123.45)"                -> negative (accounting parentheses)
//   - "123.45-"                 -> negative (trailing minus)
//   - "-123.45"                 -> negative
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}

	negative := false

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	if strings.HasSuffix(s, "-") {
		negative = true
		s = strings.TrimSuffix(s, "-")
	}

	s = strings.TrimSpace(currencyReplacer.Replace(s))
	if s == "" {
		return decimal.Zero, fmt.Errorf("cannot parse amount %q", raw)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot parse amount %q", raw)
	}

	if negative {
		d = d.Neg()
	}
	return d, nil
}

// ParseAmountCell is ParseAmount with row/column context attached to the
// error, ready for per-row collection.
func ParseAmountCell(row Row, column string) (decimal.Decimal, error) {
	d, err := ParseAmount(row.Get(column))
	if err != nil {
		return decimal.Zero, &InvalidAmountError{
			SourceRow: row.SourceRow,
			Column:    column,
			Value:     row.Get(column),
		}
	}
	return d, nil
}
