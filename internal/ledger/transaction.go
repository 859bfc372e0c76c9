// =============================================================================
// Balance Sheet Recon - Transaction Model
// =============================================================================

package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one normalized general ledger line.
type Transaction struct {
	// Index is the 0-based position among kept transactions, in input order.
	// Top-component ranking breaks amount ties on it.
	Index int

	// SourceRow is the 1-based row number in the source file.
	SourceRow int

	// Source is the path of the general ledger file the line came from.
	Source string

	// Account is the raw account identifier.
	Account string

	// Date is the transaction date. HasDate is false when the date cell was
	// blank or unparseable; such transactions still contribute to component
	// analysis but not to aging.
	Date    time.Time
	HasDate bool

	Debit  decimal.Decimal
	Credit decimal.Decimal

	// Description is the free-text memo, "" when the column is absent.
	Description string
}

// Amount returns the signed transaction amount, debit minus credit.
func (t Transaction) Amount() decimal.Decimal {
	return t.Debit.Sub(t.Credit)
}

// AccountKey returns the merge key linking the transaction to its account.
func (t Transaction) AccountKey() string {
	return Key(t.Account)
}

// AgeDays returns the transaction age in whole days as of the given date.
// Callers must check HasDate first.
func (t Transaction) AgeDays(asOf time.Time) int {
	days := int(asOf.Sub(t.Date).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
