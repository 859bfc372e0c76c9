// =============================================================================
// Balance Sheet Recon - Account Model
// =============================================================================
//
// An Account is one normalized trial balance line. Duplicate lines for the
// same account identifier are merged by summing debit and credit; merging is
// case-insensitive and whitespace-insensitive on the identifier.
//
// The net balance convention is net = debit - credit:
//   net > 0 : debit balance
//   net < 0 : credit balance
//
// =============================================================================

package ledger

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Account is one merged trial balance line.
type Account struct {
	// Raw is the account identifier exactly as it appeared in the input
	// (first occurrence wins for display).
	Raw string

	// Number is the leading account number when the identifier follows the
	// "1000 - Cash" convention, otherwise "".
	Number string

	// Name is the identifier with any number prefix stripped.
	Name string

	// Debit and Credit are the summed totals across all merged lines.
	Debit  decimal.Decimal
	Credit decimal.Decimal

	// Category and Subcategory are attached from the category mapping.
	// Unmatched accounts get Category "Unmapped" and an empty Subcategory.
	Category    string
	Subcategory string
}

// identifierPattern splits "1000 - Cash" style identifiers into number and
// name parts.
var identifierPattern = regexp.MustCompile(`^(\d+)\s*-\s*(.*)$`)

// NewAccount builds an account from a raw identifier with zero balances.
func NewAccount(raw string) *Account {
	acct := &Account{
		Raw:    strings.TrimSpace(raw),
		Debit:  decimal.Zero,
		Credit: decimal.Zero,
	}
	acct.Number, acct.Name = SplitIdentifier(acct.Raw)
	return acct
}

// SplitIdentifier splits an account identifier into its number prefix and
// name. Identifiers without a number prefix return ("", identifier).
func SplitIdentifier(identifier string) (number, name string) {
	m := identifierPattern.FindStringSubmatch(strings.TrimSpace(identifier))
	if m == nil {
		return "", strings.TrimSpace(identifier)
	}
	return m[1], strings.TrimSpace(m[2])
}

// Key returns the merge key for the account identifier: trimmed, lowercased.
func Key(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// Key returns the merge key of this account.
func (a *Account) Key() string {
	return Key(a.Raw)
}

// Net returns the net balance, debit minus credit.
func (a *Account) Net() decimal.Decimal {
	return a.Debit.Sub(a.Credit)
}

// Add accumulates one more line's amounts into the account.
func (a *Account) Add(debit, credit decimal.Decimal) {
	a.Debit = a.Debit.Add(debit)
	a.Credit = a.Credit.Add(credit)
}
