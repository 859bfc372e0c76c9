// =============================================================================
// Balance Sheet Recon - Balance Types
// =============================================================================
//
// Every account resolves to exactly one balance type, and every balance type
// maps to exactly one expected behavior. Both mappings are total: there is no
// account the engine cannot place, only accounts it places as Unclassified.
//
// =============================================================================

package classify

// BalanceType is the accounting nature of an account.
type BalanceType int

const (
	// Unclassified is the fallback when no signal places the account.
	Unclassified BalanceType = iota

	// Asset accounts normally carry a debit balance.
	Asset

	// Liability accounts normally carry a credit balance.
	Liability

	// Equity accounts normally carry a credit balance.
	Equity

	// ContraAsset accounts (accumulated depreciation, allowances) sit on the
	// asset side but normally carry a credit balance.
	ContraAsset

	// Clearing accounts (clearing, suspense) should net to zero.
	Clearing

	// ProfitAndLoss accounts are income statement lines; balance sheet
	// reconciliation does not assess them.
	ProfitAndLoss
)

// String returns the human-readable name of the balance type.
func (t BalanceType) String() string {
	switch t {
	case Asset:
		return "Asset"
	case Liability:
		return "Liability"
	case Equity:
		return "Equity"
	case ContraAsset:
		return "Contra-Asset"
	case Clearing:
		return "Clearing"
	case ProfitAndLoss:
		return "P&L"
	default:
		return "Unclassified"
	}
}

// ExpectedBehavior is what the reconciliation expects of an account's net
// balance.
type ExpectedBehavior int

const (
	// ExpectDebit means the net balance should be positive.
	ExpectDebit ExpectedBehavior = iota

	// ExpectCredit means the net balance should be negative.
	ExpectCredit

	// ExpectZero means the net balance should be zero within tolerance.
	ExpectZero

	// Ignored means the account is not assessed.
	Ignored
)

// String returns the human-readable name of the expected behavior.
func (b ExpectedBehavior) String() string {
	switch b {
	case ExpectDebit:
		return "Debit"
	case ExpectCredit:
		return "Credit"
	case ExpectZero:
		return "Zero"
	default:
		return "Ignored"
	}
}

// ExpectedFor returns the expected behavior for a balance type. The mapping
// is total over all balance types.
func ExpectedFor(t BalanceType) ExpectedBehavior {
	switch t {
	case Asset:
		return ExpectDebit
	case Liability, Equity, ContraAsset:
		return ExpectCredit
	case Clearing:
		return ExpectZero
	default:
		// ProfitAndLoss and Unclassified are not assessed.
		return Ignored
	}
}
