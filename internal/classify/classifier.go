// =============================================================================
// Balance Sheet Recon - Classifier
// =============================================================================
//
// Applies the expectation rules to a resolved account and produces a verdict.
//
// ASSESSMENT:
//   - A net balance within tolerance of zero always passes; an account with
//     nothing on it cannot be on the wrong side.
//   - ExpectDebit  : pass when net > 0, otherwise mismatch
//   - ExpectCredit : pass when net < 0, otherwise mismatch
//   - ExpectZero   : mismatch (the zero case passed above)
//   - Ignored      : not applicable, never a mismatch
//
// Commentary is deterministic text derived only from the verdict. It is not
// generated by the narrative collaborator and is present in every run.
//
// =============================================================================

package classify

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/balance-sheet-recon/internal/ledger"
)

// Status is the reconciliation outcome for one account.
type Status int

const (
	// Pass means the balance sits on the expected side.
	Pass Status = iota

	// Mismatch means the balance violates the expectation beyond tolerance.
	Mismatch

	// NotApplicable means the account is not assessed.
	NotApplicable
)

// String returns the uppercase status label used in reports.
func (s Status) String() string {
	switch s {
	case Pass:
		return "PASS"
	case Mismatch:
		return "MISMATCH"
	default:
		return "N/A"
	}
}

// Verdict is the full classification outcome for one account.
type Verdict struct {
	// Balance is the resolved balance type.
	Balance BalanceType

	// Expected is the behavior the rules demanded.
	Expected ExpectedBehavior

	// Status is the reconciliation outcome.
	Status Status

	// ReviewFlag marks accounts needing manual attention: every mismatch,
	// and every ambiguous resolution.
	ReviewFlag bool

	// Commentary is the deterministic one-line explanation.
	Commentary string
}

// Classifier assesses accounts against the expectation rules.
type Classifier struct {
	tolerance decimal.Decimal
}

// NewClassifier builds a classifier with the given zero-comparison tolerance.
func NewClassifier(tolerance decimal.Decimal) *Classifier {
	return &Classifier{tolerance: tolerance}
}

// Classify resolves and assesses one account.
func (c *Classifier) Classify(acct *ledger.Account) Verdict {
	res := Resolve(acct)

	if res.Ambiguous {
		return Verdict{
			Balance:    res.Balance,
			Expected:   Ignored,
			Status:     NotApplicable,
			ReviewFlag: true,
			Commentary: "Classification ambiguous - manual review required",
		}
	}

	expected := ExpectedFor(res.Balance)
	net := acct.Net()
	side := balanceSide(net, c.tolerance)

	if expected == Ignored {
		v := Verdict{
			Balance:    res.Balance,
			Expected:   expected,
			Status:     NotApplicable,
			Commentary: fmt.Sprintf("%s account - not assessed", res.Balance),
		}
		if res.Balance == Unclassified {
			v.ReviewFlag = true
			v.Commentary = "Unclassified account - manual review required"
		}
		return v
	}

	if side == "Zero" {
		return Verdict{
			Balance:    res.Balance,
			Expected:   expected,
			Status:     Pass,
			Commentary: fmt.Sprintf("%s with Zero balance - Correct", res.Balance),
		}
	}

	pass := false
	switch expected {
	case ExpectDebit:
		pass = net.IsPositive()
	case ExpectCredit:
		pass = net.IsNegative()
	case ExpectZero:
		// Residual beyond tolerance.
	}

	if pass {
		return Verdict{
			Balance:    res.Balance,
			Expected:   expected,
			Status:     Pass,
			Commentary: fmt.Sprintf("%s with %s balance - Correct", res.Balance, side),
		}
	}

	commentary := fmt.Sprintf("%s with %s balance - Should be opposite", res.Balance, side)
	if expected == ExpectZero {
		commentary = fmt.Sprintf("%s with residual %s balance - Should be zero", res.Balance, side)
	}
	return Verdict{
		Balance:    res.Balance,
		Expected:   expected,
		Status:     Mismatch,
		ReviewFlag: true,
		Commentary: commentary,
	}
}

// balanceSide names which side a net balance sits on, treating anything
// within tolerance of zero as zero.
func balanceSide(net, tolerance decimal.Decimal) string {
	if net.Abs().LessThanOrEqual(tolerance) {
		return "Zero"
	}
	if net.IsPositive() {
		return "Debit"
	}
	return "Credit"
}
