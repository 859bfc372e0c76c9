// =============================================================================
// Balance Sheet Recon - Classification Rules
// =============================================================================
//
// Resolution places an account into a balance type using three signal
// sources, in priority order:
//
//   1. CATEGORY TEXT from the mapping file, when it names a recognizable
//      balance type.
//   2. NAME KEYWORDS: first the specific terms ("accumulated depreciation",
//      "deferred revenue", ...) which win outright, then the general terms
//      ("payable", "receivable", ...). When general terms point at more than
//      one balance type the resolution is AMBIGUOUS: the account is not
//      assessed and is flagged for manual review.
//   3. ACCOUNT NUMBER first digit, the conventional chart-of-accounts
//      layout: 1 assets, 2 liabilities, 3 equity, 4-9 income statement.
//
// All keyword checks are lowercase substring matches. The rule tables live
// here, in one place, and nowhere else.
//
// =============================================================================

package classify

import (
	"strings"

	"github.com/ginjaninja78/balance-sheet-recon/internal/ledger"
)

// specificRule is a name keyword that decides the balance type outright.
type specificRule struct {
	keyword string
	balance BalanceType
}

// specificRules are checked in order; the first match wins and is never
// ambiguous. Multiword terms go here so "deferred revenue" is not mistaken
// for income.
var specificRules = []specificRule{
	{"accumulated depreciation", ContraAsset},
	{"accumulated amortization", ContraAsset},
	{"allowance for", ContraAsset},
	{"clearing", Clearing},
	{"suspense", Clearing},
	{"deferred revenue", Liability},
	{"unearned revenue", Liability},
	{"deferred income", Liability},
	{"retained earnings", Equity},
	{"cost of goods", ProfitAndLoss},
	{"cost of sales", ProfitAndLoss},
}

// generalRules map broad keywords to balance types. Matches across more than
// one balance type mean the name alone cannot decide.
var generalRules = map[BalanceType][]string{
	Asset:         {"receivable", "cash", "bank", "inventory", "prepaid", "equipment", "property", "fixed asset", "intercompany"},
	Liability:     {"payable", "accrued", "loan", "tax", "provision"},
	Equity:        {"equity", "capital", "share"},
	ProfitAndLoss: {"revenue", "sales", "expense", "income", "depreciation expense", "interest"},
}

// generalOrder fixes iteration order over generalRules for determinism.
var generalOrder = []BalanceType{Asset, Liability, Equity, ProfitAndLoss}

// categoryRules map recognizable mapping-file category text to balance
// types, checked in order.
var categoryRules = []specificRule{
	{"contra", ContraAsset},
	{"clearing", Clearing},
	{"suspense", Clearing},
	{"liability", Liability},
	{"liabilities", Liability},
	{"payable", Liability},
	{"equity", Equity},
	{"asset", Asset},
	{"receivable", Asset},
	{"p&l", ProfitAndLoss},
	{"profit", ProfitAndLoss},
	{"income statement", ProfitAndLoss},
	{"revenue", ProfitAndLoss},
	{"expense", ProfitAndLoss},
}

// Resolution is the outcome of placing one account.
type Resolution struct {
	// Balance is the resolved balance type, Unclassified when nothing
	// decided or when the signals conflicted.
	Balance BalanceType

	// Ambiguous is true when name keywords pointed at more than one balance
	// type and no higher-priority signal decided. Ambiguous accounts are not
	// assessed and are flagged for manual review.
	Ambiguous bool

	// Source names the signal that decided: "category", "name", "number",
	// or "" when unresolved.
	Source string
}

// Resolve places an account into a balance type.
func Resolve(acct *ledger.Account) Resolution {
	if bt, ok := resolveCategory(acct.Category); ok {
		return Resolution{Balance: bt, Source: "category"}
	}

	name := strings.ToLower(acct.Raw)

	for _, rule := range specificRules {
		if strings.Contains(name, rule.keyword) {
			return Resolution{Balance: rule.balance, Source: "name"}
		}
	}

	var matches []BalanceType
	for _, bt := range generalOrder {
		for _, kw := range generalRules[bt] {
			if strings.Contains(name, kw) {
				matches = append(matches, bt)
				break
			}
		}
	}
	switch len(matches) {
	case 1:
		return Resolution{Balance: matches[0], Source: "name"}
	case 0:
		// Fall through to the account number.
	default:
		return Resolution{Balance: Unclassified, Ambiguous: true, Source: "name"}
	}

	if bt, ok := resolveNumber(acct.Number); ok {
		return Resolution{Balance: bt, Source: "number"}
	}

	return Resolution{Balance: Unclassified}
}

// resolveCategory maps mapping-file category text to a balance type.
// Unmapped and unrecognized categories defer to the other signals.
func resolveCategory(category string) (BalanceType, bool) {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" || c == strings.ToLower(ledger.UnmappedCategory) {
		return Unclassified, false
	}
	for _, rule := range categoryRules {
		if strings.Contains(c, rule.keyword) {
			return rule.balance, true
		}
	}
	return Unclassified, false
}

// resolveNumber maps the first digit of an account number to a balance type
// per the conventional chart-of-accounts layout.
func resolveNumber(number string) (BalanceType, bool) {
	if number == "" {
		return Unclassified, false
	}
	switch number[0] {
	case '1':
		return Asset, true
	case '2':
		return Liability, true
	case '3':
		return Equity, true
	case '4', '5', '6', '7', '8', '9':
		return ProfitAndLoss, true
	default:
		return Unclassified, false
	}
}
