// =============================================================================
// Balance Sheet Recon - Category Mapping
// =============================================================================
//
// Attaches Category/Subcategory from the optional mapping file to the merged
// accounts.
//
// MATCH RESOLUTION (per account):
//   1. Exact match on the lowercased, trimmed identifier
//   2. Number-prefix fallback: when the account identifier starts with an
//      account number ("1000 - Cash"), a mapping entry whose key starts with
//      the same number also matches
//   3. No match -> Category "Unmapped", Subcategory ""
//
// =============================================================================

package ledger

import (
	"strings"

	"github.com/ginjaninja78/balance-sheet-recon/internal/ingest"
)

// UnmappedCategory is assigned to accounts the mapping file does not cover.
const UnmappedCategory = "Unmapped"

// CategoryMapping is the parsed account -> category lookup.
type CategoryMapping struct {
	entries []mappingEntry
	byKey   map[string]int
}

type mappingEntry struct {
	key         string
	number      string
	category    string
	subcategory string
}

// NewCategoryMapping builds a lookup from a parsed mapping table. Later rows
// for the same account identifier override earlier ones.
func NewCategoryMapping(table *ingest.Table) *CategoryMapping {
	m := &CategoryMapping{byKey: make(map[string]int)}
	if table == nil {
		return m
	}

	for _, row := range table.Rows {
		identifier := strings.TrimSpace(row.Get(ingest.ColAccount))
		if identifier == "" {
			continue
		}
		number, _ := SplitIdentifier(identifier)
		entry := mappingEntry{
			key:         Key(identifier),
			number:      number,
			category:    strings.TrimSpace(row.Get(ingest.ColCategory)),
			subcategory: strings.TrimSpace(row.Get(ingest.ColSubcategory)),
		}
		if idx, ok := m.byKey[entry.key]; ok {
			m.entries[idx] = entry
			continue
		}
		m.byKey[entry.key] = len(m.entries)
		m.entries = append(m.entries, entry)
	}
	return m
}

// Len returns the number of mapping entries.
func (m *CategoryMapping) Len() int {
	return len(m.entries)
}

// Lookup resolves the category pair for an account identifier.
func (m *CategoryMapping) Lookup(identifier string) (category, subcategory string, ok bool) {
	if idx, found := m.byKey[Key(identifier)]; found {
		e := m.entries[idx]
		return e.category, e.subcategory, true
	}

	number, _ := SplitIdentifier(identifier)
	if number != "" {
		for _, e := range m.entries {
			if e.number == number {
				return e.category, e.subcategory, true
			}
		}
	}
	return "", "", false
}

// Apply attaches categories to every account in place. Unmatched accounts
// are marked Unmapped. Returns the number of matched accounts.
func (m *CategoryMapping) Apply(accounts []*Account) int {
	matched := 0
	for _, acct := range accounts {
		category, subcategory, ok := m.Lookup(acct.Raw)
		if !ok {
			acct.Category = UnmappedCategory
			acct.Subcategory = ""
			continue
		}
		acct.Category = category
		acct.Subcategory = subcategory
		matched++
	}
	return matched
}
