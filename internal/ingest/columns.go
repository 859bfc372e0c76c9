// =============================================================================
// Balance Sheet Recon - Column Matching
// =============================================================================
//
// Column matching is case-insensitive and substring-tolerant: a header
// containing a keyword matches it (e.g. "Account No" matches "Account").
// The first header matching a keyword wins; a header is consumed by at most
// one keyword.
//
// Real-world exports rarely agree on header names, so each canonical column
// carries a list of accepted keywords ("Description" also matches "Memo" and
// "Narration"). "Subcategory" must be matched before "Category" or the
// substring rule would attach the wrong header.
//
// =============================================================================

package ingest

import (
	"fmt"
	"strings"
)

// ColumnSpec lists the canonical columns a file kind must and may provide.
type ColumnSpec struct {
	Required []string
	Optional []string
}

// keywords returns the accepted header keywords for a canonical column.
// All comparisons are done lowercase.
func keywords(column string) []string {
	switch column {
	case ColDescription:
		return []string{"description", "memo", "narration"}
	default:
		return []string{strings.ToLower(column)}
	}
}

// matchOrder returns the canonical columns of a spec in matching order.
// Subcategory is moved ahead of Category so that a "Subcategory" header is
// not consumed by the "category" substring first.
func matchOrder(spec ColumnSpec) []string {
	columns := make([]string, 0, len(spec.Required)+len(spec.Optional))
	columns = append(columns, spec.Required...)
	columns = append(columns, spec.Optional...)

	for i, col := range columns {
		if col == ColSubcategory {
			copy(columns[1:i+1], columns[:i])
			columns[0] = ColSubcategory
			break
		}
	}
	return columns
}

// =============================================================================
// MISSING COLUMNS ERROR
// =============================================================================

// MissingColumnsError reports that one or more required column keywords were
// not matched by any header in the file. It is fatal for the file but must
// surface as a user-facing condition, not a crash.
type MissingColumnsError struct {
	// Source is the path of the offending file.
	Source string

	// Kind is the file kind being parsed.
	Kind FileKind

	// Missing are the required canonical columns that found no header.
	Missing []string
}

// Error implements the error interface.
func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s file %s: required column(s) not found: %s",
		e.Kind, e.Source, strings.Join(e.Missing, ", "))
}

// =============================================================================
// MATCHING FUNCTIONS
// =============================================================================

// MatchColumns matches the headers of one candidate header row against a
// column specification.
//
// RETURNS:
//   - matched: canonical column -> header index
//   - missing: required canonical columns with no matching header
func MatchColumns(headers []string, spec ColumnSpec) (matched map[string]int, missing []string) {
	matched = make(map[string]int)
	used := make(map[int]bool)

	for _, column := range matchOrder(spec) {
		for i, header := range headers {
			if used[i] {
				continue
			}
			if headerMatches(header, column) {
				matched[column] = i
				used[i] = true
				break
			}
		}
	}

	for _, column := range spec.Required {
		if _, ok := matched[column]; !ok {
			missing = append(missing, column)
		}
	}
	return matched, missing
}

// headerMatches reports whether a header matches any keyword of a column.
func headerMatches(header, column string) bool {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" {
		return false
	}
	for _, kw := range keywords(column) {
		if !strings.Contains(h, kw) {
			continue
		}
		// "Subcategory" headers must not satisfy the Category column.
		if column == ColCategory && strings.Contains(h, "sub") {
			continue
		}
		return true
	}
	return false
}

// detectHeader scans the leading rows of a file for the header row: the row
// matching the most required columns wins, earliest row breaking ties. Rows
// above the header (titles, export preambles) are discarded.
//
// RETURNS:
//   - the 0-based index of the header row
//   - canonical column -> cell index for that row
//   - a MissingColumnsError when no scanned row matches every required column
func detectHeader(rows [][]string, spec ColumnSpec, scanRows int, source string, kind FileKind) (int, map[string]int, error) {
	if scanRows <= 0 || scanRows > len(rows) {
		scanRows = len(rows)
	}

	bestIdx := -1
	var bestMatched map[string]int
	var bestMissing []string
	bestCount := -1

	for i := 0; i < scanRows; i++ {
		matched, missing := MatchColumns(rows[i], spec)
		required := len(spec.Required) - len(missing)
		if required > bestCount {
			bestCount = required
			bestIdx = i
			bestMatched = matched
			bestMissing = missing
		}
		if len(missing) == 0 {
			return i, matched, nil
		}
	}

	if bestIdx < 0 {
		bestMissing = spec.Required
	}
	return bestIdx, bestMatched, &MissingColumnsError{Source: source, Kind: kind, Missing: bestMissing}
}
