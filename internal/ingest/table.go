// =============================================================================
// Balance Sheet Recon - Tabular Ingestor
// =============================================================================
//
// The ingest package parses heterogeneous tabular financial input (Excel or
// delimited text) into normalized row mappings keyed by canonical column
// name. It is tolerant of header-naming variation and of title/preamble rows
// above the real header.
//
// FILE KINDS AND REQUIRED COLUMNS:
//   Trial Balance   : Account, Debit, Credit
//   General Ledger  : Account, Date, Debit, Credit (Description optional)
//   Category Mapping: Account, Category, Subcategory
//
// ERROR POLICY:
//   - A file whose required columns cannot all be matched fails with
//     MissingColumnsError naming the unmatched keywords. This is a
//     user-facing condition, not a crash.
//   - Cell-level problems (bad amounts, bad dates) are reported per row by
//     the consumers of ParseAmount/ParseDate; they never abort the file.
//
// =============================================================================

package ingest

// FileKind identifies which logical input file a table represents.
type FileKind int

const (
	// TrialBalance is the required account/debit/credit listing.
	TrialBalance FileKind = iota

	// GeneralLedger is the optional transaction-level detail.
	GeneralLedger

	// CategoryMapping is the optional account -> category/subcategory table.
	CategoryMapping
)

// String returns the human-readable name of the file kind.
func (k FileKind) String() string {
	switch k {
	case TrialBalance:
		return "trial balance"
	case GeneralLedger:
		return "general ledger"
	case CategoryMapping:
		return "category mapping"
	default:
		return "unknown"
	}
}

// =============================================================================
// CANONICAL COLUMNS
// =============================================================================

// Canonical column names. Every row mapping produced by this package is keyed
// by these, never by the raw source headers.
const (
	ColAccount     = "Account"
	ColDebit       = "Debit"
	ColCredit      = "Credit"
	ColDate        = "Date"
	ColDescription = "Description"
	ColCategory    = "Category"
	ColSubcategory = "Subcategory"
)

// Spec returns the column specification for a file kind.
func (k FileKind) Spec() ColumnSpec {
	switch k {
	case GeneralLedger:
		return ColumnSpec{
			Required: []string{ColAccount, ColDate, ColDebit, ColCredit},
			Optional: []string{ColDescription},
		}
	case CategoryMapping:
		return ColumnSpec{
			Required: []string{ColAccount, ColCategory, ColSubcategory},
		}
	default:
		return ColumnSpec{
			Required: []string{ColAccount, ColDebit, ColCredit},
		}
	}
}

// =============================================================================
// TABLE STRUCTURE
// =============================================================================

// Row is a single data row mapped from canonical column name to the raw cell
// value. SourceRow is the 1-based row number in the source file, kept for
// error reporting and for stable ordering downstream.
type Row struct {
	SourceRow int
	Cells     map[string]string
}

// Get returns the cell value for a canonical column, or "" when absent.
func (r Row) Get(column string) string {
	return r.Cells[column]
}

// Table is the parsed representation of one input file. Row order matches
// input order; downstream tie-breaking depends on it.
type Table struct {
	// Kind is the logical file kind this table was parsed as.
	Kind FileKind

	// Source is the path of the source file.
	Source string

	// HeaderRow is the 1-based row number where the header was found.
	HeaderRow int

	// Columns maps each matched canonical column to the actual header text
	// it was matched against.
	Columns map[string]string

	// Rows are the data rows in input order.
	Rows []Row
}
