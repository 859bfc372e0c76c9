// =============================================================================
// Balance Sheet Recon - Excel Reader
// =============================================================================
//
// Reads .xlsx workbooks into the canonical Table form. Only the first sheet
// is consulted; accounting exports put their data there.
//
// =============================================================================

package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads the first sheet of an Excel workbook into a Table.
//
// PARAMETERS:
//   - path: the workbook to read
//   - kind: the logical file kind, which fixes the required columns
//   - scanRows: how many leading rows to scan for the header
func ParseXLSX(path string, kind FileKind, scanRows int) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", kind, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s file %s contains no sheets", kind, path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file %s: %w", kind, path, err)
	}

	return buildTable(rows, kind, scanRows, path)
}
