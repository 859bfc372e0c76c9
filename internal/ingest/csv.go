// =============================================================================
// Balance Sheet Recon - CSV Reader
// =============================================================================
//
// Reads delimited text input into the canonical Table form. Parsing is
// deliberately lax: ragged rows, stray quotes and leading whitespace are all
// tolerated, because exported accounting files routinely contain them.
//
// =============================================================================

package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ParseFile parses one input file by extension: .xlsx/.xlsm go through the
// Excel reader, everything else is treated as delimited text.
func ParseFile(path string, kind FileKind, scanRows int) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ParseXLSX(path, kind, scanRows)
	default:
		return ParseCSV(path, kind, scanRows)
	}
}

// ParseCSV reads a delimited text file into a Table.
//
// PARAMETERS:
//   - path: the file to read
//   - kind: the logical file kind, which fixes the required columns
//   - scanRows: how many leading rows to scan for the header
func ParseCSV(path string, kind FileKind, scanRows int) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", kind, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s file %s: %w", kind, path, err)
		}
		rows = append(rows, record)
	}

	return buildTable(rows, kind, scanRows, path)
}

// buildTable locates the header in raw rows and maps every data row below it
// onto the canonical columns. Rows above the header are discarded. Rows with
// no non-blank mapped cell are skipped.
func buildTable(rows [][]string, kind FileKind, scanRows int, source string) (*Table, error) {
	spec := kind.Spec()

	headerIdx, matched, err := detectHeader(rows, spec, scanRows, source, kind)
	if err != nil {
		return nil, err
	}

	header := rows[headerIdx]
	columns := make(map[string]string, len(matched))
	for column, idx := range matched {
		columns[column] = strings.TrimSpace(header[idx])
	}

	table := &Table{
		Kind:      kind,
		Source:    source,
		HeaderRow: headerIdx + 1,
		Columns:   columns,
	}

	for i := headerIdx + 1; i < len(rows); i++ {
		cells := make(map[string]string, len(matched))
		empty := true
		for column, idx := range matched {
			if idx >= len(rows[i]) {
				continue
			}
			value := strings.TrimSpace(rows[i][idx])
			cells[column] = value
			if value != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		table.Rows = append(table.Rows, Row{SourceRow: i + 1, Cells: cells})
	}

	return table, nil
}
