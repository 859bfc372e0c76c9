// =============================================================================
// Balance Sheet Recon - Excel Renderer
// =============================================================================
//
// Writes the reconciliation workbook: one row per account on the main sheet,
// color-coded by status (green PASS, red MISMATCH), plus a summary sheet with
// the portfolio rollup and key risks.
//
// Amounts are written as numbers so the workbook stays sortable/filterable;
// the decimals are exact in the domain model and only converted at the very
// edge here.
//
// =============================================================================

package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	reconSheet   = "Reconciliation"
	summarySheet = "Summary"

	passFill     = "CCFFCC"
	mismatchFill = "FFCCCC"
)

var reconHeader = []interface{}{
	"Account", "Number", "Name", "Category", "Subcategory",
	"Balance Type", "Debit", "Credit", "Net",
	"Expected", "Status", "Review", "Commentary",
}

// WriteWorkbook renders the record set and summary into an .xlsx file.
func WriteWorkbook(path string, records []ReconciliationRecord, summary PortfolioSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", reconSheet)
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	if err := writeReconSheet(f, records); err != nil {
		return err
	}
	if err := writeSummarySheet(f, summary); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeReconSheet(f *excelize.File, records []ReconciliationRecord) error {
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	passStyle, err := fillStyle(f, passFill)
	if err != nil {
		return err
	}
	mismatchStyle, err := fillStyle(f, mismatchFill)
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(reconSheet, "A1", &reconHeader); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(reconHeader))
	if err := f.SetCellStyle(reconSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	for i, r := range records {
		rowNum := i + 2
		review := ""
		if r.Verdict.ReviewFlag {
			review = "REVIEW"
		}
		row := []interface{}{
			r.Account.Raw,
			r.Account.Number,
			r.Account.Name,
			r.Account.Category,
			r.Account.Subcategory,
			r.Verdict.Balance.String(),
			r.Account.Debit.InexactFloat64(),
			r.Account.Credit.InexactFloat64(),
			r.Account.Net().InexactFloat64(),
			r.Verdict.Expected.String(),
			r.Verdict.Status.String(),
			review,
			r.Verdict.Commentary,
		}
		cell := fmt.Sprintf("A%d", rowNum)
		if err := f.SetSheetRow(reconSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write record row %d: %w", rowNum, err)
		}

		var style int
		switch r.Verdict.Status.String() {
		case "PASS":
			style = passStyle
		case "MISMATCH":
			style = mismatchStyle
		default:
			continue
		}
		if err := f.SetCellStyle(reconSheet, cell, fmt.Sprintf("%s%d", lastCol, rowNum), style); err != nil {
			return fmt.Errorf("failed to style record row %d: %w", rowNum, err)
		}
	}

	return f.SetColWidth(reconSheet, "A", "A", 28)
}

func writeSummarySheet(f *excelize.File, summary PortfolioSummary) error {
	balanced := "NO"
	if summary.Balanced {
		balanced = "YES"
	}

	rows := [][]interface{}{
		{"Balance Sheet Reconciliation Summary"},
		{},
		{"Pass", summary.PassCount},
		{"Mismatch", summary.MismatchCount},
		{"Not Applicable", summary.NotApplicableCount},
		{"Total Debits", summary.TotalDebit.InexactFloat64()},
		{"Total Credits", summary.TotalCredit.InexactFloat64()},
		{"Debits = Credits", balanced},
		{},
		{"Key Risks"},
	}
	for _, risk := range summary.KeyRisks {
		rows = append(rows, []interface{}{risk.Account, risk.Balance.InexactFloat64(), risk.Reason})
	}
	rows = append(rows, []interface{}{}, []interface{}{"By Category"})
	for _, cs := range summary.ByCategory {
		rows = append(rows, []interface{}{
			cs.Category, cs.Count, cs.Pass, cs.Mismatch, cs.NetTotal.InexactFloat64(),
		})
	}

	for i := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}
	return f.SetColWidth(summarySheet, "A", "A", 28)
}

func fillStyle(f *excelize.File, color string) (int, error) {
	id, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create fill style: %w", err)
	}
	return id, nil
}
