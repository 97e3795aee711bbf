package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"investco/internal/chain"
	"investco/internal/domain"
)

// WriteWorkbook builds an XLSX workbook with the statement history on one
// sheet and the gap audit on another, and writes it to w.
func WriteWorkbook(w io.Writer, statements []*domain.Statement, gaps []chain.Gap) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const stmtSheet = "Statements"
	const gapSheet = "Gap Audit"

	f.SetSheetName(f.GetSheetName(0), stmtSheet)
	if err := writeSheet(f, stmtSheet, statementColumns, statementRows(statements)); err != nil {
		return err
	}

	if _, err := f.NewSheet(gapSheet); err != nil {
		return fmt.Errorf("export: creating sheet: %w", err)
	}
	if err := writeSheet(f, gapSheet, gapColumns, gapRows(gaps)); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: writing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("export: cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("export: writing row %d: %w", row, err)
	}
	return nil
}

func statementRows(statements []*domain.Statement) [][]string {
	rows := make([][]string, 0, len(statements))
	for _, s := range statements {
		rows = append(rows, statementToRow(s))
	}
	return rows
}

func gapRows(gaps []chain.Gap) [][]string {
	rows := make([][]string, 0, len(gaps))
	for i := range gaps {
		rows = append(rows, gapToRow(&gaps[i]))
	}
	return rows
}
