package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/stockrecon/pkg/application/dto"
	"github.com/vsinha/stockrecon/pkg/domain/entities"
)

// SheetName is the worksheet name of the xlsx report
const SheetName = "库存汇总"

var columnWidths = map[string]float64{
	"A": 15, "B": 15, "C": 8, "D": 8, "E": 12, "F": 8, "G": 8,
}

// WriteXLSX writes the report as a single-sheet workbook. Quantities are
// stored as numbers and the total row is bold.
func WriteXLSX(w io.Writer, report *dto.Report, headers []string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerRow := make([]any, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return fmt.Errorf("invalid header count %d: %w", len(headers), err)
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	for i, r := range report.Rows {
		rowNum := i + 2
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		values := xlsxCells(r)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %s: %w", r.SKU, err)
		}
		if r.IsTotal {
			if err := f.SetCellStyle(SheetName, cell, fmt.Sprintf("%s%d", lastCol, rowNum), bold); err != nil {
				return fmt.Errorf("failed to style total row: %w", err)
			}
		}
	}

	for col, width := range columnWidths {
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", col, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func xlsxCells(r entities.SummaryRecord) []any {
	cells := []any{string(r.SKU), string(r.PlatformSKU)}
	for _, q := range r.Quantities() {
		cells = append(cells, xlsxNumber(q))
	}
	return cells
}

func xlsxNumber(q entities.Quantity) any {
	d := q.Decimal()
	if d.IsInteger() {
		return d.IntPart()
	}
	return d.InexactFloat64()
}
