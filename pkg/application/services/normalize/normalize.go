// Package normalize turns raw source tables into typed stock rows.
//
// Declared numeric columns are coerced with services.CoerceNumeric: values that
// do not parse become zero and are counted in the Report instead of failing the
// run. Declared numeric columns absent from a table are skipped. Only a missing
// required column (identity, warehouse tag, quantity) is an error.
package normalize

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/vsinha/stockrecon/pkg/domain/entities"
	"github.com/vsinha/stockrecon/pkg/domain/services"
)

// ErrMissingColumn is returned when a required column is entirely absent
var ErrMissingColumn = errors.New("required column missing")

// CloudColumns names the cloud export columns
type CloudColumns struct {
	SKU       string
	Warehouse string
	Quantity  string
	Numeric   []string
}

// CGColumns names the CG export columns
type CGColumns struct {
	SKU           string
	WarehouseType string
	Quantity      string
	Numeric       []string
}

// DefaultCloudColumns returns the column names of the cloud warehouse export
func DefaultCloudColumns() CloudColumns {
	return CloudColumns{
		SKU:       "Fnsku",
		Warehouse: "仓库名称",
		Quantity:  "代发库存",
		Numeric: []string{
			"代发途中", "代发库存", "中转途中", "中转库存", "待处理库存",
			"10天销量", "30天销量", "库龄(天)", "体积", "库存预警",
		},
	}
}

// DefaultCGColumns returns the column names of the CG platform export
func DefaultCGColumns() CGColumns {
	return CGColumns{
		SKU:           "Part Number",
		WarehouseType: "Warehouse Type",
		Quantity:      "Available",
		Numeric:       []string{"In Stock", "Available", "Order Past 90 Days"},
	}
}

// Report describes what normalization did to one source
type Report struct {
	Source string `json:"source"`
	Rows   int    `json:"rows"`
	// SkippedRows counts rows without an identity; they can never reach a record.
	SkippedRows int `json:"skipped_rows"`
	// Malformed counts non-numeric cells coerced to zero, per column.
	Malformed map[string]int `json:"malformed,omitempty"`
	// AbsentColumns lists declared numeric columns the table does not have.
	AbsentColumns []string `json:"absent_columns,omitempty"`
}

// MalformedTotal returns the number of coerced cells across all columns
func (r *Report) MalformedTotal() int {
	total := 0
	for _, n := range r.Malformed {
		total += n
	}
	return total
}

// Cloud normalizes a cloud warehouse table
func Cloud(t *entities.Table, cols CloudColumns) ([]*entities.CloudStockRow, *Report, error) {
	if t == nil {
		return nil, nil, fmt.Errorf("cloud table is nil")
	}
	skuIdx, err := requireColumn(t, cols.SKU)
	if err != nil {
		return nil, nil, err
	}
	warehouseIdx, err := requireColumn(t, cols.Warehouse)
	if err != nil {
		return nil, nil, err
	}
	qtyIdx, err := requireColumn(t, cols.Quantity)
	if err != nil {
		return nil, nil, err
	}

	report := newReport(t.Name)
	metrics := numericColumns(t, cols.Numeric, cols.Quantity, report)

	rows := make([]*entities.CloudStockRow, 0, len(t.Rows))
	for _, raw := range t.Rows {
		report.Rows++
		sku := entities.CloudSKU(trim(entities.Cell(raw, skuIdx)))
		if sku == "" {
			report.SkippedRows++
			continue
		}

		row, err := entities.NewCloudStockRow(sku, trim(entities.Cell(raw, warehouseIdx)),
			coerce(raw, qtyIdx, cols.Quantity, report))
		if err != nil {
			return nil, nil, fmt.Errorf("%s row %d: %w", t.Name, report.Rows+1, err)
		}
		for _, m := range metrics {
			row.Metrics[m.name] = coerce(raw, m.idx, m.name, report)
		}
		rows = append(rows, row)
	}

	return rows, report, nil
}

// CG normalizes a CG platform table
func CG(t *entities.Table, cols CGColumns) ([]*entities.CGStockRow, *Report, error) {
	if t == nil {
		return nil, nil, fmt.Errorf("CG table is nil")
	}
	skuIdx, err := requireColumn(t, cols.SKU)
	if err != nil {
		return nil, nil, err
	}
	typeIdx, err := requireColumn(t, cols.WarehouseType)
	if err != nil {
		return nil, nil, err
	}
	qtyIdx, err := requireColumn(t, cols.Quantity)
	if err != nil {
		return nil, nil, err
	}

	report := newReport(t.Name)
	metrics := numericColumns(t, cols.Numeric, cols.Quantity, report)

	rows := make([]*entities.CGStockRow, 0, len(t.Rows))
	for _, raw := range t.Rows {
		report.Rows++
		sku := entities.PlatformSKU(trim(entities.Cell(raw, skuIdx)))
		if sku == "" {
			report.SkippedRows++
			continue
		}

		row, err := entities.NewCGStockRow(sku, trim(entities.Cell(raw, typeIdx)),
			coerce(raw, qtyIdx, cols.Quantity, report))
		if err != nil {
			return nil, nil, fmt.Errorf("%s row %d: %w", t.Name, report.Rows+1, err)
		}
		for _, m := range metrics {
			row.Metrics[m.name] = coerce(raw, m.idx, m.name, report)
		}
		rows = append(rows, row)
	}

	return rows, report, nil
}

type indexedColumn struct {
	name string
	idx  int
}

func newReport(source string) *Report {
	return &Report{
		Source:    source,
		Malformed: make(map[string]int),
	}
}

func requireColumn(t *entities.Table, name string) (int, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return -1, fmt.Errorf("%w: %s table has no %q column", ErrMissingColumn, t.Name, name)
	}
	return idx, nil
}

// numericColumns resolves the declared numeric columns other than the quantity
// column, recording the ones the table lacks.
func numericColumns(t *entities.Table, declared []string, quantity string, report *Report) []indexedColumn {
	seen := map[string]bool{quantity: true}
	var cols []indexedColumn
	for _, name := range declared {
		if seen[name] {
			continue
		}
		seen[name] = true

		idx := t.ColumnIndex(name)
		if idx < 0 {
			report.AbsentColumns = append(report.AbsentColumns, name)
			continue
		}
		cols = append(cols, indexedColumn{name: name, idx: idx})
	}
	sort.Strings(report.AbsentColumns)
	return cols
}

func coerce(raw []string, idx int, column string, report *Report) entities.Quantity {
	q, malformed := services.CoerceNumeric(entities.Cell(raw, idx))
	if malformed {
		report.Malformed[column]++
	}
	return q
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
