// Package xlsx reads source tables from Excel workbooks.
package xlsx

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/stockrecon/pkg/domain/entities"
)

// Loader reads the first worksheet of a workbook as a table
type Loader struct{}

// NewLoader creates a new workbook loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadTable loads a table from an .xlsx file
func (l *Loader) LoadTable(name, filename string) (*entities.Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", name, filename, err)
	}
	defer file.Close()

	return l.ReadTable(name, file)
}

// ReadTable reads the first worksheet of workbook content. The first row is
// the header. Trailing empty cells are dropped, so rows may be short.
// Cells are read as stored, ignoring number formats, so a quantity of 2.5
// shown as "3" or -5 shown as "(5)" reads as 2.5 and -5.
func (l *Loader) ReadTable(name string, r io.Reader) (*entities.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s workbook: %w", name, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s workbook has no worksheets", name)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s worksheet %q: %w", name, sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s worksheet %q must have a header row", name, sheets[0])
	}

	header := make([]string, len(rows[0]))
	for i, col := range rows[0] {
		header[i] = strings.TrimSpace(col)
	}

	return &entities.Table{
		Name:    name,
		Columns: header,
		Rows:    rows[1:],
	}, nil
}
