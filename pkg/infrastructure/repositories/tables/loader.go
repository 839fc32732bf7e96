// Package tables loads source tables from spreadsheet files, picking the
// reader by file extension.
package tables

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsinha/stockrecon/pkg/domain/entities"
	"github.com/vsinha/stockrecon/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/stockrecon/pkg/infrastructure/repositories/xlsx"
)

// ErrUnsupportedFormat is returned for files that are neither .csv nor .xlsx
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Loader dispatches to the CSV or workbook loader
type Loader struct {
	csv  *csv.Loader
	xlsx *xlsx.Loader
}

// NewLoader creates a loader. encoding applies to CSV files only.
func NewLoader(encoding csv.Encoding) *Loader {
	return &Loader{
		csv:  csv.NewLoader(encoding),
		xlsx: xlsx.NewLoader(),
	}
}

// LoadFile loads a table from disk
func (l *Loader) LoadFile(name, path string) (*entities.Table, error) {
	if err := checkFormat(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", name, path, err)
	}
	defer file.Close()

	return l.Read(name, path, file)
}

// Read loads a table from r; filename only selects the format
func (l *Loader) Read(name, filename string, r io.Reader) (*entities.Table, error) {
	if err := checkFormat(filename); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return l.xlsx.ReadTable(name, r)
	default:
		return l.csv.ReadTable(name, r)
	}
}

func checkFormat(filename string) error {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv", ".xlsx", ".xlsm":
		return nil
	case ".xls":
		return fmt.Errorf("%w: %s is a legacy .xls workbook, save it as .xlsx and try again", ErrUnsupportedFormat, filepath.Base(filename))
	default:
		return fmt.Errorf("%w: %q (expected .csv or .xlsx)", ErrUnsupportedFormat, ext)
	}
}
