package tables

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vsinha/stockrecon/pkg/infrastructure/repositories/csv"
)

func TestLoader_Read_DispatchesByExtension(t *testing.T) {
	t.Parallel()

	loader := NewLoader(csv.EncodingAuto)

	table, err := loader.Read("cg", "cg.CSV", strings.NewReader("Part Number,Available\nA,1\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"Part Number", "Available"}, table.Columns)

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Part Number", "Available"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"A", 1}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, err = loader.Read("cg", "export.xlsx", &buf)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"A", "1"}}, table.Rows)
}

func TestLoader_RejectsUnsupportedFormats(t *testing.T) {
	t.Parallel()

	loader := NewLoader(csv.EncodingAuto)

	_, err := loader.Read("cloud", "stock.xls", strings.NewReader(""))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	require.Contains(t, err.Error(), ".xlsx")

	_, err = loader.Read("cloud", "stock.json", strings.NewReader("{}"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = loader.LoadFile("cloud", filepath.Join(t.TempDir(), "stock.xls"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoader_LoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cloud.csv")
	require.NoError(t, os.WriteFile(path, []byte("Fnsku,仓库名称,代发库存\nWS007-192-12,X005-CA,5\n"), 0o644))

	table, err := NewLoader(csv.EncodingAuto).LoadFile("cloud", path)
	require.NoError(t, err)
	require.Equal(t, "cloud", table.Name)
	require.Len(t, table.Rows, 1)
}
