package output

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vsinha/stockrecon/pkg/application/dto"
	"github.com/vsinha/stockrecon/pkg/application/services/reconcile"
	"github.com/vsinha/stockrecon/pkg/domain/entities"
	testhelpers "github.com/vsinha/stockrecon/pkg/infrastructure/testing"
)

func scenarioReport(t *testing.T) *dto.Report {
	t.Helper()

	svc, err := reconcile.NewReconciliationService(nil, testhelpers.ScenarioMapping(), reconcile.EngineConfig{})
	require.NoError(t, err)
	cloudRepo, cgRepo := testhelpers.BuildScenarioRepositories()
	report, err := svc.Reconcile(context.Background(), cloudRepo, cgRepo)
	require.NoError(t, err)
	return report
}

const scenarioCSV = `SKU,平台sku,CALA,WS,海外仓总库存,CG库存,总库存
共计,,5,7,12,10,22
WS001-50-10,,0,4,4,0,4
WS007-192-12,WS007-30-KING,5,3,8,10,18
WS008-99-12,WS008-30-TWIN,0,0,0,0,0
`

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, scenarioReport(t), entities.DefaultHeaders()))
	require.Equal(t, scenarioCSV, buf.String())
}

func TestWriteCSV_IdenticalAcrossRuns(t *testing.T) {
	t.Parallel()

	var first, second bytes.Buffer
	require.NoError(t, WriteCSV(&first, scenarioReport(t), entities.DefaultHeaders()))
	require.NoError(t, WriteCSV(&second, scenarioReport(t), entities.DefaultHeaders()))
	require.Equal(t, first.Bytes(), second.Bytes())
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, scenarioReport(t), entities.DefaultHeaders()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	require.Equal(t, entities.DefaultHeaders(), rows[0])
	require.Equal(t, []string{"共计", "", "5", "7", "12", "10", "22"}, rows[1])
	require.Equal(t, []string{"WS007-192-12", "WS007-30-KING", "5", "3", "8", "10", "18"}, rows[3])

	for col, want := range columnWidths {
		got, err := f.GetColWidth(SheetName, col)
		require.NoError(t, err)
		require.Equal(t, want, got, "width of column %s", col)
	}
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, scenarioReport(t), entities.DefaultHeaders(), 0))

	out := buf.String()
	require.Contains(t, out, "海外仓总库存")
	require.Contains(t, out, "WS007-30-KING")
	require.Contains(t, out, "Total Stock:")
	require.Contains(t, out, "WS999-UNMAPPED")
	require.Less(t, strings.Index(out, "共计"), strings.Index(out, "WS001-50-10"), "total row comes first")
}

func TestWriteText_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, &dto.Report{}, entities.DefaultHeaders(), 0))
	require.Contains(t, buf.String(), "No SKUs to report.")
}

func TestWriteHTML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, scenarioReport(t), entities.DefaultHeaders()))

	out := buf.String()
	require.Contains(t, out, `<tr class="total"><td>共计</td>`)
	require.Contains(t, out, "<th>平台sku</th>")
	require.Contains(t, out, "WS999-UNMAPPED: 6")
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, scenarioReport(t)))
	require.Contains(t, buf.String(), `"grand_total": 22`)
	require.Contains(t, buf.String(), `"is_total": true`)
}

func TestGenerate_WritesTimestampedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	at := time.Date(2025, 1, 15, 14, 30, 5, 0, time.UTC)

	path, err := Generate(scenarioReport(t), Config{
		Format:    "csv",
		OutputDir: dir,
		Now:       func() time.Time { return at },
	})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "inventory_summary_20250115_143005.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, scenarioCSV, string(data))
}

func TestGenerate_StdoutAndUnknownFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	path, err := Generate(scenarioReport(t), Config{Format: "csv", Stdout: &buf})
	require.NoError(t, err)
	require.Empty(t, path)
	require.Equal(t, scenarioCSV, buf.String())

	_, err = Generate(scenarioReport(t), Config{Format: "pdf"})
	require.Error(t, err)
}

func TestFormatQuantity(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"0":         "0",
		"999":       "999",
		"1000":      "1,000",
		"1234567":   "1,234,567",
		"-12345":    "-12,345",
		"12345.678": "12,345.678",
	}
	for in, want := range tests {
		q, err := entities.NewQuantityFromString(in)
		require.NoError(t, err)
		require.Equal(t, want, FormatQuantity(q), in)
	}
}

func TestContentType(t *testing.T) {
	t.Parallel()

	require.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ContentType("xlsx"))
	require.Equal(t, "application/json", ContentType("json"))
}
