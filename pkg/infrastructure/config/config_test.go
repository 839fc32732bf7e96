package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vsinha/stockrecon/pkg/domain/entities"
	"github.com/vsinha/stockrecon/pkg/infrastructure/repositories/csv"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	require.Equal(t, "Fnsku", cfg.Cloud.SKUColumn)
	require.Equal(t, "仓库名称", cfg.Cloud.WarehouseColumn)
	require.Equal(t, "代发库存", cfg.Cloud.QuantityColumn)
	require.Contains(t, cfg.Cloud.NumericColumns, "库龄(天)")
	require.Equal(t, "X005-CA", cfg.Cloud.PrimaryWarehouse)
	require.Equal(t, "Part Number", cfg.CG.SKUColumn)
	require.Equal(t, "Castlegate", cfg.CG.CountedType)
	require.Equal(t, "共计", cfg.Report.TotalLabel)
	require.Equal(t, entities.DefaultHeaders(), cfg.Report.Headers)
	require.Empty(t, cfg.Mapping.File)
	require.Equal(t, csv.EncodingAuto, cfg.Encoding())
	require.Equal(t, "text", cfg.Output.Format)
	require.Equal(t, ":8080", cfg.Serve.Addr)
	require.Empty(t, cfg.ConfigFile)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockrecon.yaml")
	content := `
cloud:
  primary_warehouse: X005-NJ
cg:
  counted_type: Warehouse A
report:
  total_label: Grand Total
input:
  encoding: gbk
output:
  format: xlsx
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("STOCKRECON_OUTPUT_FORMAT", "json")
	t.Setenv("STOCKRECON_MAPPING_FILE", "/etc/stockrecon/mapping.yaml")

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	require.Equal(t, "X005-NJ", cfg.Cloud.PrimaryWarehouse)
	require.Equal(t, "Warehouse A", cfg.CG.CountedType)
	require.Equal(t, "Grand Total", cfg.Report.TotalLabel)
	require.Equal(t, csv.EncodingGBK, cfg.Encoding())
	// Environment beats the config file.
	require.Equal(t, "json", cfg.Output.Format)
	require.Equal(t, "/etc/stockrecon/mapping.yaml", cfg.Mapping.File)
	require.Equal(t, path, cfg.ConfigFile)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		return &Config{
			Cloud: CloudConfig{SKUColumn: "Fnsku", WarehouseColumn: "仓库名称", QuantityColumn: "代发库存"},
			CG:    CGConfig{SKUColumn: "Part Number", TypeColumn: "Warehouse Type", QuantityColumn: "Available"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults filled", mutate: func(*Config) {}},
		{name: "missing cloud column", mutate: func(c *Config) { c.Cloud.WarehouseColumn = " " }, wantErr: true},
		{name: "missing CG column", mutate: func(c *Config) { c.CG.QuantityColumn = "" }, wantErr: true},
		{name: "wrong header count", mutate: func(c *Config) { c.Report.Headers = []string{"SKU"} }, wantErr: true},
		{name: "unknown encoding", mutate: func(c *Config) { c.Input.Encoding = "latin1" }, wantErr: true},
		{name: "unknown format", mutate: func(c *Config) { c.Output.Format = "pdf" }, wantErr: true},
		{name: "format is case insensitive", mutate: func(c *Config) { c.Output.Format = "CSV" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "X005-CA", cfg.Cloud.PrimaryWarehouse)
			require.Equal(t, "Castlegate", cfg.CG.CountedType)
			require.Equal(t, "共计", cfg.Report.TotalLabel)
			require.Len(t, cfg.Report.Headers, entities.ReportColumnCount)
			require.Contains(t, OutputFormats, cfg.Output.Format)
		})
	}
}
