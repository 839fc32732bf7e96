// Package config loads stockrecon settings from defaults, an optional
// stockrecon.yaml file, STOCKRECON_* environment variables and .env files.
// Command-line flags bound to the same keys take precedence over all of them.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vsinha/stockrecon/pkg/domain/entities"
	"github.com/vsinha/stockrecon/pkg/infrastructure/repositories/csv"
)

const (
	EnvPrefix = "STOCKRECON"
	FileName  = "stockrecon"

	defaultPrimaryWarehouse = "X005-CA"
	defaultCountedType      = "Castlegate"
	defaultTotalLabel       = "共计"
	defaultOutputFormat     = "text"
	defaultServeAddr        = ":8080"
)

// Viper keys
const (
	KeyCloudSKUColumn        = "cloud.sku_column"
	KeyCloudWarehouseColumn  = "cloud.warehouse_column"
	KeyCloudQuantityColumn   = "cloud.quantity_column"
	KeyCloudNumericColumns   = "cloud.numeric_columns"
	KeyCloudPrimaryWarehouse = "cloud.primary_warehouse"
	KeyCGSKUColumn           = "cg.sku_column"
	KeyCGTypeColumn          = "cg.type_column"
	KeyCGQuantityColumn      = "cg.quantity_column"
	KeyCGNumericColumns      = "cg.numeric_columns"
	KeyCGCountedType         = "cg.counted_type"
	KeyReportTotalLabel      = "report.total_label"
	KeyReportHeaders         = "report.headers"
	KeyMappingFile           = "mapping.file"
	KeyInputEncoding         = "input.encoding"
	KeyOutputFormat          = "output.format"
	KeyOutputDir             = "output.dir"
	KeyServeAddr             = "serve.addr"
)

// OutputFormats lists the supported report formats
var OutputFormats = []string{"text", "json", "csv", "xlsx", "html"}

// Config is the complete stockrecon configuration
type Config struct {
	Cloud   CloudConfig
	CG      CGConfig
	Report  ReportConfig
	Mapping MappingConfig
	Input   InputConfig
	Output  OutputConfig
	Serve   ServeConfig

	// ConfigFile is the file settings were read from, if any.
	ConfigFile string
}

// CloudConfig describes the cloud warehouse export
type CloudConfig struct {
	SKUColumn        string
	WarehouseColumn  string
	QuantityColumn   string
	NumericColumns   []string
	PrimaryWarehouse string
}

// CGConfig describes the CG platform export
type CGConfig struct {
	SKUColumn      string
	TypeColumn     string
	QuantityColumn string
	NumericColumns []string
	CountedType    string
}

type ReportConfig struct {
	TotalLabel string
	Headers    []string
}

type MappingConfig struct {
	// File is a YAML mapping file; empty selects the built-in table.
	File string
}

type InputConfig struct {
	Encoding string
}

type OutputConfig struct {
	Format string
	Dir    string
}

type ServeConfig struct {
	Addr string
}

// New returns a viper instance with defaults and environment binding set up
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyCloudSKUColumn, "Fnsku")
	v.SetDefault(KeyCloudWarehouseColumn, "仓库名称")
	v.SetDefault(KeyCloudQuantityColumn, "代发库存")
	v.SetDefault(KeyCloudNumericColumns, []string{
		"代发途中", "代发库存", "中转途中", "中转库存", "待处理库存",
		"10天销量", "30天销量", "库龄(天)", "体积", "库存预警",
	})
	v.SetDefault(KeyCloudPrimaryWarehouse, defaultPrimaryWarehouse)
	v.SetDefault(KeyCGSKUColumn, "Part Number")
	v.SetDefault(KeyCGTypeColumn, "Warehouse Type")
	v.SetDefault(KeyCGQuantityColumn, "Available")
	v.SetDefault(KeyCGNumericColumns, []string{"In Stock", "Available", "Order Past 90 Days"})
	v.SetDefault(KeyCGCountedType, defaultCountedType)
	v.SetDefault(KeyReportTotalLabel, defaultTotalLabel)
	v.SetDefault(KeyReportHeaders, entities.DefaultHeaders())
	v.SetDefault(KeyMappingFile, "")
	v.SetDefault(KeyInputEncoding, string(csv.EncodingAuto))
	v.SetDefault(KeyOutputFormat, defaultOutputFormat)
	v.SetDefault(KeyOutputDir, "")
	v.SetDefault(KeyServeAddr, defaultServeAddr)
}

// LoadEnvFiles loads .env then .env.local from the working directory.
// Variables already set in the environment are not overridden.
func LoadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// Load reads settings into a Config. configFile names an explicit config file,
// which must exist; when empty, stockrecon.yaml is looked up in the working
// directory and the user's home directory and skipped if absent.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(FileName)

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{
		Cloud: CloudConfig{
			SKUColumn:        v.GetString(KeyCloudSKUColumn),
			WarehouseColumn:  v.GetString(KeyCloudWarehouseColumn),
			QuantityColumn:   v.GetString(KeyCloudQuantityColumn),
			NumericColumns:   v.GetStringSlice(KeyCloudNumericColumns),
			PrimaryWarehouse: v.GetString(KeyCloudPrimaryWarehouse),
		},
		CG: CGConfig{
			SKUColumn:      v.GetString(KeyCGSKUColumn),
			TypeColumn:     v.GetString(KeyCGTypeColumn),
			QuantityColumn: v.GetString(KeyCGQuantityColumn),
			NumericColumns: v.GetStringSlice(KeyCGNumericColumns),
			CountedType:    v.GetString(KeyCGCountedType),
		},
		Report: ReportConfig{
			TotalLabel: v.GetString(KeyReportTotalLabel),
			Headers:    v.GetStringSlice(KeyReportHeaders),
		},
		Mapping: MappingConfig{File: v.GetString(KeyMappingFile)},
		Input:   InputConfig{Encoding: v.GetString(KeyInputEncoding)},
		Output: OutputConfig{
			Format: v.GetString(KeyOutputFormat),
			Dir:    v.GetString(KeyOutputDir),
		},
		Serve:      ServeConfig{Addr: v.GetString(KeyServeAddr)},
		ConfigFile: v.ConfigFileUsed(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and fills empty optional values with defaults
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Cloud.SKUColumn) == "" ||
		strings.TrimSpace(c.Cloud.WarehouseColumn) == "" ||
		strings.TrimSpace(c.Cloud.QuantityColumn) == "" {
		return errors.New("cloud SKU, warehouse and quantity columns are required")
	}
	if strings.TrimSpace(c.CG.SKUColumn) == "" ||
		strings.TrimSpace(c.CG.TypeColumn) == "" ||
		strings.TrimSpace(c.CG.QuantityColumn) == "" {
		return errors.New("CG SKU, warehouse type and quantity columns are required")
	}

	if len(c.Report.Headers) == 0 {
		c.Report.Headers = entities.DefaultHeaders()
	}
	if len(c.Report.Headers) != entities.ReportColumnCount {
		return fmt.Errorf("report.headers must have %d labels, got %d", entities.ReportColumnCount, len(c.Report.Headers))
	}

	enc, err := csv.ParseEncoding(c.Input.Encoding)
	if err != nil {
		return fmt.Errorf("input.encoding: %w", err)
	}
	c.Input.Encoding = string(enc)

	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = defaultOutputFormat
	}
	if !isOutputFormat(c.Output.Format) {
		return fmt.Errorf("invalid output format: %s. Must be one of %s", c.Output.Format, strings.Join(OutputFormats, ", "))
	}

	// Optional configuration.
	if c.Cloud.PrimaryWarehouse == "" {
		c.Cloud.PrimaryWarehouse = defaultPrimaryWarehouse
	}
	if c.CG.CountedType == "" {
		c.CG.CountedType = defaultCountedType
	}
	if c.Report.TotalLabel == "" {
		c.Report.TotalLabel = defaultTotalLabel
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = defaultServeAddr
	}
	return nil
}

// Encoding returns the parsed CSV input encoding
func (c *Config) Encoding() csv.Encoding {
	enc, err := csv.ParseEncoding(c.Input.Encoding)
	if err != nil {
		return csv.EncodingAuto
	}
	return enc
}

func isOutputFormat(format string) bool {
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}
