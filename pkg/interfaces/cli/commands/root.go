package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vsinha/stockrecon/pkg/application/services/orchestration"
	"github.com/vsinha/stockrecon/pkg/application/services/reconcile"
	"github.com/vsinha/stockrecon/pkg/infrastructure/config"
	"github.com/vsinha/stockrecon/pkg/infrastructure/mapping"
)

type ExitCode int

const (
	exitCodeSuccess = 0
	exitCodeError   = 1
)

const formatHint = "Check that the files are the cloud warehouse and CG exports, saved as .csv or .xlsx."

func Run() ExitCode {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		if !errors.Is(err, orchestration.ErrMissingSource) && !isUsageError(err) {
			fmt.Fprintln(rootCmd.ErrOrStderr(), formatHint)
		}
		return exitCodeError
	}

	return exitCodeSuccess
}

// NewRootCmd builds the stockrecon command tree
func NewRootCmd() *cobra.Command {
	v := config.New()

	rootCmd := &cobra.Command{
		Use:   "stockrecon",
		Short: "Reconcile overseas warehouse stock into a per-SKU inventory report.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnvFiles()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := cmd.Help()
			if err != nil {
				return fmt.Errorf("failed to show help: %w", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "set debug logging level")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./stockrecon.yaml or ~/stockrecon.yaml)")
	rootCmd.PersistentFlags().StringP("mapping", "m", "", "YAML SKU mapping file (default: built-in table)")
	rootCmd.PersistentFlags().String("encoding", "", "CSV input encoding: auto, utf-8, gbk (default auto)")

	bindPersistentFlags(v, rootCmd, map[string]string{
		config.KeyMappingFile:   "mapping",
		config.KeyInputEncoding: "encoding",
	})

	rootCmd.AddCommand(
		NewReconcileCmd(v).Command(),
		NewMappingCmd(v).Command(),
		NewServeCmd(v).Command(),
	)

	return rootCmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

func loadSettings(cmd *cobra.Command, v *viper.Viper) (*config.Config, error) {
	configFile, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	settings, err := config.Load(v, configFile)
	if err != nil {
		return nil, &configError{err: fmt.Errorf("failed to load configuration: %w", err)}
	}
	return settings, nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		_ = v.BindPFlag(key, cmd.Flags().Lookup(name))
	}
}

func bindPersistentFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		_ = v.BindPFlag(key, cmd.PersistentFlags().Lookup(name))
	}
}

// newService loads the configured mapping and builds the reconciliation service
func newService(log *slog.Logger, settings *config.Config) (*reconcile.ReconciliationService, error) {
	skuMapping, _, err := mapping.Load(settings.Mapping.File)
	if err != nil {
		return nil, &configError{err: fmt.Errorf("failed to load SKU mapping: %w", err)}
	}
	log.Debug("loaded SKU mapping", "pairs", skuMapping.Len(), "file", settings.Mapping.File)

	return reconcile.NewReconciliationService(log, skuMapping, reconcile.EngineConfig{
		PrimaryWarehouse:     settings.Cloud.PrimaryWarehouse,
		CountedWarehouseType: settings.CG.CountedType,
		TotalLabel:           settings.Report.TotalLabel,
	})
}

func newOrchestrator(log *slog.Logger, settings *config.Config) (*orchestration.ReconciliationOrchestrator, error) {
	svc, err := newService(log, settings)
	if err != nil {
		return nil, err
	}
	return orchestration.NewReconciliationOrchestrator(log, svc, columns(settings)), nil
}

func columns(settings *config.Config) orchestration.Columns {
	cols := orchestration.DefaultColumns()
	cols.Cloud.SKU = settings.Cloud.SKUColumn
	cols.Cloud.Warehouse = settings.Cloud.WarehouseColumn
	cols.Cloud.Quantity = settings.Cloud.QuantityColumn
	cols.Cloud.Numeric = settings.Cloud.NumericColumns
	cols.CG.SKU = settings.CG.SKUColumn
	cols.CG.WarehouseType = settings.CG.TypeColumn
	cols.CG.Quantity = settings.CG.QuantityColumn
	cols.CG.Numeric = settings.CG.NumericColumns
	return cols
}

// isUsageError reports configuration and mapping errors, which need no file format hint
func isUsageError(err error) bool {
	var cfgErr *configError
	return errors.As(err, &cfgErr)
}

type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }
