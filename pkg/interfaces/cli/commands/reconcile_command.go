package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vsinha/stockrecon/pkg/application/services/orchestration"
	"github.com/vsinha/stockrecon/pkg/infrastructure/config"
	"github.com/vsinha/stockrecon/pkg/infrastructure/repositories/tables"
	"github.com/vsinha/stockrecon/pkg/interfaces/cli/output"
)

// ReconcileConfig holds configuration for the reconcile command
type ReconcileConfig struct {
	// InputDir holds cloud.csv/cloud.xlsx and cg.csv/cg.xlsx; used for any
	// file not given explicitly.
	InputDir  string
	CloudFile string
	CGFile    string
	Verbose   bool
	Settings  *config.Config
	Logger    *slog.Logger
	Stdout    io.Writer
}

// ReconcileCommand loads both exports, reconciles them and writes the report
type ReconcileCommand struct {
	config ReconcileConfig
}

// NewReconcileCommand creates a new reconcile command with the given configuration
func NewReconcileCommand(config ReconcileConfig) *ReconcileCommand {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	return &ReconcileCommand{config: config}
}

// Execute runs the reconcile command
func (c *ReconcileCommand) Execute(ctx context.Context) error {
	settings := c.config.Settings
	log := c.config.Logger

	cloudPath, cgPath, err := c.resolveInputFiles()
	if err != nil {
		return err
	}

	if c.config.Verbose {
		c.printHeader(cloudPath, cgPath)
	}

	orchestrator, err := newOrchestrator(log, settings)
	if err != nil {
		return err
	}

	loader := tables.NewLoader(settings.Encoding())
	cloud, err := loader.LoadFile("cloud", cloudPath)
	if err != nil {
		return fmt.Errorf("error loading cloud data: %w", err)
	}
	cg, err := loader.LoadFile("cg", cgPath)
	if err != nil {
		return fmt.Errorf("error loading CG data: %w", err)
	}
	log.Debug("loaded sources", "cloud_rows", len(cloud.Rows), "cg_rows", len(cg.Rows))

	startTime := time.Now()
	report, err := orchestrator.Run(ctx, cloud, cg)
	reconcileTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("error reconciling stock: %w", err)
	}
	log.Info("reconciliation complete",
		"skus", report.Statistics.SKUCount,
		"total", report.Statistics.GrandTotal.String(),
		"duration", reconcileTime)

	path, err := output.Generate(report, output.Config{
		Format:        settings.Output.Format,
		OutputDir:     settings.Output.Dir,
		Verbose:       c.config.Verbose,
		Headers:       settings.Report.Headers,
		ReconcileTime: reconcileTime,
		Stdout:        c.config.Stdout,
	})
	if err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}
	if path != "" {
		log.Info("report written", "path", path)
	}

	return nil
}

// resolveInputFiles determines the actual file paths to use
func (c *ReconcileCommand) resolveInputFiles() (string, string, error) {
	cloudPath, cgPath := c.config.CloudFile, c.config.CGFile
	if c.config.InputDir != "" {
		if cloudPath == "" {
			cloudPath = findInput(c.config.InputDir, "cloud")
		}
		if cgPath == "" {
			cgPath = findInput(c.config.InputDir, "cg")
		}
	}

	if cloudPath == "" || cgPath == "" {
		return "", "", fmt.Errorf("%w: pass --cloud and --cg, or --dir", orchestration.ErrMissingSource)
	}

	for name, path := range map[string]string{"cloud": cloudPath, "CG": cgPath} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return "", "", fmt.Errorf("%s file not found: %s", name, path)
		}
	}
	return cloudPath, cgPath, nil
}

// findInput returns dir/<base>.xlsx or dir/<base>.csv, whichever exists
func findInput(dir, base string) string {
	for _, ext := range []string{".xlsx", ".csv"} {
		path := filepath.Join(dir, base+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// printHeader prints the command header information
func (c *ReconcileCommand) printHeader(cloudPath, cgPath string) {
	w := c.config.Stdout
	fmt.Fprintf(w, "🚀 Stock Reconciliation\n")
	fmt.Fprintf(w, "Input files:\n")
	fmt.Fprintf(w, "  Cloud: %s\n", cloudPath)
	fmt.Fprintf(w, "  CG: %s\n", cgPath)
	fmt.Fprintf(w, "Output format: %s\n", c.config.Settings.Output.Format)
	if c.config.Settings.Output.Dir != "" {
		fmt.Fprintf(w, "Output directory: %s\n", c.config.Settings.Output.Dir)
	}
	fmt.Fprintln(w)
}

type ReconcileCmd struct {
	v *viper.Viper
}

func NewReconcileCmd(v *viper.Viper) *ReconcileCmd {
	return &ReconcileCmd{v: v}
}

func (c *ReconcileCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile cloud warehouse and CG stock into one report",
		Example: `  stockrecon reconcile --cloud cloud.xlsx --cg cg.csv
  stockrecon reconcile --dir exports/ --format xlsx --output reports/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
			if err != nil {
				return fmt.Errorf("failed to get verbose flag: %w", err)
			}
			cloudFile, err := cmd.Flags().GetString("cloud")
			if err != nil {
				return fmt.Errorf("failed to get cloud flag: %w", err)
			}
			cgFile, err := cmd.Flags().GetString("cg")
			if err != nil {
				return fmt.Errorf("failed to get cg flag: %w", err)
			}
			dir, err := cmd.Flags().GetString("dir")
			if err != nil {
				return fmt.Errorf("failed to get dir flag: %w", err)
			}

			settings, err := loadSettings(cmd, c.v)
			if err != nil {
				return err
			}

			return NewReconcileCommand(ReconcileConfig{
				InputDir:  dir,
				CloudFile: cloudFile,
				CGFile:    cgFile,
				Verbose:   verbose,
				Settings:  settings,
				Logger:    newLogger(cmd.ErrOrStderr(), verbose),
				Stdout:    cmd.OutOrStdout(),
			}).Execute(cmd.Context())
		},
	}

	cmd.Flags().String("cloud", "", "Path to the cloud warehouse export (.csv or .xlsx)")
	cmd.Flags().String("cg", "", "Path to the CG platform export (.csv or .xlsx)")
	cmd.Flags().String("dir", "", "Directory containing cloud.{csv,xlsx} and cg.{csv,xlsx}")
	cmd.Flags().StringP("format", "f", "text", "Output format: text, json, csv, xlsx, html")
	cmd.Flags().StringP("output", "o", "", "Output directory for report files")
	cmd.Flags().String("primary-warehouse", "", "Cloud warehouse reported in its own column (default X005-CA)")
	cmd.Flags().String("counted-type", "", "CG warehouse type whose stock is counted (default Castlegate)")
	cmd.Flags().String("total-label", "", "SKU label of the total row (default 共计)")

	bindFlags(c.v, cmd, map[string]string{
		config.KeyOutputFormat:          "format",
		config.KeyOutputDir:             "output",
		config.KeyCloudPrimaryWarehouse: "primary-warehouse",
		config.KeyCGCountedType:         "counted-type",
		config.KeyReportTotalLabel:      "total-label",
	})

	return cmd
}
