package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vsinha/stockrecon/pkg/infrastructure/config"
	"github.com/vsinha/stockrecon/pkg/infrastructure/repositories/tables"
	"github.com/vsinha/stockrecon/pkg/interfaces/api"
)

type ServeCmd struct {
	v *viper.Viper
}

func NewServeCmd(v *viper.Viper) *ServeCmd {
	return &ServeCmd{v: v}
}

func (c *ServeCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve reconciliation over HTTP",
		Long: `Serve reconciliation over HTTP.

  POST /reconcile   multipart upload with "cloud" and "cg" files; ?format=json|csv|xlsx
  GET  /healthz     liveness
  GET  /metrics     Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
			if err != nil {
				return fmt.Errorf("failed to get verbose flag: %w", err)
			}
			settings, err := loadSettings(cmd, c.v)
			if err != nil {
				return err
			}

			log := newLogger(cmd.ErrOrStderr(), verbose)
			orchestrator, err := newOrchestrator(log, settings)
			if err != nil {
				return err
			}

			server, err := api.New(log, api.Config{
				Orchestrator: orchestrator,
				Loader:       tables.NewLoader(settings.Encoding()),
				Headers:      settings.Report.Headers,
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			return server.ListenAndServe(cmd.Context(), settings.Serve.Addr)
		},
	}

	cmd.Flags().String("addr", ":8080", "Address to listen on")
	bindFlags(c.v, cmd, map[string]string{
		config.KeyServeAddr: "addr",
	})

	return cmd
}
