package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vsinha/stockrecon/pkg/domain/entities"
	"github.com/vsinha/stockrecon/pkg/domain/services"
	"github.com/vsinha/stockrecon/pkg/infrastructure/mapping"
)

type MappingCmd struct {
	v *viper.Viper
}

func NewMappingCmd(v *viper.Viper) *MappingCmd {
	return &MappingCmd{v: v}
}

func (c *MappingCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mapping",
		Short: "Inspect and validate the platform-to-cloud SKU mapping",
	}

	cmd.AddCommand(c.showCommand(), c.validateCommand())
	return cmd
}

func (c *MappingCmd) showCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the active SKU mapping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asYAML, err := cmd.Flags().GetBool("yaml")
			if err != nil {
				return fmt.Errorf("failed to get yaml flag: %w", err)
			}
			settings, err := loadSettings(cmd, c.v)
			if err != nil {
				return err
			}

			skuMapping, _, err := mapping.Load(settings.Mapping.File)
			if err != nil {
				return &configError{err: fmt.Errorf("failed to load SKU mapping: %w", err)}
			}

			if asYAML {
				data, err := mapping.Marshal(skuMapping.Pairs())
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			source := "built-in"
			if settings.Mapping.File != "" {
				source = settings.Mapping.File
			}
			fmt.Fprintf(cmd.OutOrStdout(), "SKU mapping (%s, %d pairs)\n", source, skuMapping.Len())
			writeMappingTable(cmd.OutOrStdout(), skuMapping.Pairs())
			return nil
		},
	}
	cmd.Flags().Bool("yaml", false, "Print as a YAML mapping file")
	return cmd
}

func (c *MappingCmd) validateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that a mapping file is one-to-one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := cmd.Flags().GetString("file")
			if err != nil {
				return fmt.Errorf("failed to get file flag: %w", err)
			}
			if file == "" {
				settings, err := loadSettings(cmd, c.v)
				if err != nil {
					return err
				}
				file = settings.Mapping.File
			}

			pairs, err := mapping.Pairs(file)
			if err != nil {
				return &configError{err: err}
			}

			result := services.NewMappingValidator().ValidateMapping(pairs)
			return reportValidation(cmd.OutOrStdout(), file, result)
		},
	}
	cmd.Flags().String("file", "", "Mapping file to validate (default: the configured mapping)")
	return cmd
}

func reportValidation(w io.Writer, file string, result *services.MappingValidationResult) error {
	if file == "" {
		file = "built-in mapping"
	}
	if result.Valid() {
		fmt.Fprintf(w, "✅ %s: %d pairs, one-to-one\n", file, result.Pairs)
		return nil
	}

	fmt.Fprintf(w, "❌ %s: %d problems in %d pairs\n", file, len(result.Errors), result.Pairs)
	for _, e := range result.Errors {
		fmt.Fprintf(w, "  - %s\n", e)
	}
	return &configError{err: fmt.Errorf("%w: %s", entities.ErrDuplicateMapping, strings.Join(result.Errors, "; "))}
}

func writeMappingTable(w io.Writer, pairs []entities.MappingPair) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)
	table.SetHeader([]string{"Cloud SKU", "Platform SKU"})
	for _, p := range pairs {
		table.Append([]string{string(p.Cloud), string(p.Platform)})
	}
	table.Render()
}
