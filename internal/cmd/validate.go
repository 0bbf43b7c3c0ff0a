package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/blockdoc/internal/config/autoconfig"
	"github.com/stateful/blockdoc/pkg/document/editor"
)

func validateCmd() *cobra.Command {
	var format string

	cmd := cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a document against the configured schemas.",
		Long: `Validate every block of a document against the schemas listed in
blockdoc.yaml. Invalid blocks are printed and the command fails.

A block of a type without a schema is a configuration error.`,
		Example: `Validate a document:
  blockdoc validate pages/home.json

Print validation errors as JSON:
  blockdoc validate --format=json pages/home.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(args[0], func(store *editor.Store, _ autoconfig.Target, logger *zap.Logger) error {
				invalid := store.InvalidBlockIDs()
				logger.Info("validated document", zap.Int("invalid", len(invalid)))

				switch format {
				case "text":
					if err := writeErrors(cmd.OutOrStdout(), store); err != nil {
						return err
					}
				case "json":
					if err := writeJSON(cmd.OutOrStdout(), store.Errors()); err != nil {
						return err
					}
				default:
					return errors.Errorf("invalid format: %s", format)
				}

				if len(invalid) > 0 {
					return errors.Errorf("%d invalid blocks", len(invalid))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format. One of: text, json.")

	return &cmd
}
