package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stateful/blockdoc/internal/version"
)

var (
	fChdir   string
	fVerbose bool
)

func Root() *cobra.Command {
	cmd := cobra.Command{
		Use:   "blockdoc",
		Short: "Edit block documents from the command line",
		Long: `blockdoc validates and edits documents made of nested typed blocks.

Configuration is read from blockdoc.yaml files in the working directory
and in every directory on the way to the edited document.`,
		Version:       version.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pflags := cmd.PersistentFlags()

	pflags.StringVar(&fChdir, "chdir", ".", "Switch to a different working directory before executing the command.")
	pflags.BoolVarP(&fVerbose, "verbose", "v", false, "Write debug logs to stderr.")

	cmd.AddCommand(validateCmd())
	cmd.AddCommand(applyCmd())
	cmd.AddCommand(locateCmd())
	cmd.AddCommand(newIDCmd())
	cmd.AddCommand(schemasCmd())

	return &cmd
}
