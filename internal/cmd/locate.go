package cmd

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/blockdoc/internal/config/autoconfig"
	"github.com/stateful/blockdoc/pkg/document/editor"
)

func locateCmd() *cobra.Command {
	var format string

	cmd := cobra.Command{
		Use:   "locate FILE ID",
		Short: "Print the position of a block in a document.",
		Long: `Print the chain of block ids from the root of the document to the
block with ID.`,
		Example: `Print the hierarchy of a block:
  blockdoc locate doc.json block-01hzx
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[1]

			return withStore(args[0], func(store *editor.Store, _ autoconfig.Target, logger *zap.Logger) error {
				hierarchy := store.HierarchyOf(id)
				if hierarchy == nil {
					return errors.Errorf("block %q not found", id)
				}
				logger.Debug("located block", zap.String("id", id), zap.Int("depth", len(hierarchy)-1))

				switch format {
				case "text":
					_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(hierarchy, " > "))
					return errors.WithStack(err)
				case "json":
					block := store.Block(id)
					result := struct {
						Hierarchy []string `json:"hierarchy"`
						Type      string   `json:"type"`
						Parent    string   `json:"parent,omitempty"`
					}{
						Hierarchy: hierarchy,
						Type:      block.Type,
					}
					if parent := store.ParentOf(id); parent != nil {
						result.Parent = parent.ID
					}
					return writeJSON(cmd.OutOrStdout(), result)
				default:
					return errors.Errorf("invalid format: %s", format)
				}
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format. One of: text, json.")

	return &cmd
}
