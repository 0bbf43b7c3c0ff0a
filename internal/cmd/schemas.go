package cmd

import (
	"strings"

	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/blockdoc/internal/term"
	"github.com/stateful/blockdoc/pkg/schema"
)

func schemasCmd() *cobra.Command {
	var format string

	cmd := cobra.Command{
		Use:   "schemas",
		Short: "List configured block types.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := resolveTarget("")
			if err != nil {
				return err
			}
			builder, err := newBuilder(target)
			if err != nil {
				return err
			}

			return builder.Invoke(func(registry *schema.Registry) error {
				switch format {
				case "table":
					return renderSchemasAsTable(term.Detect(cmd.OutOrStdout()), registry)
				case "json":
					return renderSchemasAsJSON(cmd, registry)
				default:
					return errors.Errorf("invalid format: %s", format)
				}
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format (table, json)")

	return &cmd
}

func renderSchemasAsTable(out term.Output, registry *schema.Registry) error {
	table := tableprinter.New(out, out.TTY, out.Width)

	// table header
	table.AddField(strings.ToUpper("Type"))
	table.AddField(strings.ToUpper("Title"))
	table.AddField(strings.ToUpper("Slots"))
	table.AddField(strings.ToUpper("Allowed Parents"))
	table.EndRow()

	for _, typ := range registry.Types() {
		s, err := registry.Lookup(typ)
		if err != nil {
			return err
		}

		slots := make([]string, 0, len(s.Metadata.Slots))
		for _, slot := range s.Metadata.Slots {
			if slot == "" {
				slot = "(top)"
			}
			slots = append(slots, slot)
		}

		parents := "*"
		if len(s.Metadata.AllowedParents) > 0 {
			parents = strings.Join(s.Metadata.AllowedParents, ",")
		}

		table.AddField(typ)
		table.AddField(s.Metadata.Title)
		table.AddField(strings.Join(slots, ","))
		table.AddField(parents)
		table.EndRow()
	}

	return errors.WithStack(table.Render())
}

type schemaInfo struct {
	Type           string         `json:"type"`
	Title          string         `json:"title,omitempty"`
	DefaultData    map[string]any `json:"defaultData,omitempty"`
	AllowedParents []string       `json:"allowedParents,omitempty"`
	Slots          []string       `json:"slots,omitempty"`
}

func renderSchemasAsJSON(cmd *cobra.Command, registry *schema.Registry) error {
	result := make([]schemaInfo, 0, len(registry.Types()))
	for _, typ := range registry.Types() {
		s, err := registry.Lookup(typ)
		if err != nil {
			return err
		}
		result = append(result, schemaInfo{
			Type:           typ,
			Title:          s.Metadata.Title,
			DefaultData:    s.Metadata.DefaultData,
			AllowedParents: s.Metadata.AllowedParents,
			Slots:          s.Metadata.Slots,
		})
	}
	return writeJSON(cmd.OutOrStdout(), result)
}
