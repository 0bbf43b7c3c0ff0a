package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/blockdoc/pkg/document/identity"
)

func newIDCmd() *cobra.Command {
	var (
		count int
		seed  string
	)

	cmd := cobra.Command{
		Use:   "new-id",
		Short: "Generate block ids.",
		Long: `Generate block ids using the configured identity mode.

With --seed the ids are derived from the seed and are the same on every run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return errors.Errorf("invalid count: %d", count)
			}

			target, err := resolveTarget("")
			if err != nil {
				return err
			}
			builder, err := newBuilder(target)
			if err != nil {
				return err
			}
			if seed != "" {
				err := builder.Decorate(func(identity.Generator) identity.Generator {
					return identity.NewSeededGenerator(seed)
				})
				if err != nil {
					return err
				}
			}

			return builder.Invoke(func(gen identity.Generator) error {
				for i := 0; i < count; i++ {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), gen.NewID()); err != nil {
						return errors.WithStack(err)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of ids to generate.")
	cmd.Flags().StringVar(&seed, "seed", "", "Derive ids from the seed.")

	return &cmd
}
