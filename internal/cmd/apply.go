package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/blockdoc/internal/config/autoconfig"
	"github.com/stateful/blockdoc/pkg/document"
	"github.com/stateful/blockdoc/pkg/document/editor"
	"github.com/stateful/blockdoc/pkg/history"
)

// Steps which are not history actions but drive the session.
const (
	stepUndo   history.Kind = "undo"
	stepRedo   history.Kind = "redo"
	stepSelect history.Kind = "select"
)

func applyCmd() *cobra.Command {
	var (
		write       bool
		printState  bool
		failInvalid bool
	)

	cmd := cobra.Command{
		Use:   "apply FILE [ACTIONS]",
		Short: "Apply a sequence of actions to a document.",
		Long: `Apply actions read from ACTIONS, or from stdin, to a document.

ACTIONS is a stream of JSON objects, each one an action such as
{"kind":"delete-block","blockId":"block-1"}. Besides the document actions
the stream may contain {"kind":"undo"}, {"kind":"redo"} and
{"kind":"select","blockId":"..."} steps.

The resulting document is printed unless --write is set.`,
		Example: `Delete a block and print the result:
  echo '{"kind":"delete-block","blockId":"block-1"}' | blockdoc apply doc.json

Apply actions from a file in place:
  blockdoc apply --write doc.json actions.jsonl
`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 2 && args[1] != "-" {
				f, err := os.Open(args[1])
				if err != nil {
					return errors.WithStack(err)
				}
				defer f.Close()
				r = f
			}

			return withStore(args[0], func(store *editor.Store, target autoconfig.Target, logger *zap.Logger) error {
				n, err := applySteps(store, r)
				if err != nil {
					return err
				}
				logger.Info("applied actions", zap.Int("count", n), zap.Int("history", store.History().Index))

				if failInvalid && len(store.InvalidBlockIDs()) > 0 {
					_ = writeErrors(cmd.ErrOrStderr(), store)
					return errors.Errorf("%d invalid blocks", len(store.InvalidBlockIDs()))
				}

				if printState {
					return writeJSON(cmd.OutOrStdout(), store.State())
				}

				data, err := document.MarshalIndent(store.Document())
				if err != nil {
					return err
				}
				data = append(data, '\n')

				if write {
					return errors.WithStack(os.WriteFile(targetFile(target), data, 0o644))
				}
				_, err = cmd.OutOrStdout().Write(data)
				return errors.WithStack(err)
			})
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result to FILE instead of stdout.")
	cmd.Flags().BoolVar(&printState, "state", false, "Print the whole session state including history and errors.")
	cmd.Flags().BoolVar(&failInvalid, "fail-invalid", false, "Fail if the resulting document has invalid blocks.")

	return &cmd
}

// applySteps decodes steps from r and applies them in order. It returns
// the number of applied steps.
func applySteps(store *editor.Store, r io.Reader) (int, error) {
	dec := json.NewDecoder(r)

	n := 0
	for {
		var a history.Action
		err := dec.Decode(&a)
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, errors.Wrapf(err, "failed to decode step %d", n+1)
		}

		if err := applyStep(store, a); err != nil {
			return n, errors.Wrapf(err, "step %d", n+1)
		}
		n++
	}
}

func applyStep(store *editor.Store, a history.Action) error {
	switch a.Kind {
	case stepUndo:
		return store.Undo()
	case stepRedo:
		return store.Redo()
	case stepSelect:
		if a.BlockID == "" {
			store.ClearSelection()
			return nil
		}
		if !store.Select(a.BlockID) {
			return errors.Errorf("block %q not found", a.BlockID)
		}
		return nil
	default:
		return store.Dispatch(a)
	}
}
