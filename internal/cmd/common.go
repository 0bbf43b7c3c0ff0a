package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stateful/blockdoc/internal/config"
	"github.com/stateful/blockdoc/internal/config/autoconfig"
	"github.com/stateful/blockdoc/pkg/document"
	"github.com/stateful/blockdoc/pkg/document/editor"
	"github.com/stateful/blockdoc/pkg/schema"
)

// resolveTarget maps a document path given on the command line to a
// configuration target. Documents outside of the working directory use
// their own directory as the configuration root.
func resolveTarget(name string) (autoconfig.Target, error) {
	root, err := filepath.Abs(fChdir)
	if err != nil {
		return autoconfig.Target{}, errors.WithStack(err)
	}
	if name == "" {
		return autoconfig.Target{Root: root}, nil
	}

	full := name
	if !filepath.IsAbs(full) {
		full = filepath.Join(root, name)
	}

	rel, err := filepath.Rel(root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return autoconfig.Target{
			Root: filepath.Dir(full),
			Path: filepath.Base(full),
		}, nil
	}

	return autoconfig.Target{Root: root, Path: filepath.ToSlash(rel)}, nil
}

func targetFile(t autoconfig.Target) string {
	return filepath.Join(t.Root, filepath.FromSlash(t.Path))
}

func newBuilder(t autoconfig.Target) (*autoconfig.Builder, error) {
	builder := autoconfig.NewBuilder()

	if err := builder.Decorate(func(autoconfig.Target) autoconfig.Target { return t }); err != nil {
		return nil, err
	}

	if fVerbose {
		err := builder.Decorate(func(c *config.Config) *config.Config {
			c.Log.Enabled = true
			c.Log.Verbose = true
			c.Log.Path = ""
			return c
		})
		if err != nil {
			return nil, err
		}
	}

	return builder, nil
}

func readDocument(name string) (*document.Block, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	doc, err := document.Parse(data)
	return doc, errors.Wrapf(err, "invalid document %q", name)
}

// withStore opens an editing session for the document at name and
// passes it to fn.
func withStore(name string, fn func(*editor.Store, autoconfig.Target, *zap.Logger) error) error {
	target, err := resolveTarget(name)
	if err != nil {
		return err
	}

	builder, err := newBuilder(target)
	if err != nil {
		return err
	}

	return builder.Invoke(
		func(
			registry *schema.Registry,
			opts editor.Options,
			logger *zap.Logger,
		) error {
			defer func() { _ = logger.Sync() }()

			doc, err := readDocument(targetFile(target))
			if err != nil {
				return err
			}

			store, err := editor.New(registry, doc, opts)
			if err != nil {
				return err
			}

			logger.Debug("opened document", zap.String("path", target.Path), zap.String("root", target.Root))

			return fn(store, target, logger)
		},
	)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.WithStack(enc.Encode(v))
}

// writeErrors prints one line per invalid block, sorted by id.
func writeErrors(w io.Writer, store *editor.Store) error {
	errs := store.Errors()
	for _, id := range store.InvalidBlockIDs() {
		blockErr := errs[id]
		if _, err := fmt.Fprintf(w, "%s: %s\n", id, blockErr.Error()); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
