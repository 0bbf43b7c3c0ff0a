// autoconfig provides a way to create various instances from the [config.Config]
// like [schema.Registry], [identity.Generator], [zap.Logger].
//
// For example, to open an editing session, you can write:
//
//	builder := autoconfig.NewBuilder()
//	builder.Invoke(func(registry *schema.Registry, opts editor.Options) error {
//	    ...
//	})
//
// Treat it as a dependency injection mechanism.
package autoconfig

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/dig"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/stateful/blockdoc/internal/config"
	"github.com/stateful/blockdoc/internal/log"
	"github.com/stateful/blockdoc/pkg/document/editor"
	"github.com/stateful/blockdoc/pkg/document/identity"
	"github.com/stateful/blockdoc/pkg/schema"
)

const (
	configName = "blockdoc"
	configType = "yaml"
)

// Target points at the document the configuration is resolved for.
// Configuration files are looked up in Root and in every directory on
// the way to Path, which is relative to Root.
type Target struct {
	Root string
	Path string
}

// Builder wires instances together. Any provided constructor can be
// replaced with [Builder.Decorate] before calling [Builder.Invoke].
type Builder struct {
	container *dig.Container
}

func NewBuilder() *Builder {
	b := &Builder{container: dig.New()}

	mustProvide(b.container.Provide(getTarget))
	mustProvide(b.container.Provide(getLoader))
	mustProvide(b.container.Provide(getConfig))
	mustProvide(b.container.Provide(getLogger))
	mustProvide(b.container.Provide(getGenerator))
	mustProvide(b.container.Provide(getRegistry))
	mustProvide(b.container.Provide(getEditorOptions))

	return b
}

func mustProvide(err error) {
	if err != nil {
		panic("failed to provide: " + err.Error())
	}
}

// Decorate replaces a provided type. The decorator must return the type
// it decorates.
func (b *Builder) Decorate(decorator interface{}, opts ...dig.DecorateOption) error {
	return errors.WithStack(b.container.Decorate(decorator, opts...))
}

// Invoke is used to invoke the function with the given dependencies.
// The package will automatically figure out how to instantiate them
// using the available configuration.
func (b *Builder) Invoke(function interface{}, opts ...dig.InvokeOption) error {
	err := b.container.Invoke(function, opts...)
	return dig.RootCause(err)
}

func getTarget() Target {
	return Target{Root: "."}
}

func getLoader(t Target) (*config.Loader, error) {
	root := t.Root
	if root == "" {
		root = "."
	}
	if _, err := os.Stat(root); err != nil {
		return nil, errors.Wrapf(err, "invalid config root %q", root)
	}
	return config.NewLoader(configName, configType, os.DirFS(root)), nil
}

func getConfig(loader *config.Loader, t Target) (*config.Config, error) {
	return loader.Load(t.Path)
}

func getLogger(c *config.Config) (*zap.Logger, error) {
	logger, err := log.New(log.Options{
		Enabled: c.Log.Enabled,
		Verbose: c.Log.Verbose,
		Path:    c.Log.Path,
	})
	if err != nil {
		return nil, err
	}
	log.Set(logger)
	return logger, nil
}

func getGenerator(c *config.Config) identity.Generator {
	if c.Identity.Mode == config.IdentityModeSeeded {
		return identity.NewSeededGenerator(c.Identity.Seed)
	}
	return identity.NewRandomGenerator()
}

// getRegistry loads every schema file listed in the configuration.
// All failing files are reported together.
func getRegistry(c *config.Config, loader *config.Loader, logger *zap.Logger) (*schema.Registry, error) {
	registry := schema.NewRegistry()

	var err error
	for _, name := range c.Schemas {
		data, readErr := loader.ReadFile(name)
		if readErr != nil {
			err = multierr.Append(err, readErr)
			continue
		}
		if loadErr := registry.LoadYAML(data); loadErr != nil {
			err = multierr.Append(err, errors.Wrapf(loadErr, "invalid schema file %q", name))
			continue
		}
		logger.Debug("loaded schema file", zap.String("path", name))
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("schema registry ready", zap.Strings("types", registry.Types()))
	return registry, nil
}

func getEditorOptions(c *config.Config, logger *zap.Logger, gen identity.Generator) editor.Options {
	return editor.Options{
		Logger:           logger,
		Generator:        gen,
		SnapshotInterval: c.History.SnapshotInterval,
	}
}
