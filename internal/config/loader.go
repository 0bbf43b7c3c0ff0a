package config

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrRootConfigNotFound = errors.New("root configuration file not found")

// Loader reads configuration files from a file system.
//
// The root configuration file lives in the root of the file system.
// Directories on the way to a document may contain nested configuration
// files which override the root one.
type Loader struct {
	fsys fs.FS

	// configName is a name of the configuration file.
	configName string

	// configType is a type of the configuration file.
	// Together with configName it forms a configFile.
	configType string

	logger *zap.Logger
}

type LoaderOption func(*Loader)

func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

func NewLoader(configName, configType string, fsys fs.FS, opts ...LoaderOption) *Loader {
	if configName == "" {
		panic("config name is not set")
	}

	l := &Loader{
		fsys:       fsys,
		configName: configName,
		configType: configType,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.logger == nil {
		l.logger = zap.NewNop()
	}

	return l
}

func (l *Loader) configFullName() string {
	if l.configType == "" {
		return l.configName
	}
	return l.configName + "." + l.configType
}

func (l *Loader) RootConfig() ([]byte, error) {
	data, err := fs.ReadFile(l.fsys, l.configFullName())
	if err != nil {
		return nil, ErrRootConfigNotFound
	}
	return data, nil
}

// Load returns the configuration which applies to the file or directory
// at name. Configuration files found from the root down to name are
// merged in order. Without any configuration file the defaults are
// returned. Schema paths are resolved relative to the file declaring them.
func (l *Loader) Load(name string) (*Config, error) {
	paths, err := l.findConfigFilesOnPath(name)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	var schemas []string
	for _, p := range paths {
		data, err := fs.ReadFile(l.fsys, p)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %q", p)
		}

		var layer Config
		if err := mergeYAML(&layer, data); err != nil {
			return nil, errors.Wrapf(err, "failed to parse %q", p)
		}
		if err := mergeYAML(cfg, data); err != nil {
			return nil, errors.Wrapf(err, "failed to parse %q", p)
		}

		// Schemas of all layers are kept, each relative to its own file.
		for _, s := range layer.Schemas {
			schemas = append(schemas, path.Join(path.Dir(p), s))
		}
	}
	if len(paths) > 0 {
		cfg.Schemas = schemas
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	l.logger.Debug("loaded config", zap.Strings("files", paths), zap.Strings("schemas", cfg.Schemas))

	return cfg, nil
}

// ReadFile reads a file, for example a schema, from the loader's file system.
func (l *Loader) ReadFile(name string) ([]byte, error) {
	data, err := fs.ReadFile(l.fsys, name)
	return data, errors.Wrapf(err, "failed to read %q", name)
}

func (l *Loader) FindConfigChain(path string) ([][]byte, error) {
	paths, err := l.findConfigFilesOnPath(path)
	if err != nil {
		return nil, err
	}
	return l.readFiles(paths...)
}

func (l *Loader) readFiles(paths ...string) (result [][]byte, _ error) {
	for _, p := range paths {
		data, err := fs.ReadFile(l.fsys, p)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %q", p)
		}
		result = append(result, data)
	}
	return result, nil
}

func (l *Loader) findConfigFilesOnPath(name string) (result []string, _ error) {
	name, err := l.parsePath(name)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("finding config files on path", zap.String("name", name))

	configFullName := l.configFullName()

	// The root configuration file is always searched in the root directory.
	_, err = fs.Stat(l.fsys, configFullName)
	if err == nil {
		result = append(result, configFullName)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.WithStack(err)
	}

	fragments := strings.Split(name, string(filepath.Separator))
	if len(fragments) > 0 && fragments[0] == "." {
		fragments = fragments[1:]
	}

	curDir := ""
	for _, fragment := range fragments {
		// Use [path.Join] instead of [filepath.Join] to support Windows paths.
		// It works well with [fs.FS].
		curDir = path.Join(curDir, fragment)

		configPath := path.Join(curDir, configFullName)
		_, err := fs.Stat(l.fsys, configPath)
		if err == nil {
			result = append(result, configPath)
		} else if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("nested configuration file not found", zap.String("path", configPath), zap.Error(err))
			return nil, errors.WithStack(err)
		}
	}

	l.logger.Debug("found config files on path", zap.String("name", name), zap.Strings("files", result))

	return result, nil
}

func (l *Loader) parsePath(name string) (string, error) {
	if name == "" {
		name = "."
	}

	info, err := fs.Stat(l.fsys, name)
	if err != nil {
		return "", errors.Wrapf(err, "failed to get the path info for %q", name)
	}

	if info.IsDir() {
		return filepath.Clean(name), nil
	}
	return filepath.Dir(name), nil
}
