package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	IdentityModeRandom = "random"
	IdentityModeSeeded = "seeded"
)

// Config is the configuration of a blockdoc editing session.
type Config struct {
	Version  string         `yaml:"version" validate:"required,eq=v1alpha1"`
	Log      ConfigLog      `yaml:"log"`
	History  ConfigHistory  `yaml:"history"`
	Identity ConfigIdentity `yaml:"identity"`
	// Schemas lists schema definition files, relative to the config file.
	Schemas []string `yaml:"schemas" validate:"dive,required"`
}

type ConfigLog struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Verbose bool   `yaml:"verbose"`
}

type ConfigHistory struct {
	// SnapshotInterval caches a document every n history entries.
	// Zero uses the editor default; -1 disables caching.
	SnapshotInterval int `yaml:"snapshot_interval" validate:"gte=-1"`
}

type ConfigIdentity struct {
	Mode string `yaml:"mode" validate:"oneof=random seeded"`
	Seed string `yaml:"seed" validate:"required_if=Mode seeded"`
}

// ParseYAML parses a configuration file. Fields missing from data keep
// their default values.
func ParseYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := mergeYAML(cfg, data); err != nil {
		return nil, err
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

type versionOnly struct {
	Version string `yaml:"version"`
}

func parseVersionFromYAML(data []byte) (string, error) {
	var result versionOnly

	if err := yaml.Unmarshal(data, &result); err != nil {
		return "", errors.Wrap(err, "failed to unmarshal version")
	}

	return result.Version, nil
}

// mergeYAML decodes data on top of cfg.
func mergeYAML(cfg *Config, data []byte) error {
	version, err := parseVersionFromYAML(data)
	if err != nil {
		return err
	}

	switch version {
	case "v1alpha1":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errors.Wrap(err, "failed to unmarshal v1alpha1 config")
		}
		return nil
	default:
		return errors.Errorf("unknown version: %q", version)
	}
}

func validateConfig(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		return errors.Wrap(err, "failed to validate config")
	}
	return nil
}
