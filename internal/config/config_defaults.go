package config

var defaults Config

// Default returns a copy of the default configuration.
func Default() *Config {
	cfg := defaults
	cfg.Schemas = append([]string(nil), defaults.Schemas...)
	return &cfg
}

func newDefault() (*Config, error) {
	yaml := []byte(`version: v1alpha1

log:
  enabled: false
  path: ""
  verbose: false

history:
  # Undo replays the history from the closest cached document.
  # A document is cached every "snapshot_interval" entries.
  snapshot_interval: 50

identity:
  # "random" generates ULID-based ids; "seeded" derives ids from "seed"
  # so that repeated runs produce identical documents.
  mode: random

# Schema definition files. Paths are relative to this file.
schemas: []
`)

	var cfg Config
	if err := mergeYAML(&cfg, yaml); err != nil {
		return nil, err
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func init() {
	cfg, err := newDefault()
	if err != nil {
		panic(err)
	}
	defaults = *cfg
}
