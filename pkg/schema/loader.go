package schema

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Definition is a block type described in a YAML schema file.
//
//	version: v1alpha1
//	types:
//	  - name: text
//	    title: Text
//	    default_data:
//	      value: ""
//	    allowed_parents: ["root", "layout.*"]
//	    rules:
//	      - condition: "value != nil && value != ''"
//	        message: "value must not be empty"
//	        path: value
type Definition struct {
	Name           string         `yaml:"name"`
	Title          string         `yaml:"title"`
	DefaultData    map[string]any `yaml:"default_data"`
	AllowedParents []string       `yaml:"allowed_parents"`
	Slots          []string       `yaml:"slots"`
	Rules          []Rule         `yaml:"rules"`
}

type definitionFile struct {
	Version string       `yaml:"version"`
	Types   []Definition `yaml:"types"`
}

// LoadYAML registers all block types defined in a schema file.
// All invalid definitions are reported; valid ones are registered.
func (r *Registry) LoadYAML(data []byte) error {
	var file definitionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return errors.Wrap(err, "failed to unmarshal schema file")
	}

	switch file.Version {
	case "v1alpha1":
	default:
		return errors.Errorf("unknown schema version: %q", file.Version)
	}

	var (
		result error
		seen   = make(map[string]struct{}, len(file.Types))
	)

	for _, def := range file.Types {
		if _, ok := seen[def.Name]; ok {
			result = multierr.Append(result, errors.Errorf("type %q is defined more than once", def.Name))
			continue
		}
		seen[def.Name] = struct{}{}

		result = multierr.Append(result, r.registerDefinition(def))
	}

	return result
}

func (r *Registry) registerDefinition(def Definition) error {
	s := Schema{
		Metadata: Metadata{
			Title:          def.Title,
			DefaultData:    def.DefaultData,
			AllowedParents: def.AllowedParents,
			Slots:          def.Slots,
		},
	}

	if len(def.Rules) > 0 {
		v, err := NewRuleValidator(def.Rules...)
		if err != nil {
			return errors.Wrapf(err, "type %q", def.Name)
		}
		s.Validator = v
	}

	return errors.Wrapf(r.Register(def.Name, s), "type %q", def.Name)
}
