// Package schema maps block types to validators and presentation metadata.
//
// The document core consults a [Registry] to validate block data after every
// edit and to order slots. Metadata such as default data and allowed parents
// is consumed by collaborators, for example to gate drag-and-drop targets;
// it is never enforced by structural operations.
package schema

import (
	"sort"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"

	"github.com/stateful/blockdoc/pkg/document"
	"github.com/stateful/blockdoc/pkg/document/identity"
)

// Validator parses block data and reports whether it satisfies a schema.
// It receives a copy of the data; changes to it are discarded.
type Validator interface {
	Parse(data map[string]any) error
}

// ValidatorFunc adapts a function to [Validator].
type ValidatorFunc func(data map[string]any) error

func (f ValidatorFunc) Parse(data map[string]any) error { return f(data) }

// Metadata describes a block type for collaborators.
type Metadata struct {
	Title string
	// DefaultData is the data of newly created blocks.
	DefaultData map[string]any
	// AllowedParents is a list of glob patterns matching parent types.
	// Empty means any parent.
	AllowedParents []string
	// Slots declares slot paths in document order.
	Slots []string
}

// Schema binds a validator and metadata to a block type.
type Schema struct {
	Validator Validator
	Metadata  Metadata

	parents []glob.Glob
}

// Registry holds schemas by block type. The root type is registered by
// default and accepts any data.
type Registry struct {
	schemas map[string]*Schema
	scanner *document.Scanner
}

func NewRegistry() *Registry {
	r := &Registry{schemas: make(map[string]*Schema)}
	r.scanner = &document.Scanner{DeclaredSlots: r.DeclaredSlots}
	r.MustRegister(document.RootType, Schema{
		Metadata: Metadata{Title: "Document", Slots: []string{""}},
	})
	return r
}

// Register adds or replaces the schema of a block type.
func (r *Registry) Register(typ string, s Schema) error {
	if typ == "" {
		return errors.New("block type is empty")
	}

	parents := make([]glob.Glob, 0, len(s.Metadata.AllowedParents))
	for _, pattern := range s.Metadata.AllowedParents {
		g, err := glob.Compile(pattern)
		if err != nil {
			return errors.Wrapf(err, "invalid allowed parent pattern %q of type %q", pattern, typ)
		}
		parents = append(parents, g)
	}
	s.parents = parents

	r.schemas[typ] = &s
	return nil
}

func (r *Registry) MustRegister(typ string, s Schema) {
	if err := r.Register(typ, s); err != nil {
		panic(err)
	}
}

// Lookup returns the schema of a block type.
func (r *Registry) Lookup(typ string) (*Schema, error) {
	s, ok := r.schemas[typ]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownBlockType, "%q", typ)
	}
	return s, nil
}

// Types returns registered block types sorted by name.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.schemas))
	for typ := range r.schemas {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

// DeclaredSlots returns slot paths declared for a block type.
func (r *Registry) DeclaredSlots(typ string) []string {
	if s, ok := r.schemas[typ]; ok {
		return s.Metadata.Slots
	}
	return nil
}

// Scanner returns a tree scanner which honours declared slot order.
func (r *Registry) Scanner() *document.Scanner {
	return r.scanner
}

// CanNest reports whether a block of childType may be placed under
// a block of parentType. It is meant for UI gating only.
func (r *Registry) CanNest(parentType, childType string) bool {
	s, ok := r.schemas[childType]
	if !ok {
		return false
	}
	if len(s.parents) == 0 {
		return true
	}
	for _, g := range s.parents {
		if g.Match(parentType) {
			return true
		}
	}
	return false
}

// NewBlock creates a block of the given type from its default data.
// Declared slots are created empty.
func (r *Registry) NewBlock(typ string, gen identity.Generator) (*document.Block, error) {
	s, err := r.Lookup(typ)
	if err != nil {
		return nil, err
	}

	b := document.New(gen.NewID(), typ, document.CopyData(s.Metadata.DefaultData))
	for _, path := range s.Metadata.Slots {
		if _, ok := r.scanner.EnsureSlot(b, path); !ok {
			return nil, errors.Errorf("cannot create slot %q of type %q", path, typ)
		}
	}
	return b, nil
}

// Validate parses the data of a single block. invalid is the validation
// failure; err is a configuration error.
func (r *Registry) Validate(b *document.Block) (invalid error, err error) {
	s, lookupErr := r.Lookup(b.Type)
	if lookupErr != nil {
		return nil, errors.Wrapf(lookupErr, "block %q", b.ID)
	}
	if s.Validator == nil {
		return nil, nil
	}
	data := document.CopyData(b.Data)
	if data == nil {
		data = map[string]any{}
	}
	return s.Validator.Parse(data), nil
}

// ValidateTree validates every block of the document. Validation failures
// are collected by block id. An unregistered type aborts the pass.
func (r *Registry) ValidateTree(doc *document.Block) (Errors, error) {
	result := make(Errors)
	var configErr error

	r.scanner.Walk(doc, func(b *document.Block, _ *document.Block) bool {
		verr, err := r.Validate(b)
		if err != nil {
			configErr = err
			return false
		}
		if verr != nil {
			result[b.ID] = BlockError{Type: b.Type, Err: verr}
		}
		return true
	})

	if configErr != nil {
		return nil, configErr
	}
	return result, nil
}
