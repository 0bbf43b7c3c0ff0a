package editor

import (
	"sort"

	"github.com/stateful/blockdoc/pkg/document"
	"github.com/stateful/blockdoc/pkg/history"
	"github.com/stateful/blockdoc/pkg/schema"
)

// Document returns a copy of the current document.
func (s *Store) Document() *document.Block {
	return s.doc.Clone()
}

// Block returns a copy of the block with id, or nil.
func (s *Store) Block(id string) *document.Block {
	return s.scanner.FindBlock(s.doc, id).Clone()
}

// ParentOf returns a copy of the parent of the block with id, or nil.
func (s *Store) ParentOf(id string) *document.Block {
	return s.scanner.FindParentBlock(s.doc, id).Clone()
}

// HierarchyOf returns the ids of blocks from the root to the block with
// id inclusive, or nil.
func (s *Store) HierarchyOf(id string) []string {
	path := s.scanner.FindBlockHierarchy(s.doc, id)
	if path == nil {
		return nil
	}
	ids := make([]string, 0, len(path))
	for _, b := range path {
		ids = append(ids, b.ID)
	}
	return ids
}

// Errors returns validation failures by block id.
func (s *Store) Errors() schema.Errors {
	return s.errors.Clone()
}

// InvalidBlockIDs returns ids of blocks which fail validation, sorted.
func (s *Store) InvalidBlockIDs() []string {
	ids := make([]string, 0, len(s.errors))
	for id := range s.errors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SelectedBlockID returns the selected block id or an empty string.
func (s *Store) SelectedBlockID() string {
	return s.selected
}

func (s *Store) History() history.State {
	return s.log.State()
}

// CanNest reports whether a block of childType may be placed under the
// block with parentID according to the schema metadata.
func (s *Store) CanNest(parentID, childType string) bool {
	parent := s.scanner.FindBlock(s.doc, parentID)
	if parent == nil {
		return false
	}
	return s.registry.CanNest(parent.Type, childType)
}

// NewBlock creates a detached block of the given type from its defaults.
// Insert it with an insert-block action.
func (s *Store) NewBlock(typ string) (*document.Block, error) {
	return s.registry.NewBlock(typ, s.gen)
}

func (s *Store) State() State {
	return State{
		Document:        s.Document(),
		History:         s.History(),
		SelectedBlockID: s.selected,
		Errors:          s.Errors(),
	}
}

// Subscribe registers fn to be called with the new state after every
// change. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subscriberID++
	id := s.subscriberID
	s.subscribers[id] = fn
	return func() {
		delete(s.subscribers, id)
	}
}

func (s *Store) publish() {
	if len(s.subscribers) == 0 {
		return
	}

	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		if fn, ok := s.subscribers[id]; ok {
			fn(s.State())
		}
	}
}
