// Package document implements a schema-agnostic tree of typed blocks.
//
// A document is a root [Block]. Children live in slots, which are
// "children" lists discovered anywhere inside a block's data. The package
// provides read-only lookups (FindBlock, FindParentBlock,
// FindBlockHierarchy) and single-level structural edits (Insert, Delete,
// MoveUp, MoveDown, Swap, Clone). All operations are synchronous and
// do not copy; callers which share trees clone before editing.
package document

import (
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
)

// ErrDuplicateID is returned when a tree contains the same id twice.
var ErrDuplicateID = errors.New("duplicate block id")

// CheckUniqueIDs verifies that every block id in the tree is unique.
func (s *Scanner) CheckUniqueIDs(doc *Block) error {
	seen := make(map[string]int)
	for _, id := range s.CollectIDs(doc) {
		seen[id]++
	}

	var duplicated []string
	for id, n := range seen {
		if n > 1 {
			duplicated = append(duplicated, id)
		}
	}
	if len(duplicated) == 0 {
		return nil
	}
	sort.Strings(duplicated)
	return errors.Wrapf(ErrDuplicateID, "%q", duplicated)
}

// Marshal encodes the document into its persisted JSON shape.
func Marshal(doc *Block) ([]byte, error) {
	data, err := json.Marshal(doc)
	return data, errors.WithStack(err)
}

// MarshalIndent is like [Marshal] but indents the output.
func MarshalIndent(doc *Block) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	return data, errors.WithStack(err)
}
