package history

import (
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/pkg/errors"

	"github.com/stateful/blockdoc/pkg/document"
	"github.com/stateful/blockdoc/pkg/document/identity"
)

// Reducer applies actions to documents.
//
// Reduce never modifies its input document. It works on a deep copy, so
// a reader holding the previous document is never exposed to a partially
// edited tree. Given the same inputs it always produces the same output,
// which is what makes replay-based undo correct. Ids of cloned blocks are
// derived from the action's seed, or from the document and block ids when
// the seed is empty, skipping ids already present in the document.
type Reducer struct {
	scanner *document.Scanner
}

// NewReducer creates a reducer which locates slots with scanner.
// A nil scanner uses [document.DefaultScanner].
func NewReducer(scanner *document.Scanner) *Reducer {
	if scanner == nil {
		scanner = document.DefaultScanner
	}
	return &Reducer{scanner: scanner}
}

// Reduce returns the document and selection which result from applying
// action a. An empty selection means no block is selected. Edits which
// find nothing to do return the input unchanged and no error; an error
// is returned only for malformed actions.
func (r *Reducer) Reduce(doc *document.Block, selected string, a Action) (*document.Block, string, error) {
	if err := a.Validate(); err != nil {
		return doc, selected, err
	}

	if a.Kind == KindDocumentReset {
		return a.Document.Clone(), "", nil
	}
	if doc == nil {
		return nil, "", errors.Errorf("%s: no document", a.Kind)
	}

	s := r.scanner
	next := doc.Clone()

	switch a.Kind {
	case KindDeleteBlock:
		if parent := s.FindParentBlock(next, a.BlockID); parent != nil {
			s.Delete(parent, a.BlockID)
		}
		if selected == a.BlockID {
			selected = ""
		}

	case KindCloneBlock:
		parent := s.FindParentBlock(next, a.BlockID)
		if parent == nil {
			return doc, selected, nil
		}
		seed := a.Seed
		if seed == "" {
			seed = next.ID + "/" + a.BlockID
		}
		gen := identity.NewExclusiveGenerator(identity.NewSeededGenerator(seed), s.CollectIDs(next))
		if clone := s.Clone(parent, a.BlockID, gen); clone != nil {
			selected = clone.ID
		}

	case KindMoveBlockUp:
		if parent := s.FindParentBlock(next, a.BlockID); parent != nil {
			s.MoveUp(parent, a.BlockID)
		}

	case KindMoveBlockDown:
		if parent := s.FindParentBlock(next, a.BlockID); parent != nil {
			s.MoveDown(parent, a.BlockID)
		}

	case KindSwapBlock:
		if parent := s.FindParentBlock(next, a.BlockID1); parent != nil {
			s.Swap(parent, a.BlockID1, a.BlockID2)
		}

	case KindMoveBlock:
		if !r.moveBlock(next, a) {
			return doc, selected, nil
		}

	case KindSetBlockData:
		b := s.FindBlock(next, a.BlockID)
		if b == nil {
			return doc, selected, nil
		}
		b.Data = document.NormalizeData(document.CopyData(a.Data))
		if s.CheckUniqueIDs(next) != nil {
			return doc, selected, nil
		}

	case KindSetBlockBase:
		b := s.FindBlock(next, a.BlockID)
		if b == nil {
			return doc, selected, nil
		}
		b.Base = document.CopyData(a.Base)

	case KindInsertBlock:
		parent := s.FindBlock(next, a.ParentBlockID)
		if parent == nil {
			return doc, selected, nil
		}
		if !s.Insert(parent, a.Block.Clone(), a.ParentSlot, a.Index) {
			return doc, selected, nil
		}
		if s.CheckUniqueIDs(next) != nil {
			return doc, selected, nil
		}

	case KindPatchBlockData:
		b := s.FindBlock(next, a.BlockID)
		if b == nil {
			return doc, selected, nil
		}
		data, err := mergePatch(b.Data, a.Patch)
		if err != nil {
			return doc, selected, err
		}
		b.Data = data
		if s.CheckUniqueIDs(next) != nil {
			return doc, selected, nil
		}
	}

	if selected != "" && s.FindBlock(next, selected) == nil {
		selected = ""
	}
	return next, selected, nil
}

// moveBlock removes the block from its current slot and inserts it into
// the target slot. Index refers to the target slot after the removal.
func (r *Reducer) moveBlock(doc *document.Block, a Action) bool {
	s := r.scanner

	b := s.FindBlock(doc, a.BlockID)
	target := s.FindBlock(doc, a.ParentBlockID)
	if b == nil || target == nil {
		return false
	}
	// A block can not become its own descendant.
	if s.FindBlock(b, a.ParentBlockID) != nil {
		return false
	}

	parent := s.FindParentBlock(doc, a.BlockID)
	if parent == nil {
		return false
	}
	removed := s.Delete(parent, a.BlockID)
	if removed == nil {
		return false
	}
	return s.Insert(target, removed, a.ParentSlot, a.Index)
}

func mergePatch(data map[string]any, patch []byte) (map[string]any, error) {
	original, err := json.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode block data")
	}

	patched, err := jsonpatch.MergePatch(original, patch)
	if err != nil {
		return nil, errors.Wrap(err, "failed to apply merge patch")
	}

	var result map[string]any
	if err := json.Unmarshal(patched, &result); err != nil {
		return nil, errors.Wrap(err, "patched block data is not an object")
	}
	return document.NormalizeData(result), nil
}
