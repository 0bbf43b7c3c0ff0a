package history

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/stateful/blockdoc/pkg/document"
)

// Kind tags an [Action].
type Kind string

const (
	KindDocumentReset  Kind = "document-reset"
	KindDeleteBlock    Kind = "delete-block"
	KindCloneBlock     Kind = "clone-block"
	KindMoveBlockUp    Kind = "move-block-up"
	KindMoveBlockDown  Kind = "move-block-down"
	KindSwapBlock      Kind = "swap-block"
	KindMoveBlock      Kind = "move-block"
	KindSetBlockData   Kind = "set-block-data"
	KindSetBlockBase   Kind = "set-block-base"
	KindInsertBlock    Kind = "insert-block"
	KindPatchBlockData Kind = "patch-block-data"
)

var kinds = map[Kind]struct{}{
	KindDocumentReset:  {},
	KindDeleteBlock:    {},
	KindCloneBlock:     {},
	KindMoveBlockUp:    {},
	KindMoveBlockDown:  {},
	KindSwapBlock:      {},
	KindMoveBlock:      {},
	KindSetBlockData:   {},
	KindSetBlockBase:   {},
	KindInsertBlock:    {},
	KindPatchBlockData: {},
}

// Valid reports whether k is a known action kind.
func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Action is a recorded mutation intent. It carries only what is needed
// to recompute the effect; the only exception is document-reset which
// carries a full document snapshot.
//
// Which fields are used depends on Kind:
//
//	document-reset    Document
//	delete-block      BlockID
//	clone-block       BlockID, Seed
//	move-block-up     BlockID
//	move-block-down   BlockID
//	swap-block        BlockID1, BlockID2
//	move-block        BlockID, ParentBlockID, ParentSlot, Index
//	set-block-data    BlockID, Data
//	set-block-base    BlockID, Base
//	insert-block      Block, ParentBlockID, ParentSlot, Index
//	patch-block-data  BlockID, Patch
type Action struct {
	Kind Kind `json:"kind"`

	Document *document.Block `json:"document,omitempty"`
	Block    *document.Block `json:"block,omitempty"`

	BlockID  string `json:"blockId,omitempty"`
	BlockID1 string `json:"blockId1,omitempty"`
	BlockID2 string `json:"blockId2,omitempty"`

	ParentBlockID string  `json:"parentBlockId,omitempty"`
	ParentSlot    *string `json:"parentSlot,omitempty"`
	Index         int     `json:"index"`

	Data  map[string]any  `json:"data,omitempty"`
	Base  map[string]any  `json:"base,omitempty"`
	Patch json.RawMessage `json:"patch,omitempty"`

	// Seed makes ids generated by clone-block reproducible on replay.
	// When empty, ids are derived from the document and block ids.
	Seed string `json:"seed,omitempty"`
}

func DocumentReset(doc *document.Block) Action {
	return Action{Kind: KindDocumentReset, Document: doc}
}

func DeleteBlock(id string) Action {
	return Action{Kind: KindDeleteBlock, BlockID: id}
}

func CloneBlock(id string) Action {
	return Action{Kind: KindCloneBlock, BlockID: id}
}

func MoveBlockUp(id string) Action {
	return Action{Kind: KindMoveBlockUp, BlockID: id}
}

func MoveBlockDown(id string) Action {
	return Action{Kind: KindMoveBlockDown, BlockID: id}
}

func SwapBlock(id1, id2 string) Action {
	return Action{Kind: KindSwapBlock, BlockID1: id1, BlockID2: id2}
}

// MoveBlock moves a block to a slot of a new parent. A nil slot selects
// the first slot of the parent.
func MoveBlock(id, parentID string, slot *string, index int) Action {
	return Action{Kind: KindMoveBlock, BlockID: id, ParentBlockID: parentID, ParentSlot: slot, Index: index}
}

func SetBlockData(id string, data map[string]any) Action {
	return Action{Kind: KindSetBlockData, BlockID: id, Data: data}
}

func SetBlockBase(id string, base map[string]any) Action {
	return Action{Kind: KindSetBlockBase, BlockID: id, Base: base}
}

func InsertBlock(b *document.Block, parentID string, slot *string, index int) Action {
	return Action{Kind: KindInsertBlock, Block: b, ParentBlockID: parentID, ParentSlot: slot, Index: index}
}

// PatchBlockData applies an RFC 7386 JSON merge patch to block data.
func PatchBlockData(id string, patch []byte) Action {
	return Action{Kind: KindPatchBlockData, BlockID: id, Patch: patch}
}

// Validate checks that the action carries the fields its kind requires.
func (a Action) Validate() error {
	if !a.Kind.Valid() {
		return errors.Errorf("unknown action kind %q", a.Kind)
	}

	switch a.Kind {
	case KindDocumentReset:
		if a.Document == nil {
			return errors.New("document-reset requires a document")
		}
	case KindSwapBlock:
		if a.BlockID1 == "" || a.BlockID2 == "" {
			return errors.New("swap-block requires two block ids")
		}
	case KindInsertBlock:
		if a.Block == nil || a.ParentBlockID == "" {
			return errors.New("insert-block requires a block and a parent")
		}
	case KindMoveBlock:
		if a.BlockID == "" || a.ParentBlockID == "" {
			return errors.New("move-block requires a block and a parent")
		}
	default:
		if a.BlockID == "" {
			return errors.Errorf("%s requires a block id", a.Kind)
		}
	}
	return nil
}

// Clone returns a deep copy of the action so that later changes made by
// the caller can not leak into a recorded log.
func (a Action) Clone() Action {
	result := a
	result.Document = a.Document.Clone()
	result.Block = a.Block.Clone()
	result.Data = document.CopyData(a.Data)
	result.Base = document.CopyData(a.Base)
	if a.ParentSlot != nil {
		slot := *a.ParentSlot
		result.ParentSlot = &slot
	}
	if a.Patch != nil {
		result.Patch = append(json.RawMessage(nil), a.Patch...)
	}
	return result
}
