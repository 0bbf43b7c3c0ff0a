package document

import "github.com/stateful/blockdoc/pkg/document/identity"

// The operations below edit exactly one level of the tree: a block and
// its direct slots. Callers locate the level first, typically with
// [Scanner.FindParentBlock]. An id missing from the level makes every
// operation a no-op.

// Insert splices block into a slot of level at index. A nil slotPath
// selects the first slot in scan order, or the top-level slot if level
// has none. A named slot is created when missing. The index is clamped
// to the slot bounds and [Last] appends.
func (s *Scanner) Insert(level, block *Block, slotPath *string, index int) bool {
	if level == nil || block == nil {
		return false
	}

	var (
		slot Slot
		ok   bool
	)
	if slotPath != nil {
		slot, ok = resolveSlot(level, *slotPath, true)
	} else if slots := s.scanner().Slots(level); len(slots) > 0 {
		slot, ok = slots[0], true
	} else {
		slot, ok = resolveSlot(level, "", true)
	}
	if !ok {
		return false
	}

	blocks := slot.Blocks()
	if index == Last || index > len(blocks) {
		index = len(blocks)
	}
	if index < 0 {
		index = 0
	}

	result := make([]*Block, 0, len(blocks)+1)
	result = append(result, blocks[:index]...)
	result = append(result, block)
	result = append(result, blocks[index:]...)
	slot.set(result)
	return true
}

// Delete removes the block with id from the first slot of level
// containing it and returns it.
func (s *Scanner) Delete(level *Block, id string) *Block {
	slot, idx, ok := s.scanner().locate(level, id)
	if !ok {
		return nil
	}
	blocks := slot.Blocks()
	removed := blocks[idx]

	result := make([]*Block, 0, len(blocks)-1)
	result = append(result, blocks[:idx]...)
	result = append(result, blocks[idx+1:]...)
	slot.set(result)
	return removed
}

// MoveUp swaps the block with its previous sibling.
func (s *Scanner) MoveUp(level *Block, id string) bool {
	return s.move(level, id, -1)
}

// MoveDown swaps the block with its next sibling.
func (s *Scanner) MoveDown(level *Block, id string) bool {
	return s.move(level, id, 1)
}

func (s *Scanner) move(level *Block, id string, delta int) bool {
	slot, idx, ok := s.scanner().locate(level, id)
	if !ok {
		return false
	}
	blocks := slot.Blocks()
	target := idx + delta
	if target < 0 || target >= len(blocks) {
		return false
	}
	blocks[idx], blocks[target] = blocks[target], blocks[idx]
	return true
}

// Swap exchanges two siblings. Both blocks must live in the same slot
// of level; otherwise nothing happens.
func (s *Scanner) Swap(level *Block, id1, id2 string) bool {
	s = s.scanner()
	slot1, idx1, ok := s.locate(level, id1)
	if !ok {
		return false
	}
	slot2, idx2, ok := s.locate(level, id2)
	if !ok || slot1.Path != slot2.Path {
		return false
	}
	if idx1 == idx2 {
		return false
	}
	blocks := slot1.Blocks()
	blocks[idx1], blocks[idx2] = blocks[idx2], blocks[idx1]
	return true
}

// Clone deep-copies the block with id, assigns fresh ids to the copy and
// its whole subtree, and inserts it right after the original.
func (s *Scanner) Clone(level *Block, id string, gen identity.Generator) *Block {
	slot, idx, ok := s.scanner().locate(level, id)
	if !ok {
		return nil
	}
	blocks := slot.Blocks()
	clone := blocks[idx].CloneWithNewIDs(gen)

	result := make([]*Block, 0, len(blocks)+1)
	result = append(result, blocks[:idx+1]...)
	result = append(result, clone)
	result = append(result, blocks[idx+1:]...)
	slot.set(result)
	return clone
}
