package document

// SlotRef addresses a position of a block inside a slot of its parent.
type SlotRef struct {
	Path  string
	Index int
}

// Walk visits the block and all its descendants depth-first in pre-order.
// Descendants are visited slot by slot in scan order. Returning false from
// fn stops the walk.
func (s *Scanner) Walk(root *Block, fn func(b *Block, parent *Block) bool) {
	s = s.scanner()
	if root == nil {
		return
	}
	if !fn(root, nil) {
		return
	}
	s.walk(root, fn)
}

func (s *Scanner) walk(parent *Block, fn func(b *Block, parent *Block) bool) bool {
	for _, slot := range s.Slots(parent) {
		for _, child := range slot.Blocks() {
			if !fn(child, parent) {
				return false
			}
			if !s.walk(child, fn) {
				return false
			}
		}
	}
	return true
}

// FindBlock returns the first block in pre-order with the given id.
func (s *Scanner) FindBlock(doc *Block, id string) *Block {
	var found *Block
	s.Walk(doc, func(b *Block, _ *Block) bool {
		if b.ID == id {
			found = b
			return false
		}
		return true
	})
	return found
}

// FindParentBlock returns the nearest ancestor of the block with the given id.
// The document root is the parent of top-level blocks. It returns nil when
// the block is missing or is the root itself.
func (s *Scanner) FindParentBlock(doc *Block, id string) *Block {
	var found *Block
	s.Walk(doc, func(b *Block, parent *Block) bool {
		if b.ID == id {
			found = parent
			return false
		}
		return true
	})
	return found
}

// FindBlockHierarchy returns the path from the root to the block with
// the given id, both inclusive. It returns nil when the block is missing.
func (s *Scanner) FindBlockHierarchy(doc *Block, id string) []*Block {
	if doc == nil {
		return nil
	}
	var path []*Block
	if s.scanner().hierarchy(doc, id, &path) {
		return path
	}
	return nil
}

func (s *Scanner) hierarchy(b *Block, id string, path *[]*Block) bool {
	*path = append(*path, b)
	if b.ID == id {
		return true
	}
	for _, slot := range s.Slots(b) {
		for _, child := range slot.Blocks() {
			if s.hierarchy(child, id, path) {
				return true
			}
		}
	}
	*path = (*path)[:len(*path)-1]
	return false
}

// FindSlot returns the slot and index of a direct child of level.
// The first slot in scan order containing the id wins.
func (s *Scanner) FindSlot(level *Block, id string) (SlotRef, bool) {
	slot, idx, ok := s.scanner().locate(level, id)
	if !ok {
		return SlotRef{}, false
	}
	return SlotRef{Path: slot.Path, Index: idx}, true
}

func (s *Scanner) locate(level *Block, id string) (Slot, int, bool) {
	for _, slot := range s.Slots(level) {
		if idx := slot.indexOf(id); idx >= 0 {
			return slot, idx, true
		}
	}
	return Slot{}, -1, false
}

// IsDescendant reports whether the block with id is ancestor itself or
// is nested anywhere under it.
func (s *Scanner) IsDescendant(ancestor *Block, id string) bool {
	return s.FindBlock(ancestor, id) != nil
}

// CollectIDs returns ids of all blocks of the tree in pre-order.
func (s *Scanner) CollectIDs(doc *Block) []string {
	var ids []string
	s.Walk(doc, func(b *Block, _ *Block) bool {
		ids = append(ids, b.ID)
		return true
	})
	return ids
}

// FindBlock looks up a block using [DefaultScanner].
func FindBlock(doc *Block, id string) *Block {
	return DefaultScanner.FindBlock(doc, id)
}

// FindParentBlock looks up a parent block using [DefaultScanner].
func FindParentBlock(doc *Block, id string) *Block {
	return DefaultScanner.FindParentBlock(doc, id)
}

// FindBlockHierarchy looks up a block path using [DefaultScanner].
func FindBlockHierarchy(doc *Block, id string) []*Block {
	return DefaultScanner.FindBlockHierarchy(doc, id)
}

// CollectIDs returns all block ids using [DefaultScanner].
func CollectIDs(doc *Block) []string {
	return DefaultScanner.CollectIDs(doc)
}
