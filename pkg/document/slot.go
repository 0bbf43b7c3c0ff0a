package document

import (
	"sort"
	"strconv"
	"strings"
)

// Slot is an ordered list of child blocks stored under a "children"
// property of a block's data.
type Slot struct {
	// Path is the dotted path, relative to the block data, of the object
	// holding the "children" property. The empty path addresses data.children.
	Path string

	holder map[string]any
}

// Blocks returns the blocks of the slot. The returned slice is shared
// with the tree.
func (s Slot) Blocks() []*Block {
	blocks, _ := s.holder[ChildrenKey].([]*Block)
	return blocks
}

// Len returns the number of blocks in the slot.
func (s Slot) Len() int {
	return len(s.Blocks())
}

func (s Slot) set(blocks []*Block) {
	s.holder[ChildrenKey] = blocks
}

func (s Slot) indexOf(id string) int {
	for i, b := range s.Blocks() {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Scanner discovers slots of blocks in a deterministic order.
//
// Slots declared for a block type come first, in declared order. All other
// slots follow sorted by path, with the top-level slot first.
type Scanner struct {
	// DeclaredSlots returns slot paths declared for a block type.
	// It can be nil.
	DeclaredSlots func(blockType string) []string
}

// DefaultScanner orders slots by path only.
var DefaultScanner = &Scanner{}

func (s *Scanner) scanner() *Scanner {
	if s == nil {
		return DefaultScanner
	}
	return s
}

// Slots returns the direct slots of the block. Slots of nested blocks
// are not included.
func (s *Scanner) Slots(b *Block) []Slot {
	if b == nil {
		return nil
	}

	var found []Slot
	discoverSlots(b.Data, nil, &found)

	sort.SliceStable(found, func(i, j int) bool {
		return lessPath(found[i].Path, found[j].Path)
	})

	s = s.scanner()
	if s.DeclaredSlots == nil {
		return found
	}
	declared := s.DeclaredSlots(b.Type)
	if len(declared) == 0 {
		return found
	}

	rank := make(map[string]int, len(declared))
	for i, p := range declared {
		if _, ok := rank[p]; !ok {
			rank[p] = i
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		ri, iok := rank[found[i].Path]
		rj, jok := rank[found[j].Path]
		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		default:
			return false
		}
	})
	return found
}

func lessPath(a, b string) bool {
	if a == "" || b == "" {
		return a == "" && b != ""
	}
	return a < b
}

func discoverSlots(m map[string]any, prefix []string, out *[]Slot) {
	for _, k := range sortedKeys(m) {
		v := m[k]
		if k == ChildrenKey {
			if _, ok := v.([]*Block); ok {
				*out = append(*out, Slot{Path: strings.Join(prefix, "."), holder: m})
				continue
			}
		}
		switch v := v.(type) {
		case map[string]any:
			discoverSlots(v, appendPath(prefix, k), out)
		case []any:
			for i, item := range v {
				if nested, ok := item.(map[string]any); ok {
					discoverSlots(nested, appendPath(prefix, k, strconv.Itoa(i)), out)
				}
			}
		}
	}
}

func appendPath(prefix []string, segments ...string) []string {
	result := make([]string, 0, len(prefix)+len(segments))
	result = append(result, prefix...)
	return append(result, segments...)
}

// Slot returns the slot of the block with the given path.
func (s *Scanner) Slot(b *Block, path string) (Slot, bool) {
	return resolveSlot(b, path, false)
}

// EnsureSlot returns the slot of the block with the given path, creating
// it and any missing objects along the path.
func (s *Scanner) EnsureSlot(b *Block, path string) (Slot, bool) {
	return resolveSlot(b, path, true)
}

// resolveSlot finds the slot under path. When create is true, missing
// objects along the path and a missing "children" list are created.
func resolveSlot(b *Block, path string, create bool) (Slot, bool) {
	if b == nil {
		return Slot{}, false
	}
	if b.Data == nil {
		if !create {
			return Slot{}, false
		}
		b.Data = map[string]any{}
	}

	var cur any = b.Data
	if path != "" {
		for _, seg := range strings.Split(path, ".") {
			switch c := cur.(type) {
			case map[string]any:
				next, ok := c[seg]
				if !ok || next == nil {
					if !create {
						return Slot{}, false
					}
					next = map[string]any{}
					c[seg] = next
				}
				cur = next
			case []any:
				i, err := strconv.Atoi(seg)
				if err != nil || i < 0 || i >= len(c) {
					return Slot{}, false
				}
				cur = c[i]
			default:
				return Slot{}, false
			}
		}
	}

	holder, ok := cur.(map[string]any)
	if !ok {
		return Slot{}, false
	}

	v, exists := holder[ChildrenKey]
	switch v := v.(type) {
	case []*Block:
	case []any:
		if len(v) > 0 {
			return Slot{}, false
		}
		holder[ChildrenKey] = []*Block{}
	default:
		if exists && v != nil {
			return Slot{}, false
		}
		if !create {
			return Slot{}, false
		}
		holder[ChildrenKey] = []*Block{}
	}
	return Slot{Path: path, holder: holder}, true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
