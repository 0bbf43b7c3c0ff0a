package document

import "github.com/stateful/blockdoc/pkg/document/identity"

// Clone returns a deep, independent copy of the block and its subtree.
// Identifiers are preserved.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	return &Block{
		ID:   b.ID,
		Type: b.Type,
		Data: copyMap(b.Data),
		Base: copyMap(b.Base),
	}
}

// CloneWithNewIDs deep-copies the block and assigns a fresh identifier
// from gen to every nested value which looks like a block, including
// the block itself.
func (b *Block) CloneWithNewIDs(gen identity.Generator) *Block {
	clone := b.Clone()
	if clone == nil {
		return nil
	}
	reassignIDs(clone, gen)
	return clone
}

func reassignIDs(b *Block, gen identity.Generator) {
	b.ID = gen.NewID()
	for _, k := range sortedKeys(b.Data) {
		reassignValueIDs(b.Data[k], gen)
	}
}

func reassignValueIDs(v any, gen identity.Generator) {
	switch v := v.(type) {
	case *Block:
		reassignIDs(v, gen)
	case []*Block:
		for _, b := range v {
			reassignIDs(b, gen)
		}
	case map[string]any:
		if LooksLikeBlock(v) {
			v["id"] = gen.NewID()
		}
		// Walk keys in a stable order so seeded generators assign the
		// same ids on every run.
		for _, k := range sortedKeys(v) {
			reassignValueIDs(v[k], gen)
		}
	case []any:
		for _, item := range v {
			reassignValueIDs(item, gen)
		}
	}
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = copyValue(v)
	}
	return result
}

func copyValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return copyMap(v)
	case []any:
		if v == nil {
			return v
		}
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = copyValue(item)
		}
		return result
	case []*Block:
		if v == nil {
			return v
		}
		result := make([]*Block, len(v))
		for i, b := range v {
			result[i] = b.Clone()
		}
		return result
	case *Block:
		return v.Clone()
	case []string:
		return append([]string(nil), v...)
	case []map[string]any:
		result := make([]map[string]any, len(v))
		for i, item := range v {
			result[i] = copyMap(item)
		}
		return result
	default:
		// Scalars: string, bool, float64, json.Number, nil.
		return v
	}
}

// CopyData returns a deep copy of block data.
func CopyData(data map[string]any) map[string]any {
	return copyMap(data)
}
