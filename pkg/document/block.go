package document

import (
	"encoding/json"

	"github.com/pkg/errors"
)

const (
	// RootType is the reserved type of a document root block.
	RootType = "root"

	// ChildrenKey is the property name which marks a slot inside block data.
	ChildrenKey = "children"

	// Last is the index sentinel which appends to a slot.
	Last = -1
)

// Block is a node of a document tree.
//
// Data holds arbitrary structured values. Any property named "children"
// whose value is a list of blocks is a slot; slots can appear at any depth
// of Data. Base holds generic presentation properties which are opaque to
// this package.
type Block struct {
	ID   string         `json:"id"`
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
	Base map[string]any `json:"base,omitempty"`
}

// New creates a block with normalized data.
func New(id, typ string, data map[string]any) *Block {
	b := &Block{ID: id, Type: typ, Data: data}
	b.normalize()
	return b
}

// NewRoot creates a document root with a single empty top-level slot.
func NewRoot(id string, children ...*Block) *Block {
	if children == nil {
		children = []*Block{}
	}
	return &Block{
		ID:   id,
		Type: RootType,
		Data: map[string]any{ChildrenKey: children},
	}
}

// IsRoot reports whether the block plays the role of a document.
func (b *Block) IsRoot() bool {
	return b != nil && b.Type == RootType
}

func (b *Block) UnmarshalJSON(data []byte) error {
	type alias Block
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.WithStack(err)
	}
	*b = Block(raw)
	b.normalize()
	return nil
}

func (b *Block) normalize() {
	if b.Data == nil {
		b.Data = map[string]any{}
	}
	for k, v := range b.Data {
		b.Data[k] = normalizeValue(k, v)
	}
}

// Parse decodes a document from its JSON representation.
func Parse(data []byte) (*Block, error) {
	var b Block
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrap(err, "failed to parse document")
	}
	if b.ID == "" {
		return nil, errors.New("document has no id")
	}
	return &b, nil
}

// NormalizeData converts every "children" list of block-shaped values
// inside data into a slot. It is used for data coming from outside
// of JSON decoding, for example set-block-data payloads.
func NormalizeData(data map[string]any) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	result := make(map[string]any, len(data))
	for k, v := range data {
		result[k] = normalizeValue(k, v)
	}
	return result
}

func normalizeValue(key string, v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, item := range v {
			v[k] = normalizeValue(k, item)
		}
		return v
	case []any:
		if key == ChildrenKey {
			if blocks, ok := toBlocks(v); ok {
				return blocks
			}
		}
		for i, item := range v {
			v[i] = normalizeValue("", item)
		}
		return v
	case []*Block:
		for _, b := range v {
			b.normalize()
		}
		return v
	case *Block:
		v.normalize()
		return v
	default:
		return v
	}
}

func toBlocks(items []any) ([]*Block, bool) {
	blocks := make([]*Block, 0, len(items))
	for _, item := range items {
		switch item := item.(type) {
		case *Block:
			item.normalize()
			blocks = append(blocks, item)
		case map[string]any:
			b, ok := blockFromMap(item)
			if !ok {
				return nil, false
			}
			blocks = append(blocks, b)
		default:
			return nil, false
		}
	}
	return blocks, true
}

// LooksLikeBlock reports whether a value has the structure of a block:
// a string id, a string type and a data object.
func LooksLikeBlock(v map[string]any) bool {
	if _, ok := v["id"].(string); !ok {
		return false
	}
	if _, ok := v["type"].(string); !ok {
		return false
	}
	data, ok := v["data"]
	if !ok {
		return false
	}
	if data == nil {
		return true
	}
	_, ok = data.(map[string]any)
	return ok
}

func blockFromMap(v map[string]any) (*Block, bool) {
	if !LooksLikeBlock(v) {
		return nil, false
	}
	data, _ := v["data"].(map[string]any)
	b := &Block{
		ID:   v["id"].(string),
		Type: v["type"].(string),
		Data: data,
	}
	if base, ok := v["base"].(map[string]any); ok {
		b.Base = base
	}
	b.normalize()
	return b, true
}
