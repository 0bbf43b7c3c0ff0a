package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testDocument has a top-level slot and a "section" block with two
// independent slots, "header" and "footer".
var testDocument = []byte(`{
  "id": "root",
  "type": "root",
  "data": {
    "children": [
      {"id": "a", "type": "text", "data": {"value": "first"}},
      {"id": "b", "type": "text", "data": {"value": "second"}},
      {
        "id": "section",
        "type": "section",
        "data": {
          "header": {"children": [
            {"id": "h1", "type": "text", "data": {}},
            {"id": "h2", "type": "text", "data": {}}
          ]},
          "footer": {"children": [
            {"id": "f1", "type": "text", "data": {}}
          ]}
        },
        "base": {"padding": 8}
      },
      {"id": "c", "type": "text", "data": {}}
    ]
  }
}`)

func parseTestDocument(t *testing.T) *Block {
	t.Helper()
	doc, err := Parse(testDocument)
	require.NoError(t, err)
	return doc
}

func childIDs(blocks []*Block) []string {
	ids := make([]string, 0, len(blocks))
	for _, b := range blocks {
		ids = append(ids, b.ID)
	}
	return ids
}

func slotIDs(t *testing.T, b *Block, path string) []string {
	t.Helper()
	slot, ok := DefaultScanner.Slot(b, path)
	require.True(t, ok, "slot %q not found", path)
	return childIDs(slot.Blocks())
}
