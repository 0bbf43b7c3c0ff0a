package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/blockdoc/pkg/document/identity"
)

func strPtr(s string) *string { return &s }

func TestInsert(t *testing.T) {
	testCases := []struct {
		name     string
		slot     *string
		index    int
		level    string
		path     string
		expected []string
	}{
		{name: "first slot at start", index: 0, level: "root", path: "", expected: []string{"new", "a", "b", "section", "c"}},
		{name: "append with sentinel", index: Last, level: "root", path: "", expected: []string{"a", "b", "section", "c", "new"}},
		{name: "clamped high", index: 100, level: "root", path: "", expected: []string{"a", "b", "section", "c", "new"}},
		{name: "clamped low", index: -5, level: "root", path: "", expected: []string{"new", "a", "b", "section", "c"}},
		{name: "named slot", slot: strPtr("header"), index: 1, level: "section", path: "header", expected: []string{"h1", "new", "h2"}},
		{name: "default slot of multi-slot block", index: 0, level: "section", path: "footer", expected: []string{"new", "f1"}},
		{name: "created slot", slot: strPtr("aside"), index: 0, level: "section", path: "aside", expected: []string{"new"}},
		{name: "created nested slot", slot: strPtr("layout.left"), index: Last, level: "a", path: "layout.left", expected: []string{"new"}},
		{name: "level without slots", index: 0, level: "c", path: "", expected: []string{"new"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc := parseTestDocument(t)
			level := FindBlock(doc, tc.level)
			require.NotNil(t, level)

			ok := DefaultScanner.Insert(level, New("new", "text", nil), tc.slot, tc.index)
			require.True(t, ok)
			assert.Equal(t, tc.expected, slotIDs(t, level, tc.path))
		})
	}

	t.Run("slot path through a scalar", func(t *testing.T) {
		doc := parseTestDocument(t)
		a := FindBlock(doc, "a")
		ok := DefaultScanner.Insert(a, New("new", "text", nil), strPtr("value"), 0)
		assert.False(t, ok)
	})
}

func TestDelete(t *testing.T) {
	doc := parseTestDocument(t)

	removed := DefaultScanner.Delete(doc, "b")
	require.NotNil(t, removed)
	assert.Equal(t, "b", removed.ID)
	assert.Equal(t, []string{"a", "section", "c"}, slotIDs(t, doc, ""))

	t.Run("nested level is not searched", func(t *testing.T) {
		assert.Nil(t, DefaultScanner.Delete(doc, "h1"))
		assert.NotNil(t, FindBlock(doc, "h1"))
	})

	t.Run("from named slot", func(t *testing.T) {
		section := FindBlock(doc, "section")
		require.NotNil(t, DefaultScanner.Delete(section, "h1"))
		assert.Equal(t, []string{"h2"}, slotIDs(t, section, "header"))
		assert.Equal(t, []string{"f1"}, slotIDs(t, section, "footer"))
	})

	t.Run("missing", func(t *testing.T) {
		before := doc.Clone()
		assert.Nil(t, DefaultScanner.Delete(doc, "missing"))
		assert.True(t, cmp.Equal(before, doc))
	})
}

func TestMoveUpDown(t *testing.T) {
	doc := parseTestDocument(t)

	assert.False(t, DefaultScanner.MoveUp(doc, "a"), "already first")
	assert.False(t, DefaultScanner.MoveDown(doc, "c"), "already last")
	assert.Equal(t, []string{"a", "b", "section", "c"}, slotIDs(t, doc, ""))

	assert.True(t, DefaultScanner.MoveDown(doc, "a"))
	assert.Equal(t, []string{"b", "a", "section", "c"}, slotIDs(t, doc, ""))

	assert.True(t, DefaultScanner.MoveUp(doc, "c"))
	assert.Equal(t, []string{"b", "a", "c", "section"}, slotIDs(t, doc, ""))

	section := FindBlock(doc, "section")
	assert.False(t, DefaultScanner.MoveDown(section, "f1"), "boundary of a named slot")
	assert.True(t, DefaultScanner.MoveDown(section, "h1"))
	assert.Equal(t, []string{"h2", "h1"}, slotIDs(t, section, "header"))

	assert.False(t, DefaultScanner.MoveUp(doc, "missing"))
}

func TestSwap(t *testing.T) {
	t.Run("siblings", func(t *testing.T) {
		doc := parseTestDocument(t)
		assert.True(t, DefaultScanner.Swap(doc, "a", "c"))
		assert.Equal(t, []string{"c", "b", "section", "a"}, slotIDs(t, doc, ""))
	})

	t.Run("different slots", func(t *testing.T) {
		doc := parseTestDocument(t)
		before := doc.Clone()
		section := FindBlock(doc, "section")

		assert.False(t, DefaultScanner.Swap(section, "h1", "f1"))
		assert.True(t, cmp.Equal(before, doc), cmp.Diff(before, doc))
	})

	t.Run("missing", func(t *testing.T) {
		doc := parseTestDocument(t)
		assert.False(t, DefaultScanner.Swap(doc, "a", "h1"))
		assert.False(t, DefaultScanner.Swap(doc, "missing", "a"))
		assert.False(t, DefaultScanner.Swap(doc, "a", "a"))
	})
}

func TestClone(t *testing.T) {
	doc := parseTestDocument(t)

	clone := DefaultScanner.Clone(doc, "section", identity.NewSeededGenerator("clone"))
	require.NotNil(t, clone)

	ids := slotIDs(t, doc, "")
	require.Len(t, ids, 5)
	assert.Equal(t, []string{"a", "b", "section", clone.ID, "c"}, ids)

	assert.Equal(t, "section", clone.Type)
	assert.Len(t, slotIDs(t, clone, "header"), 2)
	require.NoError(t, DefaultScanner.CheckUniqueIDs(doc))

	assert.Nil(t, DefaultScanner.Clone(doc, "missing", identity.NewRandomGenerator()))
}
