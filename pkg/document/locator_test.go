package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBlock(t *testing.T) {
	doc := parseTestDocument(t)

	testCases := []struct {
		id    string
		found bool
	}{
		{"root", true},
		{"a", true},
		{"h2", true},
		{"f1", true},
		{"missing", false},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			b := FindBlock(doc, tc.id)
			if !tc.found {
				assert.Nil(t, b)
				return
			}
			require.NotNil(t, b)
			assert.Equal(t, tc.id, b.ID)
		})
	}
}

func TestFindParentBlock(t *testing.T) {
	doc := parseTestDocument(t)

	testCases := []struct {
		id       string
		expected string
	}{
		{"a", "root"},
		{"section", "root"},
		{"h1", "section"},
		{"f1", "section"},
		{"root", ""},
		{"missing", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			parent := FindParentBlock(doc, tc.id)
			if tc.expected == "" {
				assert.Nil(t, parent)
				return
			}
			require.NotNil(t, parent)
			assert.Equal(t, tc.expected, parent.ID)
		})
	}
}

func TestFindBlockHierarchy(t *testing.T) {
	doc := parseTestDocument(t)

	assert.Equal(t, []string{"root", "section", "f1"}, childIDs(FindBlockHierarchy(doc, "f1")))
	assert.Equal(t, []string{"root", "c"}, childIDs(FindBlockHierarchy(doc, "c")))
	assert.Equal(t, []string{"root"}, childIDs(FindBlockHierarchy(doc, "root")))
	assert.Nil(t, FindBlockHierarchy(doc, "missing"))
	assert.Nil(t, FindBlockHierarchy(nil, "a"))
}

func TestCollectIDs_Order(t *testing.T) {
	doc := parseTestDocument(t)

	// Slots are visited by path: "footer" sorts before "header".
	expected := []string{"root", "a", "b", "section", "f1", "h1", "h2", "c"}
	assert.Equal(t, expected, CollectIDs(doc))
	assert.Equal(t, expected, CollectIDs(doc), "traversal must be stable")
}

func TestScanner_DeclaredSlots(t *testing.T) {
	doc := parseTestDocument(t)
	scanner := &Scanner{
		DeclaredSlots: func(blockType string) []string {
			if blockType == "section" {
				return []string{"header", "footer"}
			}
			return nil
		},
	}

	assert.Equal(t,
		[]string{"root", "a", "b", "section", "h1", "h2", "f1", "c"},
		scanner.CollectIDs(doc),
	)
}

func TestFindSlot(t *testing.T) {
	doc := parseTestDocument(t)
	section := FindBlock(doc, "section")

	ref, ok := DefaultScanner.FindSlot(section, "h2")
	require.True(t, ok)
	assert.Equal(t, SlotRef{Path: "header", Index: 1}, ref)

	_, ok = DefaultScanner.FindSlot(doc, "h2")
	assert.False(t, ok, "only direct slots are searched")
}

func TestCheckUniqueIDs(t *testing.T) {
	doc := parseTestDocument(t)
	require.NoError(t, DefaultScanner.CheckUniqueIDs(doc))

	section := FindBlock(doc, "section")
	DefaultScanner.Insert(section, New("a", "text", nil), nil, Last)

	err := DefaultScanner.CheckUniqueIDs(doc)
	require.ErrorIs(t, err, ErrDuplicateID)
	assert.Contains(t, err.Error(), `"a"`)
}
