package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/stateful/blockdoc/pkg/document"
	"github.com/stateful/blockdoc/pkg/document/editor"
	"github.com/stateful/blockdoc/pkg/schema"
)

const testDocument = `{"id":"doc","type":"root","data":{"children":[
	{"id":"a","type":"text","data":{"value":"A"}},
	{"id":"b","type":"text","data":{"value":"B"}}
]}}`

func newTestStore(t *testing.T) *editor.Store {
	t.Helper()

	registry := schema.NewRegistry()
	require.NoError(t, registry.LoadYAML([]byte("version: v1alpha1\ntypes:\n  - name: text\n")))

	doc, err := document.Parse([]byte(testDocument))
	require.NoError(t, err)

	store, err := editor.New(registry, doc, editor.Options{Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)
	return store
}

func childIDs(doc *document.Block) []string {
	var ids []string
	for _, b := range doc.Data[document.ChildrenKey].([]*document.Block) {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestApplySteps(t *testing.T) {
	t.Run("undo and redo", func(t *testing.T) {
		store := newTestStore(t)
		n, err := applySteps(store, strings.NewReader(`
			{"kind":"delete-block","blockId":"a"}
			{"kind":"undo"}
			{"kind":"redo"}
		`))
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, []string{"b"}, childIDs(store.Document()))
		assert.False(t, store.CanRedo())
	})

	t.Run("select", func(t *testing.T) {
		store := newTestStore(t)
		_, err := applySteps(store, strings.NewReader(`{"kind":"select","blockId":"b"}`))
		require.NoError(t, err)
		assert.Equal(t, "b", store.SelectedBlockID())

		_, err = applySteps(store, strings.NewReader(`{"kind":"select"}`))
		require.NoError(t, err)
		assert.Empty(t, store.SelectedBlockID())

		_, err = applySteps(store, strings.NewReader(`{"kind":"select","blockId":"missing"}`))
		require.ErrorContains(t, err, "step 1")
	})

	t.Run("decode error", func(t *testing.T) {
		store := newTestStore(t)
		n, err := applySteps(store, strings.NewReader(`{"kind":"delete-block","blockId":"a"} {`))
		require.ErrorContains(t, err, "failed to decode step 2")
		assert.Equal(t, 1, n)
	})

	t.Run("unknown kind", func(t *testing.T) {
		store := newTestStore(t)
		_, err := applySteps(store, strings.NewReader(`{"kind":"rename-block","blockId":"a"}`))
		require.ErrorContains(t, err, "unknown action kind")
		assert.Equal(t, 0, store.History().Index)
	})
}

func TestApplyCmd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blockdoc.yaml"), []byte(`version: v1alpha1
schemas:
  - blocks.yaml
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blocks.yaml"), []byte(`version: v1alpha1
types:
  - name: text
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.json"), []byte(testDocument), 0o644))

	var stdout bytes.Buffer
	root := Root()
	root.SetArgs([]string{"--chdir", dir, "apply", "doc.json"})
	root.SetIn(strings.NewReader(`{"kind":"swap-block","blockId1":"a","blockId2":"b"}`))
	root.SetOut(&stdout)

	require.NoError(t, root.Execute())

	doc, err := document.Parse(stdout.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, childIDs(doc))
}
