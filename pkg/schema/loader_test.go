package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/stateful/blockdoc/pkg/document"
)

func TestRegistry_LoadYAML(t *testing.T) {
	data := []byte(`version: v1alpha1
types:
  - name: text
    title: Text
    default_data:
      value: ""
    allowed_parents: ["root", "section"]
    rules:
      - condition: "value != nil && value != ''"
        message: "value must not be empty"
        path: value
  - name: section
    title: Section
    slots: ["header", "footer"]
`)

	r := NewRegistry()
	require.NoError(t, r.LoadYAML(data))
	assert.Equal(t, []string{"root", "section", "text"}, r.Types())
	assert.Equal(t, []string{"header", "footer"}, r.DeclaredSlots("section"))
	assert.True(t, r.CanNest("section", "text"))
	assert.False(t, r.CanNest("text", "text"))

	verr, err := r.Validate(document.New("a", "text", map[string]any{"value": ""}))
	require.NoError(t, err)
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "value must not be empty")
}

func TestRegistry_LoadYAML_Errors(t *testing.T) {
	t.Run("unknown version", func(t *testing.T) {
		err := NewRegistry().LoadYAML([]byte("version: v2\n"))
		require.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		err := NewRegistry().LoadYAML([]byte("version: [\n"))
		require.Error(t, err)
	})

	t.Run("all definition errors are reported", func(t *testing.T) {
		data := []byte(`version: v1alpha1
types:
  - name: a
    rules:
      - condition: "value =="
  - name: b
  - name: b
  - name: c
    allowed_parents: ["[bad"]
`)
		r := NewRegistry()
		err := r.LoadYAML(data)
		require.Error(t, err)
		assert.Len(t, multierr.Errors(err), 3)

		_, lookupErr := r.Lookup("b")
		assert.NoError(t, lookupErr, "valid definitions are still registered")
	})
}
