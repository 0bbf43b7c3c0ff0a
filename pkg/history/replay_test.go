package history

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateful/blockdoc/pkg/document"
)

func testActions() []Action {
	clone := CloneBlock("section")
	clone.Seed = "replay"
	return []Action{
		MoveBlockDown("a"),
		clone,
		SetBlockData("b", map[string]any{"value": "changed"}),
		InsertBlock(document.New("n", "text", nil), "section", nil, 0),
		SwapBlock("a", "b"),
		MoveBlock("n", "root", nil, document.Last),
		DeleteBlock("a"),
		SetBlockBase("b", map[string]any{"hidden": true}),
	}
}

func TestReplayer_Deterministic(t *testing.T) {
	l := NewLog(parseTestDocument(t))
	for _, a := range testActions() {
		l.Push(a)
	}

	entries := l.Entries(l.Index())
	for k := 0; k < len(entries); k++ {
		t.Run(fmt.Sprintf("prefix %d", k), func(t *testing.T) {
			first, sel1, err := NewReplayer(NewReducer(nil), 0).Replay(entries, k)
			require.NoError(t, err)
			second, sel2, err := NewReplayer(NewReducer(nil), 0).Replay(entries, k)
			require.NoError(t, err)

			assert.Equal(t, sel1, sel2)
			assert.True(t, cmp.Equal(first, second), cmp.Diff(first, second))

			a, err := document.Marshal(first)
			require.NoError(t, err)
			b, err := document.Marshal(second)
			require.NoError(t, err)
			assert.Equal(t, a, b)
		})
	}
}

func TestReplayer_Checkpoints(t *testing.T) {
	l := NewLog(parseTestDocument(t))
	for _, a := range testActions() {
		l.Push(a)
	}
	entries := l.Entries(l.Index())

	plain := NewReplayer(NewReducer(nil), 0)
	cached := NewReplayer(NewReducer(nil), 3)

	_, _, err := cached.Replay(entries, len(entries)-1)
	require.NoError(t, err)
	assert.Equal(t, 2, cached.Checkpoints())

	for k := len(entries) - 1; k >= 0; k-- {
		expected, expectedSel, err := plain.Replay(entries, k)
		require.NoError(t, err)
		actual, actualSel, err := cached.Replay(entries, k)
		require.NoError(t, err)

		assert.Equal(t, expectedSel, actualSel, "position %d", k)
		assert.True(t, cmp.Equal(expected, actual), "position %d: %s", k, cmp.Diff(expected, actual))
	}

	cached.Truncate(4)
	assert.Equal(t, 1, cached.Checkpoints())
}

func TestReplayer_OutOfRange(t *testing.T) {
	l := NewLog(parseTestDocument(t))
	p := NewReplayer(NewReducer(nil), 0)

	_, _, err := p.Replay(l.Entries(0), 1)
	require.Error(t, err)
	_, _, err = p.Replay(l.Entries(0), -1)
	require.Error(t, err)
}
