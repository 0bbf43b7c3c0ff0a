package term

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	t.Run("buffer", func(t *testing.T) {
		var buf bytes.Buffer
		out := Detect(&buf)
		require.False(t, out.TTY)
		require.Equal(t, DefaultWidth, out.Width)
		require.Same(t, &buf, out.Writer)
	})

	t.Run("regular file", func(t *testing.T) {
		f, err := os.Create(filepath.Join(t.TempDir(), "out"))
		require.NoError(t, err)
		defer f.Close()

		out := Detect(f)
		require.False(t, out.TTY)
		require.Equal(t, DefaultWidth, out.Width)
	})
}
