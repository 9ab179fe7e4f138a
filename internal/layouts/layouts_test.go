package layouts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedded(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "smallClassic")
	for _, name := range names {
		l, err := Load(name)
		require.NoErrorf(t, err, "layout %q", name)
		assert.Equal(t, name, l.Name)
		assert.Greater(t, l.NumGhosts(), 0, "layout %q", name)
	}

	l, err := Load("minimaxClassic")
	require.NoError(t, err)
	assert.Equal(t, 9, l.Width)
	assert.Equal(t, 5, l.Height)
	assert.Equal(t, 3, l.NumGhosts())
}

func TestLoadFile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "tiny.lay")
	require.NoError(t, os.WriteFile(filePath, []byte("%%%%\n%P.%\n%%%%\n"), 0o644))
	l, err := Load(filePath)
	require.NoError(t, err)
	assert.Equal(t, "tiny", l.Name)
	assert.Equal(t, 0, l.NumGhosts())

	_, err = Load(filepath.Join(t.TempDir(), "missing.lay"))
	require.Error(t, err)
}
