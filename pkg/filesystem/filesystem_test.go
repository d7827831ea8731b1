package filesystem

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/testbed/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSImplementations(t *testing.T) {
	tests := []struct {
		name string
		fs   func(t *testing.T) (types.FS, string)
	}{
		{
			name: "os filesystem",
			fs: func(t *testing.T) (types.FS, string) {
				return NewOS(), t.TempDir()
			},
		},
		{
			name: "memory filesystem",
			fs: func(t *testing.T) (types.FS, string) {
				return NewMemory(), "/virtual"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, root := tt.fs(t)

			dir := filepath.Join(root, "a", "b")
			require.NoError(t, fs.MkdirAll(dir, 0755))

			file := filepath.Join(dir, "f.txt")
			require.NoError(t, fs.WriteFile(file, []byte("hello"), 0644))

			content, err := fs.ReadFile(file)
			require.NoError(t, err)
			assert.Equal(t, "hello", string(content))

			info, err := fs.Stat(file)
			require.NoError(t, err)
			assert.False(t, info.IsDir())

			entries, err := fs.ReadDir(dir)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "f.txt", entries[0].Name())

			require.NoError(t, fs.Remove(file))
			_, err = fs.Stat(file)
			assert.Error(t, err)

			require.NoError(t, fs.RemoveAll(filepath.Join(root, "a")))
			_, err = fs.Stat(dir)
			assert.Error(t, err)
		})
	}
}

func TestReadFileOnDirectory(t *testing.T) {
	fs := NewMemory()
	require.NoError(t, fs.MkdirAll("/d", 0755))

	_, err := fs.ReadFile("/d")
	assert.Error(t, err)
}
