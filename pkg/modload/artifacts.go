package modload

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/testbed/pkg/types"
)

// Artifacts returns the compiled-artifact files under root, recursively:
// every file matching the artifact naming pattern, wherever it sits.
// Missing or unreadable directories yield an empty result.
func Artifacts(fs types.FS, root string) []string {
	var found []string
	walkArtifacts(fs, root, &found)
	return found
}

func walkArtifacts(fs types.FS, dir string, found *[]string) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			walkArtifacts(fs, path, found)
			continue
		}
		if strings.HasSuffix(entry.Name(), ArtifactSuffix) {
			*found = append(*found, path)
		}
	}
}

// RemoveCaches removes compiled artifacts under root: files matching the
// artifact pattern and every compiled-artifact cache directory. Removal is
// best-effort; calling it again when nothing is left is a no-op.
func RemoveCaches(fs types.FS, root string) {
	removeCachesIn(fs, root)
}

func removeCachesIn(fs types.FS, dir string) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if entry.Name() == CacheDirName {
				_ = fs.RemoveAll(path)
				continue
			}
			removeCachesIn(fs, path)
			continue
		}
		if strings.HasSuffix(entry.Name(), ArtifactSuffix) {
			_ = fs.Remove(path)
		}
	}
}
