package types

import "io/fs"

// FS abstracts the filesystem operations used throughout testbed.
// Implementations live in pkg/filesystem: an OS-backed one for real
// workspaces and an afero-backed one for in-memory tests.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
}
