package modload

// SearchPath is an ordered list of directories consulted by a Loader when
// resolving a module identifier. The zero value is an empty path.
//
// The process-wide default instance is shared by all loaders unless a test
// wires its own; fixtures snapshot and restore it around each test.
type SearchPath struct {
	entries []string
}

// defaultSearchPath is the process-wide search path
var defaultSearchPath = &SearchPath{}

// Path returns the process-wide default search path.
func Path() *SearchPath {
	return defaultSearchPath
}

// Entries returns a copy of the ordered directory list.
func (sp *SearchPath) Entries() []string {
	out := make([]string, len(sp.entries))
	copy(out, sp.entries)
	return out
}

// SetEntries replaces the directory list with a copy of dirs.
func (sp *SearchPath) SetEntries(dirs []string) {
	sp.entries = make([]string, len(dirs))
	copy(sp.entries, dirs)
}

// Prepend inserts dir at the front of the search path.
func (sp *SearchPath) Prepend(dir string) {
	sp.entries = append([]string{dir}, sp.entries...)
}

// Append adds dir to the end of the search path.
func (sp *SearchPath) Append(dir string) {
	sp.entries = append(sp.entries, dir)
}

// Len returns the number of entries.
func (sp *SearchPath) Len() int {
	return len(sp.entries)
}
