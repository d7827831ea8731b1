package modload

import (
	"path/filepath"
	"time"

	"github.com/arthur-debert/testbed/pkg/errors"
	"github.com/arthur-debert/testbed/pkg/filesystem"
	"github.com/arthur-debert/testbed/pkg/logging"
	"github.com/arthur-debert/testbed/pkg/types"
	jsoniter "github.com/json-iterator/go"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// Naming conventions for module sources and compiled artifacts
const (
	// SourceSuffix is the file extension of module source files
	SourceSuffix = ".toml"

	// CacheDirName is the directory holding compiled artifacts, created
	// next to the module source
	CacheDirName = "__modcache__"

	// ArtifactSuffix is the file extension of compiled artifacts
	ArtifactSuffix = ".modc"
)

// Loader loads modules by identifier.
type Loader interface {
	Load(name string) (*Module, error)
}

// CacheInvalidator is an optional capability a Loader may implement to drop
// internal resolution caches after module sources changed on disk. Absence
// of the capability is not an error; InvalidateCaches treats it as a no-op.
type CacheInvalidator interface {
	InvalidateCaches()
}

// InvalidateCaches invokes the loader's cache-invalidation hook when the
// loader implements the optional CacheInvalidator capability.
func InvalidateCaches(l Loader) {
	if ci, ok := l.(CacheInvalidator); ok {
		ci.InvalidateCaches()
	}
}

// artifactEnvelope is the on-disk form of a compiled artifact
type artifactEnvelope struct {
	Source  string                 `json:"source"`
	ModTime int64                  `json:"mod_time"`
	Values  map[string]interface{} `json:"values"`
}

// FileLoader resolves module identifiers against a search path and loads
// TOML module sources, caching results in a registry and as compiled
// artifacts on disk.
type FileLoader struct {
	path     *SearchPath
	registry *Registry
	fs       types.FS
	logger   zerolog.Logger

	// sources memoizes identifier -> resolved source path. The memo speeds
	// repeated resolution but goes stale when a test rewrites sources; the
	// InvalidateCaches capability drops it.
	sources map[string]string
}

// defaultLoader is the process-wide loader, bound to the default search
// path and registry
var defaultLoader = NewFileLoader(defaultSearchPath, defaultRegistry, filesystem.NewOS())

// DefaultLoader returns the process-wide loader.
func DefaultLoader() *FileLoader {
	return defaultLoader
}

// Load loads a module through the process-wide loader.
func Load(name string) (*Module, error) {
	return defaultLoader.Load(name)
}

// NewFileLoader creates a loader over the given search path, registry and
// filesystem.
func NewFileLoader(path *SearchPath, registry *Registry, fs types.FS) *FileLoader {
	return &FileLoader{
		path:     path,
		registry: registry,
		fs:       fs,
		logger:   logging.GetLogger("modload.loader"),
		sources:  make(map[string]string),
	}
}

// Registry returns the registry this loader populates.
func (l *FileLoader) Registry() *Registry {
	return l.registry
}

// SearchPath returns the search path this loader resolves against.
func (l *FileLoader) SearchPath() *SearchPath {
	return l.path
}

// Load resolves name against the search path and returns its loaded
// representation. A module already present in the registry is returned as-is
// without touching the filesystem; purge the registry first to force a
// fresh load.
func (l *FileLoader) Load(name string) (*Module, error) {
	if err := CheckName(name); err != nil {
		return nil, err
	}

	if m := l.registry.Get(name); m != nil {
		return m, nil
	}

	source, err := l.resolve(name)
	if err != nil {
		return nil, err
	}

	info, err := l.fs.Stat(source)
	if err != nil {
		// Memoized source vanished; drop the memo and resolve again
		delete(l.sources, name)
		source, err = l.resolve(name)
		if err != nil {
			return nil, err
		}
		info, err = l.fs.Stat(source)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrModuleNotFound, "module %q source unreadable", name)
		}
	}

	values, fromArtifact := l.loadArtifact(name, source, info.ModTime())
	if !fromArtifact {
		raw, err := l.fs.ReadFile(source)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrModuleNotFound, "reading module %q", name)
		}
		if err := toml.Unmarshal(raw, &values); err != nil {
			return nil, errors.Wrapf(err, errors.ErrModuleParse, "parsing module %q", name)
		}
		l.writeArtifact(name, source, info.ModTime(), values)
	}

	m := &Module{
		Name:     name,
		Source:   source,
		Values:   values,
		LoadedAt: time.Now(),
	}
	l.registry.Put(m)

	l.logger.Debug().
		Str("module", name).
		Str("source", source).
		Bool("fromArtifact", fromArtifact).
		Msg("Module loaded")

	return m, nil
}

// InvalidateCaches drops the loader's resolution memo. Implements the
// optional CacheInvalidator capability.
func (l *FileLoader) InvalidateCaches() {
	l.sources = make(map[string]string)
}

// resolve finds the source file for name by walking the search path in order.
func (l *FileLoader) resolve(name string) (string, error) {
	if source, ok := l.sources[name]; ok {
		return source, nil
	}

	rel := relSourcePath(name)
	for _, dir := range l.path.Entries() {
		candidate := filepath.Join(dir, rel)
		if !filepath.IsAbs(candidate) {
			abs, err := filepath.Abs(candidate)
			if err == nil {
				candidate = abs
			}
		}
		if info, err := l.fs.Stat(candidate); err == nil && !info.IsDir() {
			l.sources[name] = candidate
			return candidate, nil
		}
	}

	return "", errors.Newf(errors.ErrModuleNotFound, "module %q not found on search path", name).
		WithDetail("searchPath", l.path.Entries())
}

// artifactPath returns the compiled artifact location for a module source:
// a .modc file inside the cache dir next to the source.
func artifactPath(name, source string) string {
	return filepath.Join(filepath.Dir(source), CacheDirName, name+ArtifactSuffix)
}

// loadArtifact tries to satisfy a load from the compiled artifact. The
// artifact only counts when it records the same source path and a matching
// modification time (second resolution, so a rewrite within the same second
// can go unnoticed; tests force freshness by removing artifacts).
func (l *FileLoader) loadArtifact(name, source string, modTime time.Time) (map[string]interface{}, bool) {
	raw, err := l.fs.ReadFile(artifactPath(name, source))
	if err != nil {
		return nil, false
	}

	var env artifactEnvelope
	if err := jsoniter.ConfigFastest.Unmarshal(raw, &env); err != nil {
		l.logger.Debug().Str("module", name).Err(err).Msg("Ignoring unreadable compiled artifact")
		return nil, false
	}
	if env.Source != source || env.ModTime != modTime.Unix() {
		return nil, false
	}
	return env.Values, true
}

// writeArtifact stores the compiled artifact. Failures are logged and
// swallowed: the artifact is an optimization, not a correctness requirement.
func (l *FileLoader) writeArtifact(name, source string, modTime time.Time, values map[string]interface{}) {
	env := artifactEnvelope{
		Source:  source,
		ModTime: modTime.Unix(),
		Values:  values,
	}
	raw, err := jsoniter.ConfigFastest.Marshal(env)
	if err != nil {
		l.logger.Debug().Str("module", name).Err(err).Msg("Failed to encode compiled artifact")
		return
	}

	path := artifactPath(name, source)
	if err := l.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		l.logger.Debug().Str("module", name).Err(err).Msg("Failed to create artifact cache dir")
		return
	}
	if err := l.fs.WriteFile(path, raw, 0644); err != nil {
		l.logger.Debug().Str("module", name).Err(err).Msg("Failed to write compiled artifact")
	}
}
