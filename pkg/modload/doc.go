// Package modload implements the module loading platform that testbed
// fixtures isolate: an ordered search path of directories, a process-wide
// registry of loaded modules, and a file loader that resolves dotted module
// identifiers (e.g. "pkg.mod") to TOML source files ("pkg/mod.toml").
//
// Loading a module caches its parsed values both in the registry and as a
// compiled artifact on disk (a .modc file under the __modcache__ directory),
// so repeated loads across a test run avoid re-parsing. The registry and
// search path are deliberately process-wide mutable state; pkg/fixture
// snapshots and restores them so each test observes them as privately owned.
package modload
