// Package filesystem provides filesystem implementations for testbed.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem and afero-backed filesystems
// for fast, isolated tests.
package filesystem
