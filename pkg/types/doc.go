// Package types defines the shared interfaces used across testbed
// packages. Keeping them here avoids import cycles between the
// filesystem implementations and their consumers.
package types
