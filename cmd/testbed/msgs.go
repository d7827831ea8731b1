package testbed

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A composable test-fixture toolkit"
	MsgVersionShort    = "Print version information"
	MsgGenConfigShort  = "Generate a default configuration file"
	MsgCacheShort      = "Inspect and manage compiled module caches"
	MsgCacheListShort  = "List compiled module artifacts under a directory"
	MsgCachePurgeShort = "Remove compiled module artifacts under a directory"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagWrite   = "Write config to the config directory instead of stdout"

	// Status messages
	MsgNoArtifacts     = "No compiled module artifacts found."
	MsgConfigWritten   = "Wrote default configuration to %s\n"
	MsgArtifactsPurged = "Removed compiled module caches under %s\n"
)

// Long messages (multi-line)
const (
	MsgRootLong = `testbed provisions isolated workspaces, module loading, and output
capture for tests. The CLI inspects configuration and compiled module
caches left behind by test runs.`

	MsgGenConfigLong = `Output the default configuration to stdout, or write it with -w to
testbed.toml in the config directory (TESTBED_CONFIG_DIR or the XDG
config home).`

	MsgCacheListLong = `Walk a directory tree and list every compiled module artifact
(.modc files inside __modcache__ directories). Defaults to the
current directory.`

	MsgCachePurgeLong = `Walk a directory tree and remove every compiled module artifact
and __modcache__ directory. Defaults to the current directory.
Removal is best-effort; missing files are not an error.`

	MsgGenConfigExample = `  testbed gen-config        # Output to stdout
  testbed gen-config -w     # Write to the config dir's testbed.toml`

	MsgCacheExample = `  testbed cache list          # List artifacts under .
  testbed cache list ./mods   # List artifacts under ./mods
  testbed cache purge ./mods  # Remove artifacts under ./mods`
)
