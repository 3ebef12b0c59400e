// Package cmd implements the permute subcommands.
//
// Each command is a struct whose fields are parsed by [github.com/alecthomas/kong]
// and whose Run method receives the command [context.Context] prepared by the
// cli package. Commands read their template from a positional argument, a
// file (--source), a saved template (--name), or stdin, in that order of
// precedence, and write to the output stored with [WithOutput].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
