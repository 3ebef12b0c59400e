package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Prefix returns the base name that identifies the running executable. It
// names the configuration and cache directories and prefixes environment
// variable identifiers (see [EnvName]).
//
// The executable's base name is used with its extension removed. Builds from
// the dlv debugger ("__debug_bin" followed by digits) resolve to [Name], and
// leading dots are stripped.
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = filepath.Base(id)
		id = strings.TrimSuffix(id, filepath.Ext(id))
		id = debugBinary.ReplaceAllString(id, Name)
		id = strings.TrimLeft(id, ".")

		if id == "" {
			return Name
		}

		return id
	},
)

var debugBinary = regexp.MustCompile(`^__debug_bin\d+$`)

// ConfigDir returns the directory holding user configuration and the
// template store.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string { return userDir(os.UserConfigDir, ".config") },
)

// CacheDir returns the directory holding transient files such as the
// interactive session history.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string { return userDir(os.UserCacheDir, ".cache") },
)

// EnvName returns the environment variable identifier for name, qualified by
// [Prefix]. For example, EnvName("path") returns "PERMUTE_PATH".
func EnvName(name string) string { return envName(Prefix(), name) }

func envName(prefix, name string) string {
	id := name
	if prefix != "" {
		id = prefix + "_" + name
	}

	return strings.ToUpper(nonIdentifier.ReplaceAllString(id, "_"))
}

var nonIdentifier = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// userDir returns base joined with [Prefix], where base is the result of
// lookup. If lookup fails, the hidden directory dot under the user's home is
// used instead, then the working directory.
func userDir(lookup func() (string, error), dot string) string {
	dir, err := lookup()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, dot)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}
