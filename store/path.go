package store

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/ardnew/mung"

	"github.com/ardnew/permute/pkg"
)

// FileName is the base name of the template store file.
const FileName = "templates.yaml"

// PathEnv returns the name of the environment variable listing additional
// directories to search for [FileName].
func PathEnv() string { return pkg.EnvName("path") }

// SearchPath returns the directories searched for [FileName], in order.
func SearchPath() []string {
	return searchPath(pkg.ConfigDir(), os.Getenv(PathEnv()))
}

func searchPath(base, list string) []string {
	joined := mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(base),
	).String()

	return slices.DeleteFunc(
		filepath.SplitList(joined),
		func(dir string) bool { return dir == "" },
	)
}
