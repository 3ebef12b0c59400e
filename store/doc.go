// Package store persists named permutation templates.
//
// Templates live in a single YAML mapping of name to template source. The
// file is looked up by [FileName] in each directory of the search path, in
// order, and the first one found is used:
//
//  1. the permute configuration directory (for example, ~/.config/permute)
//  2. each entry of the PERMUTE_PATH environment variable, separated by the
//     operating system's list separator
//
// When no file exists, the store starts with the built-in [Examples] and is
// created in the first search directory on [Store.Save].
//
//	Disjunction Example: a {black|brown} {cat|dog}
//	Range Example: a (red:{0.0;1.0;0.1}) cat
//
// Every template is validated with [lang.ParseString] before it is stored.
package store
