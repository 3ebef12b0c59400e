// Package cli contains the command line interface for permute.
//
// # Usage
//
//	permute [flags] <command> [args]
//
// Without a command, the arguments are expanded:
//
//	$ permute 'a {black|brown} {cat|dog}'
//	a black cat
//	a black dog
//	a brown cat
//	a brown dog
//
// Commands:
//
//   - expand: write every variant of a template (default)
//   - check: validate a template and count its variants
//   - fmt: write a template as canonical syntax, JSON, YAML, or a tree
//   - template: list, show, save, and delete saved templates
//   - repl: start an interactive template session
//   - init: write the configuration file with the current flag values
//   - version: print version information
//
// # Configuration
//
// Flag defaults are read from config.yaml in the configuration directory
// (for example, ~/.config/permute/config.yaml). Top-level keys name global
// flags, and a key naming a command holds that command's flags:
//
//	log-level: info
//	expand:
//	  format: json
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp layout (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o permute .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/permute/pprof)
package cli
