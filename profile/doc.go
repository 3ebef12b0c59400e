// Package profile provides optional runtime profiling for permute.
//
// Profiling is compiled in only when built with the "pprof" build tag, which
// links [github.com/pkg/profile] and registers the [net/http/pprof] handlers.
// Without the tag every [Profiler] is a no-op and [Modes] is empty.
//
//	go build -tags pprof -o permute .
//
// # Modes
//
// The supported modes are allocs, block, clock, cpu, goroutine, heap, mem,
// mutex, thread, and trace. Use [Modes] to list them programmatically.
//
// # Usage
//
//	p := profile.New(
//	    profile.WithMode("cpu"),
//	    profile.WithPath("/tmp/profiles"),
//	)
//	defer p.Start().Stop()
//
// Profile data is written to the configured directory with a name matching
// the mode (cpu.pprof, mem.pprof, and so on) and can be inspected with:
//
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
// The command line exposes the same settings through --pprof-mode and
// --pprof-dir, the latter defaulting to the pprof directory under the user
// cache directory (for example, ~/.cache/permute/pprof).
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
