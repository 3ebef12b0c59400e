//go:build !pprof

package profile

// Modes returns the sorted list of supported profiling modes, which is empty
// when built without the pprof build tag.
func Modes() []string { return nil }

func supported(string) bool { return false }

func start(Profiler) Stopper { return ignore{} }
