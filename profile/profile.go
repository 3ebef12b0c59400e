package profile

// Stopper stops a running profiler. Stop is safe to call on every value
// returned by [Profiler.Start], including no-op profilers.
type Stopper interface{ Stop() }

// Profiler describes a profiling session.
type Profiler struct {
	// Mode selects the profile type. An empty or unsupported mode disables
	// profiling.
	Mode string
	// Path is the output directory for profile data. The current directory
	// is used if empty.
	Path string
	// Quiet suppresses the profiler's own start and stop messages.
	Quiet bool
}

// Option configures a [Profiler].
type Option func(Profiler) Profiler

// New returns a [Profiler] configured with opts.
func New(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		p = opt(p)
	}

	return p
}

// WithMode sets the profile type.
func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.Mode = mode

		return p
	}
}

// WithPath sets the output directory.
func WithPath(path string) Option {
	return func(p Profiler) Profiler {
		p.Path = path

		return p
	}
}

// WithQuiet sets whether the profiler's own messages are suppressed.
func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.Quiet = quiet

		return p
	}
}

// Enabled reports whether p would collect any profile data when started.
func (p Profiler) Enabled() bool { return supported(p.Mode) }

// Start begins profiling and returns a [Stopper] that ends it. If p is not
// [Profiler.Enabled], the returned Stopper does nothing.
func (p Profiler) Start() Stopper {
	if !p.Enabled() {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
