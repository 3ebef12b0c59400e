package lang

import "github.com/ardnew/permute/log"

// DefaultLimit is the default maximum number of strings produced by
// [Statement.FullyExpand]. Zero means unlimited.
// Users may modify this before expanding to change the default.
var DefaultLimit = 0

// config holds the options shared by parsing and expansion.
type config struct {
	logger log.Logger // zero value discards all records
	limit  int
}

// Option configures parsing or expansion behavior.
type Option func(*config)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithLimit caps the number of strings [Statement.FullyExpand] may produce.
// Expansion fails with [ErrLimitExceeded] once the cap would be passed.
// A limit of zero or less disables the cap.
func WithLimit(limit int) Option {
	return func(c *config) {
		c.limit = max(limit, 0)
	}
}

func makeConfig(opts ...Option) config {
	c := config{limit: DefaultLimit}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}
