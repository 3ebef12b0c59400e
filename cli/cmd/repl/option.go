package repl

import "github.com/ardnew/permute/log"

const (
	defaultDisplay     = 100
	defaultLimit       = 100_000
	defaultHistorySize = 1000
)

type config struct {
	logger      log.Logger
	display     int
	limit       int
	historySize int
}

// Option configures [Run].
type Option func(config) config

// WithLogger sets the logger for trace records. Records are discarded by
// default.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}

// WithDisplay sets the maximum number of outputs printed per expansion.
func WithDisplay(n int) Option {
	return func(c config) config {
		if n > 0 {
			c.display = n
		}

		return c
	}
}

// WithLimit sets the maximum number of outputs computed per expansion.
// Zero disables the limit.
func WithLimit(n int) Option {
	return func(c config) config {
		c.limit = max(n, 0)

		return c
	}
}

// WithHistorySize sets the number of history entries retained on disk.
func WithHistorySize(n int) Option {
	return func(c config) config {
		if n > 0 {
			c.historySize = n
		}

		return c
	}
}

func makeConfig(opts ...Option) config {
	c := config{
		display:     defaultDisplay,
		limit:       defaultLimit,
		historySize: defaultHistorySize,
	}

	for _, opt := range opts {
		c = opt(c)
	}

	return c
}
