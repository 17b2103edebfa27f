package parser

import "go.uber.org/zap"

// Option configures a Cursor.
type Option func(*config)

type config struct {
	logger *zap.Logger
}

// WithLogger sets the logger parse errors are reported to at debug level.
// The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func newConfig(opts []Option) config {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
