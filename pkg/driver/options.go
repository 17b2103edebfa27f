package driver

import "go.uber.org/zap"

// Option configures Parse and Tokenize.
type Option func(*config)

type config struct {
	logger        *zap.Logger
	allowTrailing bool
}

// WithLogger sets the logger both phases report to. It is handed down to the
// cursors, so raised errors show up there too.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// AllowTrailing lets Parse succeed when parse leaves tokens unconsumed.
func AllowTrailing() Option {
	return func(c *config) {
		c.allowTrailing = true
	}
}

func newConfig(opts []Option) config {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
