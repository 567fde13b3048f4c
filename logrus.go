package promreg

import (
	"github.com/sirupsen/logrus"
)

// WithLogrusLogger routes registry diagnostics to a logrus logger.
// logrus.FieldLogger already carries the leveled formatting methods the
// registry needs, so both *logrus.Logger and *logrus.Entry are accepted.
func WithLogrusLogger(l logrus.FieldLogger) Option {
	return func(cfg *registryConfig) { cfg.logger = l }
}

// WithStandardLogrus routes registry diagnostics to the process-wide standard
// logrus logger.
func WithStandardLogrus() Option {
	return WithLogrusLogger(logrus.StandardLogger())
}
