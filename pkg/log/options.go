package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Option configures a logger built by New or updated by SetOptions.
type Option func(logger *logger)

// WithLevel drops the entries below level.
func WithLevel(level Level) Option {
	return func(logger *logger) {
		logger.Logger.SetLevel(level.ToLogrusLevel())
	}
}

// WithOutput sends the entries to output. The CLI writes them to stderr so
// that listings on stdout stay machine readable.
func WithOutput(output io.Writer) Option {
	return func(logger *logger) {
		logger.Logger.SetOutput(output)
	}
}

// WithFormatter renders the entries with formatter, usually one returned by
// ParseFormat.
func WithFormatter(formatter logrus.Formatter) Option {
	return func(logger *logger) {
		logger.Logger.SetFormatter(formatter)
	}
}
