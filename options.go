package ringbuffer

import (
	"io"
	"log/slog"
)

// Option configures a Synchronized buffer.
type Option func(*options)

type options struct {
	logger        *slog.Logger
	cleanupOnStop bool
}

func defaultOptions() options {
	return options{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		cleanupOnStop: true,
	}
}

// WithLogger sets the logger used for overwrite, drain and stop events.
// A nil logger leaves the default, which discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCleanupOnStop controls whether Stop calls Cleanup on the items still
// held by the buffer. Enabled by default.
func WithCleanupOnStop(enabled bool) Option {
	return func(o *options) {
		o.cleanupOnStop = enabled
	}
}
