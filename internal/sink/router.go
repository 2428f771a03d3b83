package sink

import (
	"context"
	"log/slog"

	"github.com/hazyhaar/domdiff/delta"
)

// Router fans out reports to all configured sinks. One sink error does not
// block the others: errors are logged and the first encountered is
// returned.
type Router struct {
	sinks  []Sink
	logger *slog.Logger
}

// NewRouter creates a fan-out router delivering to all sinks.
func NewRouter(logger *slog.Logger, sinks ...Sink) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{sinks: sinks, logger: logger}
}

func (r *Router) Send(ctx context.Context, report delta.Report) error {
	var firstErr error
	for _, s := range r.sinks {
		if err := s.Send(ctx, report); err != nil {
			r.logger.Warn("sink: send report failed", "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (r *Router) Close() error {
	var firstErr error
	for _, s := range r.sinks {
		if err := s.Close(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
