// Package sink defines output backends for domdiff reports.
package sink

import (
	"context"

	"github.com/hazyhaar/domdiff/delta"
)

// Sink is the output interface. Implementations deliver diff reports to
// different backends (stdout, webhook, sqlite history, in-process callback).
type Sink interface {
	Send(ctx context.Context, report delta.Report) error
	Close() error
}
