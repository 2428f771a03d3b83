package sink

import (
	"context"

	"github.com/hazyhaar/domdiff/delta"
)

// ReportFunc is called for each report (in-process, zero serialisation).
type ReportFunc func(ctx context.Context, report delta.Report) error

// Callback delivers reports via Go function calls. When the consumer lives
// in the same binary as the monitor, reports arrive as in-memory calls with
// zero serialisation overhead.
type Callback struct {
	onReport ReportFunc
}

// NewCallback creates a Callback sink. A nil handler drops reports.
func NewCallback(onReport ReportFunc) *Callback {
	return &Callback{onReport: onReport}
}

func (c *Callback) Send(ctx context.Context, report delta.Report) error {
	if c.onReport != nil {
		return c.onReport(ctx, report)
	}
	return nil
}

func (c *Callback) Close() error { return nil }
