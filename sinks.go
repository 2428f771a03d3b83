package domdiff

import (
	"context"
	"io"
	"log/slog"

	"github.com/hazyhaar/domdiff/delta"
	"github.com/hazyhaar/domdiff/internal/sink"
)

// Sink is the output interface for domdiff reports.
type Sink = sink.Sink

// NewStdoutSink creates a stdout JSON-lines sink.
func NewStdoutSink(w io.Writer) Sink {
	return sink.NewStdout(w)
}

// NewWebhookSink creates a webhook POST sink with retry.
func NewWebhookSink(url string, logger *slog.Logger) Sink {
	return sink.NewWebhook(url, sink.WithWebhookLogger(logger))
}

// ReportFunc is called for each report.
type ReportFunc = sink.ReportFunc

// NewCallbackSink creates an in-process callback sink with zero serialisation
// when the consumer lives in the same binary.
func NewCallbackSink(onReport func(ctx context.Context, report delta.Report) error) Sink {
	return sink.NewCallback(onReport)
}
