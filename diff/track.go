package diff

import (
	"context"
	"fmt"
	"time"

	"github.com/hazyhaar/domdiff/dom"
)

// SnapshotProvider produces a fresh snapshot tree on demand. Implementations
// decide how the tree is obtained: a live browser capture, a parsed HTML
// document, or a synthetic construction in tests.
type SnapshotProvider func(ctx context.Context) (*dom.Node, error)

// Track is the delayed comparison driver: it takes an already-captured
// baseline, waits for delay, requests the current tree from the provider,
// and compares the two.
//
// Provider failure propagates unchanged, with no retry or swallowing. The wait
// is the only suspension point and honours ctx cancellation.
func Track(ctx context.Context, initial *dom.Node, delay time.Duration, provider SnapshotProvider) (*Result, error) {
	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	current, err := provider(ctx)
	if err != nil {
		return nil, fmt.Errorf("diff: snapshot provider: %w", err)
	}

	return Compare(initial, current), nil
}
