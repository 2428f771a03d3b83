package diff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hazyhaar/domdiff/dom"
)

func TestTrackComparesAfterDelay(t *testing.T) {
	initial := page(dom.NewElement("div", map[string]string{"id": "a"}))

	called := false
	provider := func(ctx context.Context) (*dom.Node, error) {
		called = true
		return page(
			dom.NewElement("div", map[string]string{"id": "a"}),
			dom.NewElement("div", map[string]string{"id": "b"}),
		), nil
	}

	res, err := Track(context.Background(), initial, time.Millisecond, provider)
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if !called {
		t.Fatalf("provider was not called")
	}
	if len(res.Added) != 1 {
		t.Fatalf("got %d added, want 1", len(res.Added))
	}
}

func TestTrackProviderErrorPropagates(t *testing.T) {
	initial := page(dom.NewElement("div", nil))
	sentinel := errors.New("capture failed")

	calls := 0
	provider := func(ctx context.Context) (*dom.Node, error) {
		calls++
		return nil, sentinel
	}

	res, err := Track(context.Background(), initial, 0, provider)
	if res != nil {
		t.Fatalf("got result %v, want nil on provider failure", res)
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("got error %v, want wrapped sentinel", err)
	}
	if calls != 1 {
		t.Fatalf("provider called %d times, want 1 (no retry)", calls)
	}
}

func TestTrackCancelledDuringWait(t *testing.T) {
	initial := page(dom.NewElement("div", nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := func(ctx context.Context) (*dom.Node, error) {
		t.Fatalf("provider must not run after cancellation")
		return nil, nil
	}

	_, err := Track(ctx, initial, time.Hour, provider)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got error %v, want context.Canceled", err)
	}
}
