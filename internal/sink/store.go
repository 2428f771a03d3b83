package sink

import (
	"context"

	"github.com/hazyhaar/domdiff/delta"
	"github.com/hazyhaar/domdiff/internal/store"
)

// StoreSink persists every report to the sqlite history. The store stays
// owned by the caller: Close here is a no-op so a store shared with the
// HTTP API is not torn down by the sink router.
type StoreSink struct {
	st *store.Store
}

// NewStore creates a sink writing to the given store.
func NewStore(st *store.Store) *StoreSink {
	return &StoreSink{st: st}
}

func (s *StoreSink) Send(ctx context.Context, report delta.Report) error {
	return s.st.InsertReport(ctx, &report)
}

func (s *StoreSink) Close() error { return nil }
