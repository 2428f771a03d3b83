// Package domdiff detects structural change in live web pages. It captures
// the element tree of a page at two points in time, infers node identity by
// structural similarity (instances are re-created on every capture, so no
// stable identity exists), and classifies every element as added, removed,
// modified, or unchanged.
//
// The engine lives in diff (matching) and dom (snapshot model); this package
// is the orchestrator: it manages the browser, runs the capture/wait/capture
// cycle per configured page, and emits delta.Report to sinks (stdout,
// webhook, sqlite history, callback) for consumers to process.
package domdiff

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hazyhaar/domdiff/delta"
	"github.com/hazyhaar/domdiff/diff"
	"github.com/hazyhaar/domdiff/dom"
	"github.com/hazyhaar/domdiff/idgen"
	"github.com/hazyhaar/domdiff/internal/browser"
	"github.com/hazyhaar/domdiff/internal/config"
	"github.com/hazyhaar/domdiff/internal/sink"
	"github.com/hazyhaar/domdiff/internal/store"
)

// Monitor is the top-level orchestrator. It manages the browser, per-page
// comparison loops, and sinks. Create one per domdiff instance.
type Monitor struct {
	cfg    *config.Config
	mgr    *browser.Manager
	sinkR  *sink.Router
	st     *store.Store
	wg     sync.WaitGroup
	mu     sync.Mutex
	cancel context.CancelFunc
	logger *slog.Logger
}

// New creates a Monitor from configuration. When the config names a store
// path, the sqlite history is opened and receives every report in addition
// to the given sinks.
func New(cfg *config.Config, logger *slog.Logger, sinks ...sink.Sink) (*Monitor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.ApplyDefaults()

	var st *store.Store
	if cfg.Store.Path != "" {
		var err error
		st, err = store.Open(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("domdiff: open store: %w", err)
		}
		sinks = append(sinks, sink.NewStore(st))
	}

	mgr := browser.NewManager(browser.Config{
		RemoteURL:        cfg.Browser.Remote,
		Stealth:          cfg.Browser.Stealth,
		ResourceBlocking: cfg.Browser.ResourceBlocking,
		Logger:           logger,
	})

	return &Monitor{
		cfg:    cfg,
		mgr:    mgr,
		sinkR:  sink.NewRouter(logger, sinks...),
		st:     st,
		logger: logger,
	}, nil
}

// Store returns the report history, or nil when none is configured.
func (m *Monitor) Store() *store.Store {
	return m.st
}

// Start launches the browser and begins the comparison loop for every
// configured page.
func (m *Monitor) Start(ctx context.Context) error {
	if _, err := m.mgr.Start(); err != nil {
		return fmt.Errorf("domdiff: start browser: %w", err)
	}

	m.mu.Lock()
	ctx, m.cancel = context.WithCancel(ctx)
	m.mu.Unlock()

	for _, page := range m.cfg.Pages {
		m.wg.Add(1)
		go func(pageCfg config.PageConfig) {
			defer m.wg.Done()
			m.watchPage(ctx, pageCfg)
		}(page)
	}
	return nil
}

// Stop cancels all page loops and shuts down sinks, store, and browser.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	m.mu.Unlock()

	m.wg.Wait()
	m.sinkR.Close()
	if m.st != nil {
		m.st.Close()
	}
	m.mgr.Close()
}

// watchPage runs the continuous comparison loop for one page: capture a
// baseline, wait the configured interval, capture again, diff, emit, roll
// the baseline forward. The tab stays open across cycles.
func (m *Monitor) watchPage(ctx context.Context, pageCfg config.PageConfig) {
	tab, err := browser.OpenTab(ctx, m.mgr, pageCfg.URL, pageCfg.ID)
	if err != nil {
		m.logger.Error("domdiff: open tab", "url", pageCfg.URL, "error", err)
		return
	}
	defer tab.Close()

	baseline, err := browser.CaptureTree(ctx, tab)
	if err != nil {
		m.logger.Error("domdiff: baseline capture", "url", pageCfg.URL, "error", err)
		return
	}

	m.logger.Info("domdiff: monitoring page",
		"url", pageCfg.URL, "id", pageCfg.ID, "interval", pageCfg.Interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(pageCfg.Interval):
		}

		current, err := browser.CaptureTree(ctx, tab)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			m.logger.Error("domdiff: capture", "url", pageCfg.URL, "error", err)
			continue
		}

		res := diff.Compare(baseline, current)
		report := delta.BuildReport(idgen.New(), pageCfg.URL, pageCfg.ID, res)
		if err := m.sinkR.Send(ctx, report); err != nil {
			m.logger.Warn("domdiff: emit report", "url", pageCfg.URL, "error", err)
		}

		m.logger.Debug("domdiff: cycle complete",
			"url", pageCfg.URL,
			"added", len(res.Added),
			"removed", len(res.Removed),
			"modified", len(res.Modified),
			"unchanged", len(res.Unchanged))

		// The latest capture becomes the next baseline.
		baseline = current
	}
}

// DiffPage runs one capture/wait/capture cycle against a URL and returns
// the comparison result. The tab is opened and closed for this call.
func (m *Monitor) DiffPage(ctx context.Context, pageURL, pageID string, delay time.Duration) (*diff.Result, error) {
	tab, err := browser.OpenTab(ctx, m.mgr, pageURL, pageID)
	if err != nil {
		return nil, fmt.Errorf("domdiff: open tab: %w", err)
	}
	defer tab.Close()

	initial, err := browser.CaptureTree(ctx, tab)
	if err != nil {
		return nil, fmt.Errorf("domdiff: initial capture: %w", err)
	}

	return diff.Track(ctx, initial, delay, func(ctx context.Context) (*dom.Node, error) {
		return browser.CaptureTree(ctx, tab)
	})
}
