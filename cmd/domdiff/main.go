// Command domdiff detects structural change in web pages.
//
// Usage:
//
//	domdiff -old before.html -new after.html    # offline diff of two files
//	domdiff -url https://example.com -delay 5s  # capture, wait, capture, diff
//	domdiff -config domdiff.yaml                # continuous monitoring daemon
//	domdiff -serve :8440 -db history.db         # HTTP diff API
//	domdiff -mcp -db history.db                 # MCP server on stdio
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/domdiff"
	"github.com/hazyhaar/domdiff/delta"
	"github.com/hazyhaar/domdiff/diff"
	"github.com/hazyhaar/domdiff/dom"
	"github.com/hazyhaar/domdiff/httpapi"
	"github.com/hazyhaar/domdiff/idgen"
	"github.com/hazyhaar/domdiff/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to domdiff.yaml config file")
	oldFile := flag.String("old", "", "earlier HTML file for offline diff")
	newFile := flag.String("new", "", "later HTML file for offline diff")
	trackURL := flag.String("url", "", "track a single URL: capture, wait, capture, diff")
	delay := flag.Duration("delay", 5*time.Second, "wait between captures for -url")
	serveAddr := flag.String("serve", "", "listen address for the HTTP diff API")
	mcpMode := flag.Bool("mcp", false, "run an MCP server on stdio")
	dbPath := flag.String("db", "", "sqlite report history path for -serve / -mcp")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, options{
		configPath: *configPath,
		oldFile:    *oldFile,
		newFile:    *newFile,
		trackURL:   *trackURL,
		delay:      *delay,
		serveAddr:  *serveAddr,
		mcpMode:    *mcpMode,
		dbPath:     *dbPath,
	}); err != nil {
		logger.Error("domdiff: fatal", "error", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	oldFile    string
	newFile    string
	trackURL   string
	delay      time.Duration
	serveAddr  string
	mcpMode    bool
	dbPath     string
}

func run(ctx context.Context, logger *slog.Logger, opts options) error {
	switch {
	case opts.oldFile != "" || opts.newFile != "":
		return runOffline(opts.oldFile, opts.newFile)
	case opts.trackURL != "":
		return runTrack(ctx, logger, opts.trackURL, opts.delay)
	case opts.serveAddr != "":
		return runServe(ctx, logger, opts.serveAddr, opts.dbPath)
	case opts.mcpMode:
		return runMCP(ctx, logger, opts.dbPath)
	case opts.configPath != "":
		return runConfig(ctx, logger, opts.configPath)
	}

	fmt.Fprintln(os.Stderr, "usage: domdiff -config <file> | -old <file> -new <file> | -url <url> | -serve <addr> | -mcp")
	os.Exit(1)
	return nil
}

func runOffline(oldPath, newPath string) error {
	if oldPath == "" || newPath == "" {
		return fmt.Errorf("offline diff needs both -old and -new")
	}

	oldRoot, err := parseFile(oldPath)
	if err != nil {
		return err
	}
	newRoot, err := parseFile(newPath)
	if err != nil {
		return err
	}

	res := diff.Compare(oldRoot, newRoot)
	return delta.WriteText(os.Stdout, fmt.Sprintf("%s vs %s", oldPath, newPath), res)
}

func parseFile(path string) (*dom.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	root, err := dom.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return root, nil
}

func runTrack(ctx context.Context, logger *slog.Logger, url string, delay time.Duration) error {
	cfg := &domdiff.Config{}
	m, err := domdiff.New(cfg, logger)
	if err != nil {
		return err
	}
	defer m.Stop()

	if err := m.Start(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	res, err := m.DiffPage(ctx, url, idgen.NanoID(8)(), delay)
	if err != nil {
		return fmt.Errorf("track: %w", err)
	}

	return delta.WriteText(os.Stdout, url, res)
}

func runConfig(ctx context.Context, logger *slog.Logger, path string) error {
	cfg, err := domdiff.LoadConfigFile(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var sinks []domdiff.Sink
	for _, sc := range cfg.Sinks {
		switch sc.Type {
		case "stdout":
			sinks = append(sinks, domdiff.NewStdoutSink(nil))
		case "webhook":
			sinks = append(sinks, domdiff.NewWebhookSink(sc.URL, logger))
		case "store":
			// Handled by the monitor when cfg.Store.Path is set.
		default:
			logger.Warn("domdiff: unknown sink type", "type", sc.Type)
		}
	}
	if len(sinks) == 0 && cfg.Store.Path == "" {
		sinks = append(sinks, domdiff.NewStdoutSink(nil))
	}

	m, err := domdiff.New(cfg, logger, sinks...)
	if err != nil {
		return err
	}
	defer m.Stop()

	if err := m.Start(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	<-ctx.Done()
	return nil
}

func runServe(ctx context.Context, logger *slog.Logger, addr, dbPath string) error {
	var st *store.Store
	if dbPath != "" {
		var err error
		st, err = store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
	}

	svc := httpapi.New(st, logger)
	srv := &http.Server{Addr: addr, Handler: svc.Router()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("domdiff: HTTP API listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func runMCP(ctx context.Context, logger *slog.Logger, dbPath string) error {
	cfg := &domdiff.Config{}
	if dbPath != "" {
		cfg.Store.Path = dbPath
	}

	m, err := domdiff.New(cfg, logger)
	if err != nil {
		return err
	}
	defer m.Stop()

	// The browser is needed only by domdiff_track; start it lazily on a
	// best-effort basis so compare/history tools work without Chrome.
	if err := m.Start(ctx); err != nil {
		logger.Warn("domdiff: browser unavailable, track tool disabled", "error", err)
	}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "domdiff",
		Version: "1.0.0",
	}, nil)
	m.RegisterMCP(srv)

	logger.Info("domdiff: MCP server on stdio")
	return srv.Run(ctx, &mcp.StdioTransport{})
}
