package domdiff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/domdiff/delta"
	"github.com/hazyhaar/domdiff/diff"
	"github.com/hazyhaar/domdiff/dom"
	"github.com/hazyhaar/domdiff/idgen"
)

// RegisterMCP registers domdiff tools on an MCP server.
func (m *Monitor) RegisterMCP(srv *mcp.Server) {
	m.registerCompareTool(srv)
	m.registerTrackTool(srv)
	m.registerHistoryTool(srv)
}

// inputSchema builds a JSON Schema object with type "object".
func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// addTool registers a decoded endpoint as an MCP tool, returning the
// endpoint's response as JSON text content.
func addTool(srv *mcp.Server, tool *mcp.Tool, endpoint func(ctx context.Context, args json.RawMessage) (any, error)) {
	srv.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp, err := endpoint(ctx, req.Params.Arguments)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(errors.New(err.Error()))
			return &res, nil
		}

		data, err := json.Marshal(resp)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}

// --- compare ---

type compareRequest struct {
	OldHTML string `json:"old_html"`
	NewHTML string `json:"new_html"`
	PageID  string `json:"page_id,omitempty"`
}

func (m *Monitor) registerCompareTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "domdiff_compare",
		Description: "Compare two HTML documents structurally. Returns every element classified as added, removed, modified (with change descriptors), or unchanged.",
		InputSchema: inputSchema(map[string]any{
			"old_html": map[string]any{"type": "string", "description": "Earlier HTML document"},
			"new_html": map[string]any{"type": "string", "description": "Later HTML document"},
			"page_id":  map[string]any{"type": "string", "description": "Optional page identifier recorded on the report"},
		}, []string{"old_html", "new_html"}),
	}

	addTool(srv, tool, func(ctx context.Context, args json.RawMessage) (any, error) {
		var r compareRequest
		if err := json.Unmarshal(args, &r); err != nil {
			return nil, fmt.Errorf("domdiff_compare: unmarshal: %w", err)
		}
		if r.OldHTML == "" || r.NewHTML == "" {
			return nil, fmt.Errorf("domdiff_compare: old_html and new_html required")
		}

		oldRoot, err := dom.ParseString(r.OldHTML)
		if err != nil {
			return nil, fmt.Errorf("domdiff_compare: old document: %w", err)
		}
		newRoot, err := dom.ParseString(r.NewHTML)
		if err != nil {
			return nil, fmt.Errorf("domdiff_compare: new document: %w", err)
		}

		res := diff.Compare(oldRoot, newRoot)
		return delta.BuildReport(idgen.New(), "", r.PageID, res), nil
	})
}

// --- track ---

type trackRequest struct {
	URL     string `json:"url"`
	DelayMS int    `json:"delay_ms,omitempty"`
	PageID  string `json:"page_id,omitempty"`
}

func (m *Monitor) registerTrackTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "domdiff_track",
		Description: "Capture a live page now and again after a delay, then report its structural changes.",
		InputSchema: inputSchema(map[string]any{
			"url":      map[string]any{"type": "string", "description": "Page URL to track"},
			"delay_ms": map[string]any{"type": "integer", "description": "Wait between captures in milliseconds (default 5000)"},
			"page_id":  map[string]any{"type": "string", "description": "Optional page identifier recorded on the report"},
		}, []string{"url"}),
	}

	addTool(srv, tool, func(ctx context.Context, args json.RawMessage) (any, error) {
		var r trackRequest
		if err := json.Unmarshal(args, &r); err != nil {
			return nil, fmt.Errorf("domdiff_track: unmarshal: %w", err)
		}
		if r.DelayMS <= 0 {
			r.DelayMS = 5000
		}
		pageID := r.PageID
		if pageID == "" {
			pageID = idgen.NanoID(8)()
		}

		res, err := m.DiffPage(ctx, r.URL, pageID, time.Duration(r.DelayMS)*time.Millisecond)
		if err != nil {
			return nil, err
		}
		return delta.BuildReport(idgen.New(), r.URL, pageID, res), nil
	})
}

// --- history ---

type historyRequest struct {
	PageID string `json:"page_id,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

func (m *Monitor) registerHistoryTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "domdiff_history",
		Description: "List recent diff reports from the history store, newest first.",
		InputSchema: inputSchema(map[string]any{
			"page_id": map[string]any{"type": "string", "description": "Filter by page ID (empty = all pages)"},
			"limit":   map[string]any{"type": "integer", "description": "Max reports (default 50)"},
		}, nil),
	}

	addTool(srv, tool, func(ctx context.Context, args json.RawMessage) (any, error) {
		var r historyRequest
		if err := json.Unmarshal(args, &r); err != nil {
			return nil, fmt.Errorf("domdiff_history: unmarshal: %w", err)
		}
		if m.st == nil {
			return nil, fmt.Errorf("domdiff_history: no store configured")
		}
		return m.st.RecentReports(ctx, r.PageID, r.Limit)
	})
}
