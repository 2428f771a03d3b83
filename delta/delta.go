// Package delta defines the structured types emitted by domdiff. These are
// the public API contract: any consumer (sinks, the HTTP API, MCP tools)
// imports this package to receive and process diff reports.
package delta

import (
	"time"

	"github.com/hazyhaar/domdiff/diff"
	"github.com/hazyhaar/domdiff/dom"
)

// NodeRef identifies an element of a snapshot on the wire.
type NodeRef struct {
	Tag   string `json:"tag"`
	XPath string `json:"xpath,omitempty"`
}

// ModifiedRef is a matched pair plus its change descriptors.
type ModifiedRef struct {
	Old     NodeRef  `json:"old"`
	New     NodeRef  `json:"new"`
	Changes []string `json:"changes"`
}

// Report is the wire form of one comparison. One report = one complete
// four-way classification of a page at two points in time.
type Report struct {
	ID        string `json:"id"` // UUIDv7
	PageURL   string `json:"page_url,omitempty"`
	PageID    string `json:"page_id,omitempty"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds

	AddedNodes     []NodeRef     `json:"added"`
	RemovedNodes   []NodeRef     `json:"removed"`
	ModifiedNodes  []ModifiedRef `json:"modified"`
	UnchangedNodes []NodeRef     `json:"unchanged"`
}

// BuildReport flattens a comparison result into its wire form.
func BuildReport(id, pageURL, pageID string, res *diff.Result) Report {
	r := Report{
		ID:        id,
		PageURL:   pageURL,
		PageID:    pageID,
		Timestamp: time.Now().UnixMilli(),
	}
	for _, n := range res.Added {
		r.AddedNodes = append(r.AddedNodes, ref(n))
	}
	for _, n := range res.Removed {
		r.RemovedNodes = append(r.RemovedNodes, ref(n))
	}
	for _, m := range res.Modified {
		r.ModifiedNodes = append(r.ModifiedNodes, ModifiedRef{
			Old:     ref(m.Old),
			New:     ref(m.New),
			Changes: m.Changes,
		})
	}
	for _, n := range res.Unchanged {
		r.UnchangedNodes = append(r.UnchangedNodes, ref(n))
	}
	return r
}

func ref(n *dom.Node) NodeRef {
	return NodeRef{Tag: n.Tag, XPath: n.XPath}
}
