package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hazyhaar/domdiff/delta"
	"github.com/hazyhaar/domdiff/diff"
	"github.com/hazyhaar/domdiff/dom"
	"github.com/hazyhaar/domdiff/idgen"
)

// DiffRequest is the body for POST /api/v1/diff.
type DiffRequest struct {
	OldHTML string `json:"old_html"`
	NewHTML string `json:"new_html"`
	PageID  string `json:"page_id,omitempty"`
}

// handleDiff compares two HTML documents and returns the report.
// POST /api/v1/diff
func (s *Service) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.OldHTML == "" || req.NewHTML == "" {
		http.Error(w, "old_html and new_html required", http.StatusBadRequest)
		return
	}

	oldRoot, err := dom.ParseString(req.OldHTML)
	if err != nil {
		http.Error(w, "Unparsable old_html", http.StatusBadRequest)
		return
	}
	newRoot, err := dom.ParseString(req.NewHTML)
	if err != nil {
		http.Error(w, "Unparsable new_html", http.StatusBadRequest)
		return
	}

	res := diff.Compare(oldRoot, newRoot)
	report := delta.BuildReport(idgen.New(), "", req.PageID, res)

	if s.st != nil && req.PageID != "" {
		if err := s.st.InsertReport(r.Context(), &report); err != nil {
			s.logger.Warn("httpapi: persist report failed", "page_id", req.PageID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, report)
}

// handleReports returns recent reports for a page, newest first.
// GET /api/v1/pages/{page_id}/reports?limit=N
func (s *Service) handleReports(w http.ResponseWriter, r *http.Request) {
	if s.st == nil {
		http.Error(w, "No report history configured", http.StatusNotFound)
		return
	}

	pageID := chi.URLParam(r, "page_id")
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	reports, err := s.st.RecentReports(r.Context(), pageID, limit)
	if err != nil {
		s.logger.Error("httpapi: query reports failed", "page_id", pageID, "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if reports == nil {
		reports = []*delta.Report{}
	}

	writeJSON(w, http.StatusOK, reports)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
