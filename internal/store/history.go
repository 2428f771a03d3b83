package store

import (
	"context"
	"fmt"
	"time"

	"github.com/hazyhaar/domdiff/delta"
)

// InsertReport persists a report. The counts are denormalised for cheap
// trend queries; the full report survives as JSON.
func (s *Store) InsertReport(ctx context.Context, r *delta.Report) error {
	payload, err := delta.MarshalReport(r)
	if err != nil {
		return fmt.Errorf("store: marshal report: %w", err)
	}

	createdAt := r.Timestamp
	if createdAt == 0 {
		createdAt = time.Now().UnixMilli()
	}

	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO diff_reports (id, page_id, page_url, added, removed, modified, unchanged, report_json, created_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		r.ID, r.PageID, r.PageURL,
		len(r.AddedNodes), len(r.RemovedNodes), len(r.ModifiedNodes), len(r.UnchangedNodes),
		string(payload), createdAt,
	)
	if err != nil {
		return fmt.Errorf("store: insert report: %w", err)
	}
	return nil
}

// RecentReports returns the latest reports for a page, newest first. An
// empty pageID returns reports for all pages.
func (s *Store) RecentReports(ctx context.Context, pageID string, limit int) ([]*delta.Report, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT report_json FROM diff_reports`
	args := []any{}
	if pageID != "" {
		query += ` WHERE page_id = ?`
		args = append(args, pageID)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query reports: %w", err)
	}
	defer rows.Close()

	var reports []*delta.Report
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		r, err := delta.UnmarshalReport([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("store: decode report: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}
