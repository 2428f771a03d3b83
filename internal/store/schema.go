package store

// Schema contains the complete DDL for the domdiff history tables.
const Schema = `
-- Diff reports: one row per completed comparison
CREATE TABLE IF NOT EXISTS diff_reports (
    id          TEXT PRIMARY KEY,
    page_id     TEXT NOT NULL DEFAULT '',
    page_url    TEXT NOT NULL DEFAULT '',
    added       INTEGER NOT NULL,
    removed     INTEGER NOT NULL,
    modified    INTEGER NOT NULL,
    unchanged   INTEGER NOT NULL,
    report_json TEXT NOT NULL,
    created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_page ON diff_reports(page_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_reports_time ON diff_reports(created_at DESC);
`
