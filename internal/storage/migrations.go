package storage

const schema = `
CREATE TABLE IF NOT EXISTS report_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	cluster_name TEXT NOT NULL,
	generated_at DATETIME NOT NULL,
	workbook_path TEXT NOT NULL,
	namespaces_with_quota INTEGER NOT NULL DEFAULT 0,
	namespaces_without_quota INTEGER NOT NULL DEFAULT 0,
	containers_with_limits INTEGER NOT NULL DEFAULT 0,
	containers_without_limits INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_report_runs_generated ON report_runs(generated_at);
CREATE INDEX IF NOT EXISTS idx_report_runs_cluster ON report_runs(cluster_name);
`
