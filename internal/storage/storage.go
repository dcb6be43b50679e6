// Package storage keeps an optional sqlite ledger of past report runs so the
// summary counts can be compared across weeks. A history failure never fails
// a run; the workbook is the artifact of record.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type Storage struct {
	db *sql.DB
}

func New(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}

	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

func (s *Storage) migrate() error {
	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// RecordRun inserts one completed report run and returns its row ID.
func (s *Storage) RecordRun(run *Run) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO report_runs (
			cluster_name, generated_at, workbook_path,
			namespaces_with_quota, namespaces_without_quota,
			containers_with_limits, containers_without_limits
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ClusterName, run.GeneratedAt, run.WorkbookPath,
		run.NamespacesWithQuota, run.NamespacesWithoutQuota,
		run.ContainersWithLimits, run.ContainersWithoutLimits,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}
	return result.LastInsertId()
}

// RecentRuns returns up to limit runs, newest first.
func (s *Storage) RecentRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, cluster_name, generated_at, workbook_path,
			namespaces_with_quota, namespaces_without_quota,
			containers_with_limits, containers_without_limits
		FROM report_runs
		ORDER BY generated_at DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.ID, &run.ClusterName, &run.GeneratedAt, &run.WorkbookPath,
			&run.NamespacesWithQuota, &run.NamespacesWithoutQuota,
			&run.ContainersWithLimits, &run.ContainersWithoutLimits,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (s *Storage) CleanupOldRuns(retentionWeeks int) error {
	cutoff := time.Now().AddDate(0, 0, -retentionWeeks*7)
	_, err := s.db.Exec("DELETE FROM report_runs WHERE generated_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup old runs: %w", err)
	}
	return nil
}
