package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Fetch backends.
const (
	FetchModeCLI = "cli"
	FetchModeAPI = "api"
)

type Config struct {
	ClusterName       string
	FetchMode         string
	OCBinary          string
	FetchTimeout      time.Duration
	OutputDir         string
	NamespacesExclude []string

	// Optional extras
	PDFSummary    bool
	HistoryDBPath string

	// Schedule mode
	ReportDay      string
	ReportTime     string
	RetentionWeeks int
}

func Load() (*Config, error) {
	cfg := &Config{
		ClusterName: getEnvOrDefault("CLUSTER_NAME", "default"),
		FetchMode:   strings.ToLower(getEnvOrDefault("FETCH_MODE", FetchModeCLI)),
		OCBinary:    getEnvOrDefault("OC_BINARY", "oc"),
		OutputDir:   getEnvOrDefault("OUTPUT_DIR", "."),
		ReportDay:   strings.ToLower(getEnvOrDefault("REPORT_DAY", "monday")),
		ReportTime:  getEnvOrDefault("REPORT_TIME", "09:00"),

		// Empty by default: the workbook is the artifact of record,
		// run history is opt-in.
		HistoryDBPath: os.Getenv("HISTORY_DB_PATH"),
	}

	if cfg.FetchMode != FetchModeCLI && cfg.FetchMode != FetchModeAPI {
		return nil, fmt.Errorf("invalid FETCH_MODE: %s (expected %q or %q)", cfg.FetchMode, FetchModeCLI, FetchModeAPI)
	}

	// All namespaces by default; the report covers the whole cluster scope.
	cfg.NamespacesExclude = parseCommaSeparated(os.Getenv("NAMESPACES_EXCLUDE"))

	timeoutStr := getEnvOrDefault("FETCH_TIMEOUT", "2m")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
	}
	cfg.FetchTimeout = timeout

	pdfStr := getEnvOrDefault("REPORT_PDF_SUMMARY", "false")
	pdf, err := strconv.ParseBool(pdfStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_PDF_SUMMARY: %w", err)
	}
	cfg.PDFSummary = pdf

	retentionStr := getEnvOrDefault("RETENTION_WEEKS", "8")
	retention, err := strconv.Atoi(retentionStr)
	if err != nil {
		return nil, fmt.Errorf("invalid RETENTION_WEEKS: %w", err)
	}
	if retention < 1 {
		return nil, fmt.Errorf("RETENTION_WEEKS must be at least 1")
	}
	cfg.RetentionWeeks = retention

	if _, err := time.Parse("15:04", cfg.ReportTime); err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIME format (expected HH:MM): %w", err)
	}

	validDays := map[string]bool{
		"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
		"friday": true, "saturday": true, "sunday": true,
	}
	if !validDays[cfg.ReportDay] {
		return nil, fmt.Errorf("invalid REPORT_DAY: %s", cfg.ReportDay)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseCommaSeparated(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
