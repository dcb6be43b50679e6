package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "default", cfg.ClusterName)
	assert.Equal(t, FetchModeCLI, cfg.FetchMode)
	assert.Equal(t, "oc", cfg.OCBinary)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, 2*time.Minute, cfg.FetchTimeout)
	assert.Empty(t, cfg.NamespacesExclude)
	assert.False(t, cfg.PDFSummary)
	assert.Empty(t, cfg.HistoryDBPath)
	assert.Equal(t, "monday", cfg.ReportDay)
	assert.Equal(t, "09:00", cfg.ReportTime)
	assert.Equal(t, 8, cfg.RetentionWeeks)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CLUSTER_NAME", "prod")
	t.Setenv("FETCH_MODE", "API")
	t.Setenv("OC_BINARY", "/usr/local/bin/oc")
	t.Setenv("FETCH_TIMEOUT", "30s")
	t.Setenv("OUTPUT_DIR", "/tmp/reports")
	t.Setenv("NAMESPACES_EXCLUDE", "kube-system, openshift-monitoring ,")
	t.Setenv("REPORT_PDF_SUMMARY", "true")
	t.Setenv("HISTORY_DB_PATH", "/data/history.db")
	t.Setenv("REPORT_DAY", "Friday")
	t.Setenv("REPORT_TIME", "18:30")
	t.Setenv("RETENTION_WEEKS", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.ClusterName)
	assert.Equal(t, FetchModeAPI, cfg.FetchMode)
	assert.Equal(t, "/usr/local/bin/oc", cfg.OCBinary)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "/tmp/reports", cfg.OutputDir)
	assert.Equal(t, []string{"kube-system", "openshift-monitoring"}, cfg.NamespacesExclude)
	assert.True(t, cfg.PDFSummary)
	assert.Equal(t, "/data/history.db", cfg.HistoryDBPath)
	assert.Equal(t, "friday", cfg.ReportDay)
	assert.Equal(t, "18:30", cfg.ReportTime)
	assert.Equal(t, 4, cfg.RetentionWeeks)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad fetch mode", "FETCH_MODE", "carrier-pigeon"},
		{"bad timeout", "FETCH_TIMEOUT", "soon"},
		{"bad pdf flag", "REPORT_PDF_SUMMARY", "maybe"},
		{"bad retention", "RETENTION_WEEKS", "many"},
		{"zero retention", "RETENTION_WEEKS", "0"},
		{"bad report time", "REPORT_TIME", "25:99"},
		{"bad report day", "REPORT_DAY", "someday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
