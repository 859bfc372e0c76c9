package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "0.01", cfg.Rules.ClearingTolerance)
	assert.Equal(t, []int{30, 60, 90}, cfg.Rules.AgingBucketDays)
	assert.Equal(t, 5, cfg.Rules.TopComponents)
	assert.Equal(t, 20, cfg.Rules.HeaderScanRows)
	assert.False(t, cfg.Narrative.Enabled)
	assert.Equal(t, "gemini-2.0-flash", cfg.Narrative.Model)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
output_dir: /tmp/recon-out
log_level: debug
rules:
  clearing_tolerance: "0.05"
  aging_bucket_days: [15, 45]
  top_components: 3
narrative:
  enabled: true
  model: gemini-2.5-pro
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/recon-out", cfg.OutputDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "0.05", cfg.Rules.ClearingTolerance)
	assert.Equal(t, []int{15, 45}, cfg.Rules.AgingBucketDays)
	assert.Equal(t, 3, cfg.Rules.TopComponents)
	assert.True(t, cfg.Narrative.Enabled)
	assert.Equal(t, "gemini-2.5-pro", cfg.Narrative.Model)

	// Unset values still get defaults.
	assert.Equal(t, "./input_archive", cfg.InputArchiveDir)
	assert.Equal(t, "2024-01-01", cfg.Rules.APWriteOffCutoff)
}

func TestLoad_RejectsBadTolerance(t *testing.T) {
	path := writeConfig(t, "rules:\n  clearing_tolerance: \"lots\"\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsBadCutoffDate(t *testing.T) {
	path := writeConfig(t, "rules:\n  ap_write_off_cutoff: \"January 2024\"\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsUnsortedBuckets(t *testing.T) {
	path := writeConfig(t, "rules:\n  aging_bucket_days: [60, 30]\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestDerivedAccessors(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "0.01", cfg.Tolerance().String())
	assert.Equal(t, "2024-01-01", cfg.WriteOffCutoff().Format("2006-01-02"))
}
