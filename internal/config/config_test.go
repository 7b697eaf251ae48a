package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "results", cfg.Pipeline.OutputPrefix)
	assert.Equal(t, "接通", cfg.Pipeline.ConnectedSheet)
	assert.Equal(t, "A", cfg.Pipeline.IntentionSheet)
	assert.Equal(t, 2, cfg.AreaFilter.AreaColumn)

	// The blocklist has no built-in default.
	assert.Empty(t, cfg.AreaFilter.BlockedAreas)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
  format: json
pipeline:
  output_prefix: campaign
area_filter:
  blocked_areas: "上海,北京"
  area_column: 3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "campaign", cfg.Pipeline.OutputPrefix)
	assert.Equal(t, "上海,北京", cfg.AreaFilter.BlockedAreas)
	assert.Equal(t, 3, cfg.AreaFilter.AreaColumn)

	// Untouched keys keep their defaults.
	assert.Equal(t, "接通", cfg.Pipeline.ConnectedSheet)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "json"}))
}

func TestInitLoggerBadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "shout", Format: "json"})
	require.Error(t, err)
}
