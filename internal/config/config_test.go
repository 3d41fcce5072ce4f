package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, filepath.Join("data", "commits.db"), cfg.CommitLogPath)
	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, "UTC", cfg.DisplayTimezone)
	assert.Empty(t, cfg.AllowedOperators)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pitwall.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: /var/lib/pitwall
listen_addr: ":8080"
display_timezone: Europe/Rome
allowed_operators:
  - alex
  - sam
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/pitwall", cfg.DataDir)
	assert.Equal(t, filepath.Join("/var/lib/pitwall", "commits.db"), cfg.CommitLogPath,
		"commit log defaults inside the data dir")
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "Europe/Rome", cfg.DisplayTimezone)
	assert.Equal(t, []string{"alex", "sam"}, cfg.AllowedOperators)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pitwall.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: \":8080\"\n"), 0o644))
	t.Setenv("PITWALL_ADDR", ":9000")
	t.Setenv("PITWALL_OPERATORS", "alex, sam ,")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, []string{"alex", "sam"}, cfg.AllowedOperators)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
