package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from an empty directory so no stray .env is picked up
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "csv", cfg.Format)
	assert.Equal(t, "auto", cfg.Layout)
	assert.Empty(t, cfg.RulesFile)
}

func TestLoad_Env(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CORONA_LOG_LEVEL", "debug")
	t.Setenv("CORONA_FORMAT", "json")
	t.Setenv("CORONA_LAYOUT", "tbody")
	t.Setenv("CORONA_RULES_FILE", "rules.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "tbody", cfg.Layout)
	assert.Equal(t, "rules.yaml", cfg.RulesFile)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CORONA_FORMAT=json\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("CORONA_FORMAT") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoad_MixedCase(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CORONA_LOG_LEVEL", "Debug")
	t.Setenv("CORONA_FORMAT", " JSON ")
	t.Setenv("CORONA_LAYOUT", "TBody")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "tbody", cfg.Layout)
}

func TestLoad_InvalidLeftForCaller(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CORONA_FORMAT", "xml")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "xml", cfg.Format)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")

	cfg.Format = "json"
	assert.NoError(t, cfg.Validate())
}
