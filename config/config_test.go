package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 44100, cfg.Analysis.SampleRate)
	require.Equal(t, 1024, cfg.Analysis.WindowSize)
	require.Equal(t, 512, cfg.Analysis.HopSize)
	require.Equal(t, 60.0, cfg.Analysis.MinBPM)
	require.Equal(t, 180.0, cfg.Analysis.MaxBPM)

	// The defaults are persisted for the next run
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.Analysis.Workers = 4
	cfg.Mood.Model = "gemini-2.5-pro"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, loaded.Analysis.Workers)
	require.Equal(t, "gemini-2.5-pro", loaded.Mood.Model)
}

func TestStorageSettingsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.Storage.DBType = "mongo"
	cfg.Storage.SQLitePath = "elsewhere/tags.db"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "mongo", loaded.Storage.DBType)
	require.Equal(t, "elsewhere/tags.db", loaded.Storage.SQLitePath)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DB_TYPE", "mongo")
	t.Setenv("ANALYSIS_WORKERS", "8")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	require.Equal(t, "mongo", cfg.Storage.DBType)
	require.Equal(t, 8, cfg.Analysis.Workers)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"analysis": {"sampleRate": -1}}`), 0644))

	_, err := Load(path)
	require.Error(t, err)
}
