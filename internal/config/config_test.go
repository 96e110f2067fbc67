package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/courtdata/pbparse/internal/config"
)

func TestReadDefaults(t *testing.T) {
	conf, errRead := config.Read("")
	require.NoError(t, errRead)

	require.Equal(t, "basketball_analysis_output", conf.Output.Dir)
	require.True(t, conf.Output.CSV)
	require.False(t, conf.Output.SQLite)
	require.Equal(t, "info", conf.Log.Level)
	require.InDelta(t, 40.0, conf.Game.RegulationMinutes, 0.0001)
	require.Equal(t, 20, conf.Game.InferWindow)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pbparse.yml")
	body := []byte(`
output:
  dir: out
  sqlite: true
  sqlite_path: games.db
game:
  regulation_minutes: 48
`)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	conf, errRead := config.Read(path)
	require.NoError(t, errRead)

	require.Equal(t, "out", conf.Output.Dir)
	require.True(t, conf.Output.SQLite)
	require.Equal(t, "games.db", conf.Output.SQLitePath)
	require.InDelta(t, 48.0, conf.Game.RegulationMinutes, 0.0001)
	// Untouched settings keep their defaults.
	require.True(t, conf.Output.CSV)
}

func TestReadMissingFile(t *testing.T) {
	_, errRead := config.Read(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, errRead)
}

func TestReadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pbparse.yml")
	body := []byte(`
output:
  sqlite: true
`)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	// sqlite enabled without a path fails validation.
	_, errRead := config.Read(path)
	require.Error(t, errRead)
}
