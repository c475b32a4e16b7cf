package meta

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTuning(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadTuning(t *testing.T) {
	t.Run("overriding a subset keeps the other defaults", func(t *testing.T) {
		path := writeTuning(t, "attack_trigger: 1.3\nopponent_node_limit: 7\n")

		got, err := LoadTuning(path)

		require.NoError(t, err)
		require.Equal(t, 1.3, got.AttackTrigger)
		require.Equal(t, 7, got.OpponentNodeLimit)
		require.Equal(t, Defaults().DefensiveTrigger, got.DefensiveTrigger, "Unset fields should keep their defaults")
		require.Equal(t, Defaults().SeedRatios, got.SeedRatios)
	})

	t.Run("replacing the seed ratios", func(t *testing.T) {
		path := writeTuning(t, "seed_ratios: [0.2, 0.2, 0.2, 0.2, 0.2]\n")

		got, err := LoadTuning(path)

		require.NoError(t, err)
		require.Equal(t, []float64{0.2, 0.2, 0.2, 0.2, 0.2}, got.SeedRatios)
	})

	t.Run("rejecting seed ratios above one", func(t *testing.T) {
		path := writeTuning(t, "seed_ratios: [0.5, 0.5, 0.5, 0, 0]\n")

		_, err := LoadTuning(path)

		require.Error(t, err)
	})

	t.Run("rejecting the wrong number of seed ratios", func(t *testing.T) {
		path := writeTuning(t, "seed_ratios: [1]\n")

		_, err := LoadTuning(path)

		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTuning(filepath.Join(t.TempDir(), "absent.yaml"))

		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RINGWARS_SEED", "42")
	t.Setenv("RINGWARS_STATS", "")

	cfg := Load()

	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, uint64(42), cfg.Seed)
	require.Equal(t, "statistics/stats.db", cfg.StatsPath, "Empty variables should fall back to defaults")
}

func TestInDir(t *testing.T) {
	t.Run("relative paths land in the agent directory", func(t *testing.T) {
		require.Equal(t, filepath.Join("agents", "red", "statistics", "stats.db"), InDir(filepath.Join("agents", "red"), "statistics/stats.db"))
	})

	t.Run("absolute and empty paths are kept", func(t *testing.T) {
		abs := filepath.Join(t.TempDir(), "stats.db")

		require.Equal(t, abs, InDir("agents/red", abs))
		require.Empty(t, InDir("agents/red", ""))
	})
}
