package meta

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds the runtime settings read from the environment.
type Config struct {
	LogLevel   string
	TuningPath string
	StatsPath  string
	Seed       uint64
}

// Load reads the configuration from environment variables with defaults.
func Load() Config {
	return Config{
		LogLevel:   envOrDefault("LOG_LEVEL", "info"),
		TuningPath: os.Getenv("RINGWARS_TUNING"),
		StatsPath:  envOrDefault("RINGWARS_STATS", "statistics/stats.db"),
		Seed:       seedOrNow(os.Getenv("RINGWARS_SEED")),
	}
}

// InDir resolves a relative path against the agent directory dir. Absolute
// and empty paths are returned unchanged.
func InDir(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func seedOrNow(v string) uint64 {
	if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
		return seed
	}
	return uint64(time.Now().UnixNano())
}
