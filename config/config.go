// Package config resolves filesystem settings for the CLI shell from .env
// files and environment variables. The scheduling core never reads
// configuration from the environment.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Settings holds the directories the shell writes to.
type Settings struct {
	// ResultsDir is where rendered result files are written.
	ResultsDir string
	// LogDir enables a rotating log file sink when non-empty; empty means
	// console-only logging.
	LogDir string
}

// Load reads an optional .env file from the working directory, then resolves
// settings from the environment with defaults.
func Load() Settings {
	// Missing .env is fine; environment variables still apply.
	_ = godotenv.Load()

	return Settings{
		ResultsDir: getEnv("RESULTS_DIR", "results"),
		LogDir:     os.Getenv("LOGS_FOLDER"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
