package config

import (
	"os"
	"path/filepath"
)

const appName = "taskdeck"

// DefaultSlotKey names the storage slot holding the task collection.
const DefaultSlotKey = "tasks"

// Config holds runtime settings resolved from the environment. Command line
// flags override these values.
type Config struct {
	DBPath   string
	LogFile  string
	LogLevel string
	SlotKey  string
	// Ephemeral keeps tasks in memory only.
	Ephemeral bool
}

// Load resolves the configuration from XDG defaults and environment
// overrides.
func Load() (*Config, error) {
	dbPath, err := defaultDBPath()
	if err != nil {
		return nil, err
	}
	logFile, err := defaultLogPath()
	if err != nil {
		return nil, err
	}
	return &Config{
		DBPath:   EnvOrDefault("TASKDECK_DB_PATH", dbPath),
		LogFile:  EnvOrDefault("TASKDECK_LOG_FILE", logFile),
		LogLevel: EnvOrDefault("LOG_LEVEL", "info"),
		SlotKey:  EnvOrDefault("TASKDECK_SLOT", DefaultSlotKey),
	}, nil
}

// EnvOrDefault returns the environment variable value or fallback when it is empty.
func EnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func xdgDir(env string, fallback ...string) (string, error) {
	dir := os.Getenv(env)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(append([]string{home}, fallback...)...)
	}
	return filepath.Join(dir, appName), nil
}

func defaultDBPath() (string, error) {
	dir, err := xdgDir("XDG_DATA_HOME", ".local", "share")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName+".db"), nil
}

func defaultLogPath() (string, error) {
	dir, err := xdgDir("XDG_STATE_HOME", ".local", "state")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName+".log"), nil
}
