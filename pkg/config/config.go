// Package config holds the CLI layer's configuration. The parsing and
// rewriting engine itself is configuration-free; everything here concerns
// the collaborators around it (SCEWIN location, default file names, logging).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultScewinExe = "SCEWIN_64.exe"
	DefaultNvramName = "nvram.txt"
	// TunedNvramName is the overlay written next to SCEWIN before an import.
	TunedNvramName = "nvram_tuned.txt"
)

type Config struct {
	ScewinPath    string
	NvramFile     string
	ScewinTimeout time.Duration
	PresetFile    string // empty = embedded default library
	LogLevel      string
	LogFile       string
}

// Load reads configuration from a .env file (when present) and the
// environment. Flags override these values in main.
func Load() (*Config, error) {
	_ = godotenv.Load() // optional; plain env vars work without it

	cfg := &Config{
		ScewinPath: getEnv("SCEWIN_PATH", defaultScewinPath()),
		NvramFile:  getEnv("NVRAM_FILE", DefaultNvramName),
		PresetFile: os.Getenv("PRESET_FILE"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFile:    os.Getenv("LOG_FILE"),
	}

	timeout := getEnv("SCEWIN_TIMEOUT", "30s")
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid SCEWIN_TIMEOUT %q: %w", timeout, err)
	}
	cfg.ScewinTimeout = d

	return cfg, nil
}

// defaultScewinPath looks for the executable beside the tool's own binary,
// which is how AMI ships SCEWIN alongside tuning tools.
func defaultScewinPath() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultScewinExe
	}
	return filepath.Join(filepath.Dir(exe), DefaultScewinExe)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
