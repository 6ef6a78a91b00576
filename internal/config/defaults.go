package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/APrigarina/open-model-zoo/internal/envvar"
)

// DefaultConfigPath returns the default path for the config directory.
func DefaultConfigPath() string {
	if p := os.Getenv(envvar.OMZConfigPath); p != "" {
		return p
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "open-model-zoo", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "open-model-zoo")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "open-model-zoo")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "open-model-zoo")
		}
		return filepath.Join(home, ".config", "open-model-zoo")
	}
}

// DefaultModelsPath returns the default path for the models directory.
func DefaultModelsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "open-model-zoo", "models")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Local", "open-model-zoo", "models")
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "open-model-zoo", "models")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, "open-model-zoo", "models")
		}
		return filepath.Join(home, ".cache", "open-model-zoo", "models")
	}
}
