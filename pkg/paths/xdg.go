// Package paths provides XDG-compliant path resolution for loki tools.
//
// Resolution order:
// 1. LOKI_HOME (portable root) → $LOKI_HOME/{config,data,state,cache}
// 2. XDG env vars → $XDG_*_HOME/loki
// 3. Platform defaults → ~/.config/loki, ~/.local/share/loki, etc.
package paths

import (
	"os"
	"path/filepath"
)

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if lokiHome := os.Getenv("LOKI_HOME"); lokiHome != "" {
		return filepath.Join(lokiHome, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// getDataHome returns the base data home directory.
func getDataHome() string {
	if lokiHome := os.Getenv("LOKI_HOME"); lokiHome != "" {
		return filepath.Join(lokiHome, "data")
	}
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return xdgDataHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "share")
	}
	return ""
}

// getStateHome returns the base state home directory.
func getStateHome() string {
	if lokiHome := os.Getenv("LOKI_HOME"); lokiHome != "" {
		return filepath.Join(lokiHome, "state")
	}
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return xdgStateHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state")
	}
	return ""
}

// getCacheHome returns the base cache home directory.
func getCacheHome() string {
	if lokiHome := os.Getenv("LOKI_HOME"); lokiHome != "" {
		return filepath.Join(lokiHome, "cache")
	}
	if xdgCacheHome := os.Getenv("XDG_CACHE_HOME"); xdgCacheHome != "" {
		return xdgCacheHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".cache")
	}
	return ""
}

// ConfigDir returns the loki configuration directory.
// Used for settings files like loki.yml and *.toml fragments.
func ConfigDir() string {
	base := getConfigHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "loki")
}

// DataDir returns the loki data directory.
// Used for persistent data such as exported schemas.
func DataDir() string {
	base := getDataHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "loki")
}

// StateDir returns the loki state directory.
// Used for runtime state and logs.
func StateDir() string {
	base := getStateHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "loki")
}

// CacheDir returns the loki cache directory.
// Used for temporary/regenerable data.
func CacheDir() string {
	base := getCacheHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, "loki")
}
