package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPaths returns the search order for config files.
func DefaultConfigPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "incidentview", "config.yaml"))
	}
	paths = append(paths, "/etc/incidentview/config.yaml")
	return paths
}

// Resolve loads the config from the given explicit path, or searches the
// default locations. Without an explicit path and with no file found, it
// returns Defaults. The returned path is empty in that case.
func Resolve(explicit string) (*Config, string, error) {
	path, err := findConfig(explicit)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return Defaults(), "", nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}

	if cfg.Options.SnapshotsDir == "" {
		cfg.Options.SnapshotsDir = filepath.Dir(path)
	}

	return cfg, path, nil
}

func findConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultConfigPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", nil
}
