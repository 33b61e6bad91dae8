// Package paths resolves the configuration and data directories faire2ena
// uses, respecting tool-specific and XDG environment overrides.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

type Paths struct {
	ConfigDir string
	DataDir   string
}

// GetPaths returns all base paths respecting environment variables.
func GetPaths() Paths {
	return Paths{
		ConfigDir: getDir("FAIRE2ENA_CONFIG_HOME", "XDG_CONFIG_HOME", ".config", "faire2ena"),
		DataDir:   getDir("FAIRE2ENA_DATA_HOME", "XDG_DATA_HOME", ".local/share", "faire2ena"),
	}
}

func getDir(toolEnv, xdgEnv, defaultBase, appName string) string {
	// 1. Tool-specific env
	if dir := os.Getenv(toolEnv); dir != "" {
		return dir
	}

	// 2. XDG env
	if xdgBase := os.Getenv(xdgEnv); xdgBase != "" {
		return filepath.Join(xdgBase, appName)
	}

	// 3. Default
	home, _ := os.UserHomeDir()
	return filepath.Join(home, defaultBase, appName)
}

// GetRegistryPath returns the path to the accession registry database.
func GetRegistryPath() string {
	if path := os.Getenv("FAIRE2ENA_REGISTRY_PATH"); path != "" {
		return path
	}
	return filepath.Join(GetPaths().DataDir, "accessions.db")
}

// EnsureDirectories creates all necessary directories.
func EnsureDirectories() error {
	paths := GetPaths()
	for _, dir := range []string{paths.ConfigDir, paths.DataDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
