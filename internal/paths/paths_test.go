package paths

import (
	"path/filepath"
	"testing"
)

func TestGetPathsToolEnvWins(t *testing.T) {
	t.Setenv("FAIRE2ENA_CONFIG_HOME", "/etc/faire2ena")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")

	if got := GetPaths().ConfigDir; got != "/etc/faire2ena" {
		t.Errorf("ConfigDir = %q, tool env should win", got)
	}
}

func TestGetPathsXDGFallback(t *testing.T) {
	t.Setenv("FAIRE2ENA_DATA_HOME", "")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")

	if got := GetPaths().DataDir; got != filepath.Join("/xdg/data", "faire2ena") {
		t.Errorf("DataDir = %q", got)
	}
}

func TestGetRegistryPath(t *testing.T) {
	t.Setenv("FAIRE2ENA_REGISTRY_PATH", "/tmp/registry.db")
	if got := GetRegistryPath(); got != "/tmp/registry.db" {
		t.Errorf("GetRegistryPath = %q", got)
	}

	t.Setenv("FAIRE2ENA_REGISTRY_PATH", "")
	t.Setenv("FAIRE2ENA_DATA_HOME", "/data/faire2ena")
	if got := GetRegistryPath(); got != filepath.Join("/data/faire2ena", "accessions.db") {
		t.Errorf("GetRegistryPath = %q", got)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FAIRE2ENA_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("FAIRE2ENA_DATA_HOME", filepath.Join(dir, "data"))

	if err := EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if err := EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories should be idempotent: %v", err)
	}
}
