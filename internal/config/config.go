// Package config holds the faire2ena configuration: submission identity,
// table layout and FTP endpoint defaults, loadable from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oceanomics/faire2ena/internal/paths"
	"gopkg.in/yaml.v3"
)

// Config represents the faire2ena configuration.
type Config struct {
	Submission SubmissionConfig `yaml:"submission"`
	Tables     TableConfig      `yaml:"tables"`
	Registry   RegistryConfig   `yaml:"registry"`
	FTP        FTPConfig        `yaml:"ftp"`
}

// SubmissionConfig identifies the submitting project.
type SubmissionConfig struct {
	CenterName      string `yaml:"center_name"`      // Sequencing centre name
	ProjectName     string `yaml:"project_name"`     // ENA project name
	StudyAccession  string `yaml:"study_accession"`  // PRJ accession for run submissions
	TaxonID         string `yaml:"taxon_id"`         // NCBI taxonomy id
	InstrumentModel string `yaml:"instrument_model"` // Sequencing instrument
}

// TableConfig describes the FAIRe spreadsheet exports.
type TableConfig struct {
	SkipRows int `yaml:"skip_rows"` // Checklist header rows above the column header
}

// RegistryConfig locates the local accession registry.
type RegistryConfig struct {
	Path string `yaml:"path"`
}

// FTPConfig holds the read-file intake endpoint.
type FTPConfig struct {
	Host     string `yaml:"host"`
	Subdir   string `yaml:"subdir"`
	Username string `yaml:"username"`
	Password string `yaml:"password"` // Prefer FAIRE2ENA_WEBIN_PASSWORD over storing this
}

// DefaultTaxonID denotes "unidentified organism" and applies when no
// project-specific taxon is configured.
const DefaultTaxonID = "32644"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Submission: SubmissionConfig{
			TaxonID:         DefaultTaxonID,
			InstrumentModel: "Illumina NovaSeq 6000",
		},
		Tables: TableConfig{
			SkipRows: 2,
		},
		Registry: RegistryConfig{
			Path: paths.GetRegistryPath(),
		},
		FTP: FTPConfig{
			Host: "webin2.ebi.ac.uk", // ENA test server
		},
	}
}

// Load loads configuration from a file, falling back to defaults when the
// file does not exist.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.Registry.Path = expandPath(config.Registry.Path)
	if config.Registry.Path == "" {
		config.Registry.Path = paths.GetRegistryPath()
	}
	if config.Submission.TaxonID == "" {
		config.Submission.TaxonID = DefaultTaxonID
	}

	// Credentials from the environment take precedence over the file
	if user := os.Getenv("FAIRE2ENA_WEBIN_USERNAME"); user != "" {
		config.FTP.Username = user
	}
	if pass := os.Getenv("FAIRE2ENA_WEBIN_PASSWORD"); pass != "" {
		config.FTP.Password = pass
	}

	return config, nil
}

// Save saves the configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default config file path.
func GetConfigPath() string {
	if path := os.Getenv("FAIRE2ENA_CONFIG"); path != "" {
		return path
	}

	if _, err := os.Stat("faire2ena.yaml"); err == nil {
		return "faire2ena.yaml"
	}

	p := paths.GetPaths()
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if len(path) == 0 {
		return path
	}

	if path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}

	return path
}
