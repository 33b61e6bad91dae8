package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oceanomics/faire2ena/internal/config"
	"github.com/oceanomics/faire2ena/internal/paths"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the faire2ena configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Never echo stored credentials
		cfg.FTP.Password = ""

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.GetConfigPath()
		}

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s", path)
		}

		if err := paths.EnsureDirectories(); err != nil {
			return err
		}

		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		printSuccess("Wrote default configuration to %s", path)
		return nil
	},
}
