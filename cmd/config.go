package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"episodemap/galaxy/internal/config"
	"episodemap/galaxy/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or initialize galaxy configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config.toml if none exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.EnsureExists(); err != nil {
			return err
		}
		fmt.Printf("%s %s\n", ui.StatusIcon(true), filepath.Join(config.ConfigDir(), "config.toml"))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration (file, .env and GALAXY_* overrides applied)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return toml.NewEncoder(os.Stdout).Encode(cfg)
	},
}

func init() {
	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
