package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/neilberkman/recrider/internal/core/config"
	"github.com/neilberkman/recrider/internal/core/logger"
	"github.com/spf13/cobra"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", configPath)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	fmt.Printf("# %s\n", configPath)
	if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
		return err
	}

	user := cfg.Username
	if user == "" {
		user = "(unset)"
	}
	fmt.Printf("\n# PLAUD_USERNAME=%s\n", user)
	fmt.Printf("# log file: %s\n", logger.LogPath(configDir()))
	return nil
}
