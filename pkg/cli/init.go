package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schimen/photobooth/pkg/config"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new photobooth configuration",
		Long: `Initialize a new photobooth configuration file in the booth root.
The generated configuration captures four shots onto a white 1500x1000
canvas and fires sessions from the interactive prompt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing configuration")

	return cmd
}

func runInit(force bool) error {
	configPath := getConfigPath()

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration already exists. Use --force to overwrite")
	}

	cfg := config.GetDefaultConfig()

	manager := config.NewManager()
	if err := manager.SaveConfig(cfg, configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printSuccess(fmt.Sprintf("Created configuration at %s", configPath))
	printInfo("Edit the configuration to customize shots, canvas and triggers")

	return nil
}
