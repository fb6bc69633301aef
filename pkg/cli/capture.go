package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schimen/photobooth/internal/engine"
)

func newCaptureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capture",
		Short: "Run a single photo session now",
		Long: `Run one photo session immediately: capture the configured number of
photos, compose the montage and save it to the output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCapture(cmd.Context())
		},
	}
}

func runCapture(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	configPath := getConfigPath()
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := createLogger(cfg)

	deps := engine.NewDefaultDependencies(cfg, log)
	booth := engine.New(cfg, log, deps)

	result, err := booth.RunSession(ctx)
	if err != nil {
		return fmt.Errorf("session failed: %w", err)
	}

	printSuccess(fmt.Sprintf("Saved montage to %s", result.MontagePath))
	return nil
}
