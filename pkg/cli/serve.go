package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/schimen/photobooth/internal/engine"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the booth and wait for session triggers",
		Long: `Start the photobooth and fire a session on every trigger event.

With the prompt trigger, pressing enter starts a session and typing q quits.
With the watch trigger, a file created in the trigger directory starts a
session. A trigger that arrives while a session is running is dropped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	// Create root context for the entire operation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	configPath := getConfigPath()
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := createLogger(cfg)

	deps := engine.NewDefaultDependencies(cfg, log)
	booth := engine.New(cfg, log, deps)
	trig := engine.NewTrigger(cfg, log)

	printInfo(fmt.Sprintf("Starting Photobooth v%s", version))
	printInfo(fmt.Sprintf("Booth %q: %d shots on trigger %q",
		cfg.Booth.Name, cfg.Booth.Shots, cfg.Trigger.Type))

	// Cancel the trigger loop on shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		sig := <-sigChan
		printInfo(fmt.Sprintf("Received signal: %s", sig))
		cancel()
	}()

	if err := trig.Start(ctx, func() { booth.Trigger(ctx) }); err != nil {
		return fmt.Errorf("trigger failed: %w", err)
	}

	// Let a running session finish before exiting
	booth.Wait()
	printInfo("Photobooth stopped")

	return nil
}
