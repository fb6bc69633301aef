// Package cli provides the command-line interface for the photobooth
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/schimen/photobooth/pkg/config"
	"github.com/schimen/photobooth/pkg/logger"
	"github.com/schimen/photobooth/pkg/types"
)

var (
	cfgFile     string
	projectRoot string
	verbosity   string
	version     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "photobooth",
	Short: "Capture photos and compose them into a grid montage",
	Long: `📷 Photobooth - Session-triggered photo capture and montage composition

Photobooth collects a fixed number of photos from an image source, arranges
them into a grid montage and saves the result as a JPEG. Sessions can be
fired interactively or by dropping a file into a trigger directory.`,

	Run: func(cmd *cobra.Command, args []string) {
		// Check if version flag is set
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("📷 Photobooth v%s\n", version)
			return
		}
		// If no subcommand, show help
		cmd.Help()
	},
}

// Execute runs the CLI
func Execute(v string) error {
	version = v

	// Initialize the root command explicitly (avoiding init())
	initializeRootCommand()

	return rootCmd.Execute()
}

// initializeRootCommand sets up the root command and its flags.
// This replaces the init() function to make initialization explicit and testable.
func initializeRootCommand() {
	// Set up config initialization
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: photobooth.config.json)")
	rootCmd.PersistentFlags().StringVar(&projectRoot, "root", ".", "booth root directory")
	rootCmd.PersistentFlags().StringVarP(&verbosity, "verbosity", "v", "info", "log level (debug, info, warn, error)")

	// Add version flag
	rootCmd.Flags().Bool("version", false, "Print version information and quit")

	// Add subcommands
	rootCmd.AddCommand(newCaptureCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newLayoutsCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in booth root
		viper.AddConfigPath(projectRoot)
		viper.SetConfigName("photobooth.config")
		viper.SetConfigType("json")

		// Also try YAML
		viper.SetConfigName("photobooth.config")
		viper.SetConfigType("yaml")
	}

	// Read in environment variables
	viper.SetEnvPrefix("PHOTOBOOTH")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		if verbosity == "debug" {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		}
	}
}

// Helper functions

func printSuccess(message string) {
	booth := "📷"
	fmt.Printf("%s %s %s\n", booth, color.GreenString("[Photobooth]"), message)
}

func printError(message string) {
	booth := "📷"
	fmt.Fprintf(os.Stderr, "%s %s %s\n", booth, color.RedString("[Photobooth]"), message)
}

func printInfo(message string) {
	booth := "📷"
	fmt.Printf("%s %s %s\n", booth, color.CyanString("[Photobooth]"), message)
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(projectRoot, "photobooth.config.json")
}

func loadConfig(path string) (*types.PhotoboothConfig, error) {
	manager := config.NewManager()
	return manager.LoadConfig(path)
}

// createLogger builds the logger from the verbosity flag and the
// configured log file, if any.
func createLogger(cfg *types.PhotoboothConfig) logger.Logger {
	level := verbosity
	logFile := ""
	if cfg.Logging != nil {
		if cfg.Logging.Level != "" && !rootCmd.PersistentFlags().Changed("verbosity") {
			level = string(cfg.Logging.Level)
		}
		logFile = cfg.Logging.File
	}
	return logger.CreateLogger(logFile, level)
}
