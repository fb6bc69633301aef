// Package config handles configuration loading and management
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/schimen/photobooth/pkg/types"
)

// ConfigVersion is the only supported configuration schema version.
const ConfigVersion = "1.0"

// Manager handles configuration operations
type Manager struct{}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{}
}

// LoadConfig loads configuration from a file, trying JSON first and
// falling back to YAML.
func (m *Manager) LoadConfig(path string) (*types.PhotoboothConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg types.PhotoboothConfig

	// Try JSON first
	if err := json.Unmarshal(data, &cfg); err == nil {
		if err := m.ValidateConfig(&cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	// Try YAML
	if err := yaml.Unmarshal(data, &cfg); err == nil {
		if err := m.ValidateConfig(&cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	return nil, fmt.Errorf("failed to parse config as JSON or YAML")
}

// SaveConfig writes a configuration file as indented JSON.
func (m *Manager) SaveConfig(cfg *types.PhotoboothConfig, path string) error {
	if err := m.ValidateConfig(cfg); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ValidateConfig validates a configuration
func (m *Manager) ValidateConfig(cfg *types.PhotoboothConfig) error {
	// Check version
	if cfg.Version != ConfigVersion {
		return fmt.Errorf("unsupported config version: %s", cfg.Version)
	}

	// The shot count must have a grid layout
	if _, ok := types.LayoutForCount(cfg.Booth.Shots); !ok {
		return fmt.Errorf("unsupported shot count %d, supported counts are %v",
			cfg.Booth.Shots, types.SupportedCounts())
	}

	if cfg.Booth.CountdownSeconds < 0 {
		return fmt.Errorf("countdown seconds must not be negative")
	}

	if cfg.Booth.OutputDir == "" {
		return fmt.Errorf("no output directory configured")
	}

	if (cfg.Canvas.Width > 0) != (cfg.Canvas.Height > 0) {
		return fmt.Errorf("canvas width and height must be set together")
	}

	switch cfg.Source.Type {
	case types.SourceTypeDirectory:
		if cfg.Source.Directory == "" {
			return fmt.Errorf("directory source requires a directory")
		}
	case types.SourceTypeStatic:
		if len(cfg.Source.Paths) == 0 {
			return fmt.Errorf("static source requires image paths")
		}
	default:
		return fmt.Errorf("invalid source type: %s", cfg.Source.Type)
	}

	switch cfg.Trigger.Type {
	case types.TriggerTypePrompt:
	case types.TriggerTypeWatch:
		if cfg.Trigger.WatchDir == "" {
			return fmt.Errorf("watch trigger requires a watch directory")
		}
	default:
		return fmt.Errorf("invalid trigger type: %s", cfg.Trigger.Type)
	}

	if cfg.Logging != nil {
		switch cfg.Logging.Level {
		case "", types.LogLevelDebug, types.LogLevelInfo, types.LogLevelWarn, types.LogLevelError:
		default:
			return fmt.Errorf("invalid log level: %s", cfg.Logging.Level)
		}
	}

	return nil
}

// GetDefaultConfig returns a ready-to-edit default configuration: four
// shots on a white 1500x1000 canvas, sourced from a capture directory,
// fired from the interactive prompt.
func GetDefaultConfig() *types.PhotoboothConfig {
	return &types.PhotoboothConfig{
		Version: ConfigVersion,
		Booth: types.BoothConfig{
			Name:             "photobooth",
			Shots:            4,
			CountdownSeconds: 2,
			OutputDir:        "output",
		},
		Canvas: types.CanvasConfig{
			Width:  types.DefaultCanvasWidth,
			Height: types.DefaultCanvasHeight,
		},
		Source: types.SourceConfig{
			Type:      types.SourceTypeDirectory,
			Directory: "captures",
		},
		Trigger: types.TriggerConfig{
			Type: types.TriggerTypePrompt,
		},
		Notifications: &types.NotificationConfig{
			Enabled: types.BoolPtr(true),
		},
	}
}
