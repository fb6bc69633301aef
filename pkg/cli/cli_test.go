package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/schimen/photobooth/pkg/config"
)

func withConfigPath(t *testing.T, path string) {
	t.Helper()
	prev := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = prev })
}

func TestRunInitCreatesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photobooth.config.json")
	withConfigPath(t, path)

	if err := runInit(false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file missing: %v", err)
	}

	cfg, err := config.NewManager().LoadConfig(path)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Booth.Shots != 4 {
		t.Errorf("got %d shots in default config, want 4", cfg.Booth.Shots)
	}
}

func TestRunInitRefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photobooth.config.json")
	withConfigPath(t, path)

	if err := runInit(false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := runInit(false); err == nil {
		t.Error("expected error when config already exists")
	}
	if err := runInit(true); err != nil {
		t.Errorf("force overwrite failed: %v", err)
	}
}

func TestRunLayouts(t *testing.T) {
	if err := runLayouts(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
