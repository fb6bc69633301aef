package engine_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/schimen/photobooth/internal/engine"
	"github.com/schimen/photobooth/pkg/interfaces"
	"github.com/schimen/photobooth/pkg/logger"
	"github.com/schimen/photobooth/pkg/montage"
	"github.com/schimen/photobooth/pkg/state"
	"github.com/schimen/photobooth/pkg/types"
)

// Mock implementations

type mockSource struct {
	mu       sync.Mutex
	paths    []string
	err      error
	captures int
	lastOpts interfaces.CaptureOptions
	entered  chan struct{} // closed-once signal that Capture started
	release  chan struct{} // Capture blocks until this closes, when set
}

func (m *mockSource) Capture(ctx context.Context, count int, opts interfaces.CaptureOptions) ([]string, error) {
	m.mu.Lock()
	m.captures++
	m.lastOpts = opts
	entered := m.entered
	release := m.release
	m.entered = nil
	m.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.paths, nil
}

func (m *mockSource) captureCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.captures
}

type mockNotifier struct {
	mu       sync.Mutex
	starts   []string
	ready    []string
	failures []error
}

func (m *mockNotifier) NotifySessionStart(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.starts = append(m.starts, sessionID)
}

func (m *mockNotifier) NotifyMontageReady(sessionID string, montagePath string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ready = append(m.ready, montagePath)
}

func (m *mockNotifier) NotifySessionFailure(sessionID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, err)
}

type mockPrinter struct {
	mu     sync.Mutex
	prints []string
	err    error
}

func (m *mockPrinter) Print(ctx context.Context, montagePath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prints = append(m.prints, montagePath)
	return m.err
}

// Test helpers

func testLogger() logger.Logger {
	return logger.CreateLoggerWithOutput("", "error", io.Discard)
}

func testConfig(t *testing.T, shots int) *types.PhotoboothConfig {
	t.Helper()
	return &types.PhotoboothConfig{
		Version: "1.0",
		Booth: types.BoothConfig{
			Name:      "test-booth",
			Shots:     shots,
			OutputDir: filepath.Join(t.TempDir(), "output"),
		},
		Canvas: types.CanvasConfig{Width: 400, Height: 400},
		Source: types.SourceConfig{Type: types.SourceTypeDirectory, Directory: "captures"},
		Trigger: types.TriggerConfig{
			Type: types.TriggerTypePrompt,
		},
	}
}

func writeFrames(t *testing.T, n int) []string {
	t.Helper()
	dir := t.TempDir()

	paths := make([]string, n)
	for i := 0; i < n; i++ {
		img := image.NewRGBA(image.Rect(0, 0, 80, 60))
		draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: uint8(40 * i), G: 90, B: 120, A: 255}), image.Point{}, draw.Src)

		path := filepath.Join(dir, "frame-"+string(rune('a'+i))+".png")
		file, err := os.Create(path)
		if err != nil {
			t.Fatalf("failed to create frame: %v", err)
		}
		if err := png.Encode(file, img); err != nil {
			file.Close()
			t.Fatalf("failed to encode frame: %v", err)
		}
		file.Close()
		paths[i] = path
	}
	return paths
}

func newTestBooth(t *testing.T, cfg *types.PhotoboothConfig, src interfaces.ImageSource, notif *mockNotifier, prn interfaces.Printer) *engine.Booth {
	t.Helper()
	log := testLogger()
	return engine.New(cfg, log, engine.Dependencies{
		Source:   src,
		Montage:  montage.NewEngine(nil),
		Notifier: notif,
		Printer:  prn,
		State:    state.NewManager(cfg.Booth.OutputDir, cfg.Booth.Name, nil),
	})
}

// Tests

func TestRunSessionSuccess(t *testing.T) {
	cfg := testConfig(t, 4)
	src := &mockSource{paths: writeFrames(t, 4)}
	notif := &mockNotifier{}
	prn := &mockPrinter{}
	booth := newTestBooth(t, cfg, src, notif, prn)

	result, err := booth.RunSession(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result == nil || result.MontagePath == "" {
		t.Fatal("expected a montage path in the result")
	}
	if _, err := os.Stat(result.MontagePath); err != nil {
		t.Errorf("montage file missing: %v", err)
	}
	if len(notif.starts) != 1 || len(notif.ready) != 1 || len(notif.failures) != 0 {
		t.Errorf("got %d/%d/%d start/ready/failure notifications, want 1/1/0",
			len(notif.starts), len(notif.ready), len(notif.failures))
	}
	if len(prn.prints) != 1 || prn.prints[0] != result.MontagePath {
		t.Errorf("got prints %v, want the montage path", prn.prints)
	}

	boothState, err := state.NewManager(cfg.Booth.OutputDir, cfg.Booth.Name, nil).Read()
	if err != nil {
		t.Fatalf("failed to read state: %v", err)
	}
	if boothState.SessionCount != 1 || boothState.FailureCount != 0 {
		t.Errorf("got %d/%d sessions/failures, want 1/0",
			boothState.SessionCount, boothState.FailureCount)
	}
	if boothState.LastMontagePath != result.MontagePath {
		t.Errorf("state montage %q, want %q", boothState.LastMontagePath, result.MontagePath)
	}
}

func TestRunSessionUnsupportedCount(t *testing.T) {
	cfg := testConfig(t, 4)
	// Two of four captures failed at the source; 2 images have no layout.
	src := &mockSource{paths: writeFrames(t, 2)}
	notif := &mockNotifier{}
	booth := newTestBooth(t, cfg, src, notif, nil)

	result, err := booth.RunSession(context.Background())
	if !errors.Is(err, montage.ErrUnsupportedImageCount) {
		t.Fatalf("got error %v, want ErrUnsupportedImageCount", err)
	}
	if result != nil {
		t.Error("expected no result for a failed session")
	}
	if len(notif.failures) != 1 {
		t.Errorf("got %d failure notifications, want 1", len(notif.failures))
	}

	// No montage may be persisted for a failed session
	entries, err := os.ReadDir(cfg.Booth.OutputDir)
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				t.Errorf("unexpected file in output dir: %s", entry.Name())
			}
		}
	}
}

func TestRunSessionCaptureFailure(t *testing.T) {
	cfg := testConfig(t, 4)
	src := &mockSource{err: errors.New("camera unplugged")}
	notif := &mockNotifier{}
	booth := newTestBooth(t, cfg, src, notif, nil)

	_, err := booth.RunSession(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if len(notif.failures) != 1 {
		t.Errorf("got %d failure notifications, want 1", len(notif.failures))
	}
}

func TestRunSessionEmptyCapture(t *testing.T) {
	cfg := testConfig(t, 4)
	src := &mockSource{paths: nil}
	notif := &mockNotifier{}
	booth := newTestBooth(t, cfg, src, notif, nil)

	if _, err := booth.RunSession(context.Background()); err == nil {
		t.Fatal("expected error for empty capture")
	}
}

func TestTriggerDropsWhileBusy(t *testing.T) {
	cfg := testConfig(t, 4)
	src := &mockSource{
		paths:   writeFrames(t, 4),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	notif := &mockNotifier{}
	booth := newTestBooth(t, cfg, src, notif, nil)

	entered := src.entered
	release := src.release

	if !booth.Trigger(context.Background()) {
		t.Fatal("first trigger should start a session")
	}

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("session never reached the source")
	}

	// The booth is busy: further triggers are dropped, not queued
	if booth.Trigger(context.Background()) {
		t.Error("second trigger should be dropped while busy")
	}
	if _, err := booth.RunSession(context.Background()); !errors.Is(err, engine.ErrSessionInProgress) {
		t.Errorf("got error %v, want ErrSessionInProgress", err)
	}

	close(release)
	booth.Wait()

	if got := src.captureCount(); got != 1 {
		t.Errorf("got %d captures, want exactly 1", got)
	}
	if len(notif.starts) != 1 {
		t.Errorf("got %d session starts, want 1", len(notif.starts))
	}
}

func TestCountdownOptionsPassedToSource(t *testing.T) {
	cfg := testConfig(t, 4)
	cfg.Booth.CountdownSeconds = 2
	src := &mockSource{paths: writeFrames(t, 4)}
	booth := newTestBooth(t, cfg, src, &mockNotifier{}, nil)

	if _, err := booth.RunSession(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if src.lastOpts.WaitTime != 2*time.Second {
		t.Errorf("got wait time %s, want 2s", src.lastOpts.WaitTime)
	}
	if src.lastOpts.Countdown == nil {
		t.Error("expected a countdown callback")
	}
}

func TestNewDefaultDependencies(t *testing.T) {
	cfg := testConfig(t, 4)
	cfg.Printer = &types.PrinterConfig{Enabled: true, Name: "booth-printer"}
	deps := engine.NewDefaultDependencies(cfg, testLogger())

	if deps.Source == nil || deps.Montage == nil || deps.Notifier == nil || deps.State == nil {
		t.Error("expected all standard dependencies to be wired")
	}
	if deps.Printer == nil {
		t.Error("expected a printer when printing is enabled")
	}

	cfg.Printer = nil
	deps = engine.NewDefaultDependencies(cfg, testLogger())
	if deps.Printer != nil {
		t.Error("expected no printer when printing is disabled")
	}
}
