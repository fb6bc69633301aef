package types_test

import (
	"image/color"
	"reflect"
	"testing"

	"github.com/schimen/photobooth/pkg/types"
)

func TestLayoutForCount(t *testing.T) {
	tests := []struct {
		count  int
		layout types.Layout
		ok     bool
	}{
		{1, types.Layout{Rows: 1, Cols: 1}, true},
		{4, types.Layout{Rows: 2, Cols: 2}, true},
		{9, types.Layout{Rows: 3, Cols: 3}, true},
		{0, types.Layout{}, false},
		{2, types.Layout{}, false},
		{6, types.Layout{}, false},
		{16, types.Layout{}, false},
	}

	for _, tt := range tests {
		layout, ok := types.LayoutForCount(tt.count)
		if ok != tt.ok {
			t.Errorf("count %d: got ok=%v, want %v", tt.count, ok, tt.ok)
		}
		if layout != tt.layout {
			t.Errorf("count %d: got layout %+v, want %+v", tt.count, layout, tt.layout)
		}
	}
}

func TestSupportedCounts(t *testing.T) {
	counts := types.SupportedCounts()
	if !reflect.DeepEqual(counts, []int{1, 4, 9}) {
		t.Errorf("got %v, want [1 4 9]", counts)
	}
}

func TestRGBColor(t *testing.T) {
	c := types.RGB{R: 10, G: 20, B: 30}
	want := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	if c.Color() != want {
		t.Errorf("got %v, want %v", c.Color(), want)
	}
}

func TestCanvasConfigSpec(t *testing.T) {
	// Empty config falls back to the default canvas
	spec := types.CanvasConfig{}.Spec()
	if spec.Width != types.DefaultCanvasWidth || spec.Height != types.DefaultCanvasHeight {
		t.Errorf("got %dx%d, want defaults", spec.Width, spec.Height)
	}
	if spec.Fill != types.White {
		t.Errorf("got fill %v, want white", spec.Fill)
	}

	// Explicit values win
	fill := types.RGB{R: 1, G: 2, B: 3}
	spec = types.CanvasConfig{Width: 640, Height: 480, Fill: &fill, Background: "bg.jpg"}.Spec()
	if spec.Width != 640 || spec.Height != 480 {
		t.Errorf("got %dx%d, want 640x480", spec.Width, spec.Height)
	}
	if spec.Fill != fill {
		t.Errorf("got fill %v, want %v", spec.Fill, fill)
	}
	if spec.Background != "bg.jpg" {
		t.Errorf("got background %q, want bg.jpg", spec.Background)
	}
}

func TestNotificationsEnabledDefault(t *testing.T) {
	var cfg *types.NotificationConfig
	if !cfg.NotificationsEnabled() {
		t.Error("nil config should default to enabled")
	}

	cfg = &types.NotificationConfig{}
	if !cfg.NotificationsEnabled() {
		t.Error("omitted enabled flag should default to enabled")
	}

	cfg = &types.NotificationConfig{Enabled: types.BoolPtr(false)}
	if cfg.NotificationsEnabled() {
		t.Error("explicitly disabled config should be disabled")
	}
}
