// Package types provides core types and configuration for the photobooth
package types

import (
	"image/color"
	"sort"
	"time"
)

// Layout describes the (rows, cols) grid shape used to arrange images
// on the montage canvas.
type Layout struct {
	Rows int `json:"rows" yaml:"rows"`
	Cols int `json:"cols" yaml:"cols"`
}

// layoutTable maps a supported image count to its grid layout. Counts
// outside this table are rejected rather than factored into a grid
// heuristically.
var layoutTable = map[int]Layout{
	1: {Rows: 1, Cols: 1},
	4: {Rows: 2, Cols: 2},
	9: {Rows: 3, Cols: 3},
}

// LayoutForCount returns the grid layout for a supported image count.
// The second return value is false when the count is unsupported.
func LayoutForCount(count int) (Layout, bool) {
	layout, ok := layoutTable[count]
	return layout, ok
}

// SupportedCounts returns the supported image counts in ascending order.
func SupportedCounts() []int {
	counts := make([]int, 0, len(layoutTable))
	for n := range layoutTable {
		counts = append(counts, n)
	}
	sort.Ints(counts)
	return counts
}

// RGB is a solid canvas fill color.
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// Color converts the fill to an opaque color.RGBA.
func (c RGB) Color() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Default canvas dimensions, matching a landscape 3:2 print.
const (
	DefaultCanvasWidth  = 1500
	DefaultCanvasHeight = 1000
)

// White is the default canvas fill.
var White = RGB{R: 255, G: 255, B: 255}

// CanvasSpec describes the base canvas a montage is composed onto:
// either explicit dimensions with a solid fill, or a background image.
type CanvasSpec struct {
	Width      int
	Height     int
	Fill       RGB
	Background string
}

// DefaultCanvasSpec returns a white 1500x1000 canvas.
func DefaultCanvasSpec() CanvasSpec {
	return CanvasSpec{
		Width:  DefaultCanvasWidth,
		Height: DefaultCanvasHeight,
		Fill:   White,
	}
}

// SessionStatus represents the current state of a photo session
type SessionStatus string

const (
	SessionStatusIdle      SessionStatus = "idle"
	SessionStatusCapturing SessionStatus = "capturing"
	SessionStatusComposing SessionStatus = "composing"
	SessionStatusSucceeded SessionStatus = "succeeded"
	SessionStatusFailed    SessionStatus = "failed"
)

// LogLevel represents logging verbosity levels
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// SourceType represents supported image source kinds
type SourceType string

const (
	SourceTypeDirectory SourceType = "directory"
	SourceTypeStatic    SourceType = "static"
)

// TriggerType represents supported session trigger kinds
type TriggerType string

const (
	TriggerTypePrompt TriggerType = "prompt"
	TriggerTypeWatch  TriggerType = "watch"
)

// SessionResult summarizes a completed photo session.
type SessionResult struct {
	ID          string        `json:"id"`
	MontagePath string        `json:"montagePath"`
	ImagePaths  []string      `json:"imagePaths"`
	StartedAt   time.Time     `json:"startedAt"`
	Duration    time.Duration `json:"duration"`
}

// PhotoboothConfig is the root configuration structure
type PhotoboothConfig struct {
	Version       string              `json:"version" yaml:"version"`
	Booth         BoothConfig         `json:"booth" yaml:"booth"`
	Canvas        CanvasConfig        `json:"canvas" yaml:"canvas"`
	Source        SourceConfig        `json:"source" yaml:"source"`
	Trigger       TriggerConfig       `json:"trigger" yaml:"trigger"`
	Notifications *NotificationConfig `json:"notifications,omitempty" yaml:"notifications,omitempty"`
	Printer       *PrinterConfig      `json:"printer,omitempty" yaml:"printer,omitempty"`
	Logging       *LoggingConfig      `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// BoothConfig holds per-booth session settings
type BoothConfig struct {
	Name             string `json:"name" yaml:"name"`
	Shots            int    `json:"shots" yaml:"shots"`
	CountdownSeconds int    `json:"countdownSeconds,omitempty" yaml:"countdownSeconds,omitempty"`
	OutputDir        string `json:"outputDir" yaml:"outputDir"`
}

// CanvasConfig holds the montage canvas settings
type CanvasConfig struct {
	Width      int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height     int    `json:"height,omitempty" yaml:"height,omitempty"`
	Background string `json:"background,omitempty" yaml:"background,omitempty"`
	Fill       *RGB   `json:"fill,omitempty" yaml:"fill,omitempty"`
}

// Spec resolves the configured canvas into a CanvasSpec with defaults
// applied for any omitted field.
func (c CanvasConfig) Spec() CanvasSpec {
	spec := DefaultCanvasSpec()
	if c.Width > 0 {
		spec.Width = c.Width
	}
	if c.Height > 0 {
		spec.Height = c.Height
	}
	if c.Fill != nil {
		spec.Fill = *c.Fill
	}
	spec.Background = c.Background
	return spec
}

// SourceConfig selects and configures the image source
type SourceConfig struct {
	Type      SourceType `json:"type" yaml:"type"`
	Directory string     `json:"directory,omitempty" yaml:"directory,omitempty"`
	Paths     []string   `json:"paths,omitempty" yaml:"paths,omitempty"`
}

// TriggerConfig selects and configures the session trigger
type TriggerConfig struct {
	Type     TriggerType `json:"type" yaml:"type"`
	WatchDir string      `json:"watchDir,omitempty" yaml:"watchDir,omitempty"`
}

// NotificationConfig controls desktop notifications
type NotificationConfig struct {
	Enabled      *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	SuccessSound string `json:"successSound,omitempty" yaml:"successSound,omitempty"`
	FailureSound string `json:"failureSound,omitempty" yaml:"failureSound,omitempty"`
}

// NotificationsEnabled reports whether notifications are on; the default
// is enabled when the section or field is omitted.
func (c *NotificationConfig) NotificationsEnabled() bool {
	if c == nil || c.Enabled == nil {
		return true
	}
	return *c.Enabled
}

// PrinterConfig controls the montage print hand-off
type PrinterConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Level LogLevel `json:"level,omitempty" yaml:"level,omitempty"`
	File  string   `json:"file,omitempty" yaml:"file,omitempty"`
}

// BoolPtr returns a pointer to the given bool, for optional config fields.
func BoolPtr(b bool) *bool {
	return &b
}
