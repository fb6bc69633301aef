// Package interfaces provides abstractions for dependency injection and testability
package interfaces

import (
	"context"
	"time"

	"github.com/schimen/photobooth/pkg/state"
	"github.com/schimen/photobooth/pkg/types"
)

// CaptureOptions controls per-frame capture pacing.
type CaptureOptions struct {
	// WaitTime is how long to pause before each frame is taken.
	WaitTime time.Duration
	// Countdown, when set, is invoked concurrently with the wait before
	// each frame so callers can signal the people in front of the booth.
	Countdown func(remaining time.Duration)
}

// ImageSource produces image files on durable storage. A source may
// return fewer paths than requested when individual frames fail; the
// caller decides whether the remaining count is usable.
type ImageSource interface {
	Capture(ctx context.Context, count int, opts CaptureOptions) ([]string, error)
}

// Trigger fires photo sessions. Start blocks until the trigger is
// exhausted or the context is cancelled; fire is invoked once per
// trigger event.
type Trigger interface {
	Start(ctx context.Context, fire func()) error
}

// SessionNotifier handles photo session notifications
type SessionNotifier interface {
	NotifySessionStart(sessionID string)
	NotifyMontageReady(sessionID string, montagePath string, duration time.Duration)
	NotifySessionFailure(sessionID string, err error)
}

// Printer hands a finished montage off to a printing device
type Printer interface {
	Print(ctx context.Context, montagePath string) error
}

// StateManager handles the persistent booth session ledger
type StateManager interface {
	Read() (*state.BoothState, error)
	SetStatus(status types.SessionStatus) error
	RecordSession(result *types.SessionResult, sessionErr error) error
	Cleanup() error
}

// SessionEngine runs photo sessions with an at-most-one-in-flight policy
type SessionEngine interface {
	// Trigger starts a session asynchronously. It reports false when a
	// session is already running and the trigger was dropped.
	Trigger(ctx context.Context) bool
	// RunSession runs a session synchronously and returns its result.
	RunSession(ctx context.Context) (*types.SessionResult, error)
	// Wait blocks until any asynchronously triggered session finishes.
	Wait()
}
