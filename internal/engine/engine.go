// Package engine provides the photo session orchestration engine: it
// serializes sessions, drives capture and montage composition, persists
// the result and fans out notifications.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/schimen/photobooth/pkg/interfaces"
	"github.com/schimen/photobooth/pkg/logger"
	"github.com/schimen/photobooth/pkg/montage"
	"github.com/schimen/photobooth/pkg/types"
	"github.com/schimen/photobooth/pkg/utils"
)

// ErrSessionInProgress is returned by RunSession when another session
// holds the booth.
var ErrSessionInProgress = errors.New("a photo session is already running")

// Dependencies bundles the collaborators a Booth needs.
type Dependencies struct {
	Source   interfaces.ImageSource
	Montage  *montage.Engine
	Notifier interfaces.SessionNotifier
	Printer  interfaces.Printer
	State    interfaces.StateManager
}

// Booth is the photo session engine. At most one session runs at a
// time; a trigger that arrives while a session is active is dropped,
// not queued.
type Booth struct {
	config   *types.PhotoboothConfig
	logger   logger.Logger
	source   interfaces.ImageSource
	montage  *montage.Engine
	notifier interfaces.SessionNotifier
	printer  interfaces.Printer
	state    interfaces.StateManager

	busy sync.Mutex
	wg   sync.WaitGroup
}

// New creates a Booth with injected dependencies.
func New(cfg *types.PhotoboothConfig, log logger.Logger, deps Dependencies) *Booth {
	return &Booth{
		config:   cfg,
		logger:   log,
		source:   deps.Source,
		montage:  deps.Montage,
		notifier: deps.Notifier,
		printer:  deps.Printer,
		state:    deps.State,
	}
}

// Trigger starts a session on its own goroutine. It reports false and
// does nothing when a session is already running.
func (b *Booth) Trigger(ctx context.Context) bool {
	if !b.busy.TryLock() {
		b.logger.Debug("Trigger dropped, session already in progress")
		return false
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer b.busy.Unlock()

		sg, sgCtx := NewSafeGroup(ctx, b.logger)
		sg.Go(func() error {
			_, err := b.runSession(sgCtx)
			return err
		})
		if err := sg.Wait(); err != nil {
			b.logger.Error("Session failed", logger.WithField("error", err))
		}
	}()

	return true
}

// RunSession runs one session synchronously and returns its result.
func (b *Booth) RunSession(ctx context.Context) (*types.SessionResult, error) {
	if !b.busy.TryLock() {
		return nil, ErrSessionInProgress
	}
	defer b.busy.Unlock()

	return b.runSession(ctx)
}

// Wait blocks until any triggered session has finished.
func (b *Booth) Wait() {
	b.wg.Wait()
}

// runSession drives one capture-compose-persist cycle. The caller must
// hold the busy lock.
func (b *Booth) runSession(ctx context.Context) (*types.SessionResult, error) {
	sessionID := uuid.New().String()
	log := b.logger.WithSession(shortID(sessionID))
	started := time.Now()

	log.Info("Starting photo session")
	if err := b.state.SetStatus(types.SessionStatusCapturing); err != nil {
		log.Warn("Failed to persist state", logger.WithField("error", err))
	}
	if b.notifier != nil {
		b.notifier.NotifySessionStart(sessionID)
	}

	opts := interfaces.CaptureOptions{
		WaitTime: time.Duration(b.config.Booth.CountdownSeconds) * time.Second,
		Countdown: func(remaining time.Duration) {
			log.Info(fmt.Sprintf("Get ready, capturing in %s", remaining))
		},
	}

	paths, err := b.source.Capture(ctx, b.config.Booth.Shots, opts)
	if err != nil {
		return nil, b.failSession(log, sessionID, fmt.Errorf("capture failed: %w", err))
	}
	if len(paths) == 0 {
		return nil, b.failSession(log, sessionID, errors.New("got no image paths when capturing images"))
	}
	log.Debug(fmt.Sprintf("Captured %d images", len(paths)))

	if err := b.state.SetStatus(types.SessionStatusComposing); err != nil {
		log.Warn("Failed to persist state", logger.WithField("error", err))
	}

	img, err := b.montage.CreateMontage(paths, b.config.Canvas.Spec())
	if err != nil {
		return nil, b.failSession(log, sessionID, fmt.Errorf("could not create montage image: %w", err))
	}

	if err := utils.CreateDirectory(b.config.Booth.OutputDir); err != nil {
		return nil, b.failSession(log, sessionID, fmt.Errorf("could not create output directory: %w", err))
	}

	montagePath := utils.TimestampedName(b.config.Booth.OutputDir, "montage.jpg", started)
	if err := montage.SaveJPEG(img, montagePath); err != nil {
		return nil, b.failSession(log, sessionID, fmt.Errorf("could not save montage: %w", err))
	}

	result := &types.SessionResult{
		ID:          sessionID,
		MontagePath: montagePath,
		ImagePaths:  paths,
		StartedAt:   started,
		Duration:    time.Since(started),
	}

	if err := b.state.RecordSession(result, nil); err != nil {
		log.Warn("Failed to persist state", logger.WithField("error", err))
	}
	if b.notifier != nil {
		b.notifier.NotifyMontageReady(sessionID, montagePath, result.Duration)
	}
	if b.printer != nil {
		if err := b.printer.Print(ctx, montagePath); err != nil {
			log.Error("Print hand-off failed", logger.WithField("error", err))
		}
	}

	log.Success("Saved image montage", logger.WithField("path", montagePath))
	return result, nil
}

// failSession records and fans out a session failure. It returns the
// error for the caller to propagate.
func (b *Booth) failSession(log logger.Logger, sessionID string, err error) error {
	log.Error(err.Error())
	if stateErr := b.state.RecordSession(nil, err); stateErr != nil {
		log.Warn("Failed to persist state", logger.WithField("error", stateErr))
	}
	if b.notifier != nil {
		b.notifier.NotifySessionFailure(sessionID, err)
	}
	return err
}

// shortID trims a session UUID for log prefixes.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
