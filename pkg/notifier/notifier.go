// Package notifier provides photo session notification functionality
package notifier

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/schimen/photobooth/pkg/logger"
)

// SessionNotifier handles desktop notifications for photo sessions
type SessionNotifier struct {
	enabled      bool
	successSound string
	failureSound string
	logger       logger.Logger
}

// Config represents notification configuration
type Config struct {
	Enabled      bool
	SuccessSound string
	FailureSound string
}

// New creates a new session notifier
func New(config Config, log logger.Logger) *SessionNotifier {
	return &SessionNotifier{
		enabled:      config.Enabled,
		successSound: config.SuccessSound,
		failureSound: config.FailureSound,
		logger:       log,
	}
}

// NotifySessionStart notifies that a photo session has started
func (n *SessionNotifier) NotifySessionStart(sessionID string) {
	if !n.enabled {
		return
	}

	title := "📷 Photobooth"
	message := "Smile! Capturing photos..."

	n.sendNotification(title, message, "")
}

// NotifyMontageReady notifies that the montage has been composed and saved
func (n *SessionNotifier) NotifyMontageReady(sessionID string, montagePath string, duration time.Duration) {
	if !n.enabled {
		return
	}

	title := "✅ Montage Ready"
	message := fmt.Sprintf("%s composed in %s", filepath.Base(montagePath), formatDuration(duration))

	n.sendNotification(title, message, n.successSound)
}

// NotifySessionFailure notifies that a photo session failed
func (n *SessionNotifier) NotifySessionFailure(sessionID string, err error) {
	if !n.enabled {
		return
	}

	title := "❌ Session Failed"
	message := fmt.Sprintf("%v", err)

	n.sendNotification(title, message, n.failureSound)
}

// Private methods

func (n *SessionNotifier) sendNotification(title, message, soundName string) {
	if err := beeep.Notify(title, message, ""); err != nil {
		if n.logger != nil {
			n.logger.Debug("Failed to send notification", logger.WithField("error", err))
		}
	}

	// Play sound if specified
	if soundName != "" {
		if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
			if n.logger != nil {
				n.logger.Debug("Failed to play sound", logger.WithField("error", err))
			}
		}
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
