// Package source provides image sources for photo sessions. A source
// stands in for the capture collaborator: it yields paths to image
// files that already exist on durable storage.
package source

import (
	"context"
	"time"

	"github.com/schimen/photobooth/pkg/interfaces"
	"github.com/schimen/photobooth/pkg/logger"
	"github.com/schimen/photobooth/pkg/utils"
)

// waitForFrame pauses before a frame is taken, running the countdown
// callback on its own goroutine for the duration of the wait.
func waitForFrame(ctx context.Context, opts interfaces.CaptureOptions) error {
	if opts.WaitTime <= 0 {
		return nil
	}

	if opts.Countdown != nil {
		go opts.Countdown(opts.WaitTime)
	}

	select {
	case <-time.After(opts.WaitTime):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StaticSource yields a fixed list of image paths. Paths that do not
// exist are skipped, mirroring a camera that failed a single capture.
type StaticSource struct {
	paths  []string
	logger logger.Logger
}

// NewStaticSource creates a source over a fixed path list.
func NewStaticSource(paths []string, log logger.Logger) *StaticSource {
	return &StaticSource{
		paths:  paths,
		logger: log,
	}
}

// Capture returns up to count of the configured paths, skipping any
// that are unreadable.
func (s *StaticSource) Capture(ctx context.Context, count int, opts interfaces.CaptureOptions) ([]string, error) {
	var paths []string
	for _, path := range s.paths {
		if len(paths) == count {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !utils.Exists(path) {
			if s.logger != nil {
				s.logger.Error("Could not capture image", logger.WithField("path", path))
			}
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}
