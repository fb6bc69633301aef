package source

import (
	"context"
	"fmt"

	"github.com/schimen/photobooth/pkg/interfaces"
	"github.com/schimen/photobooth/pkg/logger"
	"github.com/schimen/photobooth/pkg/utils"
)

// DirectorySource collects frames from a spool directory that the
// tethered capture device writes into. Capture paces each frame with
// the configured wait and countdown, then claims the newest files.
type DirectorySource struct {
	dir    string
	logger logger.Logger
}

// NewDirectorySource creates a source over a capture spool directory.
func NewDirectorySource(dir string, log logger.Logger) *DirectorySource {
	return &DirectorySource{
		dir:    dir,
		logger: log,
	}
}

// Capture waits for count frames and returns their paths in capture
// order (oldest of the claimed frames first). When fewer frames are
// available the shorter list is returned; the caller decides whether
// the count is still usable.
func (s *DirectorySource) Capture(ctx context.Context, count int, opts interfaces.CaptureOptions) ([]string, error) {
	for i := 0; i < count; i++ {
		if s.logger != nil {
			s.logger.Debug(fmt.Sprintf("Capturing image %d of %d", i+1, count))
		}
		if err := waitForFrame(ctx, opts); err != nil {
			return nil, err
		}
	}

	paths, err := utils.ListImageFiles(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to collect frames: %w", err)
	}

	if len(paths) > count {
		paths = paths[:count]
	} else if len(paths) < count && s.logger != nil {
		s.logger.Warn(fmt.Sprintf("Expected %d frames in %s, found %d", count, s.dir, len(paths)))
	}

	// ListImageFiles is newest-first; flip to capture order.
	for i, j := 0, len(paths)-1; i < j; i, j = i+1, j-1 {
		paths[i], paths[j] = paths[j], paths[i]
	}

	return paths, nil
}
