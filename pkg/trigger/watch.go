package trigger

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/schimen/photobooth/pkg/logger"
	"github.com/schimen/photobooth/pkg/utils"
)

// WatchTrigger fires a session whenever a file is created in the watch
// directory. It is the headless stand-in for a physical button: any
// process that can touch a file can fire the booth. Bounce suppression
// is left to the engine's drop-while-busy policy.
type WatchTrigger struct {
	dir    string
	logger logger.Logger
}

// NewWatchTrigger creates a trigger over a watch directory.
func NewWatchTrigger(dir string, log logger.Logger) *WatchTrigger {
	return &WatchTrigger{
		dir:    dir,
		logger: log,
	}
}

// Start watches the trigger directory until the context is cancelled.
func (t *WatchTrigger) Start(ctx context.Context, fire func()) error {
	if err := utils.CreateDirectory(t.dir); err != nil {
		return fmt.Errorf("failed to create trigger directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(t.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", t.dir, err)
	}

	if t.logger != nil {
		t.logger.Info(fmt.Sprintf("Watching %s for trigger files", t.dir))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				if t.logger != nil {
					t.logger.Debug("Trigger file created", logger.WithField("file", event.Name))
				}
				fire()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if t.logger != nil {
				t.logger.Error("Watcher error", logger.WithField("error", err))
			}
		}
	}
}
