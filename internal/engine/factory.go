package engine

import (
	"github.com/schimen/photobooth/pkg/interfaces"
	"github.com/schimen/photobooth/pkg/logger"
	"github.com/schimen/photobooth/pkg/montage"
	"github.com/schimen/photobooth/pkg/notifier"
	"github.com/schimen/photobooth/pkg/printer"
	"github.com/schimen/photobooth/pkg/source"
	"github.com/schimen/photobooth/pkg/state"
	"github.com/schimen/photobooth/pkg/trigger"
	"github.com/schimen/photobooth/pkg/types"
)

// NewDefaultDependencies wires the standard collaborators from the
// configuration.
func NewDefaultDependencies(cfg *types.PhotoboothConfig, log logger.Logger) Dependencies {
	var src interfaces.ImageSource
	switch cfg.Source.Type {
	case types.SourceTypeStatic:
		src = source.NewStaticSource(cfg.Source.Paths, log)
	default:
		src = source.NewDirectorySource(cfg.Source.Directory, log)
	}

	notifierConfig := notifier.Config{
		Enabled: cfg.Notifications.NotificationsEnabled(),
	}
	if cfg.Notifications != nil {
		notifierConfig.SuccessSound = cfg.Notifications.SuccessSound
		notifierConfig.FailureSound = cfg.Notifications.FailureSound
	}

	var prn interfaces.Printer
	if cfg.Printer != nil && cfg.Printer.Enabled {
		prn = printer.NewLogPrinter(cfg.Printer.Name, log)
	}

	return Dependencies{
		Source:   src,
		Montage:  montage.NewEngine(log),
		Notifier: notifier.New(notifierConfig, log),
		Printer:  prn,
		State:    state.NewManager(cfg.Booth.OutputDir, cfg.Booth.Name, log),
	}
}

// NewTrigger selects the configured session trigger.
func NewTrigger(cfg *types.PhotoboothConfig, log logger.Logger) interfaces.Trigger {
	switch cfg.Trigger.Type {
	case types.TriggerTypeWatch:
		return trigger.NewWatchTrigger(cfg.Trigger.WatchDir, log)
	default:
		return trigger.NewPromptTrigger(log)
	}
}
