// Package printer provides the montage print hand-off. Driving a real
// printing device is outside this repository; LogPrinter records the
// hand-off so the surrounding system can pick the montage up.
package printer

import (
	"context"

	"github.com/schimen/photobooth/pkg/logger"
)

// LogPrinter logs the montage that would be printed.
type LogPrinter struct {
	name   string
	logger logger.Logger
}

// NewLogPrinter creates a printer that only logs the hand-off. Name
// identifies the printing device in the logs.
func NewLogPrinter(name string, log logger.Logger) *LogPrinter {
	if name == "" {
		name = "default"
	}
	return &LogPrinter{
		name:   name,
		logger: log,
	}
}

// Print records the montage hand-off.
func (p *LogPrinter) Print(ctx context.Context, montagePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.logger != nil {
		p.logger.Info("Montage ready for printing",
			logger.WithField("printer", p.name),
			logger.WithField("montage", montagePath))
	}
	return nil
}
