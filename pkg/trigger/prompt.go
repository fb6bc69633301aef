// Package trigger provides the ways a photo session gets fired: an
// interactive prompt loop and a watched trigger directory. Triggers
// only fire; the session engine decides whether a fire is honored or
// dropped.
package trigger

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schimen/photobooth/pkg/logger"
)

// PromptTrigger fires a session every time the operator presses enter.
// Typing q quits the loop.
type PromptTrigger struct {
	in     io.Reader
	out    io.Writer
	logger logger.Logger
}

// NewPromptTrigger creates an interactive stdin trigger.
func NewPromptTrigger(log logger.Logger) *PromptTrigger {
	return &PromptTrigger{
		in:     os.Stdin,
		out:    os.Stdout,
		logger: log,
	}
}

// NewPromptTriggerWithIO creates a prompt trigger with custom streams
// (for testing).
func NewPromptTriggerWithIO(in io.Reader, out io.Writer, log logger.Logger) *PromptTrigger {
	return &PromptTrigger{
		in:     in,
		out:    out,
		logger: log,
	}
}

// Start runs the prompt loop until q is entered, input is exhausted or
// the context is cancelled.
func (t *PromptTrigger) Start(ctx context.Context, fire func()) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(t.in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Fprint(t.out, "Press enter to capture photos. Type q and enter to quit\n> ")

		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if strings.Contains(strings.ToLower(line), "q") {
				if t.logger != nil {
					t.logger.Debug("Prompt trigger quit")
				}
				return nil
			}
			fire()
		}
	}
}
