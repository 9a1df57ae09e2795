package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/ChristianF88/logfilter/config"
	"github.com/ChristianF88/logfilter/pipeline"
	"github.com/ChristianF88/logfilter/tui"
)

// runWithTUI runs the pipeline in the background and drives a
// progress view in the foreground, the same split the teacher's
// tui.App.Run used (a background goroutine feeding a foreground
// tview event loop via QueueUpdateDraw).
func runWithTUI(ctx context.Context, cfg config.ApplicationConfig) error {
	view := tui.New()
	logger := log.New(tui.NewLogWriter(view), "", log.LstdFlags)

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, runErr := p.Run(ctx)
		if runErr == pipeline.ErrInterrupted {
			view.SetStatus("[yellow]interrupted[white]")
		} else if runErr != nil {
			view.SetStatus(fmt.Sprintf("[red]error: %v[white]", runErr))
		} else {
			view.SetStatus("[green]done[white]")
		}
		done <- runErr
		view.Stop()
	}()

	if err := view.Run(); err != nil {
		return err
	}
	// Quitting the view ('q' or Ctrl-C) cancels the run: in-flight
	// files finish, no further files are dispatched.
	cancel()
	return <-done
}
