package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/devbush/swiftconvert/internal/adapters/cli/tui"
	"github.com/devbush/swiftconvert/internal/application"
	"github.com/devbush/swiftconvert/internal/domain"
)

const eventPollInterval = 100 * time.Millisecond

// runConvert filters inputs through the upload surface, converts the
// accepted files and then exports the results as requested.
func runConvert(ctx context.Context, app *App, inputs []string) error {
	files := resolveInputs(ctx, app, inputs)
	if len(files) == 0 {
		return domain.ErrNoFileSelected
	}

	accepted, _ := app.Upload.Accept(files)
	if len(accepted) == 0 {
		return domain.ErrNoFileSelected
	}
	if singleFlag {
		if err := app.Upload.Submit(); err != nil {
			return err
		}
	}

	pending := app.TakePending()
	app.Upload.Clear()

	job, err := processJob(ctx, app, pending)
	if err != nil {
		return err
	}

	summary := NewJobSummary(job)
	if len(job.Results) > 0 {
		if err := exportResults(ctx, app, len(job.Results)); err != nil {
			return err
		}
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", summary.Failed, summary.Total)
	}
	return nil
}

// processJob runs the workflow while rendering its events
func processJob(ctx context.Context, app *App, files []domain.SelectedFile) (domain.Job, error) {
	display := tui.NewProgressDisplay(files, quietFlag)
	batch := tui.NewBatchProgress(len(files), quietFlag)

	bus := app.Workflow.Events()
	watcher := newJobWatcher(display, batch)
	stop := watcher.follow(bus, bus.LastSeq())
	spinnerDone := display.StartSpinner()

	job, err := app.Workflow.Run(ctx, files)

	close(spinnerDone)
	stop()

	if err != nil {
		return job, err
	}

	batch.Complete()
	return job, nil
}

// jobWatcher turns workflow events into display updates
type jobWatcher struct {
	display *tui.ProgressDisplay
	batch   *tui.BatchProgress
	started map[string]time.Time
}

func newJobWatcher(display *tui.ProgressDisplay, batch *tui.BatchProgress) *jobWatcher {
	return &jobWatcher{
		display: display,
		batch:   batch,
		started: make(map[string]time.Time),
	}
}

// follow polls bus from seq until the returned stop function is called.
// stop drains any remaining events before returning.
func (w *jobWatcher) follow(bus *application.EventBus, seq int64) (stop func()) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		ticker := time.NewTicker(eventPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				w.drain(bus, &seq)
				return
			case <-ticker.C:
				w.drain(bus, &seq)
			}
		}
	}()

	return func() {
		close(done)
		wg.Wait()
	}
}

func (w *jobWatcher) drain(bus *application.EventBus, seq *int64) {
	for _, e := range bus.Since(*seq) {
		*seq = e.Seq
		w.handle(e)
	}
}

func (w *jobWatcher) handle(e application.Event) {
	switch e.Type {
	case application.EventTypeStatus:
		if e.Status == domain.JobStatusUploading && e.File != "" {
			w.started[e.File] = e.Timestamp
			w.display.StartFile(e.File)
		}
	case application.EventTypeProgress:
		w.display.UpdateProgress(e.Progress)
	case application.EventTypeResult:
		w.display.CompleteFile(e.File)
		w.batch.AddResult(tui.BatchResult{
			Name:     e.File,
			Success:  true,
			Duration: w.elapsed(e),
			Results:  e.Results,
		})
		log.Info().Msg(w.batch.Line())
	case application.EventTypeError:
		if e.File == "" {
			return
		}
		w.display.FailFile(e.File, e.Message)
		w.batch.AddResult(tui.BatchResult{
			Name:     e.File,
			ErrMsg:   e.Message,
			Duration: w.elapsed(e),
		})
		log.Info().Msg(w.batch.Line())
	}
}

// elapsed prefers the server reported time over the local wall clock
func (w *jobWatcher) elapsed(e application.Event) time.Duration {
	if e.Progress.CompletionTime > 0 {
		return e.Progress.CompletionTime
	}
	if start, ok := w.started[e.File]; ok {
		return e.Timestamp.Sub(start)
	}
	return 0
}

// exportResults saves the last job's results as requested by flags, or
// asks when running interactively.
func exportResults(ctx context.Context, app *App, count int) error {
	switch {
	case saveFlag != "":
		return saveLocal(ctx, app, saveFlag)
	case driveFlag:
		return saveToDrive(ctx, app)
	case isInteractive():
		return promptExport(ctx, app, count)
	}
	if !quietFlag {
		fmt.Println("\nRun 'swiftconvert export local <file.zip>' or 'swiftconvert export drive' to save the results.")
	}
	return nil
}

func promptExport(ctx context.Context, app *App, count int) error {
	target, err := tui.RunExportSelector(count)
	if err != nil {
		return err
	}

	switch target {
	case tui.ExportLocal:
		dest := defaultArchiveName(time.Now())
		picked, err := pickSavePath(dest)
		switch {
		case errors.Is(err, errNoDialog):
			// keep the default name in the working directory
		case err != nil:
			return err
		case picked == "":
			fmt.Println("Cancelled")
			return nil
		default:
			dest = picked
		}
		return saveLocal(ctx, app, dest)
	case tui.ExportDrive:
		return saveToDrive(ctx, app)
	}
	return nil
}

func saveLocal(ctx context.Context, app *App, dest string) error {
	if filepath.Ext(dest) == "" {
		dest += ".zip"
	}
	if err := app.Workflow.SaveLocal(ctx, dest); err != nil {
		app.Notifier.Error(fmt.Sprintf("Failed to save images: %v", err))
		return err
	}
	app.Notifier.Success("Images saved", dest, nil)
	return nil
}

func saveToDrive(ctx context.Context, app *App) error {
	// SaveToCloud reports the outcome through the notifier itself
	_, err := app.Workflow.SaveToCloud(ctx)
	if errors.Is(err, domain.ErrNotSignedIn) {
		log.Debug().Msg("drive export skipped, no session")
	}
	return err
}

// defaultArchiveName names a local export after the time it was made
func defaultArchiveName(now time.Time) string {
	return fmt.Sprintf("swiftconvert-%s.zip", now.Format("20060102-150405"))
}
