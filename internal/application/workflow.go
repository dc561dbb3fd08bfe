package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/devbush/swiftconvert/internal/domain"
	"github.com/devbush/swiftconvert/internal/ports"
)

// Workflow drives one job at a time through upload, conversion and export
type Workflow struct {
	settings *SettingsStore
	convert  *ConvertService
	export   *ExportService
	session  ports.SessionStore
	bus      *EventBus

	mu      sync.RWMutex
	current domain.Job
}

// NewWorkflow creates an idle workflow. session may be nil.
func NewWorkflow(settings *SettingsStore, convert *ConvertService, export *ExportService, session ports.SessionStore, bus *EventBus) *Workflow {
	if bus == nil {
		bus = NewEventBus(0)
	}
	return &Workflow{
		settings: settings,
		convert:  convert,
		export:   export,
		session:  session,
		bus:      bus,
		current:  domain.Job{Status: domain.JobStatusIdle},
	}
}

// Events returns the bus job events are published on
func (w *Workflow) Events() *EventBus {
	return w.bus
}

// Current returns a snapshot of the current job
func (w *Workflow) Current() domain.Job {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return snapshotJob(w.current)
}

// Run converts files one after another with the current settings.
// A failed file is recorded and the remaining files still run.
func (w *Workflow) Run(ctx context.Context, files []domain.SelectedFile) (domain.Job, error) {
	if len(files) == 0 {
		return domain.Job{}, domain.ErrNoFileSelected
	}

	jobID, err := w.start(files)
	if err != nil {
		return domain.Job{}, err
	}

	settings := w.settings.Read()
	params := ConvertParams{TargetFormat: settings.FileOutputID, Quality: settings.ImageQuality}

	log.Info().
		Str("job", jobID).
		Int("files", len(files)).
		Str("output", string(params.TargetFormat)).
		Int("quality", params.Quality).
		Msg("job started")

	for _, file := range files {
		if err := w.transition(domain.JobStatusUploading, file.Name, ""); err != nil {
			return w.Current(), err
		}

		sub, err := w.convert.Submit(ctx, file, params)
		if err != nil {
			w.recordFailure(file, err)
			continue
		}

		if err := w.transition(domain.JobStatusProcessing, file.Name, ""); err != nil {
			return w.Current(), err
		}
		w.recordResults(sub)
	}

	job := w.Current()
	final := domain.JobStatusDone
	if len(job.Results) == 0 {
		final = domain.JobStatusFailed
	}
	if err := w.transition(final, "", fmt.Sprintf("%d converted, %d failed", len(job.Results), len(job.Failures))); err != nil {
		return w.Current(), err
	}

	w.persistResults(ctx)
	return w.Current(), nil
}

// SaveLocal exports the results of the last job to an archive at destPath
func (w *Workflow) SaveLocal(ctx context.Context, destPath string) error {
	results, err := w.beginExport()
	if err != nil {
		return err
	}
	return w.finishExport(w.export.SaveLocal(ctx, results, destPath))
}

// SaveToCloud exports the results of the last job to the cloud drive
func (w *Workflow) SaveToCloud(ctx context.Context) (*ports.ExportResult, error) {
	results, err := w.beginExport()
	if err != nil {
		return nil, err
	}
	res, err := w.export.SaveToCloud(ctx, results)
	return res, w.finishExport(err)
}

// Reset returns the workflow to idle and drops the last job
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.current = domain.Job{Status: domain.JobStatusIdle}
}

// Restore loads results from a previous invocation so they can be exported
func (w *Workflow) Restore(results []domain.ConversionResult) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if isRunning(w.current.Status) {
		return domain.ErrJobAlreadyRunning
	}
	w.current = domain.Job{
		ID:      uuid.NewString(),
		Status:  domain.JobStatusDone,
		Results: append([]domain.ConversionResult(nil), results...),
	}
	return nil
}

func (w *Workflow) start(files []domain.SelectedFile) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if isRunning(w.current.Status) {
		return "", domain.ErrJobAlreadyRunning
	}

	w.current = domain.Job{
		ID:        uuid.NewString(),
		Status:    domain.JobStatusUploading,
		Files:     append([]domain.SelectedFile(nil), files...),
		Failures:  map[string]string{},
		StartedAt: time.Now(),
	}
	return w.current.ID, nil
}

func (w *Workflow) transition(status domain.JobStatus, file, message string) error {
	w.mu.Lock()
	if status != w.current.Status && !isValidTransition(w.current.Status, status) {
		from := w.current.Status
		w.mu.Unlock()
		return fmt.Errorf("invalid transition: %s -> %s", from, status)
	}
	w.current.Status = status
	jobID := w.current.ID
	w.mu.Unlock()

	w.bus.Publish(Event{
		JobID:   jobID,
		Type:    EventTypeStatus,
		Status:  status,
		File:    file,
		Message: message,
	})
	return nil
}

func (w *Workflow) recordFailure(file domain.SelectedFile, err error) {
	w.mu.Lock()
	w.current.Failures[file.Name] = err.Error()
	jobID := w.current.ID
	w.mu.Unlock()

	w.bus.Publish(Event{
		JobID:   jobID,
		Type:    EventTypeError,
		File:    file.Name,
		Message: err.Error(),
	})
}

func (w *Workflow) recordResults(sub *Submission) {
	w.mu.Lock()
	w.current.Results = append(w.current.Results, sub.Results...)
	jobID := w.current.ID
	w.mu.Unlock()

	w.bus.Publish(Event{
		JobID:    jobID,
		Type:     EventTypeResult,
		File:     sub.File.Name,
		Progress: w.convert.Progress(),
		Results:  sub.Results,
	})
}

func (w *Workflow) beginExport() ([]domain.ConversionResult, error) {
	w.mu.RLock()
	results := append([]domain.ConversionResult(nil), w.current.Results...)
	w.mu.RUnlock()

	if len(results) == 0 {
		return nil, domain.ErrNoResults
	}
	if err := w.transition(domain.JobStatusExporting, "", ""); err != nil {
		return nil, err
	}
	return results, nil
}

func (w *Workflow) finishExport(exportErr error) error {
	status, message := domain.JobStatusDone, "export complete"
	if exportErr != nil {
		status, message = domain.JobStatusFailed, exportErr.Error()
	}
	if err := w.transition(status, "", message); err != nil {
		return err
	}
	return exportErr
}

func (w *Workflow) persistResults(ctx context.Context) {
	if w.session == nil {
		return
	}

	state, err := w.session.Load(ctx)
	if err != nil {
		state = &ports.SessionState{}
	}
	state.Settings = w.settings.Read()
	state.Results = w.Current().Results

	if err := w.session.Save(ctx, state); err != nil {
		log.Warn().Err(err).Msg("failed to save session results")
	}
}

// isRunning checks if a status represents an active stage
func isRunning(status domain.JobStatus) bool {
	switch status {
	case domain.JobStatusUploading, domain.JobStatusProcessing, domain.JobStatusExporting:
		return true
	default:
		return false
	}
}

// isValidTransition enforces the allowed job state machine edges
func isValidTransition(from, to domain.JobStatus) bool {
	switch from {
	case domain.JobStatusIdle:
		return to == domain.JobStatusUploading || to == domain.JobStatusFailed
	case domain.JobStatusUploading:
		return to == domain.JobStatusProcessing || to == domain.JobStatusFailed || to == domain.JobStatusDone
	case domain.JobStatusProcessing:
		return to == domain.JobStatusUploading || to == domain.JobStatusDone || to == domain.JobStatusFailed
	case domain.JobStatusExporting:
		return to == domain.JobStatusDone || to == domain.JobStatusFailed
	case domain.JobStatusDone, domain.JobStatusFailed:
		return to == domain.JobStatusUploading || to == domain.JobStatusExporting || to == domain.JobStatusIdle
	default:
		return false
	}
}

func snapshotJob(job domain.Job) domain.Job {
	job.Files = append([]domain.SelectedFile(nil), job.Files...)
	job.Results = append([]domain.ConversionResult(nil), job.Results...)
	if job.Failures != nil {
		failures := make(map[string]string, len(job.Failures))
		for k, v := range job.Failures {
			failures[k] = v
		}
		job.Failures = failures
	}
	return job
}
