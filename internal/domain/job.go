package domain

import "time"

// JobStatus is a stage of the upload/convert/export workflow
type JobStatus string

const (
	JobStatusIdle       JobStatus = "idle"
	JobStatusUploading  JobStatus = "uploading"
	JobStatusProcessing JobStatus = "processing"
	JobStatusExporting  JobStatus = "exporting"
	JobStatusDone       JobStatus = "done"
	JobStatusFailed     JobStatus = "failed"
)

// Job is one submission of one or more files
type Job struct {
	ID        string
	Status    JobStatus
	Files     []SelectedFile
	Results   []ConversionResult
	Failures  map[string]string // file name -> error message
	StartedAt time.Time
}
