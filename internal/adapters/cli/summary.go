package cli

import "github.com/devbush/swiftconvert/internal/domain"

// FileResult is the outcome of converting a single file in a job
type FileResult struct {
	Name    string
	Success bool
	Error   string
}

// JobSummary aggregates the outcome of a job
type JobSummary struct {
	Total     int
	Succeeded int
	Failed    int
	Outputs   int
	Results   []FileResult
}

// NewJobSummary summarizes a finished job in submission order
func NewJobSummary(job domain.Job) JobSummary {
	s := JobSummary{Total: len(job.Files), Outputs: len(job.Results)}
	for _, f := range job.Files {
		if msg, failed := job.Failures[f.Name]; failed {
			s.Failed++
			s.Results = append(s.Results, FileResult{Name: f.Name, Error: msg})
			continue
		}
		s.Succeeded++
		s.Results = append(s.Results, FileResult{Name: f.Name, Success: true})
	}
	return s
}

// FailedResults returns only the failed results
func (s *JobSummary) FailedResults() []FileResult {
	var failed []FileResult
	for _, r := range s.Results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	return failed
}
