package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/devbush/swiftconvert/internal/domain"
)

// renderProgressBar creates a text progress bar like [=====>    ]
// current=0, total=10, width=10 → [          ]
// current=5, total=10, width=10 → [=====>    ]
// current=10, total=10, width=10 → [==========]
// current=3, total=10, width=10 → [==>       ]
func renderProgressBar(current, total, width int) string {
	if total <= 0 {
		return "[" + strings.Repeat(" ", width) + "]"
	}

	var bar strings.Builder
	bar.WriteString("[")

	switch {
	case current >= total:
		bar.WriteString(strings.Repeat("=", width))
	case current <= 0:
		bar.WriteString(strings.Repeat(" ", width))
	default:
		// Partial: the arrow is the progress head, and from halfway on it
		// sits one cell past the rounded position
		ratio := float64(current) / float64(total)
		arrowPos := min(max(int(ratio*float64(width)+0.5), 1), width)

		equals := arrowPos - 1
		if ratio >= 0.5 {
			equals = arrowPos
		}
		equals = min(max(equals, 0), width-1)
		spaces := max(width-equals-1, 0)

		bar.WriteString(strings.Repeat("=", equals))
		bar.WriteString(">")
		bar.WriteString(strings.Repeat(" ", spaces))
	}

	bar.WriteString("]")
	return bar.String()
}

// BatchResult is the outcome of converting a single file
type BatchResult struct {
	Name     string
	Success  bool
	ErrMsg   string
	Duration time.Duration
	Results  []domain.ConversionResult
}

// BatchProgress collects per-file outcomes of a job and prints the summary
type BatchProgress struct {
	total     int
	completed int
	results   []BatchResult
	failures  []BatchResult
	quiet     bool
	out       io.Writer
	mu        sync.Mutex
}

// NewBatchProgress creates a batch summary for total files
func NewBatchProgress(total int, quiet bool) *BatchProgress {
	return NewBatchProgressWriter(os.Stdout, total, quiet)
}

// NewBatchProgressWriter creates a batch summary writing to out
func NewBatchProgressWriter(out io.Writer, total int, quiet bool) *BatchProgress {
	if total < 0 {
		total = 0
	}
	return &BatchProgress{
		total:    total,
		results:  make([]BatchResult, 0),
		failures: make([]BatchResult, 0),
		quiet:    quiet,
		out:      out,
	}
}

// AddResult records the outcome of one file
func (bp *BatchProgress) AddResult(result BatchResult) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	bp.results = append(bp.results, result)
	bp.completed++

	if !result.Success {
		bp.failures = append(bp.failures, result)
	}
}

// Line returns the overall progress line, e.g. "Converted 1/2 files [=====>    ] 50%"
func (bp *BatchProgress) Line() string {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	percent := 0
	if bp.total > 0 {
		percent = (bp.completed * 100) / bp.total
	}
	return fmt.Sprintf("Converted %d/%d files %s %d%%",
		bp.completed, bp.total, renderProgressBar(bp.completed, bp.total, 20), percent)
}

// Complete prints the final summary
func (bp *BatchProgress) Complete() {
	if bp.quiet {
		return
	}

	bp.mu.Lock()
	total := bp.total
	results := make([]BatchResult, len(bp.results))
	copy(results, bp.results)
	failures := make([]BatchResult, len(bp.failures))
	copy(failures, bp.failures)
	bp.mu.Unlock()

	succeeded := len(results) - len(failures)

	fmt.Fprintln(bp.out)
	fmt.Fprintf(bp.out, "Conversion complete: %d/%d succeeded\n", succeeded, total)

	maxName := 0
	for _, r := range results {
		for _, res := range r.Results {
			maxName = max(maxName, len(res.ArchiveName()))
		}
	}
	maxName = min(max(maxName, 10), 40)

	for _, r := range results {
		if !r.Success {
			continue
		}
		fmt.Fprintf(bp.out, "  ✓ %s (%s)\n", r.Name, FormatDuration(r.Duration))
		for _, res := range r.Results {
			fmt.Fprintf(bp.out, "      %s\n", FormatResultLine(res, maxName))
		}
	}

	if len(failures) > 0 {
		fmt.Fprintln(bp.out, "\nFailures:")
		for _, f := range failures {
			fmt.Fprintf(bp.out, "  ✗ %s: %s\n", f.Name, f.ErrMsg)
		}
	}
}

// GetSuccessCount returns the number of successful results
func (bp *BatchProgress) GetSuccessCount() int {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.completed - len(bp.failures)
}

// GetFailureCount returns the number of failed results
func (bp *BatchProgress) GetFailureCount() int {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return len(bp.failures)
}
