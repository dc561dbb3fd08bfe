package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/mattn/go-isatty"

	"github.com/devbush/swiftconvert/internal/domain"
)

// FileStatus represents the state of one file in the conversion display
type FileStatus int

const (
	FilePending FileStatus = iota
	FileRunning
	FileComplete
	FileError
)

// fileLine is a single row of the conversion display
type fileLine struct {
	Name     string
	Size     int64
	Status   FileStatus
	Progress domain.Progress
	Error    string
}

// ProgressDisplay renders one line per file with the combined
// upload/convert bar of the file in flight.
type ProgressDisplay struct {
	files      []fileLine
	current    int
	spinnerIdx int
	quiet      bool
	styled     bool
	bar        progress.Model
	out        io.Writer
	mu         sync.Mutex
	lastRender time.Time
	rendered   bool
}

var spinnerFrames = spinner.MiniDot.Frames

const textBarWidth = 20

// NewProgressDisplay creates a display for files writing to stdout.
// The gradient bar is only used when stdout is a terminal.
func NewProgressDisplay(files []domain.SelectedFile, quiet bool) *ProgressDisplay {
	styled := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return NewProgressDisplayWriter(os.Stdout, files, quiet, styled)
}

// NewProgressDisplayWriter creates a display writing to out
func NewProgressDisplayWriter(out io.Writer, files []domain.SelectedFile, quiet, styled bool) *ProgressDisplay {
	pd := &ProgressDisplay{
		files:  make([]fileLine, len(files)),
		quiet:  quiet,
		styled: styled,
		out:    out,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
	}
	for i, f := range files {
		pd.files[i] = fileLine{Name: f.Name, Size: f.Size, Status: FilePending, Progress: domain.InitialProgress()}
	}
	return pd
}

// StartFile marks the file with the given name as in flight
func (p *ProgressDisplay) StartFile(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i := p.indexOf(name); i >= 0 {
		p.current = i
		p.files[i].Status = FileRunning
		p.files[i].Progress = domain.InitialProgress()
		p.render()
	}
}

// CompleteFile marks a file as converted
func (p *ProgressDisplay) CompleteFile(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i := p.indexOf(name); i >= 0 {
		p.files[i].Status = FileComplete
		p.files[i].Progress.UploadProgress = 100
		p.files[i].Progress.TranscribeProgress = 100
		p.render()
	}
}

// FailFile marks a file as failed
func (p *ProgressDisplay) FailFile(name, errMsg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i := p.indexOf(name); i >= 0 {
		p.files[i].Status = FileError
		p.files[i].Error = errMsg
		p.render()
	}
}

// UpdateProgress records a progress snapshot for the file in flight
func (p *ProgressDisplay) UpdateProgress(prog domain.Progress) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current < 0 || p.current >= len(p.files) || p.files[p.current].Status != FileRunning {
		return
	}
	p.files[p.current].Progress = prog
	// Throttle renders to avoid flickering, and flooding when piped
	interval := 100 * time.Millisecond
	if !p.styled {
		interval = time.Second
	}
	if time.Since(p.lastRender) > interval {
		p.render()
	}
}

// Tick advances the spinner animation
func (p *ProgressDisplay) Tick() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.spinnerIdx = (p.spinnerIdx + 1) % len(spinnerFrames)
	if p.styled {
		p.render()
	}
}

func (p *ProgressDisplay) indexOf(name string) int {
	for i, f := range p.files {
		if f.Name == name && f.Status != FileComplete && f.Status != FileError {
			return i
		}
	}
	return -1
}

func (p *ProgressDisplay) render() {
	if p.quiet {
		return
	}

	p.lastRender = time.Now()

	if p.rendered && p.styled {
		fmt.Fprintf(p.out, "\033[%dA", len(p.files)) // Move up
		fmt.Fprint(p.out, "\033[J")                  // Clear from cursor to end
	}

	total := len(p.files)
	for i, f := range p.files {
		fmt.Fprintln(p.out, p.line(i, total, f))
	}

	p.rendered = true
}

func (p *ProgressDisplay) line(i, total int, f fileLine) string {
	prefix := fmt.Sprintf("[%d/%d] %s (%s)", i+1, total, f.Name, FormatSize(f.Size))

	switch f.Status {
	case FilePending:
		return prefix
	case FileComplete:
		return prefix + " ✓"
	case FileError:
		return prefix + " ✗ " + f.Error
	}

	combined := f.Progress.Combined()
	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString(" ")
	if p.styled {
		sb.WriteString(p.bar.ViewAs(float64(combined) / 100))
	} else {
		sb.WriteString(renderProgressBar(combined, 100, textBarWidth))
	}
	sb.WriteString(fmt.Sprintf(" %3d%% %s", combined, f.Progress.Phase()))
	if f.Progress.UploadProgress >= 100 {
		sb.WriteString(" ")
		sb.WriteString(spinnerFrames[p.spinnerIdx])
	}
	return sb.String()
}

// StartSpinner starts a goroutine that ticks the spinner until the
// returned channel is closed.
func (p *ProgressDisplay) StartSpinner() chan struct{} {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p.Tick()
			}
		}
	}()
	return done
}
