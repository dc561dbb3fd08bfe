package domain

import (
	"math"
	"time"
)

// InitialTranscribeProgress is where server-side processing starts so the
// bar never shows a completely idle second phase.
const InitialTranscribeProgress = 1

// Progress tracks the two phases of a single conversion
type Progress struct {
	UploadProgress     int           `json:"upload_progress"`     // 0-100
	TranscribeProgress int           `json:"transcribe_progress"` // 0-100
	CompletionTime     time.Duration `json:"completion_time"`     // server reported
}

// InitialProgress is the state before a submission and after any failure
func InitialProgress() Progress {
	return Progress{TranscribeProgress: InitialTranscribeProgress}
}

// Combined averages both phases onto a single 0-100 scale.
// Halves round to even: (100, 1) -> 50, (0, 1) -> 0.
func (p Progress) Combined() int {
	sum := clampPercent(p.UploadProgress) + clampPercent(p.TranscribeProgress)
	return int(math.RoundToEven(float64(sum) / 2))
}

// Phase returns a short label for the phase currently in progress
func (p Progress) Phase() string {
	switch {
	case p.UploadProgress < 100:
		return "Uploading"
	case p.TranscribeProgress < 100:
		return "Converting"
	default:
		return "Complete"
	}
}

// UploadPercent converts transferred bytes to a rounded 0-100 percentage
func UploadPercent(sent, total int64) int {
	if total <= 0 {
		return 0
	}
	return clampPercent(int(math.Round(100 * float64(sent) / float64(total))))
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
