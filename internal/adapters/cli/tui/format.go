package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/devbush/swiftconvert/internal/domain"
)

// FormatDuration formats a duration for result lines
// Examples: 850ms -> "850ms", 1.5s -> "1.5s", 90s -> "1m30s"
func FormatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "---"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}

// FormatSize formats a byte count with decimal units
func FormatSize(b int64) string {
	return domain.FormatBytes(b)
}

// FormatResultLine formats a converted file as a single line for display
// Example: "photo.png             PNG   https://cdn.example.com/abc"
func FormatResultLine(r domain.ConversionResult, maxNameLen int) string {
	name := r.ArchiveName()
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	nameFmt := fmt.Sprintf("%%-%ds", maxNameLen)
	return fmt.Sprintf("%s  %-5s %s", fmt.Sprintf(nameFmt, name), strings.ToUpper(r.Type), r.DownloadURL)
}

// FormatFileTypeLabel labels a catalog entry for pickers
func FormatFileTypeLabel(ft domain.SupportedFileType) string {
	if ft.Unavailable {
		return ft.Name + " (already uploaded)"
	}
	return ft.Name
}
