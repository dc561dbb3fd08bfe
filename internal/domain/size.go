package domain

import "fmt"

// FormatBytes renders a byte count with decimal units, e.g. 50000000 -> "50 MB"
func FormatBytes(b int64) string {
	const (
		KB = 1000
		MB = KB * 1000
		GB = MB * 1000
	)

	switch {
	case b >= GB:
		return trimUnit(float64(b)/GB, "GB")
	case b >= MB:
		return trimUnit(float64(b)/MB, "MB")
	case b >= KB:
		return trimUnit(float64(b)/KB, "kB")
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func trimUnit(v float64, unit string) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d %s", int64(v), unit)
	}
	return fmt.Sprintf("%.1f %s", v, unit)
}
