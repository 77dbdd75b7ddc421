package netmon

import (
	"fmt"
	"time"
)

const (
	// Binary unit multipliers (1024-based).
	kb = 1024
	mb = kb * 1024
	gb = mb * 1024
)

// TooltipMaxLen is the maximum character length of Status.Tooltip, matching
// the length limit of tray tooltips.
const TooltipMaxLen = 63

// rateUnits is the ordered unit ladder for FormatRate. Values are clamped at
// the last unit even when they still exceed 1024.
var rateUnits = [...]string{"B/s", "KB/s", "MB/s", "GB/s"}

// FormatRate formats a bytes-per-second value as a human-readable string
// with one fixed decimal, e.g. "1.0 KB/s". Negative inputs, which occur
// transiently on counter glitches, format as zero. No locale formatting;
// the decimal separator is always a point.
func FormatRate(bytesPerSec float64) string {
	if bytesPerSec < 0 {
		bytesPerSec = 0
	}
	unit := 0
	for bytesPerSec >= 1024 && unit < len(rateUnits)-1 {
		bytesPerSec /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", bytesPerSec, rateUnits[unit])
}

// FormatBytes formats a byte total using the same 1024-based unit ladder as
// FormatRate. Used for session totals in menus and tooltips.
func FormatBytes(bytes uint64) string {
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatDuration formats a duration in a human-readable format.
// Returns formats like "1h 23m 45s", "23m 45s", or "45s" depending on duration.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return "0s"
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// clampTooltip truncates s to TooltipMaxLen characters. Truncation counts
// runes, not bytes, so multi-byte arrows are never split.
func clampTooltip(s string) string {
	runes := []rune(s)
	if len(runes) <= TooltipMaxLen {
		return s
	}
	return string(runes[:TooltipMaxLen])
}
