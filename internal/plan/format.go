package plan

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatPace renders seconds-per-mile as "M:SS/mi" (or "H:MM:SS/mi" for
// paces over an hour). Zero or negative pace renders as "-".
func FormatPace(secPerMi float64) string {
	if secPerMi <= 0 {
		return "-"
	}
	total := int(math.Round(secPerMi))
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d/mi", h, m, s)
	}
	return fmt.Sprintf("%d:%02d/mi", m, s)
}

// FormatDuration renders seconds as "H:MM:SS".
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(math.Round(seconds))
	return fmt.Sprintf("%d:%02d:%02d", total/3600, total%3600/60, total%60)
}

// parseClock parses "HH:MM" into seconds since midnight.
func parseClock(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*3600 + m*60, true
}

// arrivalClock converts a start-of-day offset plus elapsed seconds into a
// wall-clock time and an explicit day offset, so multiday arrivals are
// unambiguous.
func arrivalClock(startSec int, elapsed float64) (string, int) {
	total := startSec + int(math.Round(elapsed))
	day := total / 86400
	rem := total % 86400
	return fmt.Sprintf("%02d:%02d:%02d", rem/3600, rem%3600/60, rem%60), day
}
