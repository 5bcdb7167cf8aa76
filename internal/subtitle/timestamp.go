package subtitle

import (
	"fmt"
	"math"
)

// clock splits an offset in seconds into its components. Every stage
// truncates, so 1.9995 yields 999 milliseconds rather than rounding up.
// Negative and non-finite offsets are clamped to zero.
func clock(seconds float64) (hours, minutes, secs, millis int64) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}

	hours = int64(math.Floor(seconds / 3600))
	minutes = int64(math.Floor(math.Mod(seconds, 3600) / 60))
	remainder := math.Mod(seconds, 60)
	millis = int64(math.Floor(math.Mod(remainder, 1) * 1000))
	secs = int64(math.Floor(remainder))

	return hours, minutes, secs, millis
}

// FormatSRTTimestamp renders HH:MM:SS,mmm. Hours above 99 are printed in full.
func FormatSRTTimestamp(seconds float64) string {
	h, m, s, ms := clock(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// FormatVTTTimestamp renders HH:MM:SS.mmm
func FormatVTTTimestamp(seconds float64) string {
	h, m, s, ms := clock(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// FormatASSTimestamp renders H:MM:SS.cc
func FormatASSTimestamp(seconds float64) string {
	h, m, s, ms := clock(seconds)
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, m, s, ms/10)
}
