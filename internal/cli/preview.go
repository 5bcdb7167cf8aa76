package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mgpai22/diarsrt/internal/subtitle"
)

// prints the first n lines of the written document, then the entry count
// when the preview was cut short
func writePreview(w io.Writer, format subtitle.Format, text string, n, entries int) {
	if n <= 0 {
		return
	}

	fmt.Fprintf(w, "\n%s file content preview:\n", strings.ToUpper(string(format)))
	fmt.Fprintln(w, strings.Repeat("-", 50))

	lines := splitLines(text)
	for _, line := range lines[:min(n, len(lines))] {
		fmt.Fprintln(w, line)
	}

	if len(lines) > n {
		fmt.Fprintln(w, "...")
		fmt.Fprintf(w, "Total entries: %d\n", entries)
	}
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
