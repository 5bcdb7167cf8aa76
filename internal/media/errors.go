package media

import (
	"errors"
	"fmt"
	"strings"
)

// returned (wrapped in ToolError) when ffmpeg or ffprobe cannot be found
var ErrToolNotFound = errors.New("executable not found")

// ToolError reports a missing external tool or a failed invocation of one.
type ToolError struct {
	Tool   string
	Path   string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	if errors.Is(e.Err, ErrToolNotFound) {
		return fmt.Sprintf("%s %v", e.Tool, e.Err)
	}
	msg := fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
	if tail := lastLine(e.Stderr); tail != "" {
		msg += ": " + tail
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
