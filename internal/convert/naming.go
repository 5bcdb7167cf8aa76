package convert

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mgpai22/diarsrt/internal/subtitle"
	"github.com/mgpai22/diarsrt/internal/transcript"
)

const (
	DefaultOutputDir       = "output"
	DefaultFallbackName    = "transcript"
	DefaultTimestampLayout = "20060102_150405"
)

// picks a destination when the caller did not give one
type Namer interface {
	Name(rec *transcript.Record, format subtitle.Format) string
}

// names outputs <Dir>/<request id>_<timestamp><ext>, using Fallback
// when the record has no request id
type TimestampNamer struct {
	Dir      string
	Fallback string
	Layout   string
	Now      func() time.Time
}

func DefaultNamer() *TimestampNamer {
	return &TimestampNamer{
		Dir:      DefaultOutputDir,
		Fallback: DefaultFallbackName,
		Layout:   DefaultTimestampLayout,
		Now:      time.Now,
	}
}

func (n *TimestampNamer) Name(rec *transcript.Record, format subtitle.Format) string {
	base := n.Fallback
	if base == "" {
		base = DefaultFallbackName
	}
	if rec != nil && strings.TrimSpace(rec.RequestID) != "" {
		base = rec.RequestID
	}

	layout := n.Layout
	if layout == "" {
		layout = DefaultTimestampLayout
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}

	name := fmt.Sprintf("%s_%s%s",
		sanitizeName(base),
		now().Format(layout),
		subtitle.GetExtensionForFormat(format))

	return filepath.Join(n.Dir, name)
}

// request ids come from a remote service; keep them inside Dir
func sanitizeName(name string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", "..", "_")
	return replacer.Replace(strings.TrimSpace(name))
}
