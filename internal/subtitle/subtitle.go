package subtitle

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// represents single subtitle cue. Times are seconds from the start of the media.
type Cue struct {
	Index   int
	Start   float64
	End     float64
	Speaker string
	Body    string
}

// display text: "[speaker]: body", or body alone when there is no speaker
func (c Cue) Text() string {
	if c.Speaker == "" {
		return c.Body
	}
	return "[" + c.Speaker + "]: " + c.Body
}

// represents complete subtitle track
type Document struct {
	Cues     []Cue
	Language string
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
	FormatASS Format = "ass"
)

// interface for serializing a document
type Encoder interface {
	Encode(w io.Writer, doc *Document) error
}

// ParseFormat maps a user supplied name to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "srt":
		return FormatSRT, nil
	case "vtt", "webvtt":
		return FormatVTT, nil
	case "ass", "ssa":
		return FormatASS, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use srt, vtt, or ass", name)
	}
}

// subtitle format based on file extension
func GetFormatFromExtension(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vtt":
		return FormatVTT
	case ".ass", ".ssa":
		return FormatASS
	default:
		return FormatSRT
	}
}

// file extension for a format
func GetExtensionForFormat(format Format) string {
	switch format {
	case FormatVTT:
		return ".vtt"
	case FormatASS:
		return ".ass"
	default:
		return ".srt"
	}
}
