package subtitle

import (
	"fmt"
	"io"
	"strings"
)

// SubRip format
type SRTWriter struct{}

// WebVTT format
type VTTWriter struct{}

// Advanced SubStation Alpha format
type ASSWriter struct {
	Title    string
	FontName string
	FontSize int
}

func NewEncoder(format Format) (Encoder, error) {
	switch format {
	case FormatSRT:
		return &SRTWriter{}, nil
	case FormatVTT:
		return &VTTWriter{}, nil
	case FormatASS:
		return &ASSWriter{
			Title:    "Diarized Transcript",
			FontName: "Arial",
			FontSize: 20,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Render encodes doc into a string
func Render(enc Encoder, doc *Document) (string, error) {
	var sb strings.Builder
	if err := enc.Encode(&sb, doc); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// writes cue blocks separated by one blank line; the last block is also
// followed by a blank line
func (w *SRTWriter) Encode(out io.Writer, doc *Document) error {
	var sb strings.Builder
	for i, cue := range doc.Cues {
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			FormatSRTTimestamp(cue.Start),
			FormatSRTTimestamp(cue.End)))

		sb.WriteString(cue.Text())
		sb.WriteString("\n\n")
	}

	_, err := io.WriteString(out, sb.String())
	return err
}

func (w *VTTWriter) Encode(out io.Writer, doc *Document) error {
	var sb strings.Builder

	sb.WriteString("WEBVTT\n")
	if doc.Language != "" {
		sb.WriteString(fmt.Sprintf("Language: %s\n", doc.Language))
	}
	sb.WriteString("\n")

	for i, cue := range doc.Cues {
		// optional cue identifier
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			FormatVTTTimestamp(cue.Start),
			FormatVTTTimestamp(cue.End)))

		if cue.Speaker != "" {
			// voice span keeps the speaker machine readable
			sb.WriteString(fmt.Sprintf("<v %s>%s", cue.Speaker, cue.Body))
		} else {
			sb.WriteString(cue.Body)
		}
		sb.WriteString("\n\n")
	}

	_, err := io.WriteString(out, sb.String())
	return err
}

func (w *ASSWriter) Encode(out io.Writer, doc *Document) error {
	var sb strings.Builder

	// script info section
	sb.WriteString("[Script Info]\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", w.Title))
	sb.WriteString("ScriptType: v4.00+\n")
	sb.WriteString("Collisions: Normal\n")
	sb.WriteString("PlayDepth: 0\n\n")

	// v4+ styles section
	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	sb.WriteString(fmt.Sprintf("Style: Default,%s,%d,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1\n\n",
		w.FontName, w.FontSize))

	// events section
	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

	for _, cue := range doc.Cues {
		sb.WriteString(fmt.Sprintf("Dialogue: 0,%s,%s,Default,%s,0,0,0,,%s\n",
			FormatASSTimestamp(cue.Start),
			FormatASSTimestamp(cue.End),
			escapeASSField(cue.Speaker),
			escapeASSText(cue.Text())))
	}

	_, err := io.WriteString(out, sb.String())
	return err
}

func escapeASSText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\n", "\\N")
}

// the Name field is comma delimited
func escapeASSField(name string) string {
	return strings.ReplaceAll(name, ",", " ")
}
