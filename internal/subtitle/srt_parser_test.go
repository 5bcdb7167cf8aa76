package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mgpai22/diarsrt/internal/transcript"
)

func TestParseSRTFile(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:04,000
[SPEAKER_00]: Hello, world!

2
00:00:05,500 --> 00:00:08,200
This is a test.
With multiple lines.

3
00:00:00,000 --> 00:00:00,000
Starts at zero.
`
	tmpDir := t.TempDir()
	srtPath := filepath.Join(tmpDir, "test.srt")
	if err := os.WriteFile(srtPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	doc, err := OpenSRT(srtPath)
	if err != nil {
		t.Fatalf("failed to open SRT file: %v", err)
	}

	if len(doc.Cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(doc.Cues))
	}

	first := doc.Cues[0]
	if first.Start != 1 || first.End != 4 {
		t.Errorf("cue 0: expected 1s-4s, got %v-%v", first.Start, first.End)
	}
	if first.Speaker != "SPEAKER_00" || first.Body != "Hello, world!" {
		t.Errorf("cue 0: unexpected speaker/body %q / %q", first.Speaker, first.Body)
	}

	expectedText := "This is a test.\nWith multiple lines."
	if doc.Cues[1].Body != expectedText {
		t.Errorf("cue 1: expected %q, got %q", expectedText, doc.Cues[1].Body)
	}
	if doc.Cues[1].Speaker != "" {
		t.Errorf("cue 1: expected no speaker, got %q", doc.Cues[1].Speaker)
	}

	if doc.Cues[2].Body != "Starts at zero." {
		t.Errorf("cue 2: zero timestamps should still parse, got %q", doc.Cues[2].Body)
	}
}

func TestParseSRTRoundTrip(t *testing.T) {
	entries := []transcript.Entry{
		{Start: 1.5, End: 4.2, Text: "Hi", Speaker: "SPEAKER_00"},
		{Start: 4.25, End: 6, Text: ""},
		{Start: 6, End: 3700.125, Text: "[not a tag] text", Speaker: "SPEAKER_01"},
	}

	out, err := Render(&SRTWriter{}, NewDocument(entries))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	doc, err := ParseSRT(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ParseSRT failed: %v", err)
	}
	if len(doc.Cues) != len(entries) {
		t.Fatalf("expected %d cues, got %d", len(entries), len(doc.Cues))
	}

	for i, e := range entries {
		cue := doc.Cues[i]
		if cue.Index != i+1 {
			t.Errorf("cue %d: expected index %d, got %d", i, i+1, cue.Index)
		}
		if cue.Speaker != e.Speaker || cue.Body != e.Text {
			t.Errorf("cue %d: got %q/%q, want %q/%q", i, cue.Speaker, cue.Body, e.Speaker, e.Text)
		}
		if FormatSRTTimestamp(cue.Start) != FormatSRTTimestamp(e.Start) {
			t.Errorf("cue %d: start mismatch %v vs %v", i, cue.Start, e.Start)
		}
	}
}

func TestParseSRTRejectsMissingTimestamp(t *testing.T) {
	_, err := ParseSRT(strings.NewReader("1\nnot a timestamp\ntext\n"))
	if err == nil {
		t.Fatal("expected error for missing timestamp line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected error to mention line 2, got: %v", err)
	}
}

func TestSplitSpeaker(t *testing.T) {
	tests := []struct {
		input       string
		wantSpeaker string
		wantBody    string
	}{
		{"[SPEAKER_00]: hello", "SPEAKER_00", "hello"},
		{"hello", "", "hello"},
		{"[SPEAKER_00]:no space", "", "[SPEAKER_00]:no space"},
		{"[A]: multi\nline", "A", "multi\nline"},
		{"[]: empty", "", "[]: empty"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			speaker, body := SplitSpeaker(tt.input)
			if speaker != tt.wantSpeaker || body != tt.wantBody {
				t.Errorf("SplitSpeaker(%q) = %q, %q; want %q, %q",
					tt.input, speaker, body, tt.wantSpeaker, tt.wantBody)
			}
		})
	}
}
