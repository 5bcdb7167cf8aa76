package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mgpai22/diarsrt/internal/subtitle"
	"github.com/mgpai22/diarsrt/internal/translate"
)

const twoSpeakerJSON = `{
  "request_id": "20250314_abc",
  "diarized_transcript": {
    "entries": [
      {"transcript": "Good morning.", "start_time_seconds": 0.5, "end_time_seconds": 2.0, "speaker_id": "SPEAKER_00"},
      {"transcript": "Morning! Shall we start?", "start_time_seconds": 2.0, "end_time_seconds": 4.75, "speaker_id": "SPEAKER_01"}
    ]
  }
}`

// runs the root command in a clean working directory
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConvertCommandFromFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "response.json")
	if err := os.WriteFile(input, []byte(twoSpeakerJSON), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	output := filepath.Join(dir, "episode.srt")

	out, err := executeCommand(t, "", "convert", input, "-o", output, "--preview-lines", "3")
	if err != nil {
		t.Fatalf("convert failed: %v\n%s", err, out)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "1\n00:00:00,500 --> 00:00:02,000\n[SPEAKER_00]: Good morning.\n\n" +
		"2\n00:00:02,000 --> 00:00:04,750\n[SPEAKER_01]: Morning! Shall we start?\n\n"
	if string(data) != want {
		t.Errorf("unexpected subtitle file:\n%s", data)
	}

	for _, s := range []string{
		"Subtitles created successfully: " + output,
		"Entries: 2",
		"Speakers: SPEAKER_00, SPEAKER_01",
		"SRT file content preview:",
		"[SPEAKER_00]: Good morning.",
		"...",
		"Total entries: 2",
	} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
	if strings.Contains(out, "Shall we start?") {
		t.Error("preview should stop after 3 lines")
	}
}

func TestConvertCommandFromStdin(t *testing.T) {
	output := filepath.Join(t.TempDir(), "piped.srt")

	out, err := executeCommand(t, twoSpeakerJSON, "convert", "-o", output, "--preview-lines", "0")
	if err != nil {
		t.Fatalf("convert failed: %v\n%s", err, out)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if strings.Contains(out, "preview") {
		t.Error("preview should be disabled")
	}
}

func TestConvertCommandFormatFollowsOutputExtension(t *testing.T) {
	output := filepath.Join(t.TempDir(), "episode.vtt")

	if out, err := executeCommand(t, twoSpeakerJSON, "convert", "-o", output, "--preview-lines", "0"); err != nil {
		t.Fatalf("convert failed: %v\n%s", err, out)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "WEBVTT") {
		t.Errorf("expected WebVTT output, got:\n%s", data)
	}
	if !strings.Contains(string(data), "<v SPEAKER_01>Morning! Shall we start?") {
		t.Errorf("expected voice tag for speaker:\n%s", data)
	}
}

func TestConvertCommandRejectsEmptyInput(t *testing.T) {
	_, err := executeCommand(t, "  \n", "convert")
	if !errors.Is(err, errNoInput) {
		t.Fatalf("expected errNoInput, got %v", err)
	}
}

func TestConvertCommandRejectsMissingEntries(t *testing.T) {
	output := filepath.Join(t.TempDir(), "never.srt")

	_, err := executeCommand(t, `{"diarized_transcript": {}}`, "convert", "-o", output)
	if err == nil || !strings.Contains(err.Error(), "entries") {
		t.Fatalf("expected missing entries error, got %v", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("no file should be written for malformed input")
	}
}

func TestAcquireInput(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		jsonString string
		stdin      string
		wantSource inputSource
		wantData   string
		wantErr    error
	}{
		{
			name:       "file argument wins",
			args:       []string{"in.json"},
			jsonString: `{"a":1}`,
			stdin:      `{"b":2}`,
			wantSource: sourceFile,
		},
		{
			name:       "json string before stdin",
			jsonString: ` {"a":1} `,
			stdin:      `{"b":2}`,
			wantSource: sourceFlag,
			wantData:   `{"a":1}`,
		},
		{
			name:       "piped stdin",
			stdin:      "\n{\"b\":2}\n",
			wantSource: sourceStdin,
			wantData:   `{"b":2}`,
		},
		{
			name:    "nothing given",
			stdin:   "",
			wantErr: errNoInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prompt bytes.Buffer
			got, err := acquireInput(tt.args, tt.jsonString, strings.NewReader(tt.stdin), &prompt)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Source != tt.wantSource {
				t.Errorf("source = %s, want %s", got.Source, tt.wantSource)
			}
			if got.Source == sourceFile && got.Path != tt.args[0] {
				t.Errorf("path = %q", got.Path)
			}
			if tt.wantData != "" && string(got.Data) != tt.wantData {
				t.Errorf("data = %q, want %q", got.Data, tt.wantData)
			}
			if prompt.Len() != 0 {
				t.Error("no prompt expected for non-terminal input")
			}
		})
	}
}

func TestWritePreview(t *testing.T) {
	text := "1\n00:00:00,000 --> 00:00:01,000\nHi\n\n2\n00:00:01,000 --> 00:00:02,000\nBye\n\n"

	tests := []struct {
		name      string
		n         int
		want      []string
		notWanted []string
	}{
		{
			name:      "truncated",
			n:         3,
			want:      []string{"SRT file content preview:", "Hi", "...", "Total entries: 2"},
			notWanted: []string{"Bye"},
		},
		{
			name:      "whole document",
			n:         15,
			want:      []string{"Hi", "Bye"},
			notWanted: []string{"...", "Total entries"},
		},
		{
			name:      "disabled",
			n:         0,
			notWanted: []string{"preview", "Hi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			writePreview(&buf, subtitle.FormatSRT, text, tt.n, 2)
			got := buf.String()
			for _, s := range tt.want {
				if !strings.Contains(got, s) {
					t.Errorf("preview missing %q:\n%s", s, got)
				}
			}
			for _, s := range tt.notWanted {
				if strings.Contains(got, s) {
					t.Errorf("preview should not contain %q:\n%s", s, got)
				}
			}
		})
	}
}

func TestSplitLinesMatchesFileLines(t *testing.T) {
	if got := len(splitLines("1\nA\nB\n\n")); got != 4 {
		t.Errorf("expected 4 lines, got %d", got)
	}
	if got := len(splitLines("")); got != 0 {
		t.Errorf("expected no lines, got %d", got)
	}
}

func TestValidateModel(t *testing.T) {
	tests := []struct {
		provider translate.Provider
		model    string
		override bool
		wantErr  bool
	}{
		{translate.ProviderGemini, "", false, false},
		{translate.ProviderGemini, "gemini-2.5-flash", false, false},
		{translate.ProviderGemini, " Gemini-2.5-Pro ", false, false},
		{translate.ProviderOpenAI, "gpt-5-mini", false, false},
		{translate.ProviderAnthropic, "claude-haiku-4-5", false, false},
		{translate.ProviderOpenAI, "gemini-2.5-flash", false, true},
		{translate.ProviderGemini, "my-finetune", false, true},
		{translate.ProviderGemini, "my-finetune", true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider)+"/"+tt.model, func(t *testing.T) {
			err := validateModel(tt.provider, tt.model, tt.override)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateModel(%s, %q, %v) error = %v, wantErr %v",
					tt.provider, tt.model, tt.override, err, tt.wantErr)
			}
		})
	}
}

func TestRenderCueTable(t *testing.T) {
	cues := []subtitle.Cue{
		{Index: 1, Start: 0.5, End: 2, Speaker: "SPEAKER_00", Body: "Good morning."},
		{Index: 2, Start: 2, End: 4.75, Body: "(applause)"},
		{Index: 3, Start: 5, End: 6, Speaker: "SPEAKER_01", Body: "Thanks."},
	}

	got := renderCueTable(cues, 2, false)

	for _, s := range []string{"00:00:00,500", "00:00:04,750", "SPEAKER_00", "(applause)"} {
		if !strings.Contains(got, s) {
			t.Errorf("table missing %q:\n%s", s, got)
		}
	}
	if strings.Contains(got, "Thanks.") {
		t.Error("limit should hide the third cue")
	}
	if strings.Contains(got, "\x1b[") {
		t.Error("no color codes expected when not colorizing")
	}
}
