package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDefaultExtractOptions(t *testing.T) {
	opts := DefaultExtractOptions()
	if opts.Format != "wav" || opts.SampleRate != 16000 || opts.Channels != 1 {
		t.Errorf("unexpected defaults: %+v", opts)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    ExtractOptions
		wantErr bool
	}{
		{"wav", ExtractOptions{Format: "wav", SampleRate: 16000, Channels: 1}, false},
		{"flac stereo", ExtractOptions{Format: "flac", SampleRate: 44100, Channels: 2}, false},
		{"unknown format", ExtractOptions{Format: "ogg", SampleRate: 16000, Channels: 1}, true},
		{"zero rate", ExtractOptions{Format: "wav", Channels: 1}, true},
		{"zero channels", ExtractOptions{Format: "wav", SampleRate: 16000}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name  string
		opts  ExtractOptions
		pairs [][2]string
	}{
		{
			name: "wav default",
			opts: DefaultExtractOptions(),
			pairs: [][2]string{
				{"-i", "in.mp4"},
				{"-acodec", "pcm_s16le"},
				{"-ar", "16000"},
				{"-ac", "1"},
			},
		},
		{
			name: "mp3 with bitrate",
			opts: ExtractOptions{Format: "mp3", SampleRate: 44100, Channels: 2, Bitrate: "128k"},
			pairs: [][2]string{
				{"-acodec", "libmp3lame"},
				{"-b:a", "128k"},
				{"-ar", "44100"},
				{"-ac", "2"},
			},
		},
		{
			name:  "flac",
			opts:  ExtractOptions{Format: "flac", SampleRate: 48000, Channels: 1},
			pairs: [][2]string{{"-acodec", "flac"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := buildArgs("in.mp4", "out.wav", tt.opts)
			joined := " " + strings.Join(args, " ") + " "
			for _, pair := range tt.pairs {
				want := " " + pair[0] + " " + pair[1] + " "
				if !strings.Contains(joined, want) {
					t.Errorf("args %v missing %q", args, strings.TrimSpace(want))
				}
			}
			for _, flag := range []string{"-vn", "-y", "out.wav"} {
				if !slices.Contains(args, flag) {
					t.Errorf("args %v missing %q", args, flag)
				}
			}
		})
	}
}

func TestFindToolExplicitMissing(t *testing.T) {
	_, err := FFmpegPath(filepath.Join(t.TempDir(), "ffmpeg"))
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
	var toolErr *ToolError
	if !errors.As(err, &toolErr) || toolErr.Tool != "ffmpeg" {
		t.Errorf("expected *ToolError for ffmpeg, got %T", err)
	}
}

func TestFindToolEnvOverride(t *testing.T) {
	fake := filepath.Join(t.TempDir(), "ffprobe")
	writeFile(t, fake, "#!/bin/sh\n")
	t.Setenv(EnvFFprobePath, fake)

	got, err := FFprobePath("")
	if err != nil {
		t.Fatalf("FFprobePath: %v", err)
	}
	if got != fake {
		t.Errorf("FFprobePath() = %q, want %q", got, fake)
	}
}

func TestFindToolNotOnPath(t *testing.T) {
	t.Setenv(EnvFFmpegPath, "")
	t.Setenv("PATH", t.TempDir())

	_, err := FFmpegPath("")
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "ffmpeg") {
		t.Errorf("error should name the tool: %v", err)
	}
}

func TestExtractAudioMissingInput(t *testing.T) {
	e := NewExtractor("", "")
	err := e.ExtractAudio(
		context.Background(),
		filepath.Join(t.TempDir(), "missing.mp4"),
		filepath.Join(t.TempDir(), "out.wav"),
		DefaultExtractOptions(),
	)
	if err == nil || !strings.Contains(err.Error(), "media file not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestExtractAudioToolMissing(t *testing.T) {
	t.Setenv(EnvFFmpegPath, "")
	t.Setenv("PATH", t.TempDir())

	dir := t.TempDir()
	input := filepath.Join(dir, "talk.mp4")
	writeFile(t, input, "not really a video")

	e := NewExtractor("", "")
	err := e.ExtractAudio(context.Background(), input, filepath.Join(dir, "talk.wav"), DefaultExtractOptions())
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "talk.wav")); !os.IsNotExist(statErr) {
		t.Error("no output should be created when ffmpeg is missing")
	}
}

func TestExtractAudioToolFails(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "ffmpeg")
	writeFile(t, fake, "#!/bin/sh\necho 'Invalid data found when processing input' >&2\nexit 1\n")
	input := filepath.Join(dir, "talk.mp4")
	writeFile(t, input, "junk")

	e := NewExtractor(fake, "")
	err := e.ExtractAudio(context.Background(), input, filepath.Join(dir, "talk.wav"), DefaultExtractOptions())

	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected *ToolError, got %v", err)
	}
	if errors.Is(err, ErrToolNotFound) {
		t.Error("a failing run is not a missing tool")
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Errorf("error should carry ffmpeg stderr: %v", err)
	}
}

func TestParseProbeDuration(t *testing.T) {
	got, err := parseProbeDuration([]byte(`{"format": {"duration": "12.500000"}}`))
	if err != nil {
		t.Fatalf("parseProbeDuration: %v", err)
	}
	if got != 12500*time.Millisecond {
		t.Errorf("got %v, want 12.5s", got)
	}

	if _, err := parseProbeDuration([]byte(`{"format": {}}`)); err == nil {
		t.Error("expected error for missing duration")
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := map[string]string{
		"talk.mp4":        "talk.wav",
		"/data/ep.01.mkv": "/data/ep.01.wav",
		"noext":           "noext.wav",
	}
	for in, want := range tests {
		if got := DefaultOutputPath(in, "wav"); got != want {
			t.Errorf("DefaultOutputPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsMediaFile(t *testing.T) {
	tests := map[string]bool{
		"a.MP4":  true,
		"b.wav":  true,
		"c.json": false,
		"d":      false,
	}
	for path, want := range tests {
		if got := IsMediaFile(path); got != want {
			t.Errorf("IsMediaFile(%q) = %v, want %v", path, got, want)
		}
	}
}
