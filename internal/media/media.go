// Package media extracts audio tracks for speech-to-text services by
// driving ffmpeg.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// holds options for audio extraction
type ExtractOptions struct {
	Format     string // Output format (wav, mp3, aac, flac)
	SampleRate int    // Sample rate in Hz (e.g., 16000, 44100, 48000)
	Channels   int    // Number of channels (1 = mono, 2 = stereo)
	Bitrate    string // Bitrate for lossy formats (e.g., "128k", "320k")
}

// 16 kHz mono 16-bit PCM WAV, the input most speech services expect
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		Format:     "wav",
		SampleRate: 16000,
		Channels:   1,
	}
}

var supportedFormats = map[string]bool{
	"wav":  true,
	"mp3":  true,
	"aac":  true,
	"flac": true,
}

func (o ExtractOptions) Validate() error {
	if !supportedFormats[o.Format] {
		return fmt.Errorf(
			"invalid format %q: supported formats are wav, mp3, aac, flac",
			o.Format,
		)
	}
	if o.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", o.SampleRate)
	}
	if o.Channels <= 0 {
		return fmt.Errorf("channels must be positive, got %d", o.Channels)
	}
	return nil
}

func (o ExtractOptions) kwargs() ffmpeg.KwArgs {
	kwargs := ffmpeg.KwArgs{
		"vn": "",           // No video
		"ar": o.SampleRate, // Sample rate
		"ac": o.Channels,   // Channels
	}

	switch o.Format {
	case "mp3":
		kwargs["acodec"] = "libmp3lame"
		if o.Bitrate != "" {
			kwargs["b:a"] = o.Bitrate
		}
	case "aac":
		kwargs["acodec"] = "aac"
		if o.Bitrate != "" {
			kwargs["b:a"] = o.Bitrate
		}
	case "flac":
		kwargs["acodec"] = "flac"
	default:
		kwargs["acodec"] = "pcm_s16le"
	}
	return kwargs
}

// runs ffmpeg and ffprobe, resolved per call
type Extractor struct {
	FFmpegPath  string // explicit ffmpeg binary, optional
	FFprobePath string // explicit ffprobe binary, optional
}

func NewExtractor(ffmpegPath, ffprobePath string) *Extractor {
	return &Extractor{
		FFmpegPath:  ffmpegPath,
		FFprobePath: ffprobePath,
	}
}

// ExtractAudio writes the audio track of inputPath to outputPath. The output
// is replaced if it already exists.
func (e *Extractor) ExtractAudio(
	ctx context.Context,
	inputPath, outputPath string,
	opts ExtractOptions,
) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("media file not found: %s", inputPath)
	}

	ffmpegPath, err := FFmpegPath(e.FFmpegPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, buildArgs(inputPath, outputPath, opts)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &ToolError{
			Tool:   "ffmpeg",
			Path:   ffmpegPath,
			Stderr: stderr.String(),
			Err:    err,
		}
	}
	return nil
}

func buildArgs(inputPath, outputPath string, opts ExtractOptions) []string {
	return ffmpeg.Input(inputPath).
		Output(outputPath, opts.kwargs()).
		OverWriteOutput().
		GetArgs()
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// duration of an audio/video file
func (e *Extractor) Duration(ctx context.Context, path string) (time.Duration, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return 0, fmt.Errorf("file not found: %s", path)
	}

	ffprobePath, err := FFprobePath(e.FFprobePath)
	if err != nil {
		return 0, err
	}

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, &ToolError{
			Tool:   "ffprobe",
			Path:   ffprobePath,
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	return parseProbeDuration(out.Bytes())
}

func parseProbeDuration(data []byte) (time.Duration, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(probe.Format.Duration), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

// output path next to input with the extension of format
func DefaultOutputPath(inputPath, format string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "." + format
}

// checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	return videoExts[strings.ToLower(filepath.Ext(path))]
}

// checks if the file is an audio file based on extension
func IsAudioFile(path string) bool {
	return audioExts[strings.ToLower(filepath.Ext(path))]
}

// checks if the file is either audio or video
func IsMediaFile(path string) bool {
	return IsAudioFile(path) || IsVideoFile(path)
}

var videoExts = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".m4v":  true,
	".mpeg": true,
	".mpg":  true,
	".3gp":  true,
}

var audioExts = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".aac":  true,
	".flac": true,
	".ogg":  true,
	".m4a":  true,
	".wma":  true,
	".aiff": true,
}
