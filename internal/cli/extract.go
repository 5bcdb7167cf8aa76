package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mgpai22/diarsrt/internal/media"
)

var extractCmd = &cobra.Command{
	Use:   "extract [media_file]",
	Short: "Extract audio from a media file for transcription",
	Long: `Extract the audio track from an audio or video file and save it as a
separate file ready to upload to a speech-to-text service.

The default output is 16 kHz mono 16-bit PCM WAV. mp3, aac and flac are
also supported. ffmpeg is looked up in --ffmpeg, DIARSRT_FFMPEG_PATH,
the [media] config section and PATH.

Examples:
  diarsrt extract meeting.mp4
  diarsrt extract meeting.mp4 -o audio.mp3 -f mp3 -b 64k
  diarsrt extract meeting.mkv --sample-rate 44100 --channels 2`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		StringP("output", "o", "", "Output file path")
	extractCmd.Flags().
		StringP("format", "f", "wav", "Output audio format (wav, mp3, aac, flac)")
	extractCmd.Flags().
		IntP("sample-rate", "r", 16000, "Sample rate in Hz (e.g., 16000, 44100, 48000)")
	extractCmd.Flags().
		IntP("channels", "c", 1, "Number of audio channels (1=mono, 2=stereo)")
	extractCmd.Flags().
		StringP("bitrate", "b", "", "Bitrate for lossy formats (e.g., 128k, 320k)")
	extractCmd.Flags().
		String("ffmpeg", "", "Path to the ffmpeg binary")
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	format, _ := cmd.Flags().GetString("format")
	bitrate, _ := cmd.Flags().GetString("bitrate")
	outputPath, _ := cmd.Flags().GetString("output")

	opts := media.ExtractOptions{
		Format:     format,
		SampleRate: intFlag(cmd, "sample-rate", cfg.Media.SampleRate),
		Channels:   intFlag(cmd, "channels", cfg.Media.Channels),
		Bitrate:    bitrate,
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = media.DefaultOutputPath(inputPath, opts.Format)
	}
	if filepath.Clean(outputPath) == filepath.Clean(inputPath) {
		return fmt.Errorf("output path must differ from input: %s", outputPath)
	}

	if !media.IsMediaFile(inputPath) {
		logger.Warnw("Unrecognized media extension, trying anyway", "input", inputPath)
	}

	logger.Infow("Extracting audio",
		"input", inputPath,
		"output", outputPath,
		"format", opts.Format,
		"sample_rate", opts.SampleRate,
		"channels", opts.Channels,
	)

	extractor := media.NewExtractor(
		stringFlag(cmd, "ffmpeg", cfg.Media.FFmpegPath),
		cfg.Media.FFprobePath,
	)

	if err := extractor.ExtractAudio(cmd.Context(), inputPath, outputPath, opts); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Audio extracted successfully: %s\n", absOutput)

	if duration, err := extractor.Duration(cmd.Context(), outputPath); err != nil {
		logger.Debugw("Could not read audio duration", "error", err)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "  Duration: %s\n", duration.String())
	}

	return nil
}
