package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mgpai22/diarsrt/internal/config"
	"github.com/mgpai22/diarsrt/internal/logging"
)

var (
	verbose    bool
	logFile    string
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "diarsrt",
	Short: "Convert diarized transcripts into subtitle files",
	Long: `diarsrt turns speaker-diarized transcript JSON from speech-to-text
services into SRT subtitles, one cue per entry with the speaker tagged.

It can also write WebVTT or ASS, translate cue text, extract audio for
transcription and watch a directory for new transcripts.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logFile != "" {
			l, err := logging.New(logging.Options{Verbose: verbose, File: logFile})
			if err != nil {
				return err
			}
			logger = l
		} else {
			logger = logging.NewLogger(verbose)
		}
		loadEnvFiles()

		loaded, path, exists, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		if exists {
			logger.Debugw("Loaded config", "path", path)
		}
		return nil
	},
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		if logger == nil {
			logger = logging.NewLogger(verbose)
		}
		logger.Errorw("Command failed", "error", err)
	}
	if logger != nil {
		logger.Close()
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&logFile, "log-file", "", "Also write logs to this file")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file (default ./diarsrt.toml or ~/.config/diarsrt/config.toml)")
}

// loads API keys and other settings from .env style files; variables that
// are already set win
func loadEnvFiles() {
	envFiles := []string{".env", "diarsrt.env"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		envFiles = append(envFiles, filepath.Join(homeDir, ".config", "diarsrt", "diarsrt.env"))
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		logger.Debugw("Loading environment file", "file", envFile)
		if err := godotenv.Load(envFile); err != nil {
			logger.Warnw("Failed to load environment file", "file", envFile, "error", err)
		}
	}
}
