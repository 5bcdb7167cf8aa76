package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mgpai22/diarsrt/internal/convert"
	"github.com/mgpai22/diarsrt/internal/subtitle"
	"github.com/mgpai22/diarsrt/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Convert transcripts as they are dropped into a directory",
	Long: `Watch a directory and convert every new *.json transcript into a
subtitle file named after it in --output-dir. Runs until interrupted.

Examples:
  diarsrt watch ./responses
  diarsrt watch ./responses --output-dir ./subs --format vtt --max-concurrent 4`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().
		StringP("format", "f", "srt", "Output subtitle format (srt, vtt, ass)")
	watchCmd.Flags().
		String("output-dir", "output", "Directory for converted files")
	watchCmd.Flags().
		Int("max-concurrent", 2, "Maximum number of files converted at once")
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	format, err := subtitle.ParseFormat(stringFlag(cmd, "format", cfg.Format))
	if err != nil {
		return err
	}
	outputDir := stringFlag(cmd, "output-dir", cfg.OutputDir)
	maxConcurrent := intFlag(cmd, "max-concurrent", cfg.Watch.MaxConcurrent)

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("watch directory not found: %s", dir)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	conv, err := convert.New(convert.Options{
		Format:   format,
		Notifier: logger,
	})
	if err != nil {
		return err
	}

	watcher, err := watch.New(dir, watch.ConvertInto(conv, outputDir), logger, maxConcurrent)
	if err != nil {
		return err
	}
	defer watcher.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for transcripts (Ctrl+C to stop)\n", dir)

	err = watcher.Run(cmd.Context())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
