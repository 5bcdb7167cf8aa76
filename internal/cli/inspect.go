package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/mgpai22/diarsrt/internal/subtitle"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [subtitle.srt]",
	Short: "Show the cues of an SRT file as a table",
	Long: `Parse an SRT file and print one row per cue with its timing, speaker
and text. Speakers are colored when writing to a terminal.

Examples:
  diarsrt inspect output/transcript_20250314_092653.srt
  diarsrt inspect episode.srt --limit 20`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().
		Int("limit", 0, "Show at most this many cues (0 shows all)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	doc, err := subtitle.OpenSRT(args[0])
	if err != nil {
		return fmt.Errorf("failed to parse subtitle file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderCueTable(doc.Cues, limit, isTerminal(out)))
	fmt.Fprintf(out, "Total entries: %d\n", len(doc.Cues))
	return nil
}

var speakerColors = []text.Colors{
	{text.FgCyan},
	{text.FgMagenta},
	{text.FgYellow},
	{text.FgGreen},
	{text.FgBlue},
	{text.FgRed},
}

func renderCueTable(cues []subtitle.Cue, limit int, colorize bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Start", "End", "Speaker", "Text"})

	palette := make(map[string]text.Colors)
	shown := cues
	if limit > 0 && limit < len(cues) {
		shown = cues[:limit]
	}

	for _, cue := range shown {
		speaker := cue.Speaker
		if colorize && speaker != "" {
			colors, ok := palette[speaker]
			if !ok {
				colors = speakerColors[len(palette)%len(speakerColors)]
				palette[speaker] = colors
			}
			speaker = colors.Sprint(speaker)
		}
		tw.AppendRow(table.Row{
			cue.Index,
			subtitle.FormatSRTTimestamp(cue.Start),
			subtitle.FormatSRTTimestamp(cue.End),
			speaker,
			cue.Body,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, WidthMax: 80},
	})

	return tw.Render()
}
