package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgpai22/diarsrt/internal/convert"
	"github.com/mgpai22/diarsrt/internal/subtitle"
	"github.com/mgpai22/diarsrt/internal/translate"
)

var convertCmd = &cobra.Command{
	Use:   "convert [json_file]",
	Short: "Create a subtitle file from a diarized transcript",
	Long: `Convert a diarized transcript JSON response into a subtitle file.

Every transcript entry becomes one cue, in input order, with the text
prefixed by "[speaker]: " when the entry has a speaker.

The transcript is read from the file argument, --json-string, piped
standard input, or pasted at a prompt, in that order. Without --output
the file is written to <output-dir>/<request_id>_<timestamp>.srt.

Examples:
  diarsrt convert response.json
  diarsrt convert response.json -o episode.srt
  cat response.json | diarsrt convert --format vtt
  diarsrt convert --json-string '{"diarized_transcript": {"entries": []}}'
  diarsrt convert response.json --translate-to english --provider openai`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		String("json-string", "", "Transcript JSON given inline")
	convertCmd.Flags().
		StringP("output", "o", "", "Output file path")
	convertCmd.Flags().
		StringP("format", "f", "srt", "Output subtitle format (srt, vtt, ass); follows the --output extension when omitted")
	convertCmd.Flags().
		String("output-dir", "output", "Directory for generated file names")
	convertCmd.Flags().
		Int("preview-lines", 15, "Lines of the result to print (0 disables)")
	convertCmd.Flags().
		StringP("language", "l", "", "Transcript language (e.g., hindi, en)")
	convertCmd.Flags().
		StringP("translate-to", "t", "", "Translate cue text to this language")
	convertCmd.Flags().
		String("provider", "gemini", "Translation provider (gemini, openai, anthropic)")
	convertCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY)")
	convertCmd.Flags().
		String("model", "", "Model to use for translation (provider-specific, uses sensible defaults)")
	convertCmd.Flags().
		Bool("model-override", false, "Allow any custom model, bypassing provider model validation")
	convertCmd.Flags().
		Int("concurrency", 3, "Number of parallel translation workers")
	convertCmd.Flags().
		Int("batch-size", 50, "Number of cues per translation request")
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	jsonString, _ := cmd.Flags().GetString("json-string")
	outputPath, _ := cmd.Flags().GetString("output")
	formatStr := stringFlag(cmd, "format", cfg.Format)
	outputDir := stringFlag(cmd, "output-dir", cfg.OutputDir)
	previewLines := intFlag(cmd, "preview-lines", cfg.PreviewLines)

	format, err := subtitle.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	if outputPath != "" && !cmd.Flags().Changed("format") {
		format = subtitle.GetFormatFromExtension(outputPath)
	}
	if previewLines < 0 {
		return fmt.Errorf("preview-lines must not be negative, got %d", previewLines)
	}

	translator, language, err := newTranslator(cmd)
	if err != nil {
		return err
	}

	conv, err := convert.New(convert.Options{
		Format: format,
		Namer: &convert.TimestampNamer{
			Dir:      outputDir,
			Fallback: cfg.FallbackName,
			Layout:   cfg.TimestampLayout,
			Now:      time.Now,
		},
		Notifier:   logger,
		Translator: translator,
		Language:   language,
	})
	if err != nil {
		return err
	}

	input, err := acquireInput(args, jsonString, cmd.InOrStdin(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	logger.Infow("Converting transcript",
		"source", string(input.Source),
		"file", input.Path,
		"output", outputPath,
		"format", string(format),
	)

	var result *convert.Result
	if input.Source == sourceFile {
		result, err = conv.ConvertFile(ctx, input.Path, outputPath)
	} else {
		result, err = conv.ConvertBytes(ctx, input.Data, outputPath)
	}
	if err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(result.Path)
	fmt.Fprintf(out, "Subtitles created successfully: %s\n", absOutput)
	fmt.Fprintf(out, "  Entries: %d\n", result.Cues)
	if len(result.Speakers) > 0 {
		fmt.Fprintf(out, "  Speakers: %s\n", strings.Join(result.Speakers, ", "))
	}

	writePreview(out, format, result.Text, previewLines, result.Cues)

	return nil
}

// builds the cue translator when --translate-to or translate.target_language
// is set, and returns the language the output document is in
func newTranslator(cmd *cobra.Command) (convert.TextTranslator, string, error) {
	inputLang, _ := cmd.Flags().GetString("language")
	targetLang := stringFlag(cmd, "translate-to", cfg.Translate.TargetLanguage)
	if targetLang == "" {
		return nil, inputLang, nil
	}

	if inputLang != "" &&
		strings.EqualFold(strings.TrimSpace(inputLang), strings.TrimSpace(targetLang)) {
		return nil, "", fmt.Errorf(
			"input language %q and target language %q cannot be the same",
			inputLang,
			targetLang,
		)
	}

	provider := translate.Provider(strings.ToLower(stringFlag(cmd, "provider", cfg.Translate.Provider)))
	model := stringFlag(cmd, "model", cfg.Translate.Model)
	modelOverride, _ := cmd.Flags().GetBool("model-override")
	concurrency := intFlag(cmd, "concurrency", cfg.Translate.Concurrency)
	batchSize := intFlag(cmd, "batch-size", cfg.Translate.BatchSize)

	if err := validateModel(provider, model, modelOverride); err != nil {
		return nil, "", err
	}
	if concurrency <= 0 {
		return nil, "", fmt.Errorf("concurrency must be positive, got %d", concurrency)
	}
	if batchSize <= 0 {
		return nil, "", fmt.Errorf("batch-size must be positive, got %d", batchSize)
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = os.Getenv(translate.APIKeyEnv(provider))
	}
	if apiKey == "" {
		return nil, "", fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			translate.APIKeyEnv(provider),
		)
	}

	translator, err := translate.Factory(cmd.Context(), provider, apiKey, translate.Options{
		InputLanguage:  inputLang,
		TargetLanguage: targetLang,
		Model:          model,
		BatchSize:      batchSize,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create translator: %w", err)
	}

	logger.Infow("Translation enabled",
		"provider", string(provider),
		"target_language", targetLang,
		"model", model,
		"concurrency", concurrency,
		"batch_size", batchSize,
	)

	return translate.NewService(translator, batchSize, concurrency), targetLang, nil
}

// flag value when given on the command line, otherwise the config value
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if cmd.Flags().Changed(name) || fallback == "" {
		value, _ := cmd.Flags().GetString(name)
		return value
	}
	return fallback
}

func intFlag(cmd *cobra.Command, name string, fallback int) int {
	if cmd.Flags().Changed(name) {
		value, _ := cmd.Flags().GetInt(name)
		return value
	}
	return fallback
}
