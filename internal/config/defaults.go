package config

import (
	"github.com/mgpai22/diarsrt/internal/convert"
	"github.com/mgpai22/diarsrt/internal/media"
	"github.com/mgpai22/diarsrt/internal/subtitle"
	"github.com/mgpai22/diarsrt/internal/translate"
)

const (
	DefaultPreviewLines  = 15
	DefaultMaxConcurrent = 2
)

// Default returns a Config populated with built-in defaults.
func Default() Config {
	extract := media.DefaultExtractOptions()
	return Config{
		OutputDir:       convert.DefaultOutputDir,
		FallbackName:    convert.DefaultFallbackName,
		TimestampLayout: convert.DefaultTimestampLayout,
		Format:          string(subtitle.FormatSRT),
		PreviewLines:    DefaultPreviewLines,
		Translate: Translate{
			Provider:    string(translate.ProviderGemini),
			Concurrency: translate.DefaultConcurrency,
			BatchSize:   translate.DefaultBatchSize,
		},
		Media: Media{
			SampleRate: extract.SampleRate,
			Channels:   extract.Channels,
		},
		Watch: Watch{
			MaxConcurrent: DefaultMaxConcurrent,
		},
	}
}
