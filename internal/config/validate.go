package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mgpai22/diarsrt/internal/subtitle"
	"github.com/mgpai22/diarsrt/internal/translate"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateTranslate(); err != nil {
		return err
	}
	if err := c.validateMedia(); err != nil {
		return err
	}
	if c.Watch.MaxConcurrent < 1 {
		return errors.New("watch.max_concurrent must be at least 1")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.OutputDir == "" {
		return errors.New("output_dir must be set")
	}
	if c.FallbackName == "" {
		return errors.New("fallback_name must be set")
	}
	if strings.ContainsAny(c.FallbackName, `/\`) {
		return fmt.Errorf("fallback_name %q must not contain path separators", c.FallbackName)
	}
	if c.TimestampLayout == "" {
		return errors.New("timestamp_layout must be set")
	}
	stamp := time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC).Format(c.TimestampLayout)
	if strings.ContainsAny(stamp, `/\`) {
		return fmt.Errorf("timestamp_layout %q must not produce path separators", c.TimestampLayout)
	}
	if _, err := subtitle.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if c.PreviewLines < 0 {
		return errors.New("preview_lines must be zero or positive")
	}
	return nil
}

func (c *Config) validateTranslate() error {
	switch translate.Provider(c.Translate.Provider) {
	case translate.ProviderGemini, translate.ProviderOpenAI, translate.ProviderAnthropic:
	default:
		return fmt.Errorf(
			"translate.provider %q is not supported (use gemini, openai or anthropic)",
			c.Translate.Provider,
		)
	}
	if c.Translate.Concurrency < 1 {
		return errors.New("translate.concurrency must be at least 1")
	}
	if c.Translate.BatchSize < 1 {
		return errors.New("translate.batch_size must be at least 1")
	}
	return nil
}

func (c *Config) validateMedia() error {
	if c.Media.SampleRate <= 0 {
		return errors.New("media.sample_rate must be positive")
	}
	if c.Media.Channels <= 0 {
		return errors.New("media.channels must be positive")
	}
	return nil
}
