package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	var err error

	c.OutputDir = strings.TrimSpace(c.OutputDir)
	if c.OutputDir, err = expandHome(c.OutputDir); err != nil {
		return fmt.Errorf("output_dir: %w", err)
	}
	c.FallbackName = strings.TrimSpace(c.FallbackName)
	c.TimestampLayout = strings.TrimSpace(c.TimestampLayout)
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))

	c.Translate.Provider = strings.ToLower(strings.TrimSpace(c.Translate.Provider))
	c.Translate.Model = strings.TrimSpace(c.Translate.Model)
	c.Translate.TargetLanguage = strings.TrimSpace(c.Translate.TargetLanguage)

	if c.Media.FFmpegPath, err = expandPath(strings.TrimSpace(c.Media.FFmpegPath)); err != nil {
		return fmt.Errorf("media.ffmpeg_path: %w", err)
	}
	if c.Media.FFprobePath, err = expandPath(strings.TrimSpace(c.Media.FFprobePath)); err != nil {
		return fmt.Errorf("media.ffprobe_path: %w", err)
	}
	return nil
}
