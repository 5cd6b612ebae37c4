package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAlignment(); err != nil {
		return err
	}
	if err := c.validateSegmentation(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAlignment() error {
	if c.Alignment.SimilarityThreshold <= 0 || c.Alignment.SimilarityThreshold > 100 {
		return errors.New("alignment.similarity_threshold must be between 0 and 100")
	}
	return nil
}

func (c *Config) validateSegmentation() error {
	s := c.Segmentation
	switch s.Language {
	case "auto", "ko", "en":
	default:
		return fmt.Errorf("segmentation.language must be auto, ko, or en, got %q", s.Language)
	}
	if s.LineSoftCap < 0 || s.LineHardCap < 0 {
		return errors.New("segmentation line caps must not be negative")
	}
	if s.LineSoftCap > 0 && s.LineHardCap > 0 && s.LineHardCap < s.LineSoftCap {
		return errors.New("segmentation.line_hard_cap must be at least segmentation.line_soft_cap")
	}
	if s.MaxLines < 1 {
		return errors.New("segmentation.max_lines must be at least 1")
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	if c.Subtitles.LeadInMS < 0 {
		return errors.New("subtitles.lead_in_ms must be >= 0")
	}
	return nil
}
