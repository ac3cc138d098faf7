package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	validSubtitleTypes   = []string{"karaoke", "normal", "none"}
	validMotionEffects   = []string{"none", "zoom_in", "zoom_out", "pan_left", "pan_right", "random"}
	validTransitionTypes = []string{"none", "cross-fade", "slide"}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateVideo(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	if err := c.validateMotion(); err != nil {
		return err
	}
	if err := c.validateTransitions(); err != nil {
		return err
	}
	if err := c.validateBGM(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateVideo() error {
	if c.Video.FPS <= 0 {
		return errors.New("video.fps must be positive")
	}
	if c.Video.Threads <= 0 {
		return errors.New("video.threads must be positive")
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	if !containsString(validSubtitleTypes, c.Subtitles.Type) {
		return fmt.Errorf("subtitles.type must be one of %s", strings.Join(validSubtitleTypes, ", "))
	}
	if c.Subtitles.KaraokeMaxChars <= 0 {
		return errors.New("subtitles.karaoke_max_chars must be positive")
	}
	if c.Subtitles.NormalMaxChars <= 0 {
		return errors.New("subtitles.normal_max_chars must be positive")
	}
	if err := validateColor("subtitles.base_color", c.Subtitles.BaseColor); err != nil {
		return err
	}
	if err := validateColor("subtitles.highlight_color", c.Subtitles.HighlightColor); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMotion() error {
	if !containsString(validMotionEffects, c.Motion.Effect) {
		return fmt.Errorf("motion.effect must be one of %s", strings.Join(validMotionEffects, ", "))
	}
	if c.Motion.Effect != "none" && (c.Motion.Intensity < 1.0 || c.Motion.Intensity > 1.3) {
		return errors.New("motion.intensity must be between 1.0 and 1.3")
	}
	return nil
}

func (c *Config) validateTransitions() error {
	if !containsString(validTransitionTypes, c.Transitions.Type) {
		return fmt.Errorf("transitions.type must be one of %s", strings.Join(validTransitionTypes, ", "))
	}
	if c.Transitions.Type != "none" && c.Transitions.Duration <= 0 {
		return errors.New("transitions.duration must be positive when transitions.type is set")
	}
	return nil
}

func (c *Config) validateBGM() error {
	if c.BGM.Volume < 0 || c.BGM.Volume > 1 {
		return errors.New("bgm.volume must be between 0.0 and 1.0")
	}
	return nil
}

func validateColor(key, value string) error {
	if len(value) != 6 {
		return fmt.Errorf("%s must be a 6-hex-digit BGR color", key)
	}
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'A' && r <= 'F':
		default:
			return fmt.Errorf("%s must be a 6-hex-digit BGR color", key)
		}
	}
	return nil
}

func containsString(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
