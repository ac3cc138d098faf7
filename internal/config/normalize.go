package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeVideo()
	c.normalizeSubtitles()
	c.normalizeMotion()
	c.normalizeTransitions()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	dirs := make([]string, 0, len(c.Paths.BGMDirs))
	seen := make(map[string]struct{}, len(c.Paths.BGMDirs))
	for _, dir := range c.Paths.BGMDirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		expanded, expandErr := expandPath(dir)
		if expandErr != nil {
			return fmt.Errorf("paths.bgm_dirs: %w", expandErr)
		}
		if _, ok := seen[expanded]; ok {
			continue
		}
		seen[expanded] = struct{}{}
		dirs = append(dirs, expanded)
	}
	if len(dirs) == 0 {
		expanded, expandErr := expandPath(defaultBGMDir)
		if expandErr != nil {
			return fmt.Errorf("paths.bgm_dirs: %w", expandErr)
		}
		dirs = []string{expanded}
	}
	c.Paths.BGMDirs = dirs

	if strings.TrimSpace(c.BGM.File) != "" {
		if c.BGM.File, err = expandPath(c.BGM.File); err != nil {
			return fmt.Errorf("bgm.file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeVideo() {
	if c.Video.FPS <= 0 {
		c.Video.FPS = defaultFPS
	}
	c.Video.VideoCodec = strings.TrimSpace(c.Video.VideoCodec)
	if c.Video.VideoCodec == "" {
		c.Video.VideoCodec = defaultVideoCodec
	}
	c.Video.AudioCodec = strings.TrimSpace(c.Video.AudioCodec)
	if c.Video.AudioCodec == "" {
		c.Video.AudioCodec = defaultAudioCodec
	}
	c.Video.Preset = strings.TrimSpace(c.Video.Preset)
	if c.Video.Preset == "" {
		c.Video.Preset = defaultPreset
	}
	if c.Video.Threads <= 0 {
		c.Video.Threads = defaultThreads
	}
}

func (c *Config) normalizeSubtitles() {
	c.Subtitles.Type = strings.ToLower(strings.TrimSpace(c.Subtitles.Type))
	if c.Subtitles.Type == "" {
		c.Subtitles.Type = defaultSubtitleType
	}
	if c.Subtitles.KaraokeMaxChars <= 0 {
		c.Subtitles.KaraokeMaxChars = defaultKaraokeMaxChars
	}
	if c.Subtitles.NormalMaxChars <= 0 {
		c.Subtitles.NormalMaxChars = defaultNormalMaxChars
	}
	c.Subtitles.FontName = strings.TrimSpace(c.Subtitles.FontName)
	if c.Subtitles.FontName == "" {
		c.Subtitles.FontName = defaultFontName
	}
	c.Subtitles.BaseColor = normalizeColor(c.Subtitles.BaseColor, defaultBaseColor)
	c.Subtitles.HighlightColor = normalizeColor(c.Subtitles.HighlightColor, defaultHighlightColor)
}

func normalizeColor(value, fallback string) string {
	cleaned := strings.ToUpper(strings.TrimSpace(value))
	cleaned = strings.TrimPrefix(cleaned, "#")
	if cleaned == "" {
		return fallback
	}
	return cleaned
}

func (c *Config) normalizeMotion() {
	c.Motion.Effect = strings.ToLower(strings.TrimSpace(c.Motion.Effect))
	if c.Motion.Effect == "" {
		c.Motion.Effect = defaultMotionEffect
	}
	if c.Motion.Intensity == 0 {
		c.Motion.Intensity = defaultMotionIntensity
	}
}

func (c *Config) normalizeTransitions() {
	c.Transitions.Type = strings.ToLower(strings.TrimSpace(c.Transitions.Type))
	if c.Transitions.Type == "" {
		c.Transitions.Type = defaultTransitionType
	}
	if c.Transitions.Duration == 0 {
		c.Transitions.Duration = defaultTransitionDuration
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
