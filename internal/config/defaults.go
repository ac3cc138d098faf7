package config

const (
	defaultOutputDir = "~/.local/share/bookreel/output"
	defaultWorkDir   = "~/.local/share/bookreel/work"
	defaultLogDir    = "~/.local/share/bookreel/logs"
	defaultBGMDir    = "~/.local/share/bookreel/bgm"

	defaultFPS        = 24
	defaultVideoCodec = "libx264"
	defaultAudioCodec = "aac"
	defaultPreset     = "medium"
	defaultThreads    = 4

	defaultSubtitleType    = "karaoke"
	defaultKaraokeMaxChars = 15
	defaultNormalMaxChars  = 20
	defaultFontName        = "Noto Sans CJK JP"
	defaultBaseColor       = "FFFFFF"
	defaultHighlightColor  = "00FFFF"

	defaultMotionEffect    = "random"
	defaultMotionIntensity = 1.1

	defaultTransitionType     = "cross-fade"
	defaultTransitionDuration = 0.8

	defaultBGMVolume = 0.15

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			WorkDir:   defaultWorkDir,
			LogDir:    defaultLogDir,
			BGMDirs:   []string{defaultBGMDir},
		},
		Video: Video{
			FPS:        defaultFPS,
			VideoCodec: defaultVideoCodec,
			AudioCodec: defaultAudioCodec,
			Preset:     defaultPreset,
			Threads:    defaultThreads,
		},
		Subtitles: Subtitles{
			Type:            defaultSubtitleType,
			KaraokeMaxChars: defaultKaraokeMaxChars,
			NormalMaxChars:  defaultNormalMaxChars,
			FontName:        defaultFontName,
			BaseColor:       defaultBaseColor,
			HighlightColor:  defaultHighlightColor,
		},
		Motion: Motion{
			Effect:    defaultMotionEffect,
			Intensity: defaultMotionIntensity,
		},
		Transitions: Transitions{
			Type:     defaultTransitionType,
			Duration: defaultTransitionDuration,
		},
		BGM: BGM{
			Volume: defaultBGMVolume,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
