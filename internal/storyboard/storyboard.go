package storyboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// AspectRatio selects the output canvas shape.
type AspectRatio string

const (
	AspectPortrait  AspectRatio = "9:16"
	AspectLandscape AspectRatio = "16:9"
	AspectSquare    AspectRatio = "1:1"
)

// ParseAspectRatio validates a ratio label.
func ParseAspectRatio(value string) (AspectRatio, error) {
	switch AspectRatio(strings.TrimSpace(value)) {
	case AspectPortrait:
		return AspectPortrait, nil
	case AspectLandscape:
		return AspectLandscape, nil
	case AspectSquare:
		return AspectSquare, nil
	default:
		return "", fmt.Errorf("aspect ratio must be 9:16, 16:9, or 1:1, got %q", value)
	}
}

// Canvas returns the output pixel dimensions for the ratio.
func (a AspectRatio) Canvas() (width, height int) {
	switch a {
	case AspectPortrait:
		return 1080, 1920
	case AspectSquare:
		return 1080, 1080
	default:
		return 1920, 1080
	}
}

// SubtitleType selects how narration is subtitled.
type SubtitleType string

const (
	SubtitleKaraoke SubtitleType = "karaoke"
	SubtitleNormal  SubtitleType = "normal"
	SubtitleNone    SubtitleType = "none"
)

// ParseSubtitleType validates a subtitle mode label.
func ParseSubtitleType(value string) (SubtitleType, error) {
	switch SubtitleType(strings.ToLower(strings.TrimSpace(value))) {
	case SubtitleKaraoke:
		return SubtitleKaraoke, nil
	case SubtitleNormal:
		return SubtitleNormal, nil
	case SubtitleNone:
		return SubtitleNone, nil
	default:
		return "", fmt.Errorf("subtitle type must be karaoke, normal, or none, got %q", value)
	}
}

// Scene is one narrated visual unit: one image, one narration audio clip,
// one text. Scenes are immutable once media generation succeeds; narration
// edits do not regenerate media, so callers re-trigger generation when the
// text changes.
type Scene struct {
	Number    int    `json:"scene_number"`
	Narration string `json:"narration"`
	ImageFile string `json:"image_file"`
	AudioFile string `json:"audio_file"`
	// DurationSeconds is the upstream estimate. The measured audio duration
	// overrides it wherever the file is readable.
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}

// Storyboard is the ordered scene collection plus presentation metadata.
type Storyboard struct {
	BookName       string       `json:"book_name"`
	AspectRatio    AspectRatio  `json:"aspect_ratio"`
	SubtitleType   SubtitleType `json:"subtitle_type"`
	BaseColor      string       `json:"base_color,omitempty"`
	HighlightColor string       `json:"highlight_color,omitempty"`
	Scenes         []Scene      `json:"scenes"`
}

// Load reads and validates a storyboard JSON file.
func Load(path string) (*Storyboard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read storyboard: %w", err)
	}
	var sb Storyboard
	if err := json.Unmarshal(data, &sb); err != nil {
		return nil, fmt.Errorf("parse storyboard: %w", err)
	}
	if err := sb.Validate(); err != nil {
		return nil, err
	}
	sort.Slice(sb.Scenes, func(i, j int) bool {
		return sb.Scenes[i].Number < sb.Scenes[j].Number
	})
	return &sb, nil
}

// Validate checks structural invariants: a non-empty ordered scene list with
// unique positive scene numbers, non-empty narration, and media paths set.
func (s *Storyboard) Validate() error {
	if strings.TrimSpace(s.BookName) == "" {
		return errors.New("storyboard: book_name is required")
	}
	if _, err := ParseAspectRatio(string(s.AspectRatio)); err != nil {
		return fmt.Errorf("storyboard: %w", err)
	}
	if s.SubtitleType != "" {
		if _, err := ParseSubtitleType(string(s.SubtitleType)); err != nil {
			return fmt.Errorf("storyboard: %w", err)
		}
	}
	if len(s.Scenes) == 0 {
		return errors.New("storyboard: at least one scene is required")
	}

	seen := make(map[int]struct{}, len(s.Scenes))
	for _, scene := range s.Scenes {
		if scene.Number <= 0 {
			return fmt.Errorf("storyboard: scene number %d must be positive", scene.Number)
		}
		if _, dup := seen[scene.Number]; dup {
			return fmt.Errorf("storyboard: duplicate scene number %d", scene.Number)
		}
		seen[scene.Number] = struct{}{}
		if strings.TrimSpace(scene.Narration) == "" {
			return fmt.Errorf("storyboard: scene %d has empty narration", scene.Number)
		}
		if strings.TrimSpace(scene.ImageFile) == "" {
			return fmt.Errorf("storyboard: scene %d has no image file", scene.Number)
		}
		if strings.TrimSpace(scene.AudioFile) == "" {
			return fmt.Errorf("storyboard: scene %d has no audio file", scene.Number)
		}
	}
	return nil
}

// Colors returns the base/highlight subtitle color pair, falling back to the
// provided defaults when the storyboard does not set one.
func (s *Storyboard) Colors(defaultBase, defaultHighlight string) (base, highlight string) {
	base = strings.TrimSpace(s.BaseColor)
	if base == "" {
		base = defaultBase
	}
	highlight = strings.TrimSpace(s.HighlightColor)
	if highlight == "" {
		highlight = defaultHighlight
	}
	return base, highlight
}
