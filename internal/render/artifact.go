package render

import (
	"fmt"
	"path/filepath"

	"bookreel/internal/textutil"
)

// Artifact describes a rendered video output and which optional layers it
// carries.
type Artifact struct {
	Path            string  `json:"path"`
	DurationSeconds float64 `json:"duration_seconds"`
	HasSubtitles    bool    `json:"has_subtitles"`
	HasBGM          bool    `json:"has_bgm"`
}

// OutputName builds the output file name for a given render phase,
// sanitizing the book name for filesystem use.
func OutputName(dir, bookName, suffix string) string {
	name := textutil.SanitizeFileName(bookName)
	return filepath.Join(dir, fmt.Sprintf("%s_%s.mp4", name, suffix))
}

// Output suffixes for the three render phases.
const (
	SuffixBase      = "promotional_video"
	SuffixSubtitled = "promotional_video_with_subtitles"
	SuffixBGM       = "promotional_video_with_bgm"
)
