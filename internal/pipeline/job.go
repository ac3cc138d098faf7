package pipeline

import "time"

// Job is one storyboard render tracked through the pipeline stages.
type Job struct {
	ID             int64
	BookName       string
	StoryboardPath string
	Status         Status
	ErrorMessage   string

	BasePath      string
	SubtitledPath string
	FinalPath     string

	DurationSeconds float64
	HasSubtitles    bool
	HasBGM          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
