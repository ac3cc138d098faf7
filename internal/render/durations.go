package render

import (
	"context"

	"bookreel/internal/fileutil"
	"bookreel/internal/logging"
	"bookreel/internal/media/ffprobe"
	"bookreel/internal/storyboard"
	"bookreel/internal/subtitles"
)

// probeFunc inspects a media file. Tests inject a fake instead of
// spawning ffprobe.
type probeFunc func(ctx context.Context, path string) (ffprobe.Result, error)

// ResolveDurations measures each scene's narration duration. The measured
// audio duration wins; when the file cannot be probed the storyboard's
// estimate applies, and when that is also absent a fixed fallback keeps
// the timeline moving.
func (r *Renderer) ResolveDurations(ctx context.Context, sb *storyboard.Storyboard) []subtitles.TimedScene {
	timed := make([]subtitles.TimedScene, 0, len(sb.Scenes))
	for _, scene := range sb.Scenes {
		duration := 0.0
		if fileutil.Exists(scene.AudioFile) {
			if result, err := r.probe(ctx, scene.AudioFile); err == nil {
				duration = result.DurationSeconds()
			} else if r.logger != nil {
				r.logger.Warn("audio probe failed",
					logging.Error(err),
					logging.Int(logging.FieldScene, scene.Number),
					logging.String("audio_file", scene.AudioFile))
			}
		}
		if duration <= 0 {
			duration = scene.DurationSeconds
		}
		if duration <= 0 {
			duration = subtitles.FallbackSceneDuration
			if r.logger != nil {
				r.logger.Warn("using fallback scene duration",
					logging.Int(logging.FieldScene, scene.Number),
					logging.Float64("duration_seconds", duration))
			}
		}
		timed = append(timed, subtitles.TimedScene{Scene: scene, Duration: duration})
	}
	return timed
}
