package render

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"bookreel/internal/fileutil"
	"bookreel/internal/logging"
	"bookreel/internal/storyboard"
	"bookreel/internal/subtitles"
)

const fadeDuration = 0.5

// sceneClip is one rendered per-scene segment with its narration audio.
type sceneClip struct {
	Scene    storyboard.Scene
	Path     string
	Duration float64
}

// Assemble renders every scene into a clip, composites transitions between
// them, and concatenates the result into the base promotional video at
// outputPath. All scene inputs are validated before any ffmpeg command
// runs, so a bad scene leaves no partial clips behind.
func (r *Renderer) Assemble(ctx context.Context, sb *storyboard.Storyboard, timed []subtitles.TimedScene, outputPath string) (Artifact, error) {
	if err := validateSceneInputs(sb); err != nil {
		return Artifact{}, err
	}
	if err := fileutil.EnsureDir(r.opts.WorkDir); err != nil {
		return Artifact{}, Wrap(ErrConfiguration, "assemble", "workdir", "", err)
	}

	width, height := sb.AspectRatio.Canvas()

	clips := make([]sceneClip, 0, len(timed))
	for i, ts := range timed {
		clipPath := fileutil.UniqueTempPath(r.opts.WorkDir, fmt.Sprintf("scene_%d", ts.Scene.Number), ".mp4")
		effect := r.opts.MotionEffect.resolve(r.rng)
		if err := r.renderSceneClip(ctx, ts, clipPath, width, height, effect, i == 0, i == len(timed)-1); err != nil {
			return Artifact{}, err
		}
		clips = append(clips, sceneClip{Scene: ts.Scene, Path: clipPath, Duration: ts.Duration})
		if r.logger != nil {
			r.logger.Info("scene clip rendered",
				logging.String(logging.FieldEventType, "scene_rendered"),
				logging.Int(logging.FieldScene, ts.Scene.Number),
				logging.String("effect", string(effect)),
				logging.Float64("duration_seconds", ts.Duration))
		}
	}

	var err error
	switch r.opts.TransitionType {
	case TransitionNone, "":
		err = r.concatClips(ctx, clips, nil, outputPath)
	default:
		var transitions []string
		transitions, err = r.renderTransitions(ctx, clips, width, height)
		if err == nil {
			err = r.concatClips(ctx, clips, transitions, outputPath)
		}
	}
	if err != nil {
		return Artifact{}, err
	}

	total := 0.0
	for _, clip := range clips {
		total += clip.Duration
	}
	if r.opts.TransitionType != TransitionNone && r.opts.TransitionType != "" {
		total += r.opts.TransitionDuration * float64(len(clips)-1)
	}
	if r.logger != nil {
		r.logger.Info("base video assembled",
			logging.String(logging.FieldEventType, "assembly_complete"),
			logging.String("output", outputPath),
			logging.Int("scenes", len(clips)),
			logging.Float64("duration_seconds", total))
	}
	return Artifact{Path: outputPath, DurationSeconds: total}, nil
}

// validateSceneInputs checks that every scene's image and audio exist
// before any rendering starts.
func validateSceneInputs(sb *storyboard.Storyboard) error {
	for _, scene := range sb.Scenes {
		if !fileutil.Exists(scene.ImageFile) {
			return Wrap(ErrNotFound, "assemble", "validate",
				fmt.Sprintf("scene %d image %s", scene.Number, scene.ImageFile), nil)
		}
		if !fileutil.Exists(scene.AudioFile) {
			return Wrap(ErrNotFound, "assemble", "validate",
				fmt.Sprintf("scene %d audio %s", scene.Number, scene.AudioFile), nil)
		}
	}
	return nil
}

// renderSceneClip turns one still image plus narration audio into an
// encoded clip of exactly the scene's duration, with motion applied and
// fades on the first and last scene of the video.
func (r *Renderer) renderSceneClip(ctx context.Context, ts subtitles.TimedScene, outPath string, width, height int, effect Effect, first, last bool) error {
	duration := ts.Duration
	frames := int(duration * float64(r.opts.FPS))
	if frames < 1 {
		frames = 1
	}

	filters := []string{motionFilter(effect, width, height, frames, r.opts.FPS, r.opts.MotionIntensity)}
	filters = append(filters, fmt.Sprintf("fps=%d", r.opts.FPS), "format=yuv420p")
	if first {
		filters = append(filters, fmt.Sprintf("fade=t=in:st=0:d=%s", formatSeconds(fadeDuration)))
	}
	if last && duration > fadeDuration {
		filters = append(filters, fmt.Sprintf("fade=t=out:st=%s:d=%s",
			formatSeconds(duration-fadeDuration), formatSeconds(fadeDuration)))
	}

	args := []string{"-y"}
	if effect == EffectNone {
		// Still input must be looped when no zoompan generates frames.
		args = append(args, "-loop", "1", "-framerate", strconv.Itoa(r.opts.FPS))
	}
	args = append(args, "-i", ts.Scene.ImageFile, "-i", ts.Scene.AudioFile)
	args = append(args, "-vf", strings.Join(filters, ","))
	args = append(args, "-map", "0:v", "-map", "1:a")
	args = append(args, r.encodeArgs()...)
	args = append(args, "-c:a", r.opts.AudioCodec)
	args = append(args, "-t", formatSeconds(duration), outPath)

	if err := r.run(ctx, r.opts.FFmpegBinary, args...); err != nil {
		return Wrap(ErrExternalTool, "assemble", "scene clip",
			fmt.Sprintf("scene %d", ts.Scene.Number), err)
	}
	return nil
}

// concatClips joins the scene clips (and optional transition segments)
// into the final base video. Transition segments contribute video only;
// the audio track is the exact concatenation of the scene narration.
func (r *Renderer) concatClips(ctx context.Context, clips []sceneClip, transitions []string, outputPath string) error {
	if len(clips) == 0 {
		return Wrap(ErrValidation, "assemble", "concat", "no scene clips", nil)
	}

	args := []string{"-y"}
	for _, clip := range clips {
		args = append(args, "-i", clip.Path)
	}
	for _, t := range transitions {
		args = append(args, "-i", t)
	}

	var filter strings.Builder
	videoSegments := 0
	for i := range clips {
		fmt.Fprintf(&filter, "[%d:v]", i)
		videoSegments++
		if i < len(transitions) {
			fmt.Fprintf(&filter, "[%d:v]", len(clips)+i)
			videoSegments++
		}
	}
	fmt.Fprintf(&filter, "concat=n=%d:v=1:a=0[v];", videoSegments)
	for i := range clips {
		fmt.Fprintf(&filter, "[%d:a]", i)
	}
	fmt.Fprintf(&filter, "concat=n=%d:v=0:a=1[a]", len(clips))

	args = append(args, "-filter_complex", filter.String())
	args = append(args, "-map", "[v]", "-map", "[a]")
	args = append(args, r.encodeArgs()...)
	args = append(args, "-c:a", r.opts.AudioCodec, outputPath)

	if err := r.run(ctx, r.opts.FFmpegBinary, args...); err != nil {
		return Wrap(ErrExternalTool, "assemble", "concat", "", err)
	}
	return nil
}

// formatSeconds renders a duration for ffmpeg arguments with millisecond
// precision.
func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
