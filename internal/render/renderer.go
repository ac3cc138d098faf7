package render

import (
	"context"
	"log/slog"
	"math/rand"
	"strconv"

	"bookreel/internal/logging"
	"bookreel/internal/media/ffprobe"
)

// Options carries the encoding and compositing settings for a render run.
type Options struct {
	FFmpegBinary  string
	FFprobeBinary string
	WorkDir       string

	FPS        int
	VideoCodec string
	AudioCodec string
	Preset     string
	Threads    int

	MotionEffect    Effect
	MotionIntensity float64

	TransitionType     Transition
	TransitionDuration float64

	// Seed fixes the random motion selection for reproducible runs. Zero
	// means a fresh sequence per renderer.
	Seed int64
}

// Renderer drives ffmpeg to composite storyboard scenes into video.
type Renderer struct {
	opts   Options
	logger *slog.Logger
	run    commandRunner
	probe  probeFunc
	rng    *rand.Rand
}

// NewRenderer constructs a renderer with the default command runner.
func NewRenderer(opts Options, logger *slog.Logger) *Renderer {
	if opts.FFmpegBinary == "" {
		opts.FFmpegBinary = "ffmpeg"
	}
	if opts.FFprobeBinary == "" {
		opts.FFprobeBinary = "ffprobe"
	}
	if opts.FPS <= 0 {
		opts.FPS = 24
	}
	if opts.Threads <= 0 {
		opts.Threads = 4
	}
	if opts.MotionIntensity <= 1 {
		opts.MotionIntensity = 1.1
	}
	if opts.MotionEffect == "" {
		opts.MotionEffect = EffectRandom
	}
	r := &Renderer{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "renderer"),
		run:    defaultCommandRunner,
	}
	r.probe = func(ctx context.Context, path string) (ffprobe.Result, error) {
		return ffprobe.Inspect(ctx, opts.FFprobeBinary, path)
	}
	if opts.Seed != 0 {
		r.rng = rand.New(rand.NewSource(opts.Seed))
	} else {
		r.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return r
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (r *Renderer) WithCommandRunner(run commandRunner) {
	if r != nil && run != nil {
		r.run = run
	}
}

// WithProbe allows injecting a custom media prober for tests.
func (r *Renderer) WithProbe(probe probeFunc) {
	if r != nil && probe != nil {
		r.probe = probe
	}
}

// encodeArgs returns the fixed encoding arguments shared by every render
// step that produces video.
func (r *Renderer) encodeArgs() []string {
	return []string{
		"-c:v", r.opts.VideoCodec,
		"-preset", r.opts.Preset,
		"-threads", strconv.Itoa(r.opts.Threads),
		"-r", strconv.Itoa(r.opts.FPS),
	}
}
