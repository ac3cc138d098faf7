package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"

	"bookreel/internal/bgm"
	"bookreel/internal/config"
	"bookreel/internal/fileutil"
	"bookreel/internal/logging"
	"bookreel/internal/render"
	"bookreel/internal/storyboard"
	"bookreel/internal/subtitles"
)

// Overrides carries per-run settings that take precedence over the
// configuration file.
type Overrides struct {
	SubtitleType string
	BGMFile      string
	SkipBGM      bool
}

// Runner executes the render pipeline for a storyboard, persisting stage
// progress so an interrupted run resumes where it stopped.
type Runner struct {
	cfg      *config.Config
	store    *Store
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewRunner constructs a pipeline runner.
func NewRunner(cfg *config.Config, store *Store, logger *slog.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("pipeline: config is required")
	}
	if store == nil {
		return nil, errors.New("pipeline: store is required")
	}
	opts, err := RendererOptions(cfg)
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:      cfg,
		store:    store,
		renderer: render.NewRenderer(opts, logger),
		logger:   logging.NewComponentLogger(logger, "pipeline"),
	}, nil
}

// WithRenderer replaces the renderer, used by tests to inject fakes.
func (r *Runner) WithRenderer(renderer *render.Renderer) {
	if r != nil && renderer != nil {
		r.renderer = renderer
	}
}

// RendererOptions maps the configuration onto renderer settings.
func RendererOptions(cfg *config.Config) (render.Options, error) {
	effect, err := render.ParseEffect(cfg.Motion.Effect)
	if err != nil {
		return render.Options{}, fmt.Errorf("pipeline: %w", err)
	}
	transition, err := render.ParseTransition(cfg.Transitions.Type)
	if err != nil {
		return render.Options{}, fmt.Errorf("pipeline: %w", err)
	}
	return render.Options{
		FFmpegBinary:       cfg.FFmpegBinary(),
		FFprobeBinary:      cfg.FFprobeBinary(),
		WorkDir:            cfg.Paths.WorkDir,
		FPS:                cfg.Video.FPS,
		VideoCodec:         cfg.Video.VideoCodec,
		AudioCodec:         cfg.Video.AudioCodec,
		Preset:             cfg.Video.Preset,
		Threads:            cfg.Video.Threads,
		MotionEffect:       effect,
		MotionIntensity:    cfg.Motion.Intensity,
		TransitionType:     transition,
		TransitionDuration: cfg.Transitions.Duration,
	}, nil
}

// Run renders a storyboard end to end. A work-directory lock guards
// against concurrent renders sharing temp files; stage results are
// persisted so a re-run of the same storyboard resumes after the last
// completed stage.
func (r *Runner) Run(ctx context.Context, storyboardPath string, overrides Overrides) (*Job, error) {
	if err := r.cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	lock := flock.New(filepath.Join(r.cfg.Paths.WorkDir, "bookreel.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("pipeline: acquire lock: %w", err)
	}
	if !ok {
		return nil, errors.New("pipeline: another render is already running")
	}
	defer func() { _ = lock.Unlock() }()

	sb, err := storyboard.Load(storyboardPath)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	job, err := r.resumeOrCreate(ctx, sb, storyboardPath)
	if err != nil {
		return nil, err
	}

	if err := r.execute(ctx, job, sb, overrides); err != nil {
		job.Status = StatusFailed
		job.ErrorMessage = err.Error()
		if saveErr := r.store.SaveJob(ctx, job); saveErr != nil && r.logger != nil {
			r.logger.Error("persist failed job", logging.Error(saveErr), logging.Int64(logging.FieldJobID, job.ID))
		}
		return job, err
	}
	return job, nil
}

// resumeOrCreate reuses the latest non-terminal job for a storyboard,
// rolling an in-flight stage back to its restart point, or creates a new
// pending job.
func (r *Runner) resumeOrCreate(ctx context.Context, sb *storyboard.Storyboard, storyboardPath string) (*Job, error) {
	existing, err := r.store.FindByStoryboard(ctx, storyboardPath)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	if existing != nil && !existing.Status.IsTerminal() {
		if restart, ok := resumeStatus[existing.Status]; ok {
			existing.Status = restart
		}
		if r.logger != nil {
			r.logger.Info("resuming job",
				logging.Int64(logging.FieldJobID, existing.ID),
				logging.String("status", string(existing.Status)))
		}
		return existing, nil
	}
	job, err := r.store.CreateJob(ctx, sb.BookName, storyboardPath)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return job, nil
}

func (r *Runner) execute(ctx context.Context, job *Job, sb *storyboard.Storyboard, overrides Overrides) error {
	mode, err := r.subtitleMode(sb, overrides)
	if err != nil {
		return err
	}

	timed := r.renderer.ResolveDurations(ctx, sb)

	if job.Status == StatusPending {
		if err := r.runAssemble(ctx, job, sb, timed); err != nil {
			return err
		}
	}
	if job.Status == StatusAssembled {
		if err := r.runSubtitles(ctx, job, sb, timed, mode); err != nil {
			return err
		}
	}
	if job.Status == StatusSubtitled {
		if err := r.runMix(ctx, job, overrides); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) subtitleMode(sb *storyboard.Storyboard, overrides Overrides) (storyboard.SubtitleType, error) {
	selection := overrides.SubtitleType
	if selection == "" {
		selection = string(sb.SubtitleType)
	}
	if selection == "" {
		selection = r.cfg.Subtitles.Type
	}
	mode, err := storyboard.ParseSubtitleType(selection)
	if err != nil {
		return "", fmt.Errorf("pipeline: %w", err)
	}
	return mode, nil
}

func (r *Runner) runAssemble(ctx context.Context, job *Job, sb *storyboard.Storyboard, timed []subtitles.TimedScene) error {
	if err := r.advance(ctx, job, StatusAssembling); err != nil {
		return err
	}
	outPath := render.OutputName(r.cfg.Paths.OutputDir, sb.BookName, render.SuffixBase)
	artifact, err := r.renderer.Assemble(ctx, sb, timed, outPath)
	if err != nil {
		return err
	}
	job.BasePath = artifact.Path
	job.DurationSeconds = artifact.DurationSeconds
	return r.advance(ctx, job, StatusAssembled)
}

func (r *Runner) runSubtitles(ctx context.Context, job *Job, sb *storyboard.Storyboard, timed []subtitles.TimedScene, mode storyboard.SubtitleType) error {
	if err := r.advance(ctx, job, StatusSubtitling); err != nil {
		return err
	}
	if mode == storyboard.SubtitleNone {
		job.SubtitledPath = job.BasePath
		return r.advance(ctx, job, StatusSubtitled)
	}

	base, highlight := sb.Colors(r.cfg.Subtitles.BaseColor, r.cfg.Subtitles.HighlightColor)
	maxChars := r.cfg.Subtitles.KaraokeMaxChars
	if mode == storyboard.SubtitleNormal {
		maxChars = r.cfg.Subtitles.NormalMaxChars
	}
	cues := subtitles.BuildTimeline(timed, subtitles.TimelineOptions{
		Mode:     mode,
		MaxChars: maxChars,
		Colors:   subtitles.ColorPair{Base: base, Highlight: highlight},
	})
	style := subtitles.StyleFor(sb.AspectRatio, mode, r.cfg.Subtitles.FontName)
	style.BaseColor = base
	doc := subtitles.Document{
		Title: sb.BookName + " Promotional Video",
		Style: style,
		Cues:  cues,
	}
	subtitlePath := fileutil.UniqueTempPath(r.cfg.Paths.WorkDir, "subtitles", ".ass")
	if err := doc.WriteFile(subtitlePath); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	outPath := render.OutputName(r.cfg.Paths.OutputDir, sb.BookName, render.SuffixSubtitled)
	artifact, err := r.renderer.BurnSubtitles(ctx,
		render.Artifact{Path: job.BasePath, DurationSeconds: job.DurationSeconds},
		subtitlePath, outPath)
	if err != nil {
		return err
	}
	job.SubtitledPath = artifact.Path
	job.HasSubtitles = artifact.HasSubtitles
	return r.advance(ctx, job, StatusSubtitled)
}

func (r *Runner) runMix(ctx context.Context, job *Job, overrides Overrides) error {
	if err := r.advance(ctx, job, StatusMixing); err != nil {
		return err
	}

	selection := overrides.BGMFile
	if selection == "" {
		selection = r.cfg.BGM.File
	}
	if overrides.SkipBGM || selection == "" {
		job.FinalPath = job.SubtitledPath
		return r.advance(ctx, job, StatusCompleted)
	}

	bgmPath, err := bgm.Resolve(selection, r.cfg.Paths.BGMDirs)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	outPath := render.OutputName(r.cfg.Paths.OutputDir, job.BookName, render.SuffixBGM)
	artifact, err := r.renderer.MixBGM(ctx,
		render.Artifact{Path: job.SubtitledPath, DurationSeconds: job.DurationSeconds, HasSubtitles: job.HasSubtitles},
		bgmPath, r.cfg.BGM.Volume, outPath)
	if err != nil {
		return err
	}
	job.FinalPath = artifact.Path
	job.HasBGM = artifact.HasBGM
	return r.advance(ctx, job, StatusCompleted)
}

// advance persists a status transition along with the job's artifact
// fields.
func (r *Runner) advance(ctx context.Context, job *Job, status Status) error {
	job.Status = status
	job.ErrorMessage = ""
	if err := r.store.SaveJob(ctx, job); err != nil {
		return fmt.Errorf("pipeline: persist %s: %w", status, err)
	}
	if r.logger != nil {
		r.logger.Info("job status changed",
			logging.String(logging.FieldEventType, "status_change"),
			logging.Int64(logging.FieldJobID, job.ID),
			logging.String("status", string(status)))
	}
	return nil
}
