package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bookreel/internal/config"
	"bookreel/internal/logging"
	"bookreel/internal/media/ffprobe"
	"bookreel/internal/render"
	"bookreel/internal/storyboard"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	base := t.TempDir()
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.WorkDir = filepath.Join(base, "work")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.BGMDirs = nil
	cfg.Transitions.Type = "none"
	return &cfg
}

func writeStoryboard(t *testing.T, sb storyboard.Storyboard) string {
	t.Helper()
	data, err := json.Marshal(sb)
	if err != nil {
		t.Fatalf("marshal storyboard: %v", err)
	}
	path := filepath.Join(t.TempDir(), "storyboard.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write storyboard: %v", err)
	}
	return path
}

func sceneFixture(t *testing.T, number int) storyboard.Scene {
	t.Helper()
	dir := t.TempDir()
	image := filepath.Join(dir, "scene.png")
	audio := filepath.Join(dir, "scene.mp3")
	for _, path := range []string{image, audio} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	return storyboard.Scene{
		Number:    number,
		Narration: "吾輩は猫である",
		ImageFile: image,
		AudioFile: audio,
	}
}

// fakeRenderer returns a renderer whose external commands are recorded
// instead of executed.
func fakeRenderer(t *testing.T, cfg *config.Config, commands *[]string) *render.Renderer {
	t.Helper()
	opts, err := RendererOptions(cfg)
	if err != nil {
		t.Fatalf("renderer options: %v", err)
	}
	opts.Seed = 1
	r := render.NewRenderer(opts, logging.NewNop())
	r.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		*commands = append(*commands, name+" "+strings.Join(args, " "))
		// The last argument is the output path; later stages check it exists.
		if len(args) > 0 {
			if out := args[len(args)-1]; strings.Contains(out, ".") {
				if err := os.WriteFile(out, []byte("x"), 0o644); err != nil {
					return err
				}
			}
		}
		return nil
	})
	r.WithProbe(func(_ context.Context, path string) (ffprobe.Result, error) {
		return ffprobe.Result{
			Format:  ffprobe.Format{Duration: "3.0"},
			Streams: []ffprobe.Stream{{CodecType: "audio"}},
		}, nil
	})
	return r
}

func newTestRunner(t *testing.T, cfg *config.Config, commands *[]string) (*Runner, *Store) {
	t.Helper()
	store := openTestStore(t)
	runner, err := NewRunner(cfg, store, logging.NewNop())
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	runner.WithRenderer(fakeRenderer(t, cfg, commands))
	return runner, store
}

func TestRunnerCompletesPipeline(t *testing.T) {
	cfg := testConfig(t)
	sbPath := writeStoryboard(t, storyboard.Storyboard{
		BookName:     "吾輩は猫である",
		AspectRatio:  storyboard.AspectPortrait,
		SubtitleType: storyboard.SubtitleNormal,
		Scenes:       []storyboard.Scene{sceneFixture(t, 1), sceneFixture(t, 2)},
	})

	var commands []string
	runner, store := newTestRunner(t, cfg, &commands)

	job, err := runner.Run(context.Background(), sbPath, Overrides{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if job.Status != StatusCompleted {
		t.Fatalf("job status = %s, want completed", job.Status)
	}
	if job.BasePath == "" || job.SubtitledPath == "" {
		t.Fatalf("artifact paths missing: %+v", job)
	}
	if !strings.HasSuffix(job.BasePath, "_promotional_video.mp4") {
		t.Fatalf("unexpected base path %s", job.BasePath)
	}
	if !job.HasSubtitles {
		t.Fatal("subtitles should have been burned in")
	}
	// No BGM configured: the final artifact is the subtitled video.
	if job.FinalPath != job.SubtitledPath || job.HasBGM {
		t.Fatalf("expected no BGM stage, got %+v", job)
	}

	persisted, err := store.GetJob(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if persisted.Status != StatusCompleted {
		t.Fatalf("persisted status = %s", persisted.Status)
	}

	// 2 scene clips, concat, burn-in.
	if len(commands) != 4 {
		t.Fatalf("expected 4 ffmpeg invocations, got %d:\n%s", len(commands), strings.Join(commands, "\n"))
	}
	if !strings.Contains(commands[3], "ass=") {
		t.Fatalf("last command should burn subtitles, got %s", commands[3])
	}
}

func TestRunnerPersistsFailure(t *testing.T) {
	cfg := testConfig(t)
	scene := sceneFixture(t, 1)
	if err := os.Remove(scene.AudioFile); err != nil {
		t.Fatalf("remove audio: %v", err)
	}
	sbPath := writeStoryboard(t, storyboard.Storyboard{
		BookName:    "book",
		AspectRatio: storyboard.AspectLandscape,
		Scenes:      []storyboard.Scene{scene},
	})

	var commands []string
	runner, store := newTestRunner(t, cfg, &commands)

	job, err := runner.Run(context.Background(), sbPath, Overrides{})
	if err == nil {
		t.Fatal("expected error for missing scene audio")
	}
	if job == nil || job.Status != StatusFailed {
		t.Fatalf("expected failed job, got %+v", job)
	}
	persisted, getErr := store.GetJob(context.Background(), job.ID)
	if getErr != nil {
		t.Fatalf("GetJob: %v", getErr)
	}
	if persisted.Status != StatusFailed || persisted.ErrorMessage == "" {
		t.Fatalf("failure not persisted: %+v", persisted)
	}
}

func TestRunnerResumesAfterAssembly(t *testing.T) {
	cfg := testConfig(t)
	sb := storyboard.Storyboard{
		BookName:     "book",
		AspectRatio:  storyboard.AspectPortrait,
		SubtitleType: storyboard.SubtitleKaraoke,
		Scenes:       []storyboard.Scene{sceneFixture(t, 1)},
	}
	sbPath := writeStoryboard(t, sb)

	var commands []string
	runner, store := newTestRunner(t, cfg, &commands)

	// Simulate a run that stopped after assembly.
	seed, err := store.CreateJob(context.Background(), sb.BookName, sbPath)
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	basePath := filepath.Join(t.TempDir(), "book_promotional_video.mp4")
	if err := os.WriteFile(basePath, []byte("x"), 0o644); err != nil {
		t.Fatalf("seed base artifact: %v", err)
	}
	seed.Status = StatusAssembled
	seed.BasePath = basePath
	seed.DurationSeconds = 3
	if err := store.SaveJob(context.Background(), seed); err != nil {
		t.Fatalf("SaveJob: %v", err)
	}

	job, err := runner.Run(context.Background(), sbPath, Overrides{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if job.ID != seed.ID {
		t.Fatalf("expected resumed job %d, got %d", seed.ID, job.ID)
	}
	if job.Status != StatusCompleted {
		t.Fatalf("job status = %s, want completed", job.Status)
	}
	// Assembly already done: only the subtitle burn-in runs.
	for _, cmd := range commands {
		if strings.Contains(cmd, "concat=") {
			t.Fatalf("assembly should not re-run, got %s", cmd)
		}
	}
	if len(commands) != 1 || !strings.Contains(commands[0], "ass=") {
		t.Fatalf("expected a single burn-in invocation, got %v", commands)
	}
}

func TestRunnerSubtitleOverride(t *testing.T) {
	cfg := testConfig(t)
	sbPath := writeStoryboard(t, storyboard.Storyboard{
		BookName:     "book",
		AspectRatio:  storyboard.AspectPortrait,
		SubtitleType: storyboard.SubtitleKaraoke,
		Scenes:       []storyboard.Scene{sceneFixture(t, 1)},
	})

	var commands []string
	runner, _ := newTestRunner(t, cfg, &commands)

	job, err := runner.Run(context.Background(), sbPath, Overrides{SubtitleType: "none"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if job.HasSubtitles {
		t.Fatal("override to none should skip burn-in")
	}
	if job.SubtitledPath != job.BasePath {
		t.Fatalf("subtitled path should fall back to base, got %+v", job)
	}
	for _, cmd := range commands {
		if strings.Contains(cmd, "ass=") {
			t.Fatalf("burn-in should not run, got %s", cmd)
		}
	}
}
