package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateAndGetJob(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	job, err := store.CreateJob(ctx, "吾輩は猫である", "/data/storyboard.json")
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if job.ID == 0 {
		t.Fatal("expected assigned job id")
	}
	if job.Status != StatusPending {
		t.Fatalf("new job status = %s, want pending", job.Status)
	}

	got, err := store.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if got.BookName != "吾輩は猫である" || got.StoryboardPath != "/data/storyboard.json" {
		t.Fatalf("unexpected job %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("created_at should round-trip")
	}
}

func TestGetJobNotFound(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.GetJob(context.Background(), 42); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestUpdateStatusAndSaveJob(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	job, err := store.CreateJob(ctx, "book", "/sb.json")
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if err := store.UpdateStatus(ctx, job.ID, StatusAssembling, ""); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	job.Status = StatusCompleted
	job.BasePath = "/out/base.mp4"
	job.FinalPath = "/out/final.mp4"
	job.DurationSeconds = 15.5
	job.HasSubtitles = true
	job.HasBGM = true
	if err := store.SaveJob(ctx, job); err != nil {
		t.Fatalf("SaveJob: %v", err)
	}

	got, err := store.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if got.Status != StatusCompleted || got.FinalPath != "/out/final.mp4" {
		t.Fatalf("unexpected job %+v", got)
	}
	if !got.HasSubtitles || !got.HasBGM || got.DurationSeconds != 15.5 {
		t.Fatalf("artifact fields lost: %+v", got)
	}
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	job, err := store.CreateJob(ctx, "book", "/sb.json")
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if err := store.UpdateStatus(ctx, job.ID, Status("bogus"), ""); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestFindByStoryboardReturnsLatest(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if job, err := store.FindByStoryboard(ctx, "/sb.json"); err != nil || job != nil {
		t.Fatalf("expected no job yet, got %+v err %v", job, err)
	}

	first, err := store.CreateJob(ctx, "book", "/sb.json")
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	second, err := store.CreateJob(ctx, "book", "/sb.json")
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	got, err := store.FindByStoryboard(ctx, "/sb.json")
	if err != nil {
		t.Fatalf("FindByStoryboard: %v", err)
	}
	if got.ID != second.ID || got.ID == first.ID {
		t.Fatalf("expected newest job %d, got %d", second.ID, got.ID)
	}
}

func TestListJobsNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		if _, err := store.CreateJob(ctx, name, "/"+name+".json"); err != nil {
			t.Fatalf("CreateJob: %v", err)
		}
	}
	jobs, err := store.ListJobs(ctx)
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(jobs))
	}
	if jobs[0].BookName != "c" || jobs[2].BookName != "a" {
		t.Fatalf("unexpected order: %s, %s, %s", jobs[0].BookName, jobs[1].BookName, jobs[2].BookName)
	}
}

func TestStatusLifecycleHelpers(t *testing.T) {
	if !StatusCompleted.IsTerminal() || !StatusFailed.IsTerminal() {
		t.Fatal("completed and failed are terminal")
	}
	if StatusAssembling.IsTerminal() {
		t.Fatal("assembling is not terminal")
	}
	if !StatusMixing.IsValid() || Status("bogus").IsValid() {
		t.Fatal("status validity check broken")
	}
	if resumeStatus[StatusSubtitling] != StatusAssembled {
		t.Fatal("interrupted subtitling should restart from assembled")
	}
}
