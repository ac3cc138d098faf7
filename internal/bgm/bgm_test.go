package bgm

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDiscoverFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "calm.mp3")
	writeFile(t, dir, "upbeat.WAV")
	writeFile(t, dir, "notes.txt")
	writeFile(t, dir, "ambient.m4a")

	tracks, err := Discover([]string{dir})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d: %v", len(tracks), tracks)
	}
	want := []string{"ambient.m4a", "calm.mp3", "upbeat.WAV"}
	for i, name := range want {
		if tracks[i].Name != name {
			t.Errorf("track %d = %q, want %q", i, tracks[i].Name, name)
		}
	}
}

func TestDiscoverDeduplicatesAcrossDirs(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	firstPath := writeFile(t, first, "calm.mp3")
	writeFile(t, second, "calm.mp3")
	writeFile(t, second, "loop.aac")

	tracks, err := Discover([]string{first, second})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	for _, track := range tracks {
		if track.Name == "calm.mp3" && track.Path != firstPath {
			t.Errorf("duplicate should resolve to the first directory, got %s", track.Path)
		}
	}
}

func TestDiscoverSkipsMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "calm.mp3")
	tracks, err := Discover([]string{filepath.Join(dir, "nope"), dir})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(tracks))
	}
}

func TestResolveByPathAndName(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "calm.mp3")

	got, err := Resolve(path, nil)
	if err != nil {
		t.Fatalf("Resolve by path: %v", err)
	}
	if got != path {
		t.Fatalf("expected %s, got %s", path, got)
	}

	got, err = Resolve("calm.mp3", []string{dir})
	if err != nil {
		t.Fatalf("Resolve by name: %v", err)
	}
	if got != path {
		t.Fatalf("expected %s, got %s", path, got)
	}

	if _, err := Resolve("missing.mp3", []string{dir}); err == nil {
		t.Fatal("expected error for unknown track")
	}
}
