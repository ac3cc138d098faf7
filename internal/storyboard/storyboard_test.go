package storyboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validStoryboard() Storyboard {
	return Storyboard{
		BookName:     "sample-book",
		AspectRatio:  AspectPortrait,
		SubtitleType: SubtitleKaraoke,
		Scenes: []Scene{
			{Number: 1, Narration: "最初のシーン。", ImageFile: "1.png", AudioFile: "1.mp3"},
			{Number: 2, Narration: "次のシーン。", ImageFile: "2.png", AudioFile: "2.mp3"},
		},
	}
}

func TestValidateAcceptsWellFormedStoryboard(t *testing.T) {
	sb := validStoryboard()
	if err := sb.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Storyboard)
		want   string
	}{
		{"missing book name", func(s *Storyboard) { s.BookName = " " }, "book_name"},
		{"bad aspect ratio", func(s *Storyboard) { s.AspectRatio = "4:3" }, "aspect ratio"},
		{"no scenes", func(s *Storyboard) { s.Scenes = nil }, "at least one scene"},
		{"zero scene number", func(s *Storyboard) { s.Scenes[0].Number = 0 }, "must be positive"},
		{"duplicate scene number", func(s *Storyboard) { s.Scenes[1].Number = 1 }, "duplicate scene number 1"},
		{"empty narration", func(s *Storyboard) { s.Scenes[1].Narration = "" }, "scene 2 has empty narration"},
		{"missing image", func(s *Storyboard) { s.Scenes[0].ImageFile = "" }, "scene 1 has no image"},
		{"missing audio", func(s *Storyboard) { s.Scenes[0].AudioFile = "" }, "scene 1 has no audio"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sb := validStoryboard()
			tc.mutate(&sb)
			err := sb.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadSortsScenesByNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storyboard.json")
	body := `{
		"book_name": "b",
		"aspect_ratio": "16:9",
		"subtitle_type": "normal",
		"scenes": [
			{"scene_number": 2, "narration": "two", "image_file": "2.png", "audio_file": "2.mp3"},
			{"scene_number": 1, "narration": "one", "image_file": "1.png", "audio_file": "1.mp3"}
		]
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	sb, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sb.Scenes[0].Number != 1 || sb.Scenes[1].Number != 2 {
		t.Fatalf("scenes not sorted: %+v", sb.Scenes)
	}
}

func TestCanvasDimensions(t *testing.T) {
	cases := []struct {
		ratio AspectRatio
		w, h  int
	}{
		{AspectPortrait, 1080, 1920},
		{AspectLandscape, 1920, 1080},
		{AspectSquare, 1080, 1080},
	}
	for _, tc := range cases {
		w, h := tc.ratio.Canvas()
		if w != tc.w || h != tc.h {
			t.Fatalf("%s: expected %dx%d, got %dx%d", tc.ratio, tc.w, tc.h, w, h)
		}
	}
}

func TestColorsFallBackToDefaults(t *testing.T) {
	sb := validStoryboard()
	base, highlight := sb.Colors("FFFFFF", "00FFFF")
	if base != "FFFFFF" || highlight != "00FFFF" {
		t.Fatalf("expected defaults, got %s/%s", base, highlight)
	}
	sb.BaseColor = "AAAAAA"
	base, _ = sb.Colors("FFFFFF", "00FFFF")
	if base != "AAAAAA" {
		t.Fatalf("expected storyboard override, got %s", base)
	}
}
