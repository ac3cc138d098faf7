package subtitles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bookreel/internal/storyboard"
)

func TestDocumentRenderPortraitKaraoke(t *testing.T) {
	style := StyleFor(storyboard.AspectPortrait, storyboard.SubtitleKaraoke, "Noto Sans CJK JP")
	style.BaseColor = "FFFFFF"
	doc := Document{
		Title: "夏目漱石 Promotional Video",
		Style: style,
		Cues: []Cue{
			{Start: 0, End: 2, Text: "吾輩は猫である"},
		},
	}
	out := doc.Render()

	for _, want := range []string{
		"Title: 夏目漱石 Promotional Video",
		"ScriptType: v4.00+",
		"PlayResX: 1080",
		"PlayResY: 1920",
		"Style: Default,Noto Sans CJK JP,90,&H00FFFFFF,",
		"Dialogue: 0,0:00:00.00,0:00:02.00,Default,,0,0,0,,吾輩は猫である",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered document missing %q", want)
		}
	}
}

func TestStyleForSizes(t *testing.T) {
	cases := []struct {
		aspect   storyboard.AspectRatio
		mode     storyboard.SubtitleType
		fontSize int
		marginV  int
	}{
		{storyboard.AspectPortrait, storyboard.SubtitleKaraoke, 90, 150},
		{storyboard.AspectPortrait, storyboard.SubtitleNormal, 80, 150},
		{storyboard.AspectLandscape, storyboard.SubtitleKaraoke, 70, 100},
		{storyboard.AspectLandscape, storyboard.SubtitleNormal, 60, 100},
		{storyboard.AspectSquare, storyboard.SubtitleKaraoke, 80, 120},
		{storyboard.AspectSquare, storyboard.SubtitleNormal, 70, 120},
	}
	for _, tc := range cases {
		style := StyleFor(tc.aspect, tc.mode, "Test Font")
		if style.FontSize != tc.fontSize {
			t.Errorf("%s/%s font size = %d, want %d", tc.aspect, tc.mode, style.FontSize, tc.fontSize)
		}
		if style.MarginV != tc.marginV {
			t.Errorf("%s/%s margin V = %d, want %d", tc.aspect, tc.mode, style.MarginV, tc.marginV)
		}
		width, height := tc.aspect.Canvas()
		if style.PlayResX != width || style.PlayResY != height {
			t.Errorf("%s play res = %dx%d, want %dx%d", tc.aspect, style.PlayResX, style.PlayResY, width, height)
		}
	}
}

func TestDocumentWriteFileCreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "subs.ass")
	doc := Document{
		Style: StyleFor(storyboard.AspectLandscape, storyboard.SubtitleNormal, "Arial"),
		Cues:  []Cue{{Start: 0, End: 1, Text: "hello"}},
	}
	if err := doc.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "[Events]") {
		t.Fatal("written file missing events section")
	}
}
