package subtitles

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Document is a complete ASS subtitle file ready to be written to disk.
type Document struct {
	Title string
	Style Style
	Cues  []Cue
}

// Render produces the full ASS file text.
func (d Document) Render() string {
	var b strings.Builder
	title := d.Title
	if title == "" {
		title = "Subtitles"
	}
	fmt.Fprintf(&b, "[Script Info]\n")
	fmt.Fprintf(&b, "Title: %s\n", title)
	fmt.Fprintf(&b, "ScriptType: v4.00+\n")
	fmt.Fprintf(&b, "WrapStyle: 0\n")
	fmt.Fprintf(&b, "ScaledBorderAndShadow: yes\n")
	fmt.Fprintf(&b, "PlayResX: %d\n", d.Style.PlayResX)
	fmt.Fprintf(&b, "PlayResY: %d\n", d.Style.PlayResY)
	b.WriteString("\n[V4+ Styles]\n")
	b.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	fmt.Fprintf(&b, "Style: Default,%s,%d,%s,&H000000FF,&H00000000,&H80000000,-1,0,0,0,100,100,0,0,1,%d,%d,%d,%d,%d,%d,1\n",
		d.Style.FontName, d.Style.FontSize, d.Style.primaryColour(),
		d.Style.Outline, d.Style.Shadow, d.Style.Alignment,
		d.Style.MarginH, d.Style.MarginH, d.Style.MarginV)
	b.WriteString("\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, cue := range d.Cues {
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			FormatTimestamp(cue.Start), FormatTimestamp(cue.End), cue.Text)
	}
	return b.String()
}

// WriteFile renders the document and writes it to path, creating parent
// directories as needed.
func (d Document) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create subtitle directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(d.Render()), 0o644); err != nil {
		return fmt.Errorf("write subtitle file: %w", err)
	}
	return nil
}
