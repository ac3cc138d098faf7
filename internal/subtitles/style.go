package subtitles

import (
	"fmt"

	"bookreel/internal/storyboard"
)

// Style carries the ASS style parameters derived from the output aspect
// ratio and subtitle mode.
type Style struct {
	PlayResX  int
	PlayResY  int
	FontName  string
	FontSize  int
	MarginH   int
	MarginV   int
	Outline   int
	Shadow    int
	Alignment int

	// BaseColor and HighlightColor are 6-hex-digit BGR values, the byte
	// order the ASS container expects.
	BaseColor      string
	HighlightColor string
}

// StyleFor returns the styling parameters appropriate to the aspect ratio
// and subtitle mode. Karaoke text runs slightly larger than normal text.
func StyleFor(aspect storyboard.AspectRatio, mode storyboard.SubtitleType, fontName string) Style {
	width, height := aspect.Canvas()
	style := Style{
		PlayResX:  width,
		PlayResY:  height,
		FontName:  fontName,
		MarginH:   60,
		Outline:   6,
		Shadow:    3,
		Alignment: 5,
	}

	switch aspect {
	case storyboard.AspectPortrait:
		style.MarginV = 150
		style.FontSize = 90
	case storyboard.AspectSquare:
		style.MarginV = 120
		style.FontSize = 80
	default:
		style.MarginV = 100
		style.FontSize = 70
	}
	if mode != storyboard.SubtitleKaraoke {
		style.FontSize -= 10
	}

	return style
}

// primaryColour renders the style's base color in ASS &HAABBGGRR form.
func (s Style) primaryColour() string {
	color := s.BaseColor
	if color == "" {
		color = "FFFFFF"
	}
	return fmt.Sprintf("&H00%s", color)
}
