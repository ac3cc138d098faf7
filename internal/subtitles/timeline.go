package subtitles

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"

	"bookreel/internal/storyboard"
)

// FallbackSceneDuration is used when a scene's narration duration could
// not be measured or estimated.
const FallbackSceneDuration = 5.0

// Cue is a single dialogue event on the subtitle timeline. Start and End
// are seconds from the beginning of the video.
type Cue struct {
	Start float64
	End   float64
	Text  string
}

// TimedScene pairs a storyboard scene with its resolved narration
// duration in seconds.
type TimedScene struct {
	Scene    storyboard.Scene
	Duration float64
}

// ColorPair holds the resolved base and highlight colors for karaoke
// text, each a 6-hex-digit BGR value.
type ColorPair struct {
	Base      string
	Highlight string
}

// TimelineOptions controls how narration is split and rendered into cues.
type TimelineOptions struct {
	Mode     storyboard.SubtitleType
	MaxChars int
	Colors   ColorPair
}

// BuildTimeline walks the scenes in order and emits the subtitle cues for
// the whole video. Each scene's duration is divided evenly across its
// chunks. In karaoke mode every chunk expands into one event per
// character step, progressively recoloring the leading runes; in normal
// mode each chunk is a single plain event.
func BuildTimeline(scenes []TimedScene, opts TimelineOptions) []Cue {
	var cues []Cue
	cursor := 0.0
	for _, ts := range scenes {
		duration := ts.Duration
		if duration <= 0 {
			duration = FallbackSceneDuration
		}
		text := norm.NFC.String(strings.TrimSpace(ts.Scene.Narration))
		chunks := SplitChunks(text, opts.MaxChars)
		if len(chunks) == 0 {
			cursor += duration
			continue
		}
		per := duration / float64(len(chunks))
		for i, chunk := range chunks {
			start := cursor + per*float64(i)
			end := cursor + per*float64(i+1)
			if chunk == "" {
				continue
			}
			switch opts.Mode {
			case storyboard.SubtitleKaraoke:
				cues = append(cues, karaokeCues(chunk, start, end, opts.Colors)...)
			case storyboard.SubtitleNormal:
				cues = append(cues, Cue{Start: start, End: end, Text: chunk})
			}
		}
		cursor += duration
	}
	return cues
}

// karaokeCues expands one chunk into its per-character highlight steps.
// For a chunk of n runes this yields n+1 events: the first shows the
// chunk fully in the base color and each following event advances the
// highlight by one rune. Steps are span/n seconds apart, so the final
// event (all runes highlighted) starts at the chunk end and is pinned
// there as a degenerate cue.
func karaokeCues(chunk string, start, end float64, colors ColorPair) []Cue {
	runes := []rune(chunk)
	if len(runes) == 0 {
		return nil
	}
	steps := len(runes) + 1
	span := end - start
	per := span / float64(len(runes))
	cues := make([]Cue, 0, steps)
	for i := 0; i < steps; i++ {
		cueStart := start + per*float64(i)
		cueEnd := start + per*float64(i+1)
		if i == steps-1 {
			cueEnd = end
		}
		cues = append(cues, Cue{
			Start: cueStart,
			End:   cueEnd,
			Text:  highlightMarkup(runes, i, colors),
		})
	}
	return cues
}

// highlightMarkup renders the chunk with the first highlighted runes in
// the highlight color and the remainder in the base color.
func highlightMarkup(runes []rune, highlighted int, colors ColorPair) string {
	var b strings.Builder
	if highlighted > 0 {
		fmt.Fprintf(&b, "{\\c&H%s&}%s", colors.Highlight, string(runes[:highlighted]))
	}
	if highlighted < len(runes) {
		fmt.Fprintf(&b, "{\\c&H%s&}%s", colors.Base, string(runes[highlighted:]))
	}
	return b.String()
}

// FormatTimestamp renders seconds as the ASS h:mm:ss.cc form. The value
// is rounded to the nearest centisecond before decomposition so that
// accumulated float error cannot shift a boundary by a full unit.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(math.Round(seconds * 100))
	cs := total % 100
	secs := (total / 100) % 60
	mins := (total / 6000) % 60
	hours := total / 360000
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, mins, secs, cs)
}
