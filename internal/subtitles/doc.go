// Package subtitles converts narration text plus measured audio durations
// into timed ASS subtitle cues.
//
// The timeline builder is pure: callers resolve each scene's duration
// (measured audio first, nominal estimate second, a fixed fallback last)
// before invoking it. Karaoke mode emits one sub-cue per character state so
// the highlight sweeps across each chunk at uniform per-character pacing.
package subtitles
