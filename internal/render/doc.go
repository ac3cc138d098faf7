// Package render drives ffmpeg to composite storyboard scenes into the
// promotional video: per-scene clips with motion effects, transition
// segments between scenes, subtitle burn-in, and background music mixing.
// External commands run through an injectable runner so tests never spawn
// ffmpeg.
package render
