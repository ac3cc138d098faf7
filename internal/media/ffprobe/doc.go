// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Measured durations from this package are authoritative for all timing in
// the rendering pipeline; nominal per-scene estimates are only a fallback.
package ffprobe
