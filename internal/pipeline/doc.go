// Package pipeline orchestrates the render stages for a storyboard:
// scene assembly, subtitle burn-in, and background music mixing. Jobs are
// persisted in SQLite so interrupted runs resume after the last completed
// stage, and a file lock keeps concurrent renders from sharing the work
// directory.
package pipeline
