// Package textutil provides small text helpers shared across the
// pipeline, primarily filesystem-safe name sanitization for output files
// derived from book titles.
package textutil
