// Package logging builds the slog loggers used across bookreel.
//
// Two output formats are supported: a compact console format for
// interactive use and JSON for log collection. Helpers provide typed
// attribute constructors, component-scoped loggers, and a no-op logger
// for tests.
package logging
