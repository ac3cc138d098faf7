package render

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// commandRunner executes an external command, returning an error when it
// exits non-zero. Tests inject a fake to capture the arguments instead of
// spawning ffmpeg.
type commandRunner func(ctx context.Context, name string, args ...string) error

// defaultCommandRunner executes ffmpeg commands, folding tool output into
// the error for debugging.
func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, tailLines(string(output), 12))
	}
	return nil
}

// tailLines keeps the last n lines of tool output; ffmpeg reports the
// actionable failure at the end of a long banner.
func tailLines(output string, n int) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
