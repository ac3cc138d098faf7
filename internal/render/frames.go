package render

import (
	"context"
	"fmt"

	"bookreel/internal/fileutil"
)

// extractFirstFrame writes the first frame of a clip as a PNG.
func (r *Renderer) extractFirstFrame(ctx context.Context, clipPath, outPath string) error {
	args := []string{"-y", "-i", clipPath, "-frames:v", "1", outPath}
	if err := r.run(ctx, r.opts.FFmpegBinary, args...); err != nil {
		return Wrap(ErrExternalTool, "transition", "first frame", clipPath, err)
	}
	return nil
}

// extractLastFrame writes the final frame of a clip as a PNG by seeking
// from the end.
func (r *Renderer) extractLastFrame(ctx context.Context, clipPath, outPath string) error {
	args := []string{"-y", "-sseof", "-0.1", "-i", clipPath, "-frames:v", "1", "-update", "1", outPath}
	if err := r.run(ctx, r.opts.FFmpegBinary, args...); err != nil {
		return Wrap(ErrExternalTool, "transition", "last frame", clipPath, err)
	}
	return nil
}

// framePaths returns unique temp paths for a transition's boundary frames.
func (r *Renderer) framePaths(boundary int) (last, first string) {
	last = fileutil.UniqueTempPath(r.opts.WorkDir, fmt.Sprintf("boundary_%d_last", boundary), ".png")
	first = fileutil.UniqueTempPath(r.opts.WorkDir, fmt.Sprintf("boundary_%d_first", boundary), ".png")
	return last, first
}
