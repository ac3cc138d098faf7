package render

import (
	"context"
	"fmt"
	"strings"

	"bookreel/internal/fileutil"
	"bookreel/internal/logging"
)

// BurnSubtitles renders the ASS subtitle file into the video frames,
// copying the audio track untouched. Burn-in failure is not fatal: the
// caller gets the unsubtitled artifact back with a warning logged, so the
// pipeline can still deliver a video.
func (r *Renderer) BurnSubtitles(ctx context.Context, in Artifact, subtitlePath, outputPath string) (Artifact, error) {
	if !fileutil.Exists(in.Path) {
		return Artifact{}, Wrap(ErrNotFound, "subtitles", "burn-in", in.Path, nil)
	}
	if !fileutil.Exists(subtitlePath) {
		return Artifact{}, Wrap(ErrNotFound, "subtitles", "burn-in", subtitlePath, nil)
	}

	args := []string{
		"-y",
		"-i", in.Path,
		"-vf", fmt.Sprintf("ass=%s", escapeFilterPath(subtitlePath)),
	}
	args = append(args, r.encodeArgs()...)
	args = append(args, "-c:a", "copy", outputPath)

	if err := r.run(ctx, r.opts.FFmpegBinary, args...); err != nil {
		if r.logger != nil {
			r.logger.Warn("subtitle burn-in failed, continuing without subtitles",
				logging.Error(err),
				logging.String(logging.FieldEventType, "burnin_failed"),
				logging.String("subtitle_file", subtitlePath))
		}
		return in, nil
	}

	out := in
	out.Path = outputPath
	out.HasSubtitles = true
	if r.logger != nil {
		r.logger.Info("subtitles burned in",
			logging.String(logging.FieldEventType, "burnin_complete"),
			logging.String("output", outputPath))
	}
	return out, nil
}

// escapeFilterPath quotes characters that the ffmpeg filter parser treats
// specially inside the ass= argument.
func escapeFilterPath(path string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`:`, `\:`,
		`'`, `\'`,
		`[`, `\[`,
		`]`, `\]`,
		`,`, `\,`,
	)
	return replacer.Replace(path)
}
