package render

import (
	"context"
	"fmt"
	"strconv"

	"bookreel/internal/fileutil"
	"bookreel/internal/logging"
)

// MixBGM loops the background music under the video's narration. The BGM
// is looped enough times to cover the full video, trimmed to the video
// duration, attenuated, and mixed so the narration stays on top. When the
// video carries no audio stream the BGM becomes the sole track.
func (r *Renderer) MixBGM(ctx context.Context, in Artifact, bgmPath string, volume float64, outputPath string) (Artifact, error) {
	if !fileutil.Exists(in.Path) {
		return Artifact{}, Wrap(ErrNotFound, "bgm", "mix", in.Path, nil)
	}
	if !fileutil.Exists(bgmPath) {
		return Artifact{}, Wrap(ErrNotFound, "bgm", "mix", bgmPath, nil)
	}
	if volume < 0 || volume > 1 {
		return Artifact{}, Wrap(ErrValidation, "bgm", "mix",
			fmt.Sprintf("volume %.2f out of range", volume), nil)
	}

	videoInfo, err := r.probe(ctx, in.Path)
	if err != nil {
		return Artifact{}, Wrap(ErrExternalTool, "bgm", "probe video", in.Path, err)
	}
	bgmInfo, err := r.probe(ctx, bgmPath)
	if err != nil {
		return Artifact{}, Wrap(ErrExternalTool, "bgm", "probe bgm", bgmPath, err)
	}

	videoDur := videoInfo.DurationSeconds()
	bgmDur := bgmInfo.DurationSeconds()
	loops := 0
	if bgmDur > 0 && bgmDur < videoDur {
		loops = int(videoDur/bgmDur) + 1
	}

	hasNarration := videoInfo.HasAudio()
	var filter string
	if hasNarration {
		// normalize=0 sums the tracks instead of halving both, keeping
		// narration at its original loudness.
		filter = fmt.Sprintf(
			"[1:a]volume=%s,atrim=0:%s[bg];[0:a][bg]amix=inputs=2:duration=first:dropout_transition=0:normalize=0[a]",
			formatVolume(volume), formatSeconds(videoDur))
	} else {
		filter = fmt.Sprintf(
			"[1:a]volume=%s,atrim=0:%s[a]",
			formatVolume(volume), formatSeconds(videoDur))
	}

	args := []string{
		"-y",
		"-i", in.Path,
		"-stream_loop", strconv.Itoa(loops), "-i", bgmPath,
		"-filter_complex", filter,
		"-map", "0:v", "-map", "[a]",
		"-c:v", "copy",
		"-c:a", r.opts.AudioCodec,
		"-t", formatSeconds(videoDur),
		outputPath,
	}

	if err := r.run(ctx, r.opts.FFmpegBinary, args...); err != nil {
		return Artifact{}, Wrap(ErrExternalTool, "bgm", "mix", "", err)
	}

	out := in
	out.Path = outputPath
	out.HasBGM = true
	if r.logger != nil {
		r.logger.Info("background music mixed",
			logging.String(logging.FieldEventType, "bgm_mixed"),
			logging.String("output", outputPath),
			logging.String("bgm_file", bgmPath),
			logging.Float64("volume", volume),
			logging.Int("loops", loops),
			logging.Bool("narration_present", hasNarration))
	}
	return out, nil
}

func formatVolume(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
