package render

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"bookreel/internal/fileutil"
)

// Transition selects how adjacent scene clips are joined.
type Transition string

const (
	TransitionNone      Transition = "none"
	TransitionCrossFade Transition = "cross-fade"
	TransitionSlide     Transition = "slide"
)

// ParseTransition validates a transition label.
func ParseTransition(value string) (Transition, error) {
	switch Transition(strings.ToLower(strings.TrimSpace(value))) {
	case TransitionNone:
		return TransitionNone, nil
	case TransitionCrossFade:
		return TransitionCrossFade, nil
	case TransitionSlide:
		return TransitionSlide, nil
	default:
		return "", fmt.Errorf("transition must be one of none, cross-fade, slide, got %q", value)
	}
}

// renderTransitions composites one silent transition segment per scene
// boundary from the frozen boundary frames of the adjacent clips.
func (r *Renderer) renderTransitions(ctx context.Context, clips []sceneClip, width, height int) ([]string, error) {
	if len(clips) < 2 {
		return nil, nil
	}
	segments := make([]string, 0, len(clips)-1)
	for i := 0; i < len(clips)-1; i++ {
		lastFrame, firstFrame := r.framePaths(i)
		if err := r.extractLastFrame(ctx, clips[i].Path, lastFrame); err != nil {
			return nil, err
		}
		if err := r.extractFirstFrame(ctx, clips[i+1].Path, firstFrame); err != nil {
			return nil, err
		}
		segPath := fileutil.UniqueTempPath(r.opts.WorkDir, fmt.Sprintf("transition_%d", i), ".mp4")
		if err := r.renderTransitionSegment(ctx, lastFrame, firstFrame, segPath, width, height); err != nil {
			return nil, err
		}
		segments = append(segments, segPath)
	}
	return segments, nil
}

// renderTransitionSegment renders one video-only transition between two
// frozen frames. Cross-fade alpha-fades the incoming frame over the
// outgoing one; slide pushes the incoming frame in from the right.
func (r *Renderer) renderTransitionSegment(ctx context.Context, outgoing, incoming, outPath string, width, height int) error {
	duration := r.opts.TransitionDuration
	if duration <= 0 {
		duration = 0.8
	}
	d := formatSeconds(duration)

	var filter string
	switch r.opts.TransitionType {
	case TransitionSlide:
		filter = fmt.Sprintf(
			"[1:v]format=yuv420p[in];[0:v][in]overlay=x='W-W*t/%s':y=0,fps=%d,format=yuv420p[v]",
			d, r.opts.FPS)
	default:
		filter = fmt.Sprintf(
			"[1:v]format=yuva420p,fade=t=in:st=0:d=%s:alpha=1[in];[0:v][in]overlay,fps=%d,format=yuv420p[v]",
			d, r.opts.FPS)
	}

	args := []string{
		"-y",
		"-loop", "1", "-framerate", strconv.Itoa(r.opts.FPS), "-i", outgoing,
		"-loop", "1", "-framerate", strconv.Itoa(r.opts.FPS), "-i", incoming,
		"-filter_complex", filter,
		"-map", "[v]",
	}
	args = append(args, r.encodeArgs()...)
	args = append(args, "-t", d, "-an", outPath)

	if err := r.run(ctx, r.opts.FFmpegBinary, args...); err != nil {
		return Wrap(ErrExternalTool, "transition", "segment", outPath, err)
	}
	return nil
}
