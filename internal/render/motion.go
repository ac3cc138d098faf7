package render

import (
	"fmt"
	"math/rand"
	"strings"
)

// Effect selects the Ken Burns style motion applied to a still image.
type Effect string

const (
	EffectNone     Effect = "none"
	EffectZoomIn   Effect = "zoom_in"
	EffectZoomOut  Effect = "zoom_out"
	EffectPanLeft  Effect = "pan_left"
	EffectPanRight Effect = "pan_right"
	EffectRandom   Effect = "random"
)

var concreteEffects = []Effect{EffectZoomIn, EffectZoomOut, EffectPanLeft, EffectPanRight}

// ParseEffect validates a motion effect label.
func ParseEffect(value string) (Effect, error) {
	switch Effect(strings.ToLower(strings.TrimSpace(value))) {
	case EffectNone:
		return EffectNone, nil
	case EffectZoomIn:
		return EffectZoomIn, nil
	case EffectZoomOut:
		return EffectZoomOut, nil
	case EffectPanLeft:
		return EffectPanLeft, nil
	case EffectPanRight:
		return EffectPanRight, nil
	case EffectRandom:
		return EffectRandom, nil
	default:
		return "", fmt.Errorf("motion effect must be one of none, zoom_in, zoom_out, pan_left, pan_right, random, got %q", value)
	}
}

// resolve picks a concrete effect. Random resolves once per scene so the
// whole clip moves in a single direction.
func (e Effect) resolve(rng *rand.Rand) Effect {
	if e != EffectRandom {
		return e
	}
	return concreteEffects[rng.Intn(len(concreteEffects))]
}

// motionFilter builds the ffmpeg video filter chain that scales the still
// image onto the canvas and applies the motion. frames is the clip length
// in output frames. The image is first scaled to twice the canvas so the
// zoompan sampling has headroom and does not jitter.
func motionFilter(effect Effect, width, height, frames, fps int, intensity float64) string {
	if effect == EffectNone {
		return fmt.Sprintf(
			"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1",
			width, height, width, height)
	}

	base := fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=increase,crop=%d:%d",
		width*2, height*2, width*2, height*2)

	var zoompan string
	switch effect {
	case EffectZoomIn:
		zoompan = fmt.Sprintf(
			"zoompan=z='1+%.4f*on/%d':x='iw/2-(iw/zoom)/2':y='ih/2-(ih/zoom)/2':d=%d:s=%dx%d:fps=%d",
			intensity-1, frames, frames, width, height, fps)
	case EffectZoomOut:
		zoompan = fmt.Sprintf(
			"zoompan=z='%.4f-%.4f*on/%d':x='iw/2-(iw/zoom)/2':y='ih/2-(ih/zoom)/2':d=%d:s=%dx%d:fps=%d",
			intensity, intensity-1, frames, frames, width, height, fps)
	case EffectPanLeft:
		zoompan = fmt.Sprintf(
			"zoompan=z='%.4f':x='(iw-iw/zoom)*(1-on/%d)':y='ih/2-(ih/zoom)/2':d=%d:s=%dx%d:fps=%d",
			intensity, frames, frames, width, height, fps)
	case EffectPanRight:
		zoompan = fmt.Sprintf(
			"zoompan=z='%.4f':x='(iw-iw/zoom)*on/%d':y='ih/2-(ih/zoom)/2':d=%d:s=%dx%d:fps=%d",
			intensity, frames, frames, width, height, fps)
	}

	return base + "," + zoompan + ",setsar=1"
}
