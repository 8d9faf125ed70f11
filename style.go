package lumen

import (
	"fmt"
	"strings"
	"time"
)

// Crossfade animation parameters. These are fixed product values, not
// configuration.
const (
	// TransitionDuration is how long the crossfade between layers runs.
	TransitionDuration = 500 * time.Millisecond

	// TransitionDelay is the pause before the crossfade starts.
	TransitionDelay = 50 * time.Millisecond

	// PlaceholderBlurRadius is the blur applied to the placeholder layer
	// while the full-quality image loads.
	PlaceholderBlurRadius = "10px"
)

// Easing identifies a transition timing curve.
type Easing string

const (
	// EaseIn accelerates from rest; used for the appearing layer.
	EaseIn Easing = "ease-in"

	// EaseOut decelerates to rest; used for the disappearing layer.
	EaseOut Easing = "ease-out"
)

// Transition describes how a style property animates between states.
type Transition struct {
	Property string
	Duration time.Duration
	Delay    time.Duration
	Easing   Easing
}

// Style is the visual fragment a renderer applies to one image layer.
type Style struct {
	Opacity    float64
	Filter     string
	Transition Transition
}

// CSS renders the style as a CSS declaration string for renderers that
// consume stylesheets directly.
func (s Style) CSS() string {
	var b strings.Builder
	fmt.Fprintf(&b, "opacity:%g;", s.Opacity)
	if s.Filter != "" {
		fmt.Fprintf(&b, "filter:%s;", s.Filter)
	}
	t := s.Transition
	fmt.Fprintf(&b, "transition:%s %dms %s %dms;",
		t.Property, t.Duration.Milliseconds(), t.Easing, t.Delay.Milliseconds())
	return b.String()
}

// Layers holds the derived styles for both image layers.
type Layers struct {
	// Placeholder is the low-fidelity layer's style.
	Placeholder Style

	// Full is the high-fidelity layer's style.
	Full Style
}

// deriveLayers computes both layer styles from the loaded bit. The
// placeholder only ever disappears and the full layer only ever appears,
// so each carries a fixed easing curve.
func deriveLayers(loaded bool) Layers {
	placeholder := Style{
		Opacity: 1,
		Filter:  "blur(" + PlaceholderBlurRadius + ")",
		Transition: Transition{
			Property: "opacity",
			Duration: TransitionDuration,
			Delay:    TransitionDelay,
			Easing:   EaseOut,
		},
	}
	full := Style{
		Opacity: 0,
		Transition: Transition{
			Property: "opacity",
			Duration: TransitionDuration,
			Delay:    TransitionDelay,
			Easing:   EaseIn,
		},
	}

	if loaded {
		placeholder.Opacity = 0
		full.Opacity = 1
	}

	return Layers{Placeholder: placeholder, Full: full}
}
