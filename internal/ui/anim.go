package ui

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/rubber_duck/fademodal/internal/effect"
	"github.com/rubber_duck/fademodal/internal/modal"
)

// frameRate is the animation frame rate.
const frameRate = 60

// frameInterval is the time between animation frames.
var frameInterval = time.Duration(harmonica.FPS(frameRate) * float64(time.Second))

// track plays one keyframe animation on a node.
type track struct {
	node     effect.NodeID
	frames   modal.Keyframes
	start    time.Time
	duration time.Duration
	easing   string
	ended    bool
}

func newTrack(node effect.NodeID, style modal.Style, now time.Time) (*track, bool) {
	frames, ok := modal.KeyframesFor(style.String(modal.KeyAnimationName))
	if !ok {
		return nil, false
	}
	d, _ := style.Duration(modal.KeyDuration)
	return &track{
		node:     node,
		frames:   frames,
		start:    now,
		duration: d,
		easing:   style.String(modal.KeyTimingFunction),
	}, true
}

// progress returns linear progress in [0, 1].
func (t *track) progress(now time.Time) float64 {
	if t.duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.start)) / float64(t.duration)
	return math.Max(0, math.Min(1, p))
}

// done reports whether the animation reached its last keyframe.
func (t *track) done(now time.Time) bool {
	return t.progress(now) >= 1
}

// value returns the animated opacity at now.
func (t *track) value(now time.Time) float64 {
	p := t.progress(now)
	e := ease(t.easing, p, t.duration)
	return t.frames.From + (t.frames.To-t.frames.From)*e
}

// ease maps linear progress p through the named curve.
func ease(name string, p float64, d time.Duration) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return 1
	}
	switch name {
	case modal.EaseLinear:
		return p
	case modal.Ease:
		return cubicBezier(0.25, 0.1, 0.25, 1, p)
	case modal.EaseIn:
		return cubicBezier(0.42, 0, 1, 1, p)
	case modal.EaseInOut:
		return cubicBezier(0.42, 0, 0.58, 1, p)
	case modal.EaseSpring:
		return springAt(p, d)
	default:
		return cubicBezier(0, 0, 0.58, 1, p)
	}
}

// springAt simulates a critically damped spring that settles over d and
// samples it at progress p.
func springAt(p float64, d time.Duration) float64 {
	seconds := d.Seconds()
	if seconds <= 0 {
		return 1
	}
	dt := harmonica.FPS(frameRate)
	spring := harmonica.NewSpring(dt, 6/seconds, 1)

	pos, vel := 0.0, 0.0
	steps := int(p * seconds / dt)
	for i := 0; i < steps; i++ {
		pos, vel = spring.Update(pos, vel, 1)
	}
	return math.Max(0, math.Min(1, pos))
}

// cubicBezier evaluates a CSS timing curve with control points (x1, y1)
// and (x2, y2) at x.
func cubicBezier(x1, y1, x2, y2, x float64) float64 {
	bez := func(a, b, t float64) float64 {
		mt := 1 - t
		return 3*mt*mt*t*a + 3*mt*t*t*b + t*t*t
	}

	// Solve bez_x(t) = x by bisection; the curve is monotonic in x.
	lo, hi := 0.0, 1.0
	t := x
	for i := 0; i < 32; i++ {
		cx := bez(x1, x2, t)
		if math.Abs(cx-x) < 1e-6 {
			break
		}
		if cx < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return bez(y1, y2, t)
}
