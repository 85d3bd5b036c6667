package ui

import (
	"testing"
	"time"

	"github.com/rubber_duck/fademodal/internal/modal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEaseEndpoints(t *testing.T) {
	for _, name := range modal.Easings() {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 0.0, ease(name, 0, 300*time.Millisecond))
			assert.Equal(t, 1.0, ease(name, 1, 300*time.Millisecond))
		})
	}
}

func TestEaseMonotonic(t *testing.T) {
	for _, name := range []string{modal.EaseLinear, modal.Ease, modal.EaseIn, modal.EaseOut, modal.EaseInOut} {
		prev := 0.0
		for i := 1; i <= 20; i++ {
			v := ease(name, float64(i)/20, 300*time.Millisecond)
			assert.GreaterOrEqual(t, v, prev-1e-9, "%s at step %d", name, i)
			prev = v
		}
	}
}

func TestEaseCurves(t *testing.T) {
	d := 300 * time.Millisecond

	assert.InDelta(t, 0.5, ease(modal.EaseLinear, 0.5, d), 1e-9)
	assert.Less(t, ease(modal.EaseIn, 0.25, d), 0.25, "ease-in starts slow")
	assert.Greater(t, ease(modal.EaseOut, 0.25, d), 0.25, "ease-out starts fast")
	assert.InDelta(t, 0.5, ease(modal.EaseInOut, 0.5, d), 1e-3)
	assert.Equal(t, ease(modal.EaseOut, 0.4, d), ease("bogus", 0.4, d), "unknown curves fall back to ease-out")
}

func TestSpringSettles(t *testing.T) {
	d := 300 * time.Millisecond

	assert.Less(t, springAt(0.1, d), springAt(0.5, d))
	assert.Greater(t, springAt(0.99, d), 0.9)
	assert.Equal(t, 1.0, springAt(0.5, 0))
}

func TestTrack(t *testing.T) {
	start := time.Unix(0, 0)
	style := modal.Style{
		modal.KeyAnimationName:  modal.HideContent,
		modal.KeyDuration:       "200ms",
		modal.KeyTimingFunction: modal.EaseLinear,
	}

	tr, ok := newTrack("n1", style, start)
	require.True(t, ok)
	assert.Equal(t, 200*time.Millisecond, tr.duration)

	assert.InDelta(t, 1, tr.value(start), 1e-9)
	assert.InDelta(t, 0.5, tr.value(start.Add(100*time.Millisecond)), 1e-9)
	assert.False(t, tr.done(start.Add(199*time.Millisecond)))
	assert.True(t, tr.done(start.Add(200*time.Millisecond)))
	assert.InDelta(t, 0, tr.value(start.Add(time.Second)), 1e-9)
}

func TestTrackZeroDuration(t *testing.T) {
	tr, ok := newTrack("n1", modal.Style{modal.KeyAnimationName: modal.ShowContent}, time.Unix(0, 0))
	require.True(t, ok)
	assert.True(t, tr.done(time.Unix(0, 0)))
}

func TestTrackUnknownAnimation(t *testing.T) {
	_, ok := newTrack("n1", modal.Style{modal.KeyAnimationName: "spin"}, time.Unix(0, 0))
	assert.False(t, ok)
}

func TestFrameInterval(t *testing.T) {
	assert.InDelta(t, float64(time.Second/60), float64(frameInterval), float64(time.Millisecond))
}
