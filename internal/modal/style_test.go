package modal

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rubber_duck/fademodal/internal/effect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEntering(t *testing.T) {
	cfg := DefaultConfig()
	styles := Resolve(State{Visibility: Transitioning, Direction: Entering}, cfg)

	want := Style{
		KeyMargin:         0,
		KeyBackground:     "white",
		KeyDuration:       DefaultDuration,
		KeyFillMode:       "forwards",
		KeyAnimationName:  ShowContent,
		KeyTimingFunction: EaseOut,
	}
	if diff := cmp.Diff(want, styles.Content); diff != "" {
		t.Errorf("content style mismatch (-want +got):\n%s", diff)
	}

	require.True(t, styles.HasBackdrop())
	assert.Equal(t, ShowBackdrop, styles.Backdrop.String(KeyAnimationName))
	assert.Equal(t, "#373A47", styles.Backdrop.String(KeyBackground))
	assert.Equal(t, 1050, styles.Container[KeyZIndex])
}

func TestResolvePicksTimingByDirection(t *testing.T) {
	cfg := DefaultConfig()
	WithAnimation(Animation{
		Show: Timing{Duration: 100 * time.Millisecond, Easing: EaseIn},
		Hide: Timing{Duration: 700 * time.Millisecond, Easing: EaseLinear},
	})(&cfg)

	in := Resolve(State{Visibility: Visible, Direction: Entering}, cfg)
	d, ok := in.Content.Duration(KeyDuration)
	require.True(t, ok)
	assert.Equal(t, 100*time.Millisecond, d)
	assert.Equal(t, EaseIn, in.Content.String(KeyTimingFunction))

	out := Resolve(State{Visibility: Transitioning, Direction: Leaving}, cfg)
	d, _ = out.Content.Duration(KeyDuration)
	assert.Equal(t, 700*time.Millisecond, d)
	assert.Equal(t, HideContent, out.Content.String(KeyAnimationName))
	assert.Equal(t, HideBackdrop, out.Backdrop.String(KeyAnimationName))
	assert.Equal(t, EaseLinear, out.Backdrop.String(KeyTimingFunction))

	// The backdrop fade keeps its own fixed duration.
	bd, _ := out.Backdrop.Duration(KeyDuration)
	assert.Equal(t, BackdropDuration, bd)
}

func TestContentOverrideIsKeyWise(t *testing.T) {
	cfg := DefaultConfig()
	WithContentStyle(Style{KeyOpacity: 0.5})(&cfg)

	base := Resolve(State{Visibility: Visible, Direction: Entering}, DefaultConfig())
	got := Resolve(State{Visibility: Visible, Direction: Entering}, cfg)

	want := Merge(base.Content, Style{KeyOpacity: 0.5})
	if diff := cmp.Diff(want, got.Content); diff != "" {
		t.Errorf("override lost keys (-want +got):\n%s", diff)
	}
	opacity, ok := got.Content.Float(KeyOpacity)
	require.True(t, ok)
	assert.InDelta(t, 0.5, opacity, 1e-9)
}

func TestOverridesReplaceWholeValues(t *testing.T) {
	cfg := DefaultConfig()
	WithModalStyle(Style{KeyWidth: "80%", KeyTop: "10%"})(&cfg)
	WithBackdropStyle(Style{KeyBackground: "#000000"})(&cfg)

	got := Resolve(Initial, cfg)
	assert.Equal(t, "80%", got.Container.String(KeyWidth))
	assert.Equal(t, "10%", got.Container.String(KeyTop))
	assert.Equal(t, "50%", got.Container.String(KeyLeft))
	assert.Equal(t, "#000000", got.Backdrop.String(KeyBackground))
}

func TestResolveWithoutBackdrop(t *testing.T) {
	cfg := DefaultConfig()
	WithBackdrop(false)(&cfg)

	got := Resolve(State{Visibility: Visible, Direction: Entering}, cfg)
	assert.False(t, got.HasBackdrop())
	assert.Nil(t, got.Backdrop)
}

func TestMergeDoesNotAliasInputs(t *testing.T) {
	base := Style{"a": 1}
	override := Style{"b": 2}

	out := Merge(base, override)
	out["a"] = 9

	assert.Equal(t, 1, base["a"])
	assert.Len(t, override, 1)
}

func TestOptionsCopyStyleMaps(t *testing.T) {
	src := Style{KeyOpacity: 0.2}
	cfg := DefaultConfig()
	WithContentStyle(src)(&cfg)
	src[KeyOpacity] = 1.0

	got, _ := Resolve(Initial, cfg).Content.Float(KeyOpacity)
	assert.InDelta(t, 0.2, got, 1e-9)
}

func TestKeyframes(t *testing.T) {
	k, ok := KeyframesFor(ShowBackdrop)
	require.True(t, ok)
	assert.Equal(t, 0.0, k.From)
	assert.Equal(t, BackdropOpacity, k.To)

	k, ok = KeyframesFor(HideContent)
	require.True(t, ok)
	assert.Equal(t, 1.0, k.From)
	assert.Equal(t, 0.0, k.To)

	_, ok = KeyframesFor("spin")
	assert.False(t, ok)
}

func TestClassNameCarried(t *testing.T) {
	cfg := DefaultConfig()
	WithClassName("fade-modal")(&cfg)
	assert.Equal(t, "fade-modal", Resolve(Initial, cfg).ClassName)
}

func TestConfigReturnsDetachedStyles(t *testing.T) {
	q := effect.NewQueue()
	m := New(effect.NewWatcher(q), q,
		WithContentStyle(Style{KeyMargin: 2}),
		WithModalStyle(Style{KeyWidth: "400px"}),
	)

	cfg := m.Config()
	cfg.ContentStyle[KeyMargin] = 9
	cfg.ModalStyle[KeyWidth] = "10px"
	cfg.BackdropStyle[KeyBackground] = "#000000"

	styles := m.Styles()
	assert.Equal(t, 2, styles.Content[KeyMargin])
	assert.Equal(t, "400px", styles.Container[KeyWidth])
	assert.Equal(t, 2, m.Config().ContentStyle[KeyMargin])
	assert.NotContains(t, m.Config().BackdropStyle, KeyBackground)
}
