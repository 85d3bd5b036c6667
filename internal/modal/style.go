package modal

import (
	"maps"
	"time"
)

// Style is a flat set of presentation properties. Values are strings,
// numbers or time.Duration, named after their CSS counterparts.
type Style map[string]any

// Style property keys read by renderers.
const (
	KeyZIndex         = "zIndex"
	KeyPosition       = "position"
	KeyWidth          = "width"
	KeyTransform      = "transform"
	KeyTop            = "top"
	KeyRight          = "right"
	KeyBottom         = "bottom"
	KeyLeft           = "left"
	KeyMargin         = "margin"
	KeyBackground     = "backgroundColor"
	KeyOpacity        = "opacity"
	KeyFillMode       = "animationFillMode"
	KeyDuration       = "animationDuration"
	KeyAnimationName  = "animationName"
	KeyTimingFunction = "animationTimingFunction"
)

// Keyframe animation names.
const (
	ShowContent  = "showContent"
	HideContent  = "hideContent"
	ShowBackdrop = "showBackdrop"
	HideBackdrop = "hideBackdrop"
)

// BackdropOpacity is the backdrop's opacity once fully shown.
const BackdropOpacity = 0.9

// BackdropDuration is the backdrop's fade duration in both directions.
const BackdropDuration = 300 * time.Millisecond

// Keyframes is a two-stop opacity animation.
type Keyframes struct {
	Name string
	From float64
	To   float64
}

var keyframes = map[string]Keyframes{
	ShowContent:  {Name: ShowContent, From: 0, To: 1},
	HideContent:  {Name: HideContent, From: 1, To: 0},
	ShowBackdrop: {Name: ShowBackdrop, From: 0, To: BackdropOpacity},
	HideBackdrop: {Name: HideBackdrop, From: BackdropOpacity, To: 0},
}

// KeyframesFor looks up a keyframe animation by name.
func KeyframesFor(name string) (Keyframes, bool) {
	k, ok := keyframes[name]
	return k, ok
}

// Merge returns a new style with override's keys replacing base's.
func Merge(base, override Style) Style {
	out := make(Style, len(base)+len(override))
	maps.Copy(out, base)
	maps.Copy(out, override)
	return out
}

// String returns the string value of key, or "".
func (s Style) String(key string) string {
	v, _ := s[key].(string)
	return v
}

// Float returns the numeric value of key.
func (s Style) Float(key string) (float64, bool) {
	switch v := s[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// Duration returns the duration value of key.
func (s Style) Duration(key string) (time.Duration, bool) {
	switch v := s[key].(type) {
	case time.Duration:
		return v, true
	case string:
		d, err := time.ParseDuration(v)
		return d, err == nil
	}
	return 0, false
}

// Styles are the three payloads a renderer paints.
type Styles struct {
	Container Style
	Backdrop  Style // nil when the backdrop is disabled
	Content   Style
	ClassName string
}

// HasBackdrop reports whether a backdrop should be painted.
func (s Styles) HasBackdrop() bool {
	return s.Backdrop != nil
}

// Resolve computes the style payloads for s under cfg.
func Resolve(s State, cfg Config) Styles {
	timing := cfg.Animation.For(s.Direction)
	entering := s.Direction == Entering

	container := Style{
		KeyZIndex:    1050,
		KeyPosition:  "fixed",
		KeyWidth:     "500px",
		KeyTransform: "translate3d(-50%, -50%, 0)",
		KeyTop:       "50%",
		KeyLeft:      "50%",
	}

	content := Style{
		KeyMargin:         0,
		KeyBackground:     "white",
		KeyDuration:       timing.Duration,
		KeyFillMode:       "forwards",
		KeyAnimationName:  pick(entering, ShowContent, HideContent),
		KeyTimingFunction: timing.Easing,
	}

	out := Styles{
		Container: Merge(container, cfg.ModalStyle),
		Content:   Merge(content, cfg.ContentStyle),
		ClassName: cfg.ClassName,
	}

	if cfg.Backdrop {
		backdrop := Style{
			KeyPosition:       "fixed",
			KeyTop:            0,
			KeyRight:          0,
			KeyBottom:         0,
			KeyLeft:           0,
			KeyZIndex:         1040,
			KeyBackground:     "#373A47",
			KeyFillMode:       "forwards",
			KeyDuration:       BackdropDuration,
			KeyAnimationName:  pick(entering, ShowBackdrop, HideBackdrop),
			KeyTimingFunction: timing.Easing,
		}
		out.Backdrop = Merge(backdrop, cfg.BackdropStyle)
	}

	return out
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
