package modal

import (
	"maps"
	"slices"
	"time"

	"go.uber.org/zap"
)

// Easing names understood by renderers.
const (
	EaseLinear    = "linear"
	Ease          = "ease"
	EaseIn        = "ease-in"
	EaseOut       = "ease-out"
	EaseInOut     = "ease-in-out"
	EaseSpring    = "spring"
	DefaultEasing = EaseOut
)

// DefaultDuration is the enter and leave duration when none is configured.
const DefaultDuration = 300 * time.Millisecond

var easings = []string{EaseLinear, Ease, EaseIn, EaseOut, EaseInOut, EaseSpring}

// ValidEasing reports whether name is a known easing.
func ValidEasing(name string) bool {
	return slices.Contains(easings, name)
}

// Easings lists the known easing names.
func Easings() []string {
	return slices.Clone(easings)
}

// Timing is one direction's animation profile.
type Timing struct {
	Duration time.Duration
	Easing   string
}

// Animation holds the show and hide timing profiles.
type Animation struct {
	Show Timing
	Hide Timing
}

// DefaultAnimation is 300ms ease-out in both directions.
func DefaultAnimation() Animation {
	return Animation{
		Show: Timing{Duration: DefaultDuration, Easing: DefaultEasing},
		Hide: Timing{Duration: DefaultDuration, Easing: DefaultEasing},
	}
}

// For returns the profile used while heading in direction d.
func (a Animation) For(d Direction) Timing {
	if d == Entering {
		return a.Show
	}
	return a.Hide
}

// HideReason tells OnHide what started the leave transition.
type HideReason int

const (
	ReasonAPI HideReason = iota
	ReasonEscape
	ReasonBackdrop
	ReasonRemote
)

func (r HideReason) String() string {
	switch r {
	case ReasonAPI:
		return "api"
	case ReasonEscape:
		return "escape"
	case ReasonBackdrop:
		return "backdrop"
	case ReasonRemote:
		return "remote"
	}
	return "unknown"
}

// Config is the behaviour snapshot taken when a Modal is created.
type Config struct {
	Backdrop     bool
	CloseOnClick bool
	Keyboard     bool
	// KeyHandler, when set, receives every key event instead of the built-in
	// escape handling.
	KeyHandler func(KeyEvent)
	ClassName  string

	ModalStyle    Style
	BackdropStyle Style
	ContentStyle  Style

	Animation Animation

	OnShow func()
	OnHide func(HideReason)

	logger *zap.Logger
}

// DefaultConfig returns the defaults: backdrop on, close on click, escape
// dismisses, 300ms ease-out both ways, no-op callbacks.
func DefaultConfig() Config {
	return Config{
		Backdrop:      true,
		CloseOnClick:  true,
		Keyboard:      true,
		ModalStyle:    Style{},
		BackdropStyle: Style{},
		ContentStyle:  Style{},
		Animation:     DefaultAnimation(),
		OnShow:        func() {},
		OnHide:        func(HideReason) {},
		logger:        zap.NewNop(),
	}
}

// Option configures a Modal.
type Option func(*Config)

// WithBackdrop toggles the dimming backdrop.
func WithBackdrop(on bool) Option {
	return func(c *Config) { c.Backdrop = on }
}

// WithCloseOnClick toggles dismissal by clicking the backdrop.
func WithCloseOnClick(on bool) Option {
	return func(c *Config) { c.CloseOnClick = on }
}

// WithKeyboard toggles dismissal with the escape key.
func WithKeyboard(on bool) Option {
	return func(c *Config) { c.Keyboard = on }
}

// WithKeyHandler routes every key event to fn, bypassing escape handling.
func WithKeyHandler(fn func(KeyEvent)) Option {
	return func(c *Config) { c.KeyHandler = fn }
}

// WithClassName sets the class name carried on the container style.
func WithClassName(name string) Option {
	return func(c *Config) { c.ClassName = name }
}

// WithModalStyle sets container style overrides.
func WithModalStyle(s Style) Option {
	return func(c *Config) { c.ModalStyle = maps.Clone(s) }
}

// WithBackdropStyle sets backdrop style overrides.
func WithBackdropStyle(s Style) Option {
	return func(c *Config) { c.BackdropStyle = maps.Clone(s) }
}

// WithContentStyle sets content style overrides.
func WithContentStyle(s Style) Option {
	return func(c *Config) { c.ContentStyle = maps.Clone(s) }
}

// WithAnimation sets the timing profiles. Zero fields keep their defaults.
func WithAnimation(a Animation) Option {
	return func(c *Config) {
		if a.Show.Duration > 0 {
			c.Animation.Show.Duration = a.Show.Duration
		}
		if a.Show.Easing != "" {
			c.Animation.Show.Easing = a.Show.Easing
		}
		if a.Hide.Duration > 0 {
			c.Animation.Hide.Duration = a.Hide.Duration
		}
		if a.Hide.Easing != "" {
			c.Animation.Hide.Easing = a.Hide.Easing
		}
	}
}

// WithOnShow sets the callback run once the modal is fully visible.
func WithOnShow(fn func()) Option {
	return func(c *Config) {
		if fn != nil {
			c.OnShow = fn
		}
	}
}

// WithOnHide sets the callback run once the modal is fully hidden.
func WithOnHide(fn func(HideReason)) Option {
	return func(c *Config) {
		if fn != nil {
			c.OnHide = fn
		}
	}
}

// WithLogger sets the logger for lifecycle tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
