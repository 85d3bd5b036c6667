// Package config loads the fademodal configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rubber_duck/fademodal/internal/modal"
	"gopkg.in/yaml.v3"
)

// ErrUnknownEasing is returned by Validate for an easing no renderer knows.
var ErrUnknownEasing = errors.New("unknown easing")

// Config represents the fademodal configuration.
type Config struct {
	Modal   ModalConfig   `json:"modal" yaml:"modal"`
	Remote  RemoteConfig  `json:"remote" yaml:"remote"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// fromEnv undoes the environment overrides so Save writes file values.
	fromEnv []func(*Config)
}

// ModalConfig mirrors the modal's construction options.
type ModalConfig struct {
	Backdrop      *bool           `json:"backdrop,omitempty" yaml:"backdrop,omitempty"`
	CloseOnClick  *bool           `json:"close_on_click,omitempty" yaml:"close_on_click,omitempty"`
	Keyboard      *bool           `json:"keyboard,omitempty" yaml:"keyboard,omitempty"`
	ClassName     string          `json:"class_name,omitempty" yaml:"class_name,omitempty"`
	ModalStyle    map[string]any  `json:"modal_style,omitempty" yaml:"modal_style,omitempty"`
	BackdropStyle map[string]any  `json:"backdrop_style,omitempty" yaml:"backdrop_style,omitempty"`
	ContentStyle  map[string]any  `json:"content_style,omitempty" yaml:"content_style,omitempty"`
	Animation     AnimationConfig `json:"animation" yaml:"animation"`
	Title         string          `json:"title,omitempty" yaml:"title,omitempty"`
	Body          string          `json:"body,omitempty" yaml:"body,omitempty"`
}

// AnimationConfig holds per-direction timings.
type AnimationConfig struct {
	Show TimingConfig `json:"show" yaml:"show"`
	Hide TimingConfig `json:"hide" yaml:"hide"`
}

// TimingConfig is one direction's timing. Duration uses time.ParseDuration
// syntax ("300ms", "0.3s").
type TimingConfig struct {
	Duration string `json:"duration,omitempty" yaml:"duration,omitempty"`
	Easing   string `json:"easing,omitempty" yaml:"easing,omitempty"`
}

// RemoteConfig configures the Phoenix remote control channel.
type RemoteConfig struct {
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
	Topic  string `json:"topic,omitempty" yaml:"topic,omitempty"`
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// LoggingConfig configures the debug log.
type LoggingConfig struct {
	Debug bool   `json:"debug" yaml:"debug"`
	File  string `json:"file,omitempty" yaml:"file,omitempty"`
}

// DefaultTopic is the channel joined when none is configured.
const DefaultTopic = "modal:lobby"

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Remote:  RemoteConfig{Topic: DefaultTopic},
		Logging: LoggingConfig{File: "fademodal.log"},
	}
}

// DefaultPath returns ~/.fademodal/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".fademodal", "config.yaml"), nil
}

// Load reads the configuration at path. A missing file yields defaults.
// Files ending in .json are parsed as JSON, anything else as YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if isJSON(path) {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to path in the format its extension names.
// Values taken from the environment are not written, and the file is only
// readable by its owner since it may hold the API key.
func (c *Config) Save(path string) error {
	out := *c
	for _, undo := range c.fromEnv {
		undo(&out)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(&out, "", "  ")
	} else {
		data, err = yaml.Marshal(&out)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	c.envString("FADEMODAL_REMOTE_URL", func(c *Config) *string { return &c.Remote.URL })
	c.envString("FADEMODAL_REMOTE_TOPIC", func(c *Config) *string { return &c.Remote.Topic })
	c.envString("FADEMODAL_API_KEY", func(c *Config) *string { return &c.Remote.APIKey })

	if v := os.Getenv("FADEMODAL_DEBUG"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			prev := c.Logging.Debug
			c.Logging.Debug = on
			c.fromEnv = append(c.fromEnv, func(o *Config) {
				if o.Logging.Debug == on {
					o.Logging.Debug = prev
				}
			})
		}
	}
}

// envString overrides the field picked by field with the variable key.
// Values changed again after loading are kept by Save.
func (c *Config) envString(key string, field func(*Config) *string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	dst := field(c)
	prev := *dst
	*dst = v
	c.fromEnv = append(c.fromEnv, func(o *Config) {
		if f := field(o); *f == v {
			*f = prev
		}
	})
}

// Validate checks the animation settings.
func (c *Config) Validate() error {
	timings := map[string]TimingConfig{
		"show": c.Modal.Animation.Show,
		"hide": c.Modal.Animation.Hide,
	}
	for name, tc := range timings {
		if _, err := tc.timing(); err != nil {
			return fmt.Errorf("animation.%s: %w", name, err)
		}
	}
	return nil
}

func (tc TimingConfig) timing() (modal.Timing, error) {
	var t modal.Timing
	if tc.Duration != "" {
		d, err := time.ParseDuration(tc.Duration)
		if err != nil {
			return t, fmt.Errorf("invalid duration %q: %w", tc.Duration, err)
		}
		if d < 0 {
			return t, fmt.Errorf("negative duration %q", tc.Duration)
		}
		t.Duration = d
	}
	if tc.Easing != "" {
		if !modal.ValidEasing(tc.Easing) {
			return t, fmt.Errorf("%w %q (known: %s)", ErrUnknownEasing, tc.Easing, strings.Join(modal.Easings(), ", "))
		}
		t.Easing = tc.Easing
	}
	return t, nil
}

// Options converts the modal section into construction options. Call
// Validate first; invalid timings are skipped here.
func (c *Config) Options() []modal.Option {
	mc := c.Modal
	var opts []modal.Option

	if mc.Backdrop != nil {
		opts = append(opts, modal.WithBackdrop(*mc.Backdrop))
	}
	if mc.CloseOnClick != nil {
		opts = append(opts, modal.WithCloseOnClick(*mc.CloseOnClick))
	}
	if mc.Keyboard != nil {
		opts = append(opts, modal.WithKeyboard(*mc.Keyboard))
	}
	if mc.ClassName != "" {
		opts = append(opts, modal.WithClassName(mc.ClassName))
	}
	if len(mc.ModalStyle) > 0 {
		opts = append(opts, modal.WithModalStyle(styleFrom(mc.ModalStyle)))
	}
	if len(mc.BackdropStyle) > 0 {
		opts = append(opts, modal.WithBackdropStyle(styleFrom(mc.BackdropStyle)))
	}
	if len(mc.ContentStyle) > 0 {
		opts = append(opts, modal.WithContentStyle(styleFrom(mc.ContentStyle)))
	}

	show, errShow := mc.Animation.Show.timing()
	hide, errHide := mc.Animation.Hide.timing()
	var anim modal.Animation
	if errShow == nil {
		anim.Show = show
	}
	if errHide == nil {
		anim.Hide = hide
	}
	opts = append(opts, modal.WithAnimation(anim))

	return opts
}

// styleFrom converts decoded values: duration strings under the animation
// duration key become time.Duration, integral numbers stay numbers.
func styleFrom(raw map[string]any) modal.Style {
	out := make(modal.Style, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok && k == modal.KeyDuration {
			if d, err := time.ParseDuration(s); err == nil {
				out[k] = d
				continue
			}
		}
		out[k] = v
	}
	return out
}
