package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color scheme for the modal host. Colors are hex so
// they can be blended for fades.
type Theme struct {
	Name        string
	Description string

	// Base colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color

	// Status bar
	StatusBar     lipgloss.Color
	StatusBarText lipgloss.Color

	// Modal colors
	ModalBg     lipgloss.Color
	ModalFg     lipgloss.Color
	ModalBorder lipgloss.Color
	ModalTitle  lipgloss.Color
}

// ThemeManager manages available themes and theme switching
type ThemeManager struct {
	themes       map[string]*Theme
	currentTheme string
}

// NewThemeManager creates a new theme manager with default themes
func NewThemeManager() *ThemeManager {
	tm := &ThemeManager{
		themes:       make(map[string]*Theme),
		currentTheme: "dark",
	}

	tm.RegisterTheme(DefaultDarkTheme())
	tm.RegisterTheme(DefaultLightTheme())

	return tm
}

// RegisterTheme adds a new theme to the manager
func (tm *ThemeManager) RegisterTheme(theme *Theme) {
	tm.themes[theme.Name] = theme
}

// SetTheme changes the current theme
func (tm *ThemeManager) SetTheme(name string) bool {
	if _, exists := tm.themes[name]; exists {
		tm.currentTheme = name
		return true
	}
	return false
}

// GetTheme returns the current theme
func (tm *ThemeManager) GetTheme() *Theme {
	if theme, exists := tm.themes[tm.currentTheme]; exists {
		return theme
	}
	return DefaultDarkTheme()
}

// GetThemeNames returns all available theme names, sorted
func (tm *ThemeManager) GetThemeNames() []string {
	names := make([]string, 0, len(tm.themes))
	for name := range tm.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultDarkTheme returns the default dark theme
func DefaultDarkTheme() *Theme {
	return &Theme{
		Name:        "dark",
		Description: "Default dark theme",

		Background: lipgloss.Color("#262626"),
		Foreground: lipgloss.Color("#d0d0d0"),
		Muted:      lipgloss.Color("#6c6c6c"),

		StatusBar:     lipgloss.Color("#3a3a3a"),
		StatusBarText: lipgloss.Color("#bcbcbc"),

		ModalBg:     lipgloss.Color("#ffffff"),
		ModalFg:     lipgloss.Color("#1c1c1c"),
		ModalBorder: lipgloss.Color("#5f5fd7"),
		ModalTitle:  lipgloss.Color("#d75f87"),
	}
}

// DefaultLightTheme returns the default light theme
func DefaultLightTheme() *Theme {
	return &Theme{
		Name:        "light",
		Description: "Default light theme",

		Background: lipgloss.Color("#eeeeee"),
		Foreground: lipgloss.Color("#262626"),
		Muted:      lipgloss.Color("#8a8a8a"),

		StatusBar:     lipgloss.Color("#bcbcbc"),
		StatusBarText: lipgloss.Color("#262626"),

		ModalBg:     lipgloss.Color("#ffffff"),
		ModalFg:     lipgloss.Color("#262626"),
		ModalBorder: lipgloss.Color("#0087d7"),
		ModalTitle:  lipgloss.Color("#af005f"),
	}
}
