package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// themedStyles contains the host styles based on the current theme
type themedStyles struct {
	statusBar lipgloss.Style
	muted     lipgloss.Style
	screen    lipgloss.Style
}

func (m Model) themedStyles() themedStyles {
	return themedStyles{
		statusBar: lipgloss.NewStyle().
			Foreground(m.theme.StatusBarText).
			Background(m.theme.StatusBar),
		muted: lipgloss.NewStyle().
			Foreground(m.theme.Muted),
		screen: lipgloss.NewStyle().
			Foreground(m.theme.Foreground).
			Background(m.theme.Background),
	}
}

// View renders the entire UI
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	styles := m.themedStyles()
	bg := m.background(styles)

	o, ok := m.overlay()
	if !ok {
		*m.hit = rect{}
		return strings.Join(bg, "\n")
	}
	*m.hit = o.rect
	return strings.Join(compose(bg, o.box, o.rect, m.width, o.dim), "\n")
}

// background renders the screen under the modal: the event log, the
// status bar and the key help, padded to the full screen.
func (m Model) background(styles themedStyles) []string {
	logHeight := max(1, m.height-2)

	var lines []string
	for _, line := range strings.Split(m.log.View(), "\n") {
		lines = append(lines, styles.screen.Render(padRight(line, m.width)))
	}
	for len(lines) < logHeight {
		lines = append(lines, styles.screen.Render(strings.Repeat(" ", m.width)))
	}
	lines = lines[:logHeight]

	lines = append(lines, m.renderStatusBar(styles))
	lines = append(lines, styles.screen.Render(padRight(m.help.View(m.keymap), m.width)))
	return lines
}

// renderStatusBar renders the status bar
func (m Model) renderStatusBar(styles themedStyles) string {
	remote := "off"
	if m.remote != nil {
		remote = "disconnected"
		if m.connected {
			remote = "connected"
		}
	}

	left := fmt.Sprintf(" modal: %s", m.modal.State())
	if name := m.modal.Styles().ClassName; name != "" {
		left += fmt.Sprintf(" (%s)", name)
	}
	right := fmt.Sprintf("remote: %s | theme: %s ", remote, m.theme.Name)

	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return styles.statusBar.Render(left + strings.Repeat(" ", gap) + right)
}
