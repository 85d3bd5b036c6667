package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rubber_duck/fademodal/internal/modal"
)

// overlay is the painted modal for one frame.
type overlay struct {
	box  string
	rect rect
	dim  *lipgloss.Style
}

// layer collects what the overlay paints from the modal's resolved styles
// and the animation clock.
func (m Model) layer() layer {
	styles := m.modal.Styles()
	settled := 0.0
	if m.modal.State().Visibility == modal.Visible {
		settled = 1
	}

	l := layer{
		styles:         styles,
		contentOpacity: m.opacity(m.nodes.content, styles.Content, settled),
		title:          m.title,
		body:           m.rendered,
	}
	if styles.HasBackdrop() {
		l.backdropOpacity = m.opacity(m.nodes.backdrop, styles.Backdrop, settled*modal.BackdropOpacity)
	}

	var hints []string
	cfg := m.modal.Config()
	if cfg.Keyboard && cfg.KeyHandler == nil {
		hints = append(hints, "esc to dismiss")
	}
	if styles.HasBackdrop() && cfg.CloseOnClick {
		hints = append(hints, "click outside to close")
	}
	l.footer = strings.Join(hints, " • ")
	return l
}

// overlay paints the modal and places it on a screen of the current size.
// It returns false when nothing is mounted.
func (m Model) overlay() (overlay, bool) {
	if m.nodes.content == "" {
		return overlay{}, false
	}
	l := m.layer()

	var dim *lipgloss.Style
	under := parseColor(string(m.theme.Background), m.theme.Background)
	if l.styles.HasBackdrop() {
		s, c := backdropStyle(m.theme, l.styles.Backdrop, l.backdropOpacity)
		dim, under = &s, c
	}

	w := m.boxWidth()
	box := paintBox(l, w-2, m.theme, under)
	h := lipgloss.Height(box)

	container := l.styles.Container
	cx := parseLength(container[modal.KeyLeft], m.width, m.width/2)
	cy := parseLength(container[modal.KeyTop], m.height, m.height/2)
	r := rect{
		x: max(0, cx-w/2),
		y: max(0, cy-h/2),
		w: lipgloss.Width(box),
		h: h,
	}
	return overlay{box: box, rect: r, dim: dim}, true
}
