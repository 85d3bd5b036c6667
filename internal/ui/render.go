package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/rubber_duck/fademodal/internal/modal"
)

// rect is a screen region in cells.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

var namedColors = map[string]string{
	"white": "#ffffff",
	"black": "#000000",
}

// parseColor reads a style color value, falling back to fallback.
func parseColor(v string, fallback lipgloss.Color) colorful.Color {
	if hex, ok := namedColors[strings.ToLower(v)]; ok {
		v = hex
	}
	if c, err := colorful.Hex(v); err == nil {
		return c
	}
	c, err := colorful.Hex(string(fallback))
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// blend mixes from towards to by t in [0, 1].
func blend(from, to colorful.Color, t float64) lipgloss.Color {
	return lipgloss.Color(from.BlendRgb(to, clamp01(t)).Clamped().Hex())
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// parseLength converts a CSS-ish length to cells along an axis of size
// total: "N%" is relative, "Npx" is N/10 cells, bare numbers are cells.
func parseLength(v any, total, fallback int) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case string:
		s := strings.TrimSpace(n)
		switch {
		case strings.HasSuffix(s, "%"):
			f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
			if err == nil {
				return int(f * float64(total) / 100)
			}
		case strings.HasSuffix(s, "px"):
			f, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
			if err == nil {
				return int(f / 10)
			}
		default:
			if i, err := strconv.Atoi(s); err == nil {
				return i
			}
		}
	}
	return fallback
}

// layer describes what is painted for one frame.
type layer struct {
	styles          modal.Styles
	contentOpacity  float64
	backdropOpacity float64
	title           string
	body            string
	footer          string
}

// backdropStyle returns the style that dims background text towards the
// backdrop color.
func backdropStyle(theme *Theme, backdrop modal.Style, opacity float64) (lipgloss.Style, colorful.Color) {
	base := parseColor(string(theme.Background), theme.Background)
	fg := parseColor(string(theme.Foreground), theme.Foreground)
	tint := parseColor(backdrop.String(modal.KeyBackground), theme.Background)

	under := base.BlendRgb(tint, clamp01(opacity))
	style := lipgloss.NewStyle().
		Foreground(blend(fg, tint, opacity)).
		Background(lipgloss.Color(under.Clamped().Hex()))
	return style, under
}

// paintBox renders the content box with colors faded by opacity against
// the color it sits on.
func paintBox(l layer, width int, theme *Theme, under colorful.Color) string {
	contentBg := parseColor(l.styles.Content.String(modal.KeyBackground), theme.ModalBg)
	fg := parseColor(string(theme.ModalFg), theme.ModalFg)
	border := parseColor(string(theme.ModalBorder), theme.ModalBorder)
	title := parseColor(string(theme.ModalTitle), theme.ModalTitle)
	o := l.contentOpacity

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(blend(under, title, o))

	body := l.title
	if body != "" {
		body = titleStyle.Render(body) + "\n\n"
	}
	body += l.body
	if l.footer != "" {
		body += "\n\n" + lipgloss.NewStyle().Faint(true).Render(l.footer)
	}

	box := lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(blend(under, border, o)).
		BorderBackground(blend(under, contentBg, o)).
		Foreground(blend(under, fg, o)).
		Background(blend(under, contentBg, o))

	return box.Render(body)
}

// compose splices box onto the background with its top-left at r. When
// dim is set every background cell is repainted with it; otherwise rows the
// box does not touch keep their original styling.
func compose(bg []string, box string, r rect, screenW int, dim *lipgloss.Style) []string {
	out := make([]string, len(bg))
	for y, line := range bg {
		if dim != nil {
			out[y] = dim.Render(padRight(ansi.Strip(line), screenW))
		} else {
			out[y] = line
		}
	}

	paint := func(s string) string {
		if dim == nil {
			return s
		}
		return dim.Render(s)
	}

	for i, line := range strings.Split(box, "\n") {
		y := r.y + i
		if y < 0 || y >= len(out) {
			continue
		}
		plain := ansi.Strip(bg[y])
		line = ansi.Truncate(line, screenW-r.x, "")
		end := r.x + ansi.StringWidth(line)
		left := padRight(cutWidth(plain, 0, r.x), r.x)
		right := padRight(cutWidth(plain, end, screenW), screenW-end)
		out[y] = paint(left) + line + paint(right)
	}
	return out
}

// cutWidth returns the cells [from, to) of a plain string.
func cutWidth(s string, from, to int) string {
	var b strings.Builder
	col := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if col >= from && col+w <= to {
			b.WriteRune(r)
		}
		col += w
		if col >= to {
			break
		}
	}
	return b.String()
}

func padRight(s string, width int) string {
	if pad := width - ansi.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
