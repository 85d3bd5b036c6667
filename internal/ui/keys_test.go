package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rubber_duck/fademodal/internal/modal"
	"github.com/stretchr/testify/assert"
)

func TestKeyEventFrom(t *testing.T) {
	esc := keyEventFrom(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modal.KeyEvent{Key: modal.KeyEscape, Code: modal.KeyCodeEscape}, esc)
	assert.True(t, esc.IsDismiss())

	a := keyEventFrom(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	assert.Equal(t, "a", a.Key)
	assert.False(t, a.IsDismiss())
}

func TestKeyBus(t *testing.T) {
	bus := newKeyBus()
	var got []string

	unsubA := bus.Subscribe(func(ev modal.KeyEvent) { got = append(got, "a:"+ev.Key) })
	bus.Subscribe(func(ev modal.KeyEvent) { got = append(got, "b:"+ev.Key) })
	assert.Equal(t, 2, bus.len())

	bus.publish(modal.KeyEvent{Key: "x"})
	assert.Equal(t, []string{"a:x", "b:x"}, got)

	unsubA()
	unsubA()
	assert.Equal(t, 1, bus.len())

	got = nil
	bus.publish(modal.KeyEvent{Key: "y"})
	assert.Equal(t, []string{"b:y"}, got)
}

func TestKeyMapHelp(t *testing.T) {
	k := defaultKeyMap()

	assert.Len(t, k.ShortHelp(), 4)
	assert.Equal(t, "space", k.Toggle.Help().Key)
	assert.True(t, matches(tea.KeyMsg{Type: tea.KeyEnter}, k.Show))
	assert.True(t, matches(tea.KeyMsg{Type: tea.KeyCtrlC}, k.Quit))
	assert.False(t, matches(tea.KeyMsg{Type: tea.KeyEsc}, k.Quit))
}
