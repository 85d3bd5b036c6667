package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rubber_duck/fademodal/internal/modal"
)

// keyMap holds the host key bindings.
type keyMap struct {
	Toggle  key.Binding
	Show    key.Binding
	Dismiss key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle modal"),
		),
		Show: key.NewBinding(
			key.WithKeys("enter", "o"),
			key.WithHelp("enter/o", "show modal"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Show, k.Dismiss, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// keyEventFrom converts a terminal key press to the modal's key event.
func keyEventFrom(msg tea.KeyMsg) modal.KeyEvent {
	if msg.Type == tea.KeyEsc {
		return modal.KeyEvent{Key: modal.KeyEscape, Code: modal.KeyCodeEscape}
	}
	return modal.KeyEvent{Key: msg.String()}
}

// keyBus fans terminal key presses out to subscribers. It is the KeySource
// handed to the modal's input bridge.
type keyBus struct {
	subs map[int]func(modal.KeyEvent)
	next int
}

func newKeyBus() *keyBus {
	return &keyBus{subs: make(map[int]func(modal.KeyEvent))}
}

// Subscribe implements modal.KeySource
func (b *keyBus) Subscribe(fn func(modal.KeyEvent)) func() {
	id := b.next
	b.next++
	b.subs[id] = fn
	return func() { delete(b.subs, id) }
}

func (b *keyBus) publish(ev modal.KeyEvent) {
	for id := 0; id < b.next; id++ {
		if fn, ok := b.subs[id]; ok {
			fn(ev)
		}
	}
}

func (b *keyBus) len() int {
	return len(b.subs)
}
