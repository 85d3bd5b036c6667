package modal

import "go.uber.org/zap"

// KeyEscape is the name of the dismiss key.
const KeyEscape = "Escape"

// KeyCodeEscape is the legacy key code of the dismiss key.
const KeyCodeEscape = 27

// KeyEvent is a key press delivered by a KeySource.
type KeyEvent struct {
	Key  string
	Code int
}

// IsDismiss reports whether the event is the dismiss key.
func (e KeyEvent) IsDismiss() bool {
	return e.Key == KeyEscape || e.Code == KeyCodeEscape
}

// KeySource is a global stream of key presses.
type KeySource interface {
	// Subscribe registers fn and returns the function that removes it.
	Subscribe(fn func(KeyEvent)) (unsubscribe func())
}

// MountInput listens to src for as long as the modal is mounted. The returned
// release removes the listener and may be called more than once.
func (m *Modal) MountInput(src KeySource) (release func()) {
	unsubscribe := src.Subscribe(m.HandleKey)
	released := false
	return func() {
		if released {
			return
		}
		released = true
		unsubscribe()
	}
}

// HandleKey applies a key press. A configured KeyHandler takes every event;
// otherwise the dismiss key hides the modal when Keyboard is enabled.
func (m *Modal) HandleKey(ev KeyEvent) {
	if m.cfg.KeyHandler != nil {
		m.cfg.KeyHandler(ev)
		return
	}
	if m.cfg.Keyboard && ev.IsDismiss() {
		m.logger.Debug("dismiss key", zap.String("key", ev.Key))
		m.HideWith(ReasonEscape)
	}
}

// BackdropClick hides the modal when CloseOnClick is enabled.
func (m *Modal) BackdropClick() {
	if !m.cfg.CloseOnClick {
		return
	}
	m.HideWith(ReasonBackdrop)
}
