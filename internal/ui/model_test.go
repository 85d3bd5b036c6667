package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rubber_duck/fademodal/internal/modal"
	"github.com/rubber_duck/fademodal/internal/phoenix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type hostFixture struct {
	model  Model
	clock  *clock
	shown  int
	hidden []modal.HideReason
}

func newHost(t *testing.T, opts Options) *hostFixture {
	t.Helper()
	f := &hostFixture{clock: &clock{t: time.Unix(1700000000, 0)}}
	opts.Modal = append(opts.Modal,
		modal.WithOnShow(func() { f.shown++ }),
		modal.WithOnHide(func(r modal.HideReason) { f.hidden = append(f.hidden, r) }),
	)
	opts.Now = f.clock.now
	opts.Logger = zaptest.NewLogger(t)
	f.model = NewModel(opts)
	f.send(tea.WindowSizeMsg{Width: 80, Height: 24})
	return f
}

func (f *hostFixture) send(msg tea.Msg) tea.Cmd {
	next, cmd := f.model.Update(msg)
	f.model = next.(Model)
	return cmd
}

func (f *hostFixture) state() modal.State {
	return f.model.Modal().State()
}

// settle runs the pending tick and plays animations to the end.
func (f *hostFixture) settle() {
	f.send(flushMsg{})
	f.clock.advance(400 * time.Millisecond)
	f.send(frameMsg{})
}

func (f *hostFixture) showFully(t *testing.T) {
	t.Helper()
	f.send(ShowMsg{})
	f.settle()
	require.Equal(t, modal.Visible, f.state().Visibility)
}

func TestNewModel(t *testing.T) {
	f := newHost(t, Options{})

	assert.True(t, f.model.Modal().IsHidden())
	assert.Equal(t, 80, f.model.width)
	assert.Equal(t, 24, f.model.height)
	assert.Equal(t, 1, f.model.keys.len(), "input bridge should be mounted")
	assert.Empty(t, f.model.nodes.content)
}

func TestModel_ShowPlaysEnterAnimation(t *testing.T) {
	f := newHost(t, Options{})

	f.send(ShowMsg{})
	assert.True(t, f.state().Entering())
	require.NotEmpty(t, f.model.nodes.content, "content should mount on show")
	assert.Equal(t, f.model.nodes.content, f.model.Modal().Content())

	// A frame before the tick must not complete the transition.
	f.clock.advance(time.Second)
	f.send(frameMsg{})
	assert.True(t, f.state().Entering())

	f.send(flushMsg{})
	f.send(frameMsg{})

	assert.Equal(t, modal.State{Visibility: modal.Visible, Direction: modal.Entering}, f.state())
	assert.Equal(t, 1, f.shown)
}

func TestModel_EnterWaitsForAnimationEnd(t *testing.T) {
	f := newHost(t, Options{})

	f.send(ShowMsg{})
	f.send(flushMsg{})
	f.clock.advance(100 * time.Millisecond)
	f.send(frameMsg{})
	assert.True(t, f.state().Entering())
	assert.Equal(t, 0, f.shown)

	f.clock.advance(250 * time.Millisecond)
	f.send(frameMsg{})
	assert.Equal(t, modal.Visible, f.state().Visibility)
	assert.Equal(t, 1, f.shown)
}

func TestModel_EscapeHides(t *testing.T) {
	f := newHost(t, Options{})
	f.showFully(t)

	f.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, f.state().Leaving())
	assert.NotEmpty(t, f.model.nodes.content, "content stays mounted while leaving")

	f.clock.advance(400 * time.Millisecond)
	f.send(frameMsg{})

	assert.True(t, f.model.Modal().IsHidden())
	assert.Empty(t, f.model.nodes.content)
	assert.Empty(t, f.model.tracks)
	assert.Equal(t, []modal.HideReason{modal.ReasonEscape}, f.hidden)
}

func TestModel_EscapeIgnoredWithoutKeyboard(t *testing.T) {
	f := newHost(t, Options{Modal: []modal.Option{modal.WithKeyboard(false)}})
	f.showFully(t)

	f.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modal.Visible, f.state().Visibility)
}

func TestModel_SpaceToggles(t *testing.T) {
	f := newHost(t, Options{})
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

	f.send(space)
	assert.True(t, f.state().Entering())

	// Hiding mid-enter reverses the fade.
	f.send(space)
	assert.True(t, f.state().Leaving())

	f.settle()
	assert.True(t, f.model.Modal().IsHidden())
	assert.Equal(t, 0, f.shown, "superseded enter must not report")
	assert.Equal(t, []modal.HideReason{modal.ReasonAPI}, f.hidden)
}

func TestModel_WithoutEffectSignals(t *testing.T) {
	f := newHost(t, Options{NoEffectSignals: true})

	f.send(ShowMsg{})
	f.send(flushMsg{}) // arms the watch
	assert.True(t, f.state().Entering())
	f.send(flushMsg{}) // fallback fires
	assert.Equal(t, modal.Visible, f.state().Visibility)

	f.send(HideMsg{})
	f.send(flushMsg{})
	assert.True(t, f.model.Modal().IsHidden())
	assert.Equal(t, 1, f.shown)
	assert.Len(t, f.hidden, 1)
}

func TestModel_BackdropClick(t *testing.T) {
	f := newHost(t, Options{})
	f.showFully(t)
	_ = f.model.View()

	hit := *f.model.hit
	require.Positive(t, hit.w)

	inside := tea.MouseMsg{X: hit.x + hit.w/2, Y: hit.y + hit.h/2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	f.send(inside)
	assert.Equal(t, modal.Visible, f.state().Visibility, "click on content must not close")

	outside := tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	f.send(outside)
	assert.True(t, f.state().Leaving())

	f.clock.advance(400 * time.Millisecond)
	f.send(frameMsg{})
	assert.Equal(t, []modal.HideReason{modal.ReasonBackdrop}, f.hidden)
}

func TestModel_BackdropClickDisabled(t *testing.T) {
	tests := []struct {
		name string
		opts []modal.Option
	}{
		{"close on click off", []modal.Option{modal.WithCloseOnClick(false)}},
		{"no backdrop", []modal.Option{modal.WithBackdrop(false)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHost(t, Options{Modal: tt.opts})
			f.showFully(t)
			_ = f.model.View()

			f.send(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
			assert.Equal(t, modal.Visible, f.state().Visibility)
		})
	}
}

func TestModel_RemoteCommands(t *testing.T) {
	f := newHost(t, Options{})

	f.send(phoenix.CommandMsg{Op: phoenix.OpToggle})
	assert.True(t, f.state().Entering())
	f.settle()

	f.send(phoenix.CommandMsg{Op: phoenix.OpShow})
	assert.Equal(t, modal.Visible, f.state().Visibility, "show while visible is a no-op")

	f.send(phoenix.CommandMsg{Op: phoenix.OpHide})
	f.settle()
	assert.True(t, f.model.Modal().IsHidden())
	assert.Equal(t, []modal.HideReason{modal.ReasonRemote}, f.hidden)
}

func TestModel_Quit(t *testing.T) {
	f := newHost(t, Options{})

	cmd := f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 0, f.model.keys.len(), "input bridge should be released")

	// Releasing again is harmless.
	f.model.Close()
}

func TestModel_EventLog(t *testing.T) {
	f := newHost(t, Options{})
	f.showFully(t)

	lines := f.model.events.lines
	assert.Contains(t, lines, "state → entering")
	assert.Contains(t, lines, "state → visible")
	assert.Contains(t, lines, "onShow")
}

func TestModel_View(t *testing.T) {
	f := newHost(t, Options{Title: "Hello", Body: "plain body"})

	view := ansi.Strip(f.model.View())
	assert.Contains(t, view, "modal: hidden")
	assert.NotContains(t, view, "Hello")
	assert.Equal(t, 24, len(strings.Split(view, "\n")))

	f.showFully(t)
	view = ansi.Strip(f.model.View())
	assert.Contains(t, view, "modal: visible")
	assert.Contains(t, view, "Hello")
	assert.Contains(t, view, "plain body")
	assert.Contains(t, view, "esc to dismiss")
	assert.Equal(t, 24, len(strings.Split(view, "\n")))
}

func TestModel_ViewShowsClassName(t *testing.T) {
	f := newHost(t, Options{Modal: []modal.Option{modal.WithClassName("confirm")}})
	f.showFully(t)

	assert.Contains(t, ansi.Strip(f.model.View()), "(confirm)")
}

func TestModel_OpacityFollowsAnimation(t *testing.T) {
	f := newHost(t, Options{Modal: []modal.Option{
		modal.WithAnimation(modal.Animation{Show: modal.Timing{Easing: modal.EaseLinear}}),
	}})

	f.send(ShowMsg{})
	f.send(flushMsg{})
	content := f.model.nodes.content
	styles := f.model.Modal().Styles()

	assert.InDelta(t, 0, f.model.opacity(content, styles.Content, 1), 1e-9)
	f.clock.advance(150 * time.Millisecond)
	assert.InDelta(t, 0.5, f.model.opacity(content, styles.Content, 1), 1e-9)

	override := modal.Merge(styles.Content, modal.Style{modal.KeyOpacity: 0.25})
	assert.InDelta(t, 0.25, f.model.opacity(content, override, 1), 1e-9)
}

func TestModel_RemoteLifecycle(t *testing.T) {
	mock := phoenix.NewMockClient(nil, nil)
	rc := phoenix.Config{URL: "mock://", Topic: "modal:test"}
	f := newHost(t, Options{Remote: mock, RemoteConfig: rc})

	f.send(mock.Connect(rc)())
	assert.True(t, f.model.connected)
	f.send(mock.Join(rc.Topic)())

	f.showFully(t)
	f.send(HideMsg{})
	f.settle()

	assert.Equal(t, []phoenix.Notification{
		{Event: phoenix.EventShown},
		{Event: phoenix.EventHidden, Payload: map[string]any{"reason": "api"}},
	}, mock.Notifications())
	assert.Contains(t, f.model.events.lines, "joined modal:test")
}

func TestModel_RemoteReconnects(t *testing.T) {
	mock := phoenix.NewMockClient(nil, nil)
	rc := phoenix.Config{URL: "mock://", Topic: "modal:test"}
	f := newHost(t, Options{Remote: mock, RemoteConfig: rc})

	cmd := f.send(phoenix.DisconnectedMsg{Error: assert.AnError})
	require.NotNil(t, cmd)
	assert.False(t, f.model.connected)

	var retry phoenix.RetryMsg
	for _, msg := range collect(cmd) {
		if r, ok := msg.(phoenix.RetryMsg); ok {
			retry = r
		}
	}
	require.NotNil(t, retry.Cmd, "a reconnect should be scheduled")

	f.send(retry)
	f.send(retry.Cmd())
	assert.True(t, f.model.connected)
}

func TestModel_InitConnectsRemote(t *testing.T) {
	mock := phoenix.NewMockClient(nil, nil)
	f := newHost(t, Options{Remote: mock, RemoteConfig: phoenix.Config{URL: "mock://"}})

	msgs := collect(f.model.Init())
	assert.Contains(t, msgs, tea.Msg(phoenix.ConnectedMsg{}))
}

// collect runs cmd and any batched commands and returns the messages they
// produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestModel_HelpHidesDismissWhenEscapeIsOff(t *testing.T) {
	tests := []struct {
		name    string
		opts    []modal.Option
		dismiss bool
	}{
		{"default", nil, true},
		{"keyboard off", []modal.Option{modal.WithKeyboard(false)}, false},
		{"custom key handler", []modal.Option{modal.WithKeyHandler(func(modal.KeyEvent) {})}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHost(t, Options{Modal: tt.opts})

			assert.Equal(t, tt.dismiss, f.model.keymap.Dismiss.Enabled())
			view := ansi.Strip(f.model.View())
			if tt.dismiss {
				assert.Contains(t, view, "dismiss")
			} else {
				assert.NotContains(t, view, "dismiss")
			}
		})
	}
}
