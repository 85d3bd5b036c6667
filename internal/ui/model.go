package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"github.com/rubber_duck/fademodal/internal/effect"
	"github.com/rubber_duck/fademodal/internal/modal"
	"github.com/rubber_duck/fademodal/internal/phoenix"
	"go.uber.org/zap"
)

// reconnectDelay is the wait before redialing a dropped remote.
const reconnectDelay = 3 * time.Second

// Options configures the host program.
type Options struct {
	Modal []modal.Option
	// NoEffectSignals declares a renderer without completion signals, so
	// transitions settle on the next tick instead of at animation end.
	NoEffectSignals bool

	Title string
	Body  string // markdown
	Theme string

	Remote       phoenix.Remote
	RemoteConfig phoenix.Config

	Logger *zap.Logger
	Now    func() time.Time
}

// nodes are the identities of the mounted overlay tree:
// container > content > body, with the backdrop beside it.
type nodes struct {
	container effect.NodeID
	content   effect.NodeID
	body      effect.NodeID
	backdrop  effect.NodeID
}

func newNodes() nodes {
	id := func() effect.NodeID { return effect.NodeID(uuid.NewString()) }
	return nodes{container: id(), content: id(), body: id(), backdrop: id()}
}

// path returns node followed by its ancestors, the order a signal bubbles.
func (n nodes) path(node effect.NodeID) []effect.NodeID {
	switch node {
	case n.body:
		return []effect.NodeID{n.body, n.content, n.container}
	case n.content:
		return []effect.NodeID{n.content, n.container}
	}
	return []effect.NodeID{node}
}

// events collects what lifecycle callbacks produce while Update runs.
type events struct {
	lines []string
	cmds  []tea.Cmd
	dirty bool
}

func (e *events) add(format string, args ...any) {
	e.lines = append(e.lines, fmt.Sprintf(format, args...))
	e.dirty = true
}

func (e *events) drain() []tea.Cmd {
	cmds := e.cmds
	e.cmds = nil
	return cmds
}

// Model hosts a fading modal on a terminal screen. It is the renderer the
// modal controller talks to: it mounts the content node, paints the
// resolved styles, plays their animations and reports completion signals.
type Model struct {
	modal   *modal.Modal
	watcher *effect.Watcher
	queue   *effect.Queue
	keys    *keyBus
	release func()

	keymap keyMap
	help   help.Model
	log    viewport.Model
	events *events
	theme  *Theme

	title string
	body  string
	// rendered caches the glamour output of body for the current width.
	rendered string

	width  int
	height int

	nodes          nodes
	tracks         map[effect.NodeID]*track
	frameScheduled bool
	flushScheduled bool
	hit            *rect

	remote       phoenix.Remote
	remoteConfig phoenix.Config
	connected    bool

	now    func() time.Time
	logger *zap.Logger
}

// NewModel creates the host and the modal it drives.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	themes := NewThemeManager()
	if opts.Theme != "" {
		themes.SetTheme(opts.Theme)
	}

	queue := effect.NewQueue()
	watcherOpts := []effect.WatcherOption{effect.WithLogger(logger.Named("effect"))}
	if opts.NoEffectSignals {
		watcherOpts = append(watcherOpts, effect.WithKinds())
	}
	watcher := effect.NewWatcher(queue, watcherOpts...)

	ev := &events{}

	// Wrap the caller's callbacks so the host can log and report them.
	user := modal.DefaultConfig()
	for _, opt := range opts.Modal {
		opt(&user)
	}
	remote := opts.Remote
	modalOpts := append([]modal.Option{}, opts.Modal...)
	modalOpts = append(modalOpts,
		modal.WithLogger(logger.Named("modal")),
		modal.WithOnShow(func() {
			ev.add("onShow")
			if remote != nil {
				ev.cmds = append(ev.cmds, remote.Notify(phoenix.EventShown, nil))
			}
			user.OnShow()
		}),
		modal.WithOnHide(func(reason modal.HideReason) {
			ev.add("onHide (%s)", reason)
			if remote != nil {
				ev.cmds = append(ev.cmds, remote.Notify(phoenix.EventHidden, map[string]any{"reason": reason.String()}))
			}
			user.OnHide(reason)
		}),
	)

	md := modal.New(watcher, queue, modalOpts...)
	md.Subscribe(func(s modal.State) {
		ev.add("state → %s", s)
	})

	keys := newKeyBus()
	release := md.MountInput(keys)

	keymap := defaultKeyMap()
	cfg := md.Config()
	keymap.Dismiss.SetEnabled(cfg.Keyboard && cfg.KeyHandler == nil)

	title := opts.Title
	if title == "" {
		title = "Fade modal"
	}

	return Model{
		modal:        md,
		watcher:      watcher,
		queue:        queue,
		keys:         keys,
		release:      release,
		keymap:       keymap,
		help:         help.New(),
		log:          viewport.New(0, 0),
		events:       ev,
		theme:        themes.GetTheme(),
		title:        title,
		body:         opts.Body,
		rendered:     opts.Body,
		width:        80,
		height:       24,
		tracks:       make(map[effect.NodeID]*track),
		hit:          &rect{},
		remote:       remote,
		remoteConfig: opts.RemoteConfig,
		now:          now,
		logger:       logger,
	}
}

// Modal exposes the controller.
func (m Model) Modal() *modal.Modal {
	return m.modal
}

// Close releases the key subscription.
func (m Model) Close() {
	m.release()
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.WindowSize()}
	if m.remote != nil && m.remoteConfig.URL != "" {
		cmds = append(cmds, m.remote.Connect(m.remoteConfig))
	}
	return tea.Batch(cmds...)
}

// Update handles all state transitions
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if matches(msg, m.keymap.Quit) {
			return m, m.quit()
		}

		m.keys.publish(keyEventFrom(msg))

		switch {
		case matches(msg, m.keymap.Toggle):
			m.modal.Toggle()
		case matches(msg, m.keymap.Show):
			m.modal.Show()
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.click(msg.X, msg.Y)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.log.Width = msg.Width
		m.log.Height = max(1, msg.Height-2)
		m.renderBody()
		m.events.dirty = true

	case flushMsg:
		m.flushScheduled = false
		m.queue.Flush()

	case frameMsg:
		m.frameScheduled = false
		m.finishTracks()

	case ShowMsg:
		m.modal.Show()
	case HideMsg:
		m.modal.Hide()
	case ToggleMsg:
		m.modal.Toggle()

	case phoenix.ConnectedMsg:
		m.connected = true
		m.events.add("remote connected")
		if m.remote != nil {
			cmds = append(cmds, m.remote.Join(m.remoteConfig.Topic))
		}
	case phoenix.ChannelJoinedMsg:
		m.events.add("joined %s", msg.Topic)
	case phoenix.CommandMsg:
		m.remoteCommand(msg.Op)
	case phoenix.DisconnectedMsg:
		m.connected = false
		if msg.Error != nil {
			m.events.add("remote disconnected: %v", msg.Error)
			m.logger.Warn("remote disconnected", zap.Error(msg.Error))
			if m.remote != nil {
				cmds = append(cmds, m.remote.Reconnect(m.remoteConfig, reconnectDelay))
			}
		}
	case phoenix.RetryMsg:
		cmds = append(cmds, msg.Cmd)
	case phoenix.ErrorMsg:
		m.events.add("%s: %v", msg.Component, msg.Err)
		m.logger.Warn("remote error", zap.String("component", msg.Component), zap.Error(msg.Err))
	}

	return m, m.after(cmds...)
}

func (m *Model) remoteCommand(op phoenix.Op) {
	switch op {
	case phoenix.OpShow:
		m.modal.Show()
	case phoenix.OpHide:
		m.modal.HideWith(modal.ReasonRemote)
	case phoenix.OpToggle:
		if m.modal.IsHidden() {
			m.modal.Show()
		} else {
			m.modal.HideWith(modal.ReasonRemote)
		}
	}
}

// click forwards a click outside the content box to the backdrop.
func (m *Model) click(x, y int) {
	if m.modal.IsHidden() || !m.modal.Styles().HasBackdrop() {
		return
	}
	if m.hit.w > 0 && m.hit.contains(x, y) {
		return
	}
	m.modal.BackdropClick()
}

func (m *Model) quit() tea.Cmd {
	m.release()
	if m.remote != nil && m.connected {
		return tea.Sequence(m.remote.Disconnect(), tea.Quit)
	}
	return tea.Quit
}

// after runs the render pass for the state Update left behind and
// schedules the next tick and frame as needed.
func (m *Model) after(cmds ...tea.Cmd) tea.Cmd {
	cmds = append(cmds, m.commit())
	cmds = append(cmds, m.events.drain()...)

	if m.events.dirty {
		m.events.dirty = false
		m.log.SetContent(strings.Join(m.events.lines, "\n"))
		m.log.GotoBottom()
	}

	if m.queue.Len() > 0 && !m.flushScheduled {
		m.flushScheduled = true
		cmds = append(cmds, func() tea.Msg { return flushMsg{} })
	}
	return tea.Batch(cmds...)
}

// commit mounts or unmounts the overlay tree, starts animations whose
// keyframes changed and reports the pass to the controller.
func (m *Model) commit() tea.Cmd {
	if m.modal.IsHidden() {
		if m.nodes.content != "" {
			m.modal.UnmountContent()
			m.nodes = nodes{}
			clear(m.tracks)
		}
		return nil
	}

	if m.nodes.content == "" {
		m.nodes = newNodes()
		m.modal.MountContent(m.nodes.content)
	}

	now := m.now()
	styles := m.modal.Styles()
	m.play(m.nodes.content, styles.Content, now)
	if styles.HasBackdrop() {
		m.play(m.nodes.backdrop, styles.Backdrop, now)
	} else {
		delete(m.tracks, m.nodes.backdrop)
	}
	m.modal.Rendered()

	return m.scheduleFrame()
}

func (m *Model) play(node effect.NodeID, style modal.Style, now time.Time) {
	name := style.String(modal.KeyAnimationName)
	if t, ok := m.tracks[node]; ok && t.frames.Name == name {
		return
	}
	t, ok := newTrack(node, style, now)
	if !ok {
		delete(m.tracks, node)
		return
	}
	m.tracks[node] = t
	m.logger.Debug("animation started",
		zap.String("node", string(node)),
		zap.String("name", name),
		zap.Duration("duration", t.duration))
}

func (m *Model) scheduleFrame() tea.Cmd {
	if m.frameScheduled {
		return nil
	}
	for _, t := range m.tracks {
		if !t.ended {
			m.frameScheduled = true
			return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
		}
	}
	return nil
}

// finishTracks dispatches completion signals for animations that reached
// their end. Signals wait while tick work is queued so a watch being armed
// on this tick cannot miss them.
func (m *Model) finishTracks() {
	if m.queue.Len() > 0 {
		return
	}
	now := m.now()
	for _, node := range []effect.NodeID{m.nodes.content, m.nodes.backdrop} {
		t, ok := m.tracks[node]
		if !ok || t.ended || !t.done(now) {
			continue
		}
		t.ended = true
		sig := effect.Signal{Kind: effect.KindAnimationEnd, Target: node}
		for _, at := range m.nodes.path(node) {
			m.watcher.Dispatch(at, sig)
		}
	}
}

// renderBody renders the markdown body for the current box width.
func (m *Model) renderBody() {
	if m.body == "" {
		m.rendered = ""
		return
	}
	inner := max(10, m.boxWidth()-6)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(inner),
	)
	if err != nil {
		m.logger.Warn("markdown renderer", zap.Error(err))
		m.rendered = m.body
		return
	}
	out, err := r.Render(m.body)
	if err != nil {
		m.logger.Warn("markdown render", zap.Error(err))
		m.rendered = m.body
		return
	}
	m.rendered = strings.Trim(out, "\n")
}

// boxWidth is the outer width of the content box.
func (m Model) boxWidth() int {
	w := parseLength(m.modal.Styles().Container[modal.KeyWidth], m.width, 50)
	return max(20, min(w, m.width-2))
}

// opacity returns the painted opacity of a node: an explicit override
// wins, then the running animation, then the settled value.
func (m Model) opacity(node effect.NodeID, style modal.Style, settled float64) float64 {
	if v, ok := style.Float(modal.KeyOpacity); ok {
		return clamp01(v)
	}
	if t, ok := m.tracks[node]; ok {
		return t.value(m.now())
	}
	return settled
}

func matches(msg tea.KeyMsg, b ...interface{ Keys() []string }) bool {
	s := msg.String()
	for _, binding := range b {
		for _, k := range binding.Keys() {
			if k == s {
				return true
			}
		}
	}
	return false
}
