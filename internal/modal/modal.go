// Package modal controls the show and hide lifecycle of a fading overlay.
//
// A Modal owns the visibility state. Show, Hide and Toggle move it into a
// transition, and the transition only settles when the renderer reports that
// the matching effect finished on the content node (see package effect).
// OnShow and OnHide run exactly once per settled transition.
//
// The controller assumes a single event loop: renderer callbacks, input and
// scheduler ticks must all run on the goroutine that owns the Modal.
package modal

import (
	"maps"

	"github.com/rubber_duck/fademodal/internal/effect"
	"go.uber.org/zap"
)

// pendingWatch is the single outstanding completion subscription. It exists
// exactly while the modal is transitioning; sub stays nil until the watch
// can be armed.
type pendingWatch struct {
	direction Direction
	node      effect.NodeID
	sub       *effect.Subscription
	// ready is set once arming is allowed: after a scheduler tick when
	// entering, after a render pass when leaving.
	ready bool
}

// Modal is the transition controller for one overlay.
type Modal struct {
	cfg     Config
	state   State
	watcher *effect.Watcher
	sched   effect.Scheduler
	content effect.NodeID
	pending *pendingWatch
	reason  HideReason

	listeners []func(State)
	logger    *zap.Logger
}

// New creates a hidden modal. Completion is detected through w; deferred work
// goes through sched. Both are required; New panics when either is nil.
func New(w *effect.Watcher, sched effect.Scheduler, opts ...Option) *Modal {
	if w == nil || sched == nil {
		panic("modal: New requires a watcher and a scheduler")
	}
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Modal{
		cfg:     cfg,
		state:   Initial,
		watcher: w,
		sched:   sched,
		logger:  cfg.logger,
	}
}

// State returns the current lifecycle state.
func (m *Modal) State() State {
	return m.state
}

// IsHidden reports whether the modal is fully hidden.
func (m *Modal) IsHidden() bool {
	return m.state.Visibility == Hidden
}

// Config returns a copy of the behaviour snapshot. The style overrides are
// cloned so callers cannot change later resolves.
func (m *Modal) Config() Config {
	cfg := m.cfg
	cfg.ModalStyle = maps.Clone(cfg.ModalStyle)
	cfg.BackdropStyle = maps.Clone(cfg.BackdropStyle)
	cfg.ContentStyle = maps.Clone(cfg.ContentStyle)
	return cfg
}

// Styles resolves the style payloads for the current state.
func (m *Modal) Styles() Styles {
	return Resolve(m.state, m.cfg)
}

// Content returns the mounted content node, or "".
func (m *Modal) Content() effect.NodeID {
	return m.content
}

// Subscribe registers fn to observe every state change.
func (m *Modal) Subscribe(fn func(State)) {
	if fn != nil {
		m.listeners = append(m.listeners, fn)
	}
}

// Show starts the enter transition. It does nothing unless the modal is
// hidden. The completion watch is armed on the next scheduler tick so the
// renderer can mount the content node first.
func (m *Modal) Show() {
	next, ok := Next(m.state, EventShow)
	if !ok {
		m.logger.Debug("show ignored", zap.Stringer("state", m.state))
		return
	}

	p := &pendingWatch{direction: Entering}
	m.pending = p
	m.setState(next)

	m.sched.Defer(func() {
		if m.pending != p {
			return
		}
		p.ready = true
		m.arm()
	})
}

// Hide starts the leave transition on behalf of the caller.
func (m *Modal) Hide() {
	m.HideWith(ReasonAPI)
}

// HideWith starts the leave transition and records why. It does nothing when
// the modal is hidden or already leaving.
func (m *Modal) HideWith(reason HideReason) {
	next, ok := Next(m.state, EventHide)
	if !ok {
		m.logger.Debug("hide ignored",
			zap.Stringer("state", m.state),
			zap.Stringer("reason", reason))
		return
	}

	// Drop the enter watch still in flight.
	m.disarm()
	m.reason = reason
	m.pending = &pendingWatch{direction: Leaving}
	m.setState(next)
}

// Toggle shows a hidden modal and hides any other.
func (m *Modal) Toggle() {
	if m.IsHidden() {
		m.Show()
		return
	}
	m.Hide()
}

// MountContent records the rendered content node. A watch armed on a
// previous node moves to the new one.
func (m *Modal) MountContent(node effect.NodeID) {
	if node == m.content {
		return
	}
	m.disarm()
	m.content = node
	m.logger.Debug("content mounted", zap.String("node", string(node)))
	m.arm()
}

// UnmountContent forgets the content node and drops any watch on it.
func (m *Modal) UnmountContent() {
	if m.content == "" {
		return
	}
	m.disarm()
	m.logger.Debug("content unmounted", zap.String("node", string(m.content)))
	m.content = ""
}

// Rendered tells the controller a render pass applied the current styles.
// While leaving, this arms the leave watch; repeated passes are no-ops.
func (m *Modal) Rendered() {
	p := m.pending
	if p == nil || p.direction != Leaving {
		return
	}
	p.ready = true
	m.arm()
}

// arm subscribes the pending watch on the content node. It is idempotent
// per (node, direction).
func (m *Modal) arm() {
	p := m.pending
	if p == nil || !p.ready || m.content == "" {
		return
	}
	if p.sub != nil && !p.sub.Done() && p.node == m.content {
		return
	}

	p.node = m.content
	p.sub = m.watcher.Watch(p.node, func() { m.complete(p) })
	m.logger.Debug("completion watch armed",
		zap.String("node", string(p.node)),
		zap.Stringer("direction", p.direction))
}

func (m *Modal) disarm() {
	p := m.pending
	if p == nil || p.sub == nil {
		return
	}
	m.watcher.Unwatch(p.node, p.sub)
	p.sub = nil
}

// complete settles the transition p was armed for. Callbacks from a
// superseded transition are dropped.
func (m *Modal) complete(p *pendingWatch) {
	if m.pending != p {
		m.logger.Debug("stale completion dropped", zap.Stringer("direction", p.direction))
		return
	}

	event := EventEntered
	if p.direction == Leaving {
		event = EventLeft
	}
	next, ok := Next(m.state, event)
	if !ok {
		m.logger.Debug("stale completion dropped",
			zap.Stringer("state", m.state),
			zap.Stringer("event", event))
		return
	}

	m.pending = nil
	m.setState(next)

	if event == EventEntered {
		m.logger.Debug("modal shown")
		m.cfg.OnShow()
		return
	}
	m.logger.Debug("modal hidden", zap.Stringer("reason", m.reason))
	m.cfg.OnHide(m.reason)
}

func (m *Modal) setState(s State) {
	m.logger.Debug("state change",
		zap.Stringer("from", m.state),
		zap.Stringer("to", s))
	m.state = s
	for _, fn := range m.listeners {
		fn(s)
	}
}
