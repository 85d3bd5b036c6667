package effect

import (
	"slices"

	"go.uber.org/zap"
)

// Subscription is the handle returned by Watch. It is used to Unwatch and is
// spent once its callback has run.
type Subscription struct {
	node     NodeID
	kinds    []Kind
	fn       func()
	done     bool
	deferred bool
}

// Node returns the node the subscription is attached to.
func (s *Subscription) Node() NodeID {
	if s == nil {
		return ""
	}
	return s.node
}

// Done reports whether the callback ran or the subscription was removed.
func (s *Subscription) Done() bool {
	return s == nil || s.done
}

// Watcher delivers one callback per subscription when a completion signal
// targets the watched node. It is not safe for concurrent use; it belongs to
// the event loop that renders the nodes.
type Watcher struct {
	kinds  []Kind
	sched  Scheduler
	subs   map[NodeID][]*Subscription
	logger *zap.Logger
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithKinds replaces the recognized completion signals. Passing none declares
// an environment without completion signals.
func WithKinds(kinds ...Kind) WatcherOption {
	return func(w *Watcher) {
		w.kinds = slices.Clone(kinds)
	}
}

// WithLogger sets the logger used for subscription bookkeeping.
func WithLogger(logger *zap.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher creates a Watcher that falls back to sched when no signal kind
// is recognized. sched is required; NewWatcher panics when it is nil.
func NewWatcher(sched Scheduler, opts ...WatcherOption) *Watcher {
	if sched == nil {
		panic("effect: NewWatcher requires a scheduler")
	}
	w := &Watcher{
		kinds:  slices.Clone(DefaultKinds),
		sched:  sched,
		subs:   make(map[NodeID][]*Subscription),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Kinds returns the recognized completion signals.
func (w *Watcher) Kinds() []Kind {
	return slices.Clone(w.kinds)
}

// Watch registers fn to run at most once, when a recognized signal targets
// node. An empty node registers nothing and returns nil.
func (w *Watcher) Watch(node NodeID, fn func()) *Subscription {
	if node == "" || fn == nil {
		return nil
	}

	sub := &Subscription{node: node, kinds: slices.Clone(w.kinds), fn: fn}

	if len(w.kinds) == 0 {
		// No completion signal will ever arrive: finish on the next tick.
		sub.deferred = true
		w.sched.Defer(func() {
			if sub.done {
				return
			}
			sub.done = true
			sub.fn()
		})
		w.logger.Debug("completion deferred", zap.String("node", string(node)))
		return sub
	}

	w.subs[node] = append(w.subs[node], sub)
	w.logger.Debug("watching node",
		zap.String("node", string(node)),
		zap.Int("kinds", len(sub.kinds)))
	return sub
}

// Unwatch removes every signal subscription held by sub on node and cancels a
// deferred fallback. Unknown pairs are ignored.
func (w *Watcher) Unwatch(node NodeID, sub *Subscription) {
	if sub == nil || sub.node != node {
		return
	}
	sub.done = true
	w.remove(sub)
}

// Dispatch delivers sig to listeners attached at node. Listeners only react
// when the signal targets their own node; signals bubbling up from a
// descendant are ignored.
func (w *Watcher) Dispatch(at NodeID, sig Signal) {
	if !slices.Contains(w.kinds, sig.Kind) {
		return
	}
	if sig.Target != at {
		w.logger.Debug("ignoring bubbled signal",
			zap.String("at", string(at)),
			zap.String("target", string(sig.Target)),
			zap.String("kind", string(sig.Kind)))
		return
	}

	for _, sub := range slices.Clone(w.subs[at]) {
		if sub.done || !slices.Contains(sub.kinds, sig.Kind) {
			continue
		}
		sub.done = true
		w.remove(sub)
		sub.fn()
	}
}

// Pending returns the number of live subscriptions on node.
func (w *Watcher) Pending(node NodeID) int {
	return len(w.subs[node])
}

func (w *Watcher) remove(sub *Subscription) {
	list := w.subs[sub.node]
	idx := slices.Index(list, sub)
	if idx < 0 {
		return
	}
	list = slices.Delete(list, idx, idx+1)
	if len(list) == 0 {
		delete(w.subs, sub.node)
		return
	}
	w.subs[sub.node] = list
}
