// Package effect detects the end of visual effects on rendered nodes.
//
// A renderer dispatches completion signals at nodes; a Watcher turns the first
// signal that targets a watched node into a single callback. Environments
// without any completion signal fall back to running the callback on the next
// scheduler tick.
package effect

// NodeID identifies a rendered node. Renderers mint one per mounted node and
// keep it stable for the node's lifetime.
type NodeID string

// Kind names a completion signal type.
type Kind string

const (
	// KindTransitionEnd fires when a property transition settles.
	KindTransitionEnd Kind = "transitionend"
	// KindAnimationEnd fires when a keyframe animation finishes.
	KindAnimationEnd Kind = "animationend"
)

// DefaultKinds are the completion signals a terminal renderer produces.
var DefaultKinds = []Kind{KindTransitionEnd, KindAnimationEnd}

// Signal reports that an effect finished on Target.
type Signal struct {
	Kind   Kind
	Target NodeID
}
