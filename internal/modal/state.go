package modal

// Visibility is the stable or transient visibility of the modal.
type Visibility int

const (
	Hidden Visibility = iota
	Transitioning
	Visible
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Transitioning:
		return "transitioning"
	case Visible:
		return "visible"
	}
	return "unknown"
}

// Direction tells which way a transition is heading. It is kept after the
// transition settles so styles can still be computed from it.
type Direction int

const (
	Leaving Direction = iota
	Entering
)

func (d Direction) String() string {
	if d == Entering {
		return "entering"
	}
	return "leaving"
}

// State is the modal's position in its lifecycle.
type State struct {
	Visibility Visibility
	Direction  Direction
}

// Initial is the state of a freshly created modal.
var Initial = State{Visibility: Hidden, Direction: Leaving}

// Entering reports whether the modal is transitioning towards visible.
func (s State) Entering() bool {
	return s.Visibility == Transitioning && s.Direction == Entering
}

// Leaving reports whether the modal is transitioning towards hidden.
func (s State) Leaving() bool {
	return s.Visibility == Transitioning && s.Direction == Leaving
}

func (s State) String() string {
	if s.Visibility == Transitioning {
		return s.Direction.String()
	}
	return s.Visibility.String()
}

// Event drives the reducer.
type Event int

const (
	EventShow Event = iota
	EventHide
	// EventEntered is raised when the enter effect completed.
	EventEntered
	// EventLeft is raised when the leave effect completed.
	EventLeft
)

func (e Event) String() string {
	switch e {
	case EventShow:
		return "show"
	case EventHide:
		return "hide"
	case EventEntered:
		return "entered"
	case EventLeft:
		return "left"
	}
	return "unknown"
}

// Next returns the state that follows s on e. ok is false when e does not
// apply to s, in which case s is returned unchanged.
func Next(s State, e Event) (next State, ok bool) {
	switch e {
	case EventShow:
		if s.Visibility == Hidden {
			return State{Visibility: Transitioning, Direction: Entering}, true
		}
	case EventHide:
		if s.Visibility == Visible || s.Entering() {
			return State{Visibility: Transitioning, Direction: Leaving}, true
		}
	case EventEntered:
		if s.Entering() {
			return State{Visibility: Visible, Direction: Entering}, true
		}
	case EventLeft:
		if s.Leaving() {
			return State{Visibility: Hidden, Direction: Leaving}, true
		}
	}
	return s, false
}
