package ui

// flushMsg runs the work deferred to the next tick of the event loop.
type flushMsg struct{}

// frameMsg advances running animations.
type frameMsg struct{}

// ShowMsg, HideMsg and ToggleMsg let an embedding program drive the modal
// through Program.Send.
type (
	ShowMsg   struct{}
	HideMsg   struct{}
	ToggleMsg struct{}
)
