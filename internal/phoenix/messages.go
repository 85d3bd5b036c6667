package phoenix

import tea "github.com/charmbracelet/bubbletea"

// Channel events.
const (
	EventShow   = "modal:show"
	EventHide   = "modal:hide"
	EventToggle = "modal:toggle"
	EventShown  = "modal:shown"
	EventHidden = "modal:hidden"
)

// Op is a remote modal command.
type Op string

const (
	OpShow   Op = "show"
	OpHide   Op = "hide"
	OpToggle Op = "toggle"
)

// Message types sent by the client.
type (
	ConnectedMsg     struct{}
	DisconnectedMsg  struct{ Error error }
	ChannelJoinedMsg struct{ Topic string }
	// CommandMsg is a remote request to drive the modal.
	CommandMsg struct{ Op Op }
	ErrorMsg   struct {
		Err       error
		Component string
	}
	// RetryMsg wraps a command to run after a reconnect delay.
	RetryMsg struct{ Cmd tea.Cmd }
)
