package phoenix

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Sender delivers messages into the running program. *tea.Program
// satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Config holds the configuration for the Phoenix client
type Config struct {
	URL    string
	APIKey string
	Topic  string
}

// Remote defines the remote control connection the modal host drives.
type Remote interface {
	// SetSender sets where asynchronous channel messages are delivered
	SetSender(sender Sender)

	// Connect establishes a WebSocket connection
	Connect(config Config) tea.Cmd

	// Join joins the modal's control channel
	Join(topic string) tea.Cmd

	// Notify pushes a lifecycle event to the channel
	Notify(event string, payload map[string]any) tea.Cmd

	// Disconnect closes the connection
	Disconnect() tea.Cmd

	// Reconnect attempts to reconnect after a delay
	Reconnect(config Config, delay time.Duration) tea.Cmd
}
