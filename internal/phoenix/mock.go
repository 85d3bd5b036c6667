package phoenix

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Notification is a lifecycle push recorded by MockClient.
type Notification struct {
	Event   string
	Payload map[string]any
}

// MockClient implements Remote without a server, for development and
// testing. Commands complete immediately.
type MockClient struct {
	mu        sync.Mutex
	connected bool
	topic     string
	sender    Sender
	logger    *zap.Logger

	notifications []Notification

	// FailConnect makes Connect report a disconnect with this error.
	FailConnect error
}

// NewMockClient creates a new mock Phoenix client
func NewMockClient(sender Sender, logger *zap.Logger) *MockClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MockClient{sender: sender, logger: logger}
}

// SetSender implements Remote
func (m *MockClient) SetSender(sender Sender) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sender = sender
}

// Connect implements Remote
func (m *MockClient) Connect(config Config) tea.Cmd {
	return func() tea.Msg {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.FailConnect != nil {
			return DisconnectedMsg{Error: m.FailConnect}
		}
		m.connected = true
		m.logger.Debug("mock connected", zap.String("url", config.URL))
		return ConnectedMsg{}
	}
}

// Join implements Remote
func (m *MockClient) Join(topic string) tea.Cmd {
	return func() tea.Msg {
		m.mu.Lock()
		defer m.mu.Unlock()
		if !m.connected {
			return ErrorMsg{Err: ErrNotConnected, Component: "Channel"}
		}
		m.topic = topic
		return ChannelJoinedMsg{Topic: topic}
	}
}

// Notify records the push when called. Pushing before the channel was
// joined yields an ErrorMsg.
func (m *MockClient) Notify(event string, payload map[string]any) tea.Cmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.topic == "" {
		return func() tea.Msg {
			return ErrorMsg{Err: ErrNotConnected, Component: "Push"}
		}
	}
	m.notifications = append(m.notifications, Notification{Event: event, Payload: payload})
	return nil
}

// Disconnect implements Remote
func (m *MockClient) Disconnect() tea.Cmd {
	return func() tea.Msg {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.connected = false
		m.topic = ""
		return DisconnectedMsg{}
	}
}

// Reconnect implements Remote. The delay is ignored.
func (m *MockClient) Reconnect(config Config, delay time.Duration) tea.Cmd {
	return func() tea.Msg {
		return RetryMsg{Cmd: m.Connect(config)}
	}
}

// Emit simulates the server pushing event on the joined channel.
func (m *MockClient) Emit(event string) error {
	op, ok := OpFor(event)
	if !ok {
		return fmt.Errorf("unsupported event %q", event)
	}

	m.mu.Lock()
	sender, joined := m.sender, m.topic != ""
	m.mu.Unlock()

	if !joined {
		return ErrNotConnected
	}
	if sender != nil {
		sender.Send(CommandMsg{Op: op})
	}
	return nil
}

// IsConnected reports whether Connect succeeded and no Disconnect followed.
func (m *MockClient) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// Notifications returns the recorded pushes in order.
func (m *MockClient) Notifications() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Notification(nil), m.notifications...)
}
