// Package phoenix connects a modal to a Phoenix channel so a server can show,
// hide or toggle it remotely and observe its lifecycle.
package phoenix

import (
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nshafer/phx"
	"go.uber.org/zap"
)

// ErrNotConnected is reported when pushing before the channel was joined.
var ErrNotConnected = errors.New("channel not connected")

// Client manages the Phoenix WebSocket connection. Commands and socket
// callbacks run on their own goroutines, so mu guards every field below it.
type Client struct {
	mu      sync.Mutex
	socket  *phx.Socket
	channel *phx.Channel
	sender  Sender
	logger  *zap.Logger
}

// NewClient creates a client that reports to sender.
func NewClient(sender Sender, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{sender: sender, logger: logger}
}

// SetSender replaces the message sink. The program only exists after the
// model that owns the client was built.
func (c *Client) SetSender(sender Sender) {
	c.mu.Lock()
	c.sender = sender
	c.mu.Unlock()
}

// Connect establishes the WebSocket connection
func (c *Client) Connect(config Config) tea.Cmd {
	return func() tea.Msg {
		endPoint, err := url.Parse(config.URL)
		if err != nil {
			return DisconnectedMsg{Error: fmt.Errorf("invalid socket url: %w", err)}
		}

		if config.APIKey != "" {
			q := endPoint.Query()
			q.Set("api_key", config.APIKey)
			endPoint.RawQuery = q.Encode()
		}

		socket := phx.NewSocket(endPoint)
		socket.Logger = NewZapLogger(c.logger)

		socket.OnOpen(func() {
			c.send(ConnectedMsg{})
		})
		socket.OnError(func(err error) {
			c.send(DisconnectedMsg{Error: err})
		})
		socket.OnClose(func() {
			c.send(DisconnectedMsg{Error: fmt.Errorf("connection closed")})
		})

		if err := socket.Connect(); err != nil {
			return DisconnectedMsg{Error: err}
		}

		c.mu.Lock()
		c.socket = socket
		c.mu.Unlock()
		c.logger.Info("socket connecting", zap.String("url", config.URL))
		return nil
	}
}

// Join joins the modal's control channel.
func (c *Client) Join(topic string) tea.Cmd {
	return func() tea.Msg {
		c.mu.Lock()
		socket := c.socket
		c.mu.Unlock()
		if socket == nil {
			return ErrorMsg{Err: ErrNotConnected, Component: "Phoenix Channel"}
		}

		channel := socket.Channel(topic, nil)
		join, err := channel.Join()
		if err != nil {
			return ErrorMsg{Err: err, Component: "Phoenix Channel"}
		}

		join.Receive("ok", func(response any) {
			c.mu.Lock()
			c.channel = channel
			c.mu.Unlock()
			c.setupChannelHandlers(channel)
			c.send(ChannelJoinedMsg{Topic: topic})
		})
		join.Receive("error", func(response any) {
			c.send(ErrorMsg{
				Err:       fmt.Errorf("failed to join channel: %v", response),
				Component: "Phoenix Channel",
			})
		})
		join.Receive("timeout", func(response any) {
			c.send(ErrorMsg{
				Err:       fmt.Errorf("timeout joining channel"),
				Component: "Phoenix Channel",
			})
		})

		return nil
	}
}

func (c *Client) setupChannelHandlers(channel *phx.Channel) {
	for _, event := range []string{EventShow, EventHide, EventToggle} {
		channel.On(event, func(payload any) {
			c.handleEvent(event, payload)
		})
	}
	channel.On("error", func(payload any) {
		c.send(ErrorMsg{
			Err:       fmt.Errorf("channel error: %v", payload),
			Component: "Phoenix Channel",
		})
	})
}

// handleEvent turns a channel event into a CommandMsg.
func (c *Client) handleEvent(event string, payload any) {
	op, ok := OpFor(event)
	if !ok {
		c.logger.Debug("unhandled channel event", zap.String("event", event))
		return
	}
	c.logger.Debug("remote command", zap.String("op", string(op)), zap.Any("payload", payload))
	c.send(CommandMsg{Op: op})
}

// OpFor maps a channel event to a modal command.
func OpFor(event string) (Op, bool) {
	switch event {
	case EventShow:
		return OpShow, true
	case EventHide:
		return OpHide, true
	case EventToggle:
		return OpToggle, true
	}
	return "", false
}

// Notify pushes a lifecycle event to the channel.
func (c *Client) Notify(event string, payload map[string]any) tea.Cmd {
	return func() tea.Msg {
		c.mu.Lock()
		channel := c.channel
		c.mu.Unlock()
		if channel == nil {
			return ErrorMsg{Err: ErrNotConnected, Component: "Phoenix Push"}
		}

		push, err := channel.Push(event, payload)
		if err != nil {
			return ErrorMsg{Err: err, Component: "Phoenix Push"}
		}

		push.Receive("error", func(response any) {
			c.send(ErrorMsg{
				Err:       fmt.Errorf("push error: %v", response),
				Component: "Phoenix Push",
			})
		})
		push.Receive("timeout", func(response any) {
			c.send(ErrorMsg{
				Err:       fmt.Errorf("push timeout"),
				Component: "Phoenix Push",
			})
		})
		return nil
	}
}

// Disconnect closes the WebSocket connection
func (c *Client) Disconnect() tea.Cmd {
	return func() tea.Msg {
		c.mu.Lock()
		channel, socket := c.channel, c.socket
		c.mu.Unlock()
		if channel != nil {
			channel.Leave()
		}
		if socket != nil {
			socket.Disconnect()
		}
		return DisconnectedMsg{}
	}
}

// Reconnect attempts to reconnect after a delay
func (c *Client) Reconnect(config Config, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return RetryMsg{Cmd: c.Connect(config)}
	})
}

func (c *Client) send(msg tea.Msg) {
	c.mu.Lock()
	sender := c.sender
	c.mu.Unlock()
	if sender == nil {
		return
	}
	sender.Send(msg)
}
