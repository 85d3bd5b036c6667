package phoenix

import (
	"net/url"
	"os"
	"strings"

	"go.uber.org/zap"
)

// MockScheme selects the mock client in a remote URL ("mock://").
const MockScheme = "mock"

// New creates either a real or mock Phoenix client based on configuration
func New(config Config, sender Sender, logger *zap.Logger) Remote {
	if useMock(config.URL) {
		return NewMockClient(sender, logger)
	}
	return NewClient(sender, logger)
}

// useMock determines if we should use mock mode: the URL asks for it or
// FADEMODAL_REMOTE_MOCK is set.
func useMock(rawURL string) bool {
	if on := strings.ToLower(os.Getenv("FADEMODAL_REMOTE_MOCK")); on == "true" || on == "1" {
		return true
	}
	u, err := url.Parse(rawURL)
	return err == nil && u.Scheme == MockScheme
}
