package chathub_test

import (
	"sync"

	"roomchat/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// mockClient is an in-memory Client for hub tests. RecvChannel is what the
// hub sees as the connection's private send channel.
type mockClient struct {
	connID      string
	userID      string
	RecvChannel chan models.Event
	quit        chan struct{}
	closeOnce   sync.Once
}

func newMockClient(connID, userID string) *mockClient {
	return &mockClient{
		connID:      connID,
		userID:      userID,
		RecvChannel: make(chan models.Event, 8),
		quit:        make(chan struct{}),
	}
}

func (c *mockClient) GetConnID() string                   { return c.connID }
func (c *mockClient) GetUserID() string                   { return c.userID }
func (c *mockClient) GetSendChannel() chan<- models.Event { return c.RecvChannel }
func (c *mockClient) Run()                                {}

// Close mirrors the real client: the hub may close a connection while its
// reader is mid-frame, so the event channel is never closed out from under
// a sender.
func (c *mockClient) Close() {
	c.closeOnce.Do(func() { close(c.quit) })
}

// MockLedger is a testify mock of the hub's Ledger dependency.
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Create(senderID, roomID, content, kind string) (*models.Message, error) {
	args := m.Called(senderID, roomID, content, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}
