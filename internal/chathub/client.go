package chathub

import "roomchat/backend/internal/models"

// Client is the interface for one live subscriber connection. It abstracts
// the transport so the hub can manage connections uniformly and tests can
// substitute in-memory clients.
type Client interface {
	// GetConnID returns the unique identifier of this connection. One user
	// may hold several concurrent connections.
	GetConnID() string
	// GetUserID returns the authenticated identity behind the connection.
	GetUserID() string

	// GetSendChannel returns the connection's private channel. Room events
	// are fanned out through it, and targeted error events are delivered to
	// it alone, never room-wide.
	GetSendChannel() chan<- models.Event

	// Run starts the connection's read and write pumps.
	Run()
	// Close shuts down the connection's send channel. Safe to call twice.
	Close()
}

// Subscription ties a client to a room channel.
type Subscription struct {
	Client Client
	RoomID string
}
