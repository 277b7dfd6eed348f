package models

import "time"

// Event types carried over the broadcast fabric.
const (
	EventMessageCreated = "message.created"
	EventMessageEdited  = "message.edited"
	EventMessageDeleted = "message.deleted"
	EventTyping         = "typing"
	EventPresence       = "presence"
	EventError          = "error"
	EventJoined         = "room.joined"
	EventLeft           = "room.left"
)

// Presence states for EventPresence payloads.
const (
	PresenceOnline  = "online"
	PresenceOffline = "offline"
)

// Event is the single envelope pushed to connected subscribers, both over
// room channels and over a connection's private channel (errors).
type Event struct {
	Type      string   `json:"type"`
	RoomID    string   `json:"room_id,omitempty"`
	SenderID  string   `json:"sender_id,omitempty"`
	Message   *Message `json:"message,omitempty"`
	Presence  string   `json:"presence,omitempty"`
	Error     string   `json:"error,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

// NewEvent builds an Event stamped with the current time in epoch millis.
func NewEvent(eventType string) Event {
	return Event{Type: eventType, Timestamp: time.Now().UnixMilli()}
}

// Inbound frame types a connected client may send.
const (
	FrameJoin    = "room.join"
	FrameLeave   = "room.leave"
	FrameMessage = "message.send"
	FrameTyping  = "typing"
)

// ClientFrame is a single inbound WebSocket frame. Only the fields relevant
// to the frame's Type are populated.
type ClientFrame struct {
	Type    string `json:"type"`
	RoomID  string `json:"room_id"`
	Content string `json:"content,omitempty"`
	Kind    string `json:"kind,omitempty"`
}
