package chathub

import (
	"log"

	"roomchat/backend/internal/models"
	"roomchat/backend/internal/storage"
)

// HandleFrame processes one inbound frame on behalf of client. It runs on
// the connection's own goroutine, so membership checks, ledger writes and
// bus publishes never block the dispatch loop. Violations are answered on
// the offending connection's private channel only, never room-wide.
func (m *ManagerService) HandleFrame(client Client, frame models.ClientFrame) {
	if frame.RoomID == "" {
		m.sendError(client, "room_id is required")
		return
	}

	switch frame.Type {
	case models.FrameJoin:
		if !m.requireParticipant(client, frame.RoomID) {
			return
		}
		m.JoinCh <- Subscription{Client: client, RoomID: frame.RoomID}
		m.publishPresence(client, frame.RoomID, models.PresenceOnline)

	case models.FrameLeave:
		// Dropping the local subscription is always safe, but the offline
		// signal is only announced for actual participants.
		m.LeaveCh <- Subscription{Client: client, RoomID: frame.RoomID}
		if !m.requireParticipant(client, frame.RoomID) {
			return
		}
		m.publishPresence(client, frame.RoomID, models.PresenceOffline)

	case models.FrameMessage:
		// Same path as a REST send: the ledger persists first, then
		// broadcasts on the room's durable channel.
		if _, err := m.Ledger.Create(client.GetUserID(), frame.RoomID, frame.Content, frame.Kind); err != nil {
			m.sendError(client, err.Error())
		}

	case models.FrameTyping:
		if !m.requireParticipant(client, frame.RoomID) {
			return
		}
		event := models.NewEvent(models.EventTyping)
		event.RoomID = frame.RoomID
		event.SenderID = client.GetUserID()
		// Ephemeral: published to the signals channel, never persisted.
		if err := m.Storage.PublishEvent(storage.RoomSignalsChannel(frame.RoomID), event); err != nil {
			log.Printf("ERROR: Failed to publish typing signal for room %s: %v", frame.RoomID, err)
		}

	default:
		m.sendError(client, "unknown frame type")
	}
}

// requireParticipant checks room membership, replying with a private error
// event when the check fails.
func (m *ManagerService) requireParticipant(client Client, roomID string) bool {
	ok, err := m.Storage.IsParticipant(client.GetUserID(), roomID)
	if err != nil {
		log.Printf("ERROR: Membership check failed (user=%s room=%s): %v", client.GetUserID(), roomID, err)
		m.sendError(client, "internal error")
		return false
	}
	if !ok {
		m.sendError(client, "access denied")
		return false
	}
	return true
}

func (m *ManagerService) publishPresence(client Client, roomID, state string) {
	event := models.NewEvent(models.EventPresence)
	event.RoomID = roomID
	event.SenderID = client.GetUserID()
	event.Presence = state
	if err := m.Storage.PublishEvent(storage.RoomSignalsChannel(roomID), event); err != nil {
		log.Printf("ERROR: Failed to publish presence for room %s: %v", roomID, err)
	}
}

// sendError delivers an error event to one connection only.
func (m *ManagerService) sendError(client Client, message string) {
	event := models.NewEvent(models.EventError)
	event.Error = message
	select {
	case client.GetSendChannel() <- event:
	default:
	}
}
