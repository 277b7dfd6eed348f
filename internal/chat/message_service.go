package chat

import (
	"log"
	"strings"

	"roomchat/backend/internal/apperrors"
	"roomchat/backend/internal/models"
	"roomchat/backend/internal/storage"
)

// MessageService is the message ledger. Writes are persisted first and
// broadcast second: a broadcast failure never rolls back a ledger write,
// reconnecting clients recover by re-listing the room.
type MessageService struct {
	Storage storage.Storage
}

// NewMessageService creates a new message ledger service.
func NewMessageService(s storage.Storage) *MessageService {
	return &MessageService{Storage: s}
}

// Create appends a message to the room's ledger and broadcasts it.
func (s *MessageService) Create(senderID, roomID, content, kind string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.Validation("message content must not be blank")
	}
	if kind == "" {
		kind = models.MessageText
	}
	if !models.ValidMessageKind(kind) {
		return nil, apperrors.Validation("kind must be TEXT, FILE or IMAGE")
	}

	ok, err := s.Storage.IsParticipant(senderID, roomID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.Authorization()
	}

	msg := &models.Message{
		RoomID:   roomID,
		SenderID: senderID,
		Content:  content,
		Kind:     kind,
	}
	if err := s.Storage.SaveMessage(msg); err != nil {
		return nil, err
	}

	s.broadcast(models.EventMessageCreated, msg)
	return msg, nil
}

// Get returns a single message in full detail. Soft-deleted messages are
// inaccessible here even though list views merely filter them out.
func (s *MessageService) Get(callerID string, id uint) (*models.Message, error) {
	msg, err := s.Storage.GetMessageByID(id)
	if err != nil {
		return nil, err
	}

	ok, err := s.Storage.IsParticipant(callerID, msg.RoomID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.Authorization()
	}

	if msg.IsDeleted {
		return nil, apperrors.ErrMessageDeleted
	}
	return msg, nil
}

// ListByRoom returns the room's non-deleted messages; the ordered variant
// sorts by creation time, ascending id breaking timestamp ties.
func (s *MessageService) ListByRoom(callerID, roomID string, ordered bool) ([]models.Message, error) {
	ok, err := s.Storage.IsParticipant(callerID, roomID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.Authorization()
	}
	return s.Storage.ListRoomMessages(roomID, ordered)
}

// Update replaces a message's content. The original creation timestamp is
// preserved. Fails on soft-deleted messages.
func (s *MessageService) Update(callerID string, id uint, newContent string) (*models.Message, error) {
	if strings.TrimSpace(newContent) == "" {
		return nil, apperrors.Validation("message content must not be blank")
	}

	msg, err := s.authorizeMutation(callerID, id)
	if err != nil {
		return nil, err
	}
	if msg.IsDeleted {
		return nil, apperrors.ErrMessageDeleted
	}

	if err := s.Storage.UpdateMessageContent(id, newContent); err != nil {
		return nil, err
	}
	msg.Content = newContent

	s.broadcast(models.EventMessageEdited, msg)
	return msg, nil
}

// Delete soft-deletes a message. Deleting an already-deleted message is a
// no-op, not an error; in that case no event is broadcast either.
func (s *MessageService) Delete(callerID string, id uint) error {
	msg, err := s.authorizeMutation(callerID, id)
	if err != nil {
		return err
	}
	if msg.IsDeleted {
		return nil
	}

	if err := s.Storage.SetMessageDeleted(id, true); err != nil {
		return err
	}
	msg.IsDeleted = true

	s.broadcast(models.EventMessageDeleted, msg)
	return nil
}

// Restore clears the deleted flag; content round-trips unchanged. Restoring
// a message that is not deleted is an invalid-state error.
func (s *MessageService) Restore(callerID string, id uint) (*models.Message, error) {
	msg, err := s.authorizeMutation(callerID, id)
	if err != nil {
		return nil, err
	}
	if !msg.IsDeleted {
		return nil, apperrors.ErrMessageNotDeleted
	}

	if err := s.Storage.SetMessageDeleted(id, false); err != nil {
		return nil, err
	}
	msg.IsDeleted = false

	// A restored message reappears to subscribers the way a new one does.
	s.broadcast(models.EventMessageCreated, msg)
	return msg, nil
}

// authorizeMutation loads the message and checks that the caller may mutate
// it: the caller must be the sender, or hold admin authority in the room.
func (s *MessageService) authorizeMutation(callerID string, id uint) (*models.Message, error) {
	msg, err := s.Storage.GetMessageByID(id)
	if err != nil {
		return nil, err
	}

	if msg.SenderID != callerID {
		admin, err := s.Storage.IsRoomAdmin(callerID, msg.RoomID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, apperrors.Authorization()
		}
	}
	return msg, nil
}

// broadcast pushes a durable event to the room's events channel. Best
// effort: the ledger write already succeeded, so a publish failure is only
// logged.
func (s *MessageService) broadcast(eventType string, msg *models.Message) {
	event := models.NewEvent(eventType)
	event.RoomID = msg.RoomID
	event.SenderID = msg.SenderID
	event.Message = msg

	if err := s.Storage.PublishEvent(storage.RoomEventsChannel(msg.RoomID), event); err != nil {
		log.Printf("ERROR: Failed to broadcast %s for message %d: %v", eventType, msg.ID, err)
	}
}
