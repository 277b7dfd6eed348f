package storage

import (
	"log"

	"roomchat/backend/internal/apperrors"
	"roomchat/backend/internal/models"
)

// SaveMessage persists a new ledger entry. The generated ID is written back
// into msg so it can be broadcast afterwards.
func (s *Service) SaveMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message for room %s: %v", msg.RoomID, err)
		return err
	}
	return nil
}

// GetMessageByID returns the message regardless of its deleted flag; state
// checks belong to the ledger service.
func (s *Service) GetMessageByID(id uint) (*models.Message, error) {
	var msg models.Message
	if err := s.DB.First(&msg, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, err
	}
	return &msg, nil
}

// ListRoomMessages returns the room's non-deleted messages. The ordered
// variant sorts by creation time with ascending id as the deterministic
// tie-break for identical timestamps.
func (s *Service) ListRoomMessages(roomID string, ordered bool) ([]models.Message, error) {
	query := s.DB.Where("room_id = ? AND is_deleted = ?", roomID, false)
	if ordered {
		query = query.Order("created_at asc").Order("id asc")
	}

	var messages []models.Message
	if err := query.Find(&messages).Error; err != nil {
		log.Printf("ERROR: Failed to list messages for room %s: %v", roomID, err)
		return nil, err
	}
	return messages, nil
}

// UpdateMessageContent replaces the content only; the creation timestamp is
// never bumped.
func (s *Service) UpdateMessageContent(id uint, content string) error {
	res := s.DB.Model(&models.Message{}).Where("id = ?", id).Update("content", content)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}

// SetMessageDeleted flips the logical-delete flag.
func (s *Service) SetMessageDeleted(id uint, deleted bool) error {
	res := s.DB.Model(&models.Message{}).Where("id = ?", id).Update("is_deleted", deleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}
