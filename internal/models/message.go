package models

import "time"

// Message kinds.
const (
	MessageText  = "TEXT"
	MessageFile  = "FILE"
	MessageImage = "IMAGE"
)

// ValidMessageKind reports whether kind is a known message kind.
func ValidMessageKind(kind string) bool {
	switch kind {
	case MessageText, MessageFile, MessageImage:
		return true
	}
	return false
}

// Message is a room-scoped ledger entry. Deletion is logical: the row and
// its content survive a delete so the message can be restored. Default
// listings filter on IsDeleted; the auto-increment ID doubles as the
// deterministic tie-break for messages sharing a creation timestamp.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    string    `gorm:"type:uuid;not null;index:idx_room_created" json:"room_id"`
	SenderID  string    `gorm:"type:uuid;not null" json:"sender_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Kind      string    `gorm:"type:text;not null;default:TEXT" json:"kind"`
	IsDeleted bool      `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt time.Time `gorm:"index:idx_room_created" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
