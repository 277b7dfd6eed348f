package models

import "time"

// Per-room membership roles.
const (
	MembershipOwner  = "OWNER"
	MembershipAdmin  = "ADMIN"
	MembershipMember = "MEMBER"
)

// ValidMembershipRole reports whether role is a known membership role.
func ValidMembershipRole(role string) bool {
	switch role {
	case MembershipOwner, MembershipAdmin, MembershipMember:
		return true
	}
	return false
}

// Membership is the join row binding one User to one Room with exactly one
// role. References are by id only, never embedded object graphs. The
// composite unique index on (room_id, user_id) is the authoritative
// duplicate signal: concurrent inserts for the same pair race at the
// database, and exactly one wins.
type Membership struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_room_user" json:"room_id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_room_user" json:"user_id"`
	Role      string    `gorm:"type:text;not null;default:MEMBER" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether this membership carries admin authority in its
// room (OWNER counts as admin).
func (m *Membership) IsAdmin() bool {
	return m.Role == MembershipOwner || m.Role == MembershipAdmin
}
