// Package chat holds the room-membership registry and the message ledger:
// every room-scoped authorization decision and every durable message
// operation goes through here.
package chat

import (
	"log"
	"strings"

	"roomchat/backend/internal/apperrors"
	"roomchat/backend/internal/models"
	"roomchat/backend/internal/storage"
)

// RoomService owns rooms and the membership registry policy. The storage
// layer's unique constraints remain the source of truth for duplicates;
// this layer adds the role-appropriateness rules.
type RoomService struct {
	Storage storage.Storage
}

// NewRoomService creates a new room service.
func NewRoomService(s storage.Storage) *RoomService {
	return &RoomService{Storage: s}
}

// CreateRoom creates a room owned by creatorID, with optional initial
// members added as MEMBER. The room name is unique system-wide.
func (s *RoomService) CreateRoom(creatorID, name, visibility string, memberIDs []string) (*models.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validation("room name must not be blank")
	}
	if visibility == "" {
		visibility = models.VisibilityPrivate
	}
	if !models.ValidVisibility(visibility) {
		return nil, apperrors.Validation("visibility must be PRIVATE or PUBLIC")
	}

	room := &models.Room{
		Name:       name,
		Visibility: visibility,
		CreatedBy:  creatorID,
	}
	if err := s.Storage.CreateRoom(room, creatorID, memberIDs); err != nil {
		return nil, err
	}

	log.Printf("INFO: Room %s created by %s", room.ID, creatorID)
	return room, nil
}

// AddParticipant adds userID to the room with the given role (MEMBER when
// empty). Policy: anyone may join a PUBLIC room themselves; adding someone
// else, or joining a PRIVATE room, requires room-admin authority. The
// duplicate signal comes from the storage constraint, never a pre-check.
func (s *RoomService) AddParticipant(actorID, roomID, userID, role string) (*models.Membership, error) {
	if role == "" {
		role = models.MembershipMember
	}
	if !models.ValidMembershipRole(role) {
		return nil, apperrors.Validation("role must be OWNER, ADMIN or MEMBER")
	}

	room, err := s.Storage.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}

	selfJoin := actorID == userID && room.Visibility == models.VisibilityPublic && role == models.MembershipMember
	if !selfJoin {
		admin, err := s.Storage.IsRoomAdmin(actorID, roomID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, apperrors.Authorization()
		}
	}

	m := &models.Membership{RoomID: roomID, UserID: userID, Role: role}
	if err := s.Storage.AddMembership(m); err != nil {
		return nil, err
	}

	s.announce(models.EventJoined, roomID, userID)
	return m, nil
}

// RemoveParticipant removes userID from the room. Self-removal is always
// allowed; removing another identity requires room-admin authority.
func (s *RoomService) RemoveParticipant(actorID, roomID, userID string) error {
	if actorID != userID {
		admin, err := s.Storage.IsRoomAdmin(actorID, roomID)
		if err != nil {
			return err
		}
		if !admin {
			return apperrors.Authorization()
		}
	}
	if err := s.Storage.RemoveMembership(roomID, userID); err != nil {
		return err
	}

	s.announce(models.EventLeft, roomID, userID)
	return nil
}

// UpdateRole changes a participant's role. Requires room-admin authority.
func (s *RoomService) UpdateRole(actorID, roomID, userID, newRole string) error {
	if !models.ValidMembershipRole(newRole) {
		return apperrors.Validation("role must be OWNER, ADMIN or MEMBER")
	}
	admin, err := s.Storage.IsRoomAdmin(actorID, roomID)
	if err != nil {
		return err
	}
	if !admin {
		return apperrors.Authorization()
	}
	return s.Storage.UpdateMembershipRole(roomID, userID, newRole)
}

// ListParticipants returns the room's memberships, optionally restricted to
// one role. Caller must be a participant.
func (s *RoomService) ListParticipants(callerID, roomID, role string) ([]models.Membership, error) {
	if role != "" && !models.ValidMembershipRole(role) {
		return nil, apperrors.Validation("role must be OWNER, ADMIN or MEMBER")
	}

	ok, err := s.Storage.IsParticipant(callerID, roomID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.Authorization()
	}

	if role != "" {
		return s.Storage.ListMembershipsByRole(roomID, role)
	}
	return s.Storage.ListMemberships(roomID)
}

// CountParticipants returns the size of the room's roster. Caller must be a
// participant.
func (s *RoomService) CountParticipants(callerID, roomID string) (int64, error) {
	ok, err := s.Storage.IsParticipant(callerID, roomID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, apperrors.Authorization()
	}
	return s.Storage.CountMemberships(roomID)
}

// ListRooms returns every room the caller belongs to.
func (s *RoomService) ListRooms(callerID string) ([]models.Room, error) {
	return s.Storage.ListRoomsForUser(callerID)
}

// announce publishes a membership change on the room's signals channel.
// Best effort: the registry write already succeeded, so a publish failure
// is only logged.
func (s *RoomService) announce(eventType, roomID, userID string) {
	event := models.NewEvent(eventType)
	event.RoomID = roomID
	event.SenderID = userID
	if err := s.Storage.PublishEvent(storage.RoomSignalsChannel(roomID), event); err != nil {
		log.Printf("ERROR: Failed to publish %s for room %s: %v", eventType, roomID, err)
	}
}
