package storage

import (
	"log"

	"roomchat/backend/internal/apperrors"
	"roomchat/backend/internal/models"

	"gorm.io/gorm"
)

// CreateRoom inserts the room, an OWNER membership for ownerID and MEMBER
// memberships for memberIDs in one transaction. A duplicate room name
// surfaces as apperrors.ErrRoomNameTaken.
func (s *Service) CreateRoom(room *models.Room, ownerID string, memberIDs []string) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}

		owner := models.Membership{RoomID: room.ID, UserID: ownerID, Role: models.MembershipOwner}
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}

		for _, id := range memberIDs {
			if id == ownerID {
				continue
			}
			m := models.Membership{RoomID: room.ID, UserID: id, Role: models.MembershipMember}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrRoomNameTaken
		}
		log.Printf("ERROR: Failed to create room %s: %v", room.Name, err)
		return err
	}
	return nil
}

func (s *Service) GetRoomByID(id string) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrRoomNotFound
		}
		log.Printf("ERROR: Failed to get room %s: %v", id, err)
		return nil, err
	}
	return &room, nil
}

// ListRoomsForUser returns every room the user holds a membership in.
func (s *Service) ListRoomsForUser(userID string) ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.
		Joins("JOIN memberships ON memberships.room_id = rooms.id").
		Where("memberships.user_id = ?", userID).
		Order("rooms.created_at asc").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}
