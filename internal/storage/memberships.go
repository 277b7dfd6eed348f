package storage

import (
	"errors"
	"log"

	"roomchat/backend/internal/apperrors"
	"roomchat/backend/internal/models"
)

// AddMembership inserts the join row. The composite unique index on
// (room_id, user_id) decides duplicates: a violation surfaces as
// apperrors.ErrDuplicateMembership, so concurrent adds for the same pair
// yield exactly one success without any check-then-insert race.
func (s *Service) AddMembership(m *models.Membership) error {
	if err := s.DB.Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateMembership
		}
		log.Printf("ERROR: Failed to add membership (room=%s user=%s): %v", m.RoomID, m.UserID, err)
		return err
	}
	return nil
}

// RemoveMembership deletes the join row, reporting ErrMembershipNotFound
// when no row existed.
func (s *Service) RemoveMembership(roomID, userID string) error {
	res := s.DB.Where("room_id = ? AND user_id = ?", roomID, userID).Delete(&models.Membership{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrMembershipNotFound
	}
	return nil
}

func (s *Service) UpdateMembershipRole(roomID, userID, newRole string) error {
	res := s.DB.Model(&models.Membership{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Update("role", newRole)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrMembershipNotFound
	}
	return nil
}

func (s *Service) GetMembership(roomID, userID string) (*models.Membership, error) {
	var m models.Membership
	err := s.DB.Where("room_id = ? AND user_id = ?", roomID, userID).First(&m).Error
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrMembershipNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (s *Service) ListMemberships(roomID string) ([]models.Membership, error) {
	var list []models.Membership
	err := s.DB.Where("room_id = ?", roomID).Order("created_at asc").Find(&list).Error
	return list, err
}

func (s *Service) ListMembershipsByRole(roomID, role string) ([]models.Membership, error) {
	var list []models.Membership
	err := s.DB.Where("room_id = ? AND role = ?", roomID, role).Order("created_at asc").Find(&list).Error
	return list, err
}

func (s *Service) CountMemberships(roomID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Membership{}).Where("room_id = ?", roomID).Count(&count).Error
	return count, err
}

// IsParticipant reports whether the user holds any membership in the room.
func (s *Service) IsParticipant(userID, roomID string) (bool, error) {
	_, err := s.GetMembership(roomID, userID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, apperrors.ErrMembershipNotFound) {
		return false, nil
	}
	return false, err
}

// IsRoomAdmin reports whether the user holds admin authority in the room
// (role ADMIN or OWNER).
func (s *Service) IsRoomAdmin(userID, roomID string) (bool, error) {
	m, err := s.GetMembership(roomID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrMembershipNotFound) {
			return false, nil
		}
		return false, err
	}
	return m.IsAdmin(), nil
}
