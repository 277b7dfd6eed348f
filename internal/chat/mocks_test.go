package chat_test

import (
	"roomchat/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) CreateRoom(room *models.Room, ownerID string, memberIDs []string) error {
	args := m.Called(room, ownerID, memberIDs)
	return args.Error(0)
}

func (m *MockStorage) GetRoomByID(id string) (*models.Room, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockStorage) ListRoomsForUser(userID string) ([]models.Room, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Room), args.Error(1)
}

func (m *MockStorage) AddMembership(mem *models.Membership) error {
	args := m.Called(mem)
	return args.Error(0)
}

func (m *MockStorage) RemoveMembership(roomID, userID string) error {
	args := m.Called(roomID, userID)
	return args.Error(0)
}

func (m *MockStorage) UpdateMembershipRole(roomID, userID, newRole string) error {
	args := m.Called(roomID, userID, newRole)
	return args.Error(0)
}

func (m *MockStorage) GetMembership(roomID, userID string) (*models.Membership, error) {
	args := m.Called(roomID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Membership), args.Error(1)
}

func (m *MockStorage) ListMemberships(roomID string) ([]models.Membership, error) {
	args := m.Called(roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Membership), args.Error(1)
}

func (m *MockStorage) ListMembershipsByRole(roomID, role string) ([]models.Membership, error) {
	args := m.Called(roomID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Membership), args.Error(1)
}

func (m *MockStorage) CountMemberships(roomID string) (int64, error) {
	args := m.Called(roomID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) IsParticipant(userID, roomID string) (bool, error) {
	args := m.Called(userID, roomID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) IsRoomAdmin(userID, roomID string) (bool, error) {
	args := m.Called(userID, roomID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) GetMessageByID(id uint) (*models.Message, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockStorage) ListRoomMessages(roomID string, ordered bool) ([]models.Message, error) {
	args := m.Called(roomID, ordered)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) UpdateMessageContent(id uint, content string) error {
	args := m.Called(id, content)
	return args.Error(0)
}

func (m *MockStorage) SetMessageDeleted(id uint, deleted bool) error {
	args := m.Called(id, deleted)
	return args.Error(0)
}

func (m *MockStorage) PublishEvent(channel string, event models.Event) error {
	args := m.Called(channel, event)
	return args.Error(0)
}

func (m *MockStorage) SubscribeRoomEvents() *redis.PubSub {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*redis.PubSub)
}
