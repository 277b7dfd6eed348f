// Package storage is the persistence layer: users, rooms, memberships and
// messages in PostgreSQL via GORM, plus the Redis pub/sub bus the broadcast
// fabric rides on.
package storage

import (
	"context"
	"errors"

	"roomchat/backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the full persistence surface consumed by the services. Mocked
// in tests with testify/mock.
type Storage interface {
	// Users
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error

	// Rooms
	CreateRoom(room *models.Room, ownerID string, memberIDs []string) error
	GetRoomByID(id string) (*models.Room, error)
	ListRoomsForUser(userID string) ([]models.Room, error)

	// Memberships
	AddMembership(m *models.Membership) error
	RemoveMembership(roomID, userID string) error
	UpdateMembershipRole(roomID, userID, newRole string) error
	GetMembership(roomID, userID string) (*models.Membership, error)
	ListMemberships(roomID string) ([]models.Membership, error)
	ListMembershipsByRole(roomID, role string) ([]models.Membership, error)
	CountMemberships(roomID string) (int64, error)
	IsParticipant(userID, roomID string) (bool, error)
	IsRoomAdmin(userID, roomID string) (bool, error)

	// Messages
	SaveMessage(msg *models.Message) error
	GetMessageByID(id uint) (*models.Message, error)
	ListRoomMessages(roomID string, ordered bool) ([]models.Message, error)
	UpdateMessageContent(id uint, content string) error
	SetMessageDeleted(id uint, deleted bool) error

	// Broadcast bus
	PublishEvent(channel string, event models.Event) error
	SubscribeRoomEvents() *redis.PubSub
}

// Service implements Storage over GORM and Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505). The constraint, not any prior existence check,
// is the authoritative duplicate signal.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
