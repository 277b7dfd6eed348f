package chat_test

import (
	"fmt"
	"sync"
	"testing"

	"roomchat/backend/internal/apperrors"
	"roomchat/backend/internal/chat"
	"roomchat/backend/internal/models"
	"roomchat/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func privateRoom() *models.Room {
	return &models.Room{ID: "room-1", Name: "backend-team", Visibility: models.VisibilityPrivate, CreatedBy: "owner-1"}
}

func publicRoom() *models.Room {
	return &models.Room{ID: "room-2", Name: "lounge", Visibility: models.VisibilityPublic, CreatedBy: "owner-1"}
}

func TestCreateRoom(t *testing.T) {
	storageMock := new(MockStorage)
	svc := chat.NewRoomService(storageMock)

	storageMock.On("CreateRoom", mock.AnythingOfType("*models.Room"), "owner-1", []string{"user-2"}).Return(nil)

	room, err := svc.CreateRoom("owner-1", "backend-team", "", []string{"user-2"})
	require.NoError(t, err)
	assert.Equal(t, "backend-team", room.Name)
	assert.Equal(t, models.VisibilityPrivate, room.Visibility, "visibility defaults to PRIVATE")
	assert.Equal(t, "owner-1", room.CreatedBy)
	storageMock.AssertExpectations(t)
}

func TestCreateRoom_Validation(t *testing.T) {
	svc := chat.NewRoomService(new(MockStorage))

	_, err := svc.CreateRoom("owner-1", "   ", "", nil)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = svc.CreateRoom("owner-1", "team", "SECRET", nil)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCreateRoom_DuplicateName(t *testing.T) {
	storageMock := new(MockStorage)
	svc := chat.NewRoomService(storageMock)

	storageMock.On("CreateRoom", mock.Anything, "owner-1", mock.Anything).Return(apperrors.ErrRoomNameTaken)

	_, err := svc.CreateRoom("owner-1", "backend-team", "", nil)
	assert.ErrorIs(t, err, apperrors.ErrRoomNameTaken)
}

func TestAddParticipant_AdminAddsMember(t *testing.T) {
	storageMock := new(MockStorage)
	svc := chat.NewRoomService(storageMock)

	storageMock.On("GetRoomByID", "room-1").Return(privateRoom(), nil)
	storageMock.On("IsRoomAdmin", "owner-1", "room-1").Return(true, nil)
	storageMock.On("AddMembership", mock.AnythingOfType("*models.Membership")).Return(nil)
	storageMock.On("PublishEvent", storage.RoomSignalsChannel("room-1"), mock.MatchedBy(func(e models.Event) bool {
		return e.Type == models.EventJoined && e.SenderID == "user-2"
	})).Return(nil)

	m, err := svc.AddParticipant("owner-1", "room-1", "user-2", "")
	require.NoError(t, err)
	assert.Equal(t, models.MembershipMember, m.Role, "role defaults to MEMBER")
	storageMock.AssertExpectations(t)
}

func TestAddParticipant_SelfJoinPublicRoom(t *testing.T) {
	storageMock := new(MockStorage)
	svc := chat.NewRoomService(storageMock)

	storageMock.On("GetRoomByID", "room-2").Return(publicRoom(), nil)
	storageMock.On("AddMembership", mock.AnythingOfType("*models.Membership")).Return(nil)
	storageMock.On("PublishEvent", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.AddParticipant("user-3", "room-2", "user-3", "")
	require.NoError(t, err)
	// No IsRoomAdmin call on the self-join path.
	storageMock.AssertNotCalled(t, "IsRoomAdmin", mock.Anything, mock.Anything)
}

func TestAddParticipant_SelfJoinPrivateRoomDenied(t *testing.T) {
	storageMock := new(MockStorage)
	svc := chat.NewRoomService(storageMock)

	storageMock.On("GetRoomByID", "room-1").Return(privateRoom(), nil)
	storageMock.On("IsRoomAdmin", "user-3", "room-1").Return(false, nil)

	_, err := svc.AddParticipant("user-3", "room-1", "user-3", "")
	assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))
}

func TestAddParticipant_DuplicateMembershipConflict(t *testing.T) {
	storageMock := new(MockStorage)
	svc := chat.NewRoomService(storageMock)

	storageMock.On("GetRoomByID", "room-1").Return(privateRoom(), nil)
	storageMock.On("IsRoomAdmin", "owner-1", "room-1").Return(true, nil)
	// First insert wins, the second hits the unique constraint.
	storageMock.On("AddMembership", mock.Anything).Return(nil).Once()
	storageMock.On("AddMembership", mock.Anything).Return(apperrors.ErrDuplicateMembership).Once()
	storageMock.On("PublishEvent", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.AddParticipant("owner-1", "room-1", "user-2", "")
	require.NoError(t, err)

	_, err = svc.AddParticipant("owner-1", "room-1", "user-2", "")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateMembership)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

// uniqueMembershipStore overlays the mock with a real unique key on the
// (room, user) pair, standing in for the database constraint that is the
// authoritative duplicate signal under concurrency.
type uniqueMembershipStore struct {
	MockStorage
	mu   sync.Mutex
	seen map[string]struct{}
}

func (s *uniqueMembershipStore) AddMembership(m *models.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := m.RoomID + "/" + m.UserID
	if _, dup := s.seen[key]; dup {
		return apperrors.ErrDuplicateMembership
	}
	s.seen[key] = struct{}{}
	return nil
}

func TestAddParticipant_ConcurrentDuplicatesYieldOneSuccess(t *testing.T) {
	store := &uniqueMembershipStore{seen: make(map[string]struct{})}
	svc := chat.NewRoomService(store)

	store.On("GetRoomByID", "room-1").Return(privateRoom(), nil)
	store.On("IsRoomAdmin", mock.Anything, "room-1").Return(true, nil)
	store.On("PublishEvent", mock.Anything, mock.Anything).Return(nil)

	const callers = 8
	results := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(actor string) {
			defer wg.Done()
			_, err := svc.AddParticipant(actor, "room-1", "user_A", "")
			results <- err
		}(fmt.Sprintf("admin-%d", i))
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case apperrors.KindOf(err) == apperrors.KindConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes, "exactly one insert may win")
	assert.Equal(t, callers-1, conflicts)
}

func TestAddParticipant_InvalidRole(t *testing.T) {
	svc := chat.NewRoomService(new(MockStorage))

	_, err := svc.AddParticipant("owner-1", "room-1", "user-2", "SUPERUSER")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestRemoveParticipant(t *testing.T) {
	t.Run("self removal allowed", func(t *testing.T) {
		storageMock := new(MockStorage)
		svc := chat.NewRoomService(storageMock)
		storageMock.On("RemoveMembership", "room-1", "user-2").Return(nil)
		storageMock.On("PublishEvent", storage.RoomSignalsChannel("room-1"), mock.MatchedBy(func(e models.Event) bool {
			return e.Type == models.EventLeft && e.SenderID == "user-2"
		})).Return(nil)

		assert.NoError(t, svc.RemoveParticipant("user-2", "room-1", "user-2"))
		storageMock.AssertNotCalled(t, "IsRoomAdmin", mock.Anything, mock.Anything)
		storageMock.AssertExpectations(t)
	})

	t.Run("removing another requires admin", func(t *testing.T) {
		storageMock := new(MockStorage)
		svc := chat.NewRoomService(storageMock)
		storageMock.On("IsRoomAdmin", "user-3", "room-1").Return(false, nil)

		err := svc.RemoveParticipant("user-3", "room-1", "user-2")
		assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))
	})

	t.Run("absent membership is not found", func(t *testing.T) {
		storageMock := new(MockStorage)
		svc := chat.NewRoomService(storageMock)
		storageMock.On("RemoveMembership", "room-1", "user-2").Return(apperrors.ErrMembershipNotFound)

		err := svc.RemoveParticipant("user-2", "room-1", "user-2")
		assert.ErrorIs(t, err, apperrors.ErrMembershipNotFound)
	})
}

func TestUpdateRole(t *testing.T) {
	storageMock := new(MockStorage)
	svc := chat.NewRoomService(storageMock)

	storageMock.On("IsRoomAdmin", "owner-1", "room-1").Return(true, nil)
	storageMock.On("UpdateMembershipRole", "room-1", "user-2", models.MembershipAdmin).Return(nil)

	require.NoError(t, svc.UpdateRole("owner-1", "room-1", "user-2", models.MembershipAdmin))

	err := svc.UpdateRole("owner-1", "room-1", "user-2", "bogus")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestListParticipants_ParticipantGated(t *testing.T) {
	storageMock := new(MockStorage)
	svc := chat.NewRoomService(storageMock)

	storageMock.On("IsParticipant", "outsider", "room-1").Return(false, nil)

	_, err := svc.ListParticipants("outsider", "room-1", "")
	assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))

	storageMock.On("IsParticipant", "user-2", "room-1").Return(true, nil)
	storageMock.On("ListMemberships", "room-1").Return([]models.Membership{
		{RoomID: "room-1", UserID: "owner-1", Role: models.MembershipOwner},
		{RoomID: "room-1", UserID: "user-2", Role: models.MembershipMember},
	}, nil)

	list, err := svc.ListParticipants("user-2", "room-1", "")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestListParticipants_RoleFilter(t *testing.T) {
	storageMock := new(MockStorage)
	svc := chat.NewRoomService(storageMock)

	_, err := svc.ListParticipants("user-2", "room-1", "bogus")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	storageMock.On("IsParticipant", "user-2", "room-1").Return(true, nil)
	storageMock.On("ListMembershipsByRole", "room-1", models.MembershipAdmin).Return([]models.Membership{
		{RoomID: "room-1", UserID: "user-3", Role: models.MembershipAdmin},
	}, nil)

	list, err := svc.ListParticipants("user-2", "room-1", models.MembershipAdmin)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.MembershipAdmin, list[0].Role)
}

func TestCountParticipants_ParticipantGated(t *testing.T) {
	storageMock := new(MockStorage)
	svc := chat.NewRoomService(storageMock)

	storageMock.On("IsParticipant", "outsider", "room-1").Return(false, nil)

	_, err := svc.CountParticipants("outsider", "room-1")
	assert.Equal(t, apperrors.KindAuthorization, apperrors.KindOf(err))

	storageMock.On("IsParticipant", "user-2", "room-1").Return(true, nil)
	storageMock.On("CountMemberships", "room-1").Return(int64(2), nil)

	count, err := svc.CountParticipants("user-2", "room-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
