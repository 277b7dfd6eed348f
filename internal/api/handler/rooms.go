package handler

import (
	"net/http"

	"roomchat/backend/internal/apperrors"
	"roomchat/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type createRoomRequest struct {
	Name       string   `json:"name" binding:"required"`
	Visibility string   `json:"visibility"`
	MemberIDs  []string `json:"member_ids"`
}

type addParticipantRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role"`
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type participantResponse struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	JoinedAt int64  `json:"joined_at"`
}

// CreateRoom creates a room owned by the caller, optionally seeding
// initial members.
func (h *Handler) CreateRoom(c *gin.Context) {
	caller, ok := CurrentCaller(c)
	if !ok {
		respondError(c, apperrors.Authentication("no caller identity"))
		return
	}

	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("name is required"))
		return
	}

	room, err := h.Rooms.CreateRoom(caller.ID, req.Name, req.Visibility, req.MemberIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "room created", room)
}

// ListRooms returns every room the caller belongs to.
func (h *Handler) ListRooms(c *gin.Context) {
	caller, ok := CurrentCaller(c)
	if !ok {
		respondError(c, apperrors.Authentication("no caller identity"))
		return
	}

	rooms, err := h.Rooms.ListRooms(caller.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "ok", rooms)
}

// AddParticipant adds a user to the room. Self-join on public rooms is
// open; everything else needs room-admin authority.
func (h *Handler) AddParticipant(c *gin.Context) {
	caller, ok := CurrentCaller(c)
	if !ok {
		respondError(c, apperrors.Authentication("no caller identity"))
		return
	}

	var req addParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("user_id is required"))
		return
	}

	m, err := h.Rooms.AddParticipant(caller.ID, c.Param("id"), req.UserID, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "participant added", m)
}

// RemoveParticipant removes a user from the room. Leaving yourself is
// always allowed.
func (h *Handler) RemoveParticipant(c *gin.Context) {
	caller, ok := CurrentCaller(c)
	if !ok {
		respondError(c, apperrors.Authentication("no caller identity"))
		return
	}

	if err := h.Rooms.RemoveParticipant(caller.ID, c.Param("id"), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "participant removed", nil)
}

// UpdateParticipantRole changes a participant's room role.
func (h *Handler) UpdateParticipantRole(c *gin.Context) {
	caller, ok := CurrentCaller(c)
	if !ok {
		respondError(c, apperrors.Authentication("no caller identity"))
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("role is required"))
		return
	}

	if err := h.Rooms.UpdateRole(caller.ID, c.Param("id"), c.Param("userId"), req.Role); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "role updated", nil)
}

// ListParticipants returns the room's membership roster. Pass ?role= to
// restrict to a single role.
func (h *Handler) ListParticipants(c *gin.Context) {
	caller, ok := CurrentCaller(c)
	if !ok {
		respondError(c, apperrors.Authentication("no caller identity"))
		return
	}

	memberships, err := h.Rooms.ListParticipants(caller.ID, c.Param("id"), c.Query("role"))
	if err != nil {
		respondError(c, err)
		return
	}

	roster := lo.Map(memberships, func(m models.Membership, _ int) participantResponse {
		return participantResponse{
			UserID:   m.UserID,
			Role:     m.Role,
			JoinedAt: m.CreatedAt.UnixMilli(),
		}
	})
	respond(c, http.StatusOK, "ok", roster)
}

// CountParticipants returns the size of the room's roster.
func (h *Handler) CountParticipants(c *gin.Context) {
	caller, ok := CurrentCaller(c)
	if !ok {
		respondError(c, apperrors.Authentication("no caller identity"))
		return
	}

	count, err := h.Rooms.CountParticipants(caller.ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "ok", gin.H{"count": count})
}
