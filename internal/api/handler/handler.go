// Package handler contains the gin HTTP surface: request DTOs, the
// authentication middleware and the response envelope.
package handler

import (
	"net/http"

	"roomchat/backend/internal/auth"
	"roomchat/backend/internal/chat"
	"roomchat/backend/internal/chathub"
	"roomchat/backend/internal/token"

	"github.com/gin-gonic/gin"
)

// Handler holds the services the HTTP layer dispatches into.
type Handler struct {
	Auth      *auth.Service
	Rooms     *chat.RoomService
	Messages  *chat.MessageService
	Hub       *chathub.ManagerService
	Authority *token.Authority
}

func NewHandler(authSvc *auth.Service, rooms *chat.RoomService, messages *chat.MessageService,
	hub *chathub.ManagerService, authority *token.Authority) *Handler {
	return &Handler{
		Auth:      authSvc,
		Rooms:     rooms,
		Messages:  messages,
		Hub:       hub,
		Authority: authority,
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	respond(c, http.StatusOK, "ok", gin.H{"status": "up"})
}
