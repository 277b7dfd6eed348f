package handler

import (
	"net/http"

	"roomchat/backend/internal/chathub"
	"roomchat/backend/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket authenticates the handshake and upgrades the connection.
// Browsers cannot set headers on WebSocket requests, so the access token is
// also accepted as a ?token= query parameter.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	raw, ok := bearerToken(c)
	if !ok {
		raw = c.Query("token")
	}
	if raw == "" {
		abortUnauthorized(c, "Authorization token missing")
		return
	}

	claims, err := h.Authority.ValidateKind(raw, token.KindAccess)
	if err != nil {
		abortUnauthorized(c, "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := chathub.NewWebSocketClient(h.Hub, uuid.New().String(), claims.Subject, conn)

	h.Hub.RegisterCh <- client
	client.Run()
}
