package handler

import (
	"net/http"
	"strings"
	"time"

	"roomchat/backend/internal/token"

	"github.com/gin-gonic/gin"
)

// CallerIdentity is the request-scoped identity the gate attaches after a
// successful token check. It lives on the gin context and dies with the
// request; it is never stored globally.
type CallerIdentity struct {
	ID   string
	Role string
}

const callerContextKey = "caller"

// publicPaths bypass authentication entirely. /ws authenticates itself at
// the WebSocket handshake.
var publicPaths = map[string]struct{}{
	"/auth/login":    {},
	"/auth/register": {},
	"/auth/refresh":  {},
	"/health":        {},
	"/ws":            {},
}

// authErrorBody is the structured body the gate emits on every
// authentication failure.
type authErrorBody struct {
	Timestamp int64  `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, authErrorBody{
		Timestamp: time.Now().UnixMilli(),
		Status:    http.StatusUnauthorized,
		Error:     "Unauthorized",
		Message:   message,
		Path:      c.Request.URL.Path,
	})
}

// RequireAuth is the request authentication gate. Public paths and CORS
// preflights pass through; everything else needs a valid bearer ACCESS
// token.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		if _, ok := publicPaths[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		raw, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "Authorization token missing")
			return
		}

		claims, err := h.Authority.ValidateKind(raw, token.KindAccess)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(callerContextKey, CallerIdentity{ID: claims.Subject, Role: claims.Role})
		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == "" {
		return "", false
	}
	return tokenString, true
}

// CurrentCaller returns the identity the gate attached to this request.
func CurrentCaller(c *gin.Context) (CallerIdentity, bool) {
	v, ok := c.Get(callerContextKey)
	if !ok {
		return CallerIdentity{}, false
	}
	caller, ok := v.(CallerIdentity)
	return caller, ok
}
