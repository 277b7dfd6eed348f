package handler

import (
	"net/http"

	"roomchat/backend/internal/apperrors"
	"roomchat/backend/internal/auth"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register creates a new identity.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("email, password and password_confirm are required"))
		return
	}

	user, err := h.Auth.Register(c.Request.Context(), auth.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "registered", user)
}

// Login returns an access+refresh token pair.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("email and password are required"))
		return
	}

	pair, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "logged in", pair)
}

// RefreshTokens rotates the refresh token presented as the bearer
// credential into a fresh pair.
func (h *Handler) RefreshTokens(c *gin.Context) {
	raw, ok := bearerToken(c)
	if !ok {
		respondError(c, apperrors.Authentication("refresh token missing"))
		return
	}

	pair, err := h.Auth.Refresh(c.Request.Context(), raw)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "refreshed", pair)
}

// Logout revokes the caller's refresh token.
func (h *Handler) Logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("refresh_token is required"))
		return
	}

	if err := h.Auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "logged out", nil)
}

// Me returns the authenticated caller's identity record.
func (h *Handler) Me(c *gin.Context) {
	caller, ok := CurrentCaller(c)
	if !ok {
		respondError(c, apperrors.Authentication("no caller identity"))
		return
	}

	user, err := h.Auth.CurrentUser(c.Request.Context(), caller.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "ok", user)
}
