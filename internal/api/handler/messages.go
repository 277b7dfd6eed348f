package handler

import (
	"net/http"
	"strconv"

	"roomchat/backend/internal/apperrors"

	"github.com/gin-gonic/gin"
)

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
	Kind    string `json:"kind"`
}

type editMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage appends a message to the room's ledger.
func (h *Handler) SendMessage(c *gin.Context) {
	caller, ok := CurrentCaller(c)
	if !ok {
		respondError(c, apperrors.Authentication("no caller identity"))
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("content is required"))
		return
	}

	msg, err := h.Messages.Create(caller.ID, c.Param("id"), req.Content, req.Kind)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "message sent", msg)
}

// ListMessages returns the room's non-deleted messages. Pass ?ordered=true
// for the stable chronological ordering.
func (h *Handler) ListMessages(c *gin.Context) {
	caller, ok := CurrentCaller(c)
	if !ok {
		respondError(c, apperrors.Authentication("no caller identity"))
		return
	}

	ordered := c.Query("ordered") == "true"
	msgs, err := h.Messages.ListByRoom(caller.ID, c.Param("id"), ordered)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "ok", msgs)
}

// GetMessage returns a single message in full detail.
func (h *Handler) GetMessage(c *gin.Context) {
	caller, ok := CurrentCaller(c)
	if !ok {
		respondError(c, apperrors.Authentication("no caller identity"))
		return
	}

	id, ok := messageID(c)
	if !ok {
		return
	}

	msg, err := h.Messages.Get(caller.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "ok", msg)
}

// EditMessage replaces a message's content.
func (h *Handler) EditMessage(c *gin.Context) {
	caller, ok := CurrentCaller(c)
	if !ok {
		respondError(c, apperrors.Authentication("no caller identity"))
		return
	}

	id, ok := messageID(c)
	if !ok {
		return
	}

	var req editMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("content is required"))
		return
	}

	msg, err := h.Messages.Update(caller.ID, id, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "message updated", msg)
}

// DeleteMessage soft-deletes a message. Deleting twice is a no-op.
func (h *Handler) DeleteMessage(c *gin.Context) {
	caller, ok := CurrentCaller(c)
	if !ok {
		respondError(c, apperrors.Authentication("no caller identity"))
		return
	}

	id, ok := messageID(c)
	if !ok {
		return
	}

	if err := h.Messages.Delete(caller.ID, id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "message deleted", nil)
}

// RestoreMessage clears a message's deleted flag.
func (h *Handler) RestoreMessage(c *gin.Context) {
	caller, ok := CurrentCaller(c)
	if !ok {
		respondError(c, apperrors.Authentication("no caller identity"))
		return
	}

	id, ok := messageID(c)
	if !ok {
		return
	}

	msg, err := h.Messages.Restore(caller.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "message restored", msg)
}

func messageID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("messageId"), 10, 64)
	if err != nil {
		respondError(c, apperrors.Validation("message id must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}
