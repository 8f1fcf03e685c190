package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/thread-watch-api/internal/models"
	"github.com/thread-watch-api/internal/service"
)

// PinHandler handles per-thread pinned comment endpoints
type PinHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewPinHandler creates a new PinHandler
func NewPinHandler(services *service.Services, log zerolog.Logger) *PinHandler {
	return &PinHandler{
		services: services,
		log:      log.With().Str("handler", "pin").Logger(),
	}
}

// ListPins handles GET /v1/threads/:thread_id/pins
func (h *PinHandler) ListPins(c *gin.Context) {
	pins, err := h.services.Pin.GetByThread(c.Request.Context(), c.Param("thread_id"))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list pins")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list pins"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pins": pins})
}

// PinComment handles POST /v1/threads/:thread_id/pins
func (h *PinHandler) PinComment(c *gin.Context) {
	var req models.PinCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CommentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "comment_id is required"})
		return
	}

	threadID := c.Param("thread_id")
	if err := h.services.Pin.Pin(c.Request.Context(), threadID, req.CommentID); err != nil {
		if errors.Is(err, service.ErrEmptyPinTarget) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error().Err(err).Msg("Failed to pin comment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to pin comment"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"thread_id":  threadID,
		"comment_id": req.CommentID,
	})
}

// UnpinComment handles DELETE /v1/threads/:thread_id/pins/:comment_id
func (h *PinHandler) UnpinComment(c *gin.Context) {
	if err := h.services.Pin.Unpin(c.Request.Context(), c.Param("thread_id"), c.Param("comment_id")); err != nil {
		h.log.Error().Err(err).Msg("Failed to unpin comment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unpin comment"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearPins handles DELETE /v1/threads/:thread_id/pins
func (h *PinHandler) ClearPins(c *gin.Context) {
	if err := h.services.Pin.Clear(c.Request.Context(), c.Param("thread_id")); err != nil {
		h.log.Error().Err(err).Msg("Failed to clear pins")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear pins"})
		return
	}
	c.Status(http.StatusNoContent)
}
