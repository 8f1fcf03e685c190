package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/thread-watch-api/internal/models"
	"github.com/thread-watch-api/internal/service"
)

// WatchlistHandler handles watched-author endpoints
type WatchlistHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewWatchlistHandler creates a new WatchlistHandler
func NewWatchlistHandler(services *service.Services, log zerolog.Logger) *WatchlistHandler {
	return &WatchlistHandler{
		services: services,
		log:      log.With().Str("handler", "watchlist").Logger(),
	}
}

// ListWatchedUsers handles GET /v1/watchlist
func (h *WatchlistHandler) ListWatchedUsers(c *gin.Context) {
	users, err := h.services.Watchlist.GetAll(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list watched users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list watched users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// WatchUser handles POST /v1/watchlist
func (h *WatchlistHandler) WatchUser(c *gin.Context) {
	var req models.WatchUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}
	if req.Username == models.DeletedAuthor {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot watch a deleted author"})
		return
	}

	if err := h.services.Watchlist.WatchUser(c.Request.Context(), req.Username); err != nil {
		h.log.Error().Err(err).Str("username", req.Username).Msg("Failed to watch user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to watch user"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"username": req.Username})
}

// UnwatchUser handles DELETE /v1/watchlist/:username
func (h *WatchlistHandler) UnwatchUser(c *gin.Context) {
	username := c.Param("username")
	if err := h.services.Watchlist.UnwatchUser(c.Request.Context(), username); err != nil {
		if errors.Is(err, service.ErrUserNotWatched) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user is not watched"})
			return
		}
		h.log.Error().Err(err).Str("username", username).Msg("Failed to unwatch user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unwatch user"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetActivity handles GET /v1/watchlist/activity
func (h *WatchlistHandler) GetActivity(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"activity": h.services.Watchlist.Activity(),
	})
}

// ClearActivity handles DELETE /v1/watchlist/activity/:username
func (h *WatchlistHandler) ClearActivity(c *gin.Context) {
	h.services.Watchlist.ClearActivity(c.Param("username"))
	c.Status(http.StatusNoContent)
}

// ClearAllActivity handles DELETE /v1/watchlist/activity
func (h *WatchlistHandler) ClearAllActivity(c *gin.Context) {
	h.services.Watchlist.ClearAllActivity()
	c.Status(http.StatusNoContent)
}
