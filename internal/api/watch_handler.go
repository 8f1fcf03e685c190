package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/thread-watch-api/internal/config"
	"github.com/thread-watch-api/internal/models"
	"github.com/thread-watch-api/internal/reddit"
	"github.com/thread-watch-api/internal/service"
)

// WatchHandler handles thread subscription endpoints
type WatchHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewWatchHandler creates a new WatchHandler
func NewWatchHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *WatchHandler {
	return &WatchHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "watch").Logger(),
	}
}

// CreateWatch handles POST /v1/watches
func (h *WatchHandler) CreateWatch(c *gin.Context) {
	var req models.CreateWatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	watch, err := h.services.Watch.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, reddit.ErrInvalidThreadURL), errors.Is(err, service.ErrInvalidInterval):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.Error().Err(err).Msg("Failed to create watch")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create watch"})
		}
		return
	}

	c.JSON(http.StatusCreated, watch)
}

// ListWatches handles GET /v1/watches
func (h *WatchHandler) ListWatches(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"watches": h.services.Watch.List(c.Request.Context()),
	})
}

// GetWatch handles GET /v1/watches/:watch_id
func (h *WatchHandler) GetWatch(c *gin.Context) {
	snap, err := h.services.Watch.Get(c.Request.Context(), c.Param("watch_id"))
	if err != nil {
		h.respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// RefreshWatch handles POST /v1/watches/:watch_id/refresh
func (h *WatchHandler) RefreshWatch(c *gin.Context) {
	snap, err := h.services.Watch.Refresh(c.Request.Context(), c.Param("watch_id"))
	if err != nil {
		h.respondWatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// UpdateWatch handles PATCH /v1/watches/:watch_id
func (h *WatchHandler) UpdateWatch(c *gin.Context) {
	var req models.UpdateWatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	watch, err := h.services.Watch.Update(c.Request.Context(), c.Param("watch_id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "watch not found"})
		case errors.Is(err, reddit.ErrInvalidThreadURL), errors.Is(err, service.ErrInvalidInterval):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.Error().Err(err).Msg("Failed to update watch")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update watch"})
		}
		return
	}

	c.JSON(http.StatusOK, watch)
}

// DeleteWatch handles DELETE /v1/watches/:watch_id
func (h *WatchHandler) DeleteWatch(c *gin.Context) {
	if err := h.services.Watch.Delete(c.Request.Context(), c.Param("watch_id")); err != nil {
		h.respondWatchError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WatchHandler) respondWatchError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrWatchNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "watch not found"})
		return
	}
	h.log.Error().Err(err).Msg("Watch operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
