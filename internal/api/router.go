package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/thread-watch-api/internal/config"
	"github.com/thread-watch-api/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	watchHandler := NewWatchHandler(services, cfg, log)
	watchlistHandler := NewWatchlistHandler(services, log)
	pinHandler := NewPinHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services))

	// API v1
	v1 := router.Group("/v1")
	{
		// Thread subscriptions
		watches := v1.Group("/watches")
		{
			watches.POST("", watchHandler.CreateWatch)
			watches.GET("", watchHandler.ListWatches)
			watches.GET("/:watch_id", watchHandler.GetWatch)
			watches.PATCH("/:watch_id", watchHandler.UpdateWatch)
			watches.DELETE("/:watch_id", watchHandler.DeleteWatch)
			watches.POST("/:watch_id/refresh", watchHandler.RefreshWatch)
		}

		// Watched authors
		watchlist := v1.Group("/watchlist")
		{
			watchlist.GET("", watchlistHandler.ListWatchedUsers)
			watchlist.POST("", watchlistHandler.WatchUser)
			watchlist.DELETE("/activity", watchlistHandler.ClearAllActivity)
			watchlist.GET("/activity", watchlistHandler.GetActivity)
			watchlist.DELETE("/activity/:username", watchlistHandler.ClearActivity)
			watchlist.DELETE("/:username", watchlistHandler.UnwatchUser)
		}

		// Per-thread pinned comments
		pins := v1.Group("/threads/:thread_id/pins")
		{
			pins.GET("", pinHandler.ListPins)
			pins.POST("", pinHandler.PinComment)
			pins.DELETE("", pinHandler.ClearPins)
			pins.DELETE("/:comment_id", pinHandler.UnpinComment)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "thread-watch-api",
	})
}

// metricsHandler returns watch/watchlist/pin counts
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		watchedUsers, _ := services.Watchlist.Count(ctx)
		pins, _ := services.Pin.Count(ctx)

		c.JSON(http.StatusOK, gin.H{
			"watches": gin.H{
				"active": services.Watch.ActiveCount(),
			},
			"watchlist": gin.H{
				"users": watchedUsers,
			},
			"pins": gin.H{
				"total": pins,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
