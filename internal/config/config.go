package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Redis snapshot cache configuration
	Redis RedisConfig

	// Reddit listing client configuration
	Reddit RedditConfig

	// Watch session configuration
	Watch WatchConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RedisConfig holds snapshot cache settings
type RedisConfig struct {
	URL         string
	SnapshotTTL time.Duration
}

// RedditConfig holds settings for the upstream listing client
type RedditConfig struct {
	UserAgent      string
	RequestTimeout time.Duration
	// CommentLimit caps the listing page size; Reddit accepts up to 500.
	CommentLimit int
}

// WatchConfig holds watch session defaults
type WatchConfig struct {
	// DefaultInterval is used when a create request names no interval.
	DefaultInterval time.Duration
	// HighlightWindow is how long new comments keep their highlight flag.
	HighlightWindow time.Duration
	// ExpandReplies is the rendering default threaded through snapshots.
	ExpandReplies bool
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// AllowedIntervals is the fixed choice set for polling cadence.
var AllowedIntervals = map[string]time.Duration{
	"10s": 10 * time.Second,
	"30s": 30 * time.Second,
	"1m":  time.Minute,
	"5m":  5 * time.Minute,
}

// IntervalLabel returns the choice-set label for a duration.
func IntervalLabel(d time.Duration) string {
	for label, dur := range AllowedIntervals {
		if dur == d {
			return label
		}
	}
	return d.String()
}

// MinAllowedInterval returns the shortest interval in the choice set.
func MinAllowedInterval() time.Duration {
	var min time.Duration
	for _, d := range AllowedIntervals {
		if min == 0 || d < min {
			min = d
		}
	}
	return min
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "thread_watch"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:         getEnv("REDIS_URL", "redis://localhost:6379/0"),
			SnapshotTTL: getDurationEnv("SNAPSHOT_TTL", 24*time.Hour),
		},
		Reddit: RedditConfig{
			UserAgent:      getEnv("REDDIT_USER_AGENT", "thread-watch-api/1.0"),
			RequestTimeout: getDurationEnv("REDDIT_REQUEST_TIMEOUT", 15*time.Second),
			CommentLimit:   getIntEnv("REDDIT_COMMENT_LIMIT", 500),
		},
		Watch: WatchConfig{
			DefaultInterval: getDurationEnv("WATCH_DEFAULT_INTERVAL", 30*time.Second),
			HighlightWindow: getDurationEnv("WATCH_HIGHLIGHT_WINDOW", 5*time.Second),
			ExpandReplies:   getBoolEnv("WATCH_EXPAND_REPLIES", false),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Reddit.CommentLimit < 100 || c.Reddit.CommentLimit > 500 {
		return fmt.Errorf("REDDIT_COMMENT_LIMIT must be between 100 and 500")
	}
	// Watches can run at any interval in the choice set, so the window
	// must fit under the shortest one, not just the default.
	if c.Watch.HighlightWindow >= MinAllowedInterval() {
		return fmt.Errorf("WATCH_HIGHLIGHT_WINDOW must be shorter than the shortest polling interval (%s)", MinAllowedInterval())
	}
	if _, ok := AllowedIntervals[IntervalLabel(c.Watch.DefaultInterval)]; !ok {
		return fmt.Errorf("WATCH_DEFAULT_INTERVAL must be one of the allowed intervals")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
