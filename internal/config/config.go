package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers understood by the storage factory.
const (
	StoreDriverMemory   = "memory"
	StoreDriverRedis    = "redis"
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                  string
	AppEnv                   string
	AppPort                  string
	StoreDriver              string
	StoreKeyPrefix           string
	DatabaseURL              string
	SQLitePath               string
	RedisURL                 string
	NATSURL                  string
	NotificationSubject      string
	JWTSecret                string
	SessionTTL               time.Duration
	NotificationPollInterval time.Duration
	MaxAttachmentBytes       int
	LoginRateLimit           int
	CloudinaryCloudName      string
	CloudinaryAPIKey         string
	CloudinaryAPISecret      string
	CloudinaryUploadFolder   string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// CloudinaryEnabled reports whether attachment uploads should go to Cloudinary.
func (c Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TRACKER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Assignment Tracker API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("store.driver", StoreDriverMemory)
	v.SetDefault("store.key_prefix", "")
	v.SetDefault("sqlite.path", "data/tracker.db")
	v.SetDefault("nats.subject", "tracker.notifications")
	v.SetDefault("session.ttl", "12h")
	v.SetDefault("notifications.poll_interval", "2s")
	v.SetDefault("attachments.max_bytes", 5*1024*1024)
	v.SetDefault("auth.login_rate_limit", 10)
	v.SetDefault("cloudinary.folder", "tracker/attachments")

	sessionTTL, err := parseDuration(v.GetString("session.ttl"), 12*time.Hour)
	if err != nil {
		return Config{}, fmt.Errorf("invalid session ttl: %w", err)
	}

	pollInterval, err := parseDuration(v.GetString("notifications.poll_interval"), 2*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("invalid notification poll interval: %w", err)
	}

	cfg := Config{
		AppName:                  v.GetString("app.name"),
		AppEnv:                   v.GetString("app.env"),
		AppPort:                  v.GetString("app.port"),
		StoreDriver:              strings.ToLower(strings.TrimSpace(v.GetString("store.driver"))),
		StoreKeyPrefix:           v.GetString("store.key_prefix"),
		DatabaseURL:              v.GetString("database.url"),
		SQLitePath:               v.GetString("sqlite.path"),
		RedisURL:                 v.GetString("redis.url"),
		NATSURL:                  v.GetString("nats.url"),
		NotificationSubject:      v.GetString("nats.subject"),
		JWTSecret:                v.GetString("jwt.secret"),
		SessionTTL:               sessionTTL,
		NotificationPollInterval: pollInterval,
		MaxAttachmentBytes:       v.GetInt("attachments.max_bytes"),
		LoginRateLimit:           v.GetInt("auth.login_rate_limit"),
		CloudinaryCloudName:      v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:         v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:      v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder:   v.GetString("cloudinary.folder"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	switch cfg.StoreDriver {
	case StoreDriverMemory, StoreDriverSQLite:
	case StoreDriverRedis:
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("redis url must be provided for the redis store")
		}
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("database url must be provided for the postgres store")
		}
	default:
		return Config{}, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}

	if cfg.MaxAttachmentBytes <= 0 {
		cfg.MaxAttachmentBytes = 5 * 1024 * 1024
	}

	if cfg.LoginRateLimit <= 0 {
		cfg.LoginRateLimit = 10
	}

	return cfg, nil
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if parsed <= 0 {
		return fallback, nil
	}
	return parsed, nil
}
