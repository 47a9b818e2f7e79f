package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	GinMode      string
	PublicOrigin string

	APIBaseURL string
	APITimeout time.Duration

	DBURL     string
	RedisAddr string
	CacheTTL  time.Duration

	SessionDBPath string
	SessionSecret string
	SessionTTL    time.Duration

	CloudinaryCloudName    string
	CloudinaryUploadPreset string

	WhatsAppNumber       string
	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string
	StaffWhatsAppNumber  string

	CatalogPath    string
	AllowedOrigins []string

	LogLevel  string
	LogFormat string
}

// LoadEnv reads a .env file when one exists.
func LoadEnv(paths ...string) {
	if err := godotenv.Load(paths...); err != nil {
		slog.Debug("No .env file found")
	}
}

func Load() Config {
	cfg := Config{
		Port:                   getenv("PORT", "8080"),
		GinMode:                getenv("GIN_MODE", "release"),
		PublicOrigin:           os.Getenv("PUBLIC_ORIGIN"),
		APIBaseURL:             os.Getenv("API_BASE_URL"),
		APITimeout:             getDuration("API_TIMEOUT", 0),
		DBURL:                  os.Getenv("DB_URL"),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		CacheTTL:               getDuration("CACHE_TTL", 5*time.Minute),
		SessionDBPath:          getenv("SESSION_DB_PATH", "sessions.db"),
		SessionSecret:          os.Getenv("SESSION_SECRET"),
		SessionTTL:             getDuration("SESSION_TTL", 24*time.Hour),
		CloudinaryCloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryUploadPreset: os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
		WhatsAppNumber:         os.Getenv("WHATSAPP_NUMBER"),
		TwilioAccountSID:       os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:        os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppNumber:   os.Getenv("TWILIO_WHATSAPP_NUMBER"),
		StaffWhatsAppNumber:    os.Getenv("STAFF_WHATSAPP_NUMBER"),
		CatalogPath:            os.Getenv("CATALOG_PATH"),
		AllowedOrigins:         splitList(getenv("ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:               getenv("LOG_LEVEL", "info"),
		LogFormat:              getenv("LOG_FORMAT", "text"),
	}
	return cfg
}

// BackendURL resolves the REST backend base URL. Without API_BASE_URL the
// backend is assumed to share this service's origin.
func (c Config) BackendURL() string {
	if c.APIBaseURL != "" {
		return strings.TrimRight(c.APIBaseURL, "/")
	}
	if c.PublicOrigin != "" {
		return strings.TrimRight(c.PublicOrigin, "/")
	}
	return "http://localhost:" + c.Port
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration accepts Go durations ("90s") or plain seconds ("90").
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	slog.Warn("Ignoring invalid duration", "key", key, "value", v)
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
