// Package config provides centralized default values for the site backend
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found -- config defaults will be used")
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// CORS allow-list, comma separated origins
	CORSAllowedOrigins []string

	// Database
	SQLitePath               string
	TursoDatabaseURL         string
	TursoAuthToken           string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	DBConnMaxIdleMinutes     int
	SlowQueryThreshold       time.Duration

	// Auth
	JWTSecret     string
	AdminPassword string

	// Analytics
	DashboardDefaultPeriodDays int
	DashboardMaxPeriodDays     int
	TopPagesLimit              int
	LocationsLimit             int

	// Contact form
	ContactRateLimitRequests int
	ContactRateLimitWindow   time.Duration
	ContactEmailFrom         string
	ContactEmailFromName     string
	ContactEmailTo           string
	ResendAPIKey             string

	// Chat / hosted LLM
	LLMAPIKey    string
	LLMBaseURL   string
	LLMModel     string
	LLMMaxTokens int
	LLMTimeout   time.Duration

	// Media uploads
	MediaRoot         string
	ThumbnailMaxWidth int
	MaxFeaturedCount  int
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	CORSAllowedOrigins = strings.Split(getEnvString("CORS_ALLOWED_ORIGINS",
		"http://localhost:3000,http://localhost:5173,http://127.0.0.1:3000,http://127.0.0.1:5173"), ",")

	// Database
	SQLitePath = getEnvString("SQLITE_PATH", "data/pixelcraft.db")
	TursoDatabaseURL = getEnvString("TURSO_DATABASE_URL", "")
	TursoAuthToken = getEnvString("TURSO_AUTH_TOKEN", "")
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	DBConnMaxIdleMinutes = getEnvInt("DB_CONN_MAX_IDLE_MINUTES", 3)
	SlowQueryThreshold = getEnvDuration("SLOW_QUERY_THRESHOLD", 250*time.Millisecond)

	// Auth
	JWTSecret = getEnvString("JWT_SECRET", "")
	AdminPassword = getEnvString("ADMIN_PASSWORD", "")

	// Analytics
	DashboardDefaultPeriodDays = getEnvInt("DASHBOARD_DEFAULT_PERIOD_DAYS", 30)
	DashboardMaxPeriodDays = getEnvInt("DASHBOARD_MAX_PERIOD_DAYS", 90)
	TopPagesLimit = getEnvInt("TOP_PAGES_LIMIT", 10)
	LocationsLimit = getEnvInt("LOCATIONS_LIMIT", 20)

	// Contact form
	ContactRateLimitRequests = getEnvInt("CONTACT_RATE_LIMIT_REQUESTS", 5)
	ContactRateLimitWindow = getEnvDuration("CONTACT_RATE_LIMIT_WINDOW", 10*time.Minute)
	ContactEmailFrom = getEnvString("CONTACT_EMAIL_FROM", "noreply@pixelcraft.studio")
	ContactEmailFromName = getEnvString("CONTACT_EMAIL_FROM_NAME", "Pixelcraft Studio")
	ContactEmailTo = getEnvString("CONTACT_EMAIL_TO", "")
	ResendAPIKey = getEnvString("RESEND_API_KEY", "")

	// Chat / hosted LLM
	LLMAPIKey = getEnvString("LLM_API_KEY", "")
	LLMBaseURL = getEnvString("LLM_BASE_URL", "https://api.openai.com/v1")
	LLMModel = getEnvString("LLM_MODEL", "gpt-4o-mini")
	LLMMaxTokens = getEnvInt("LLM_MAX_TOKENS", 512)
	LLMTimeout = getEnvDuration("LLM_TIMEOUT", 20*time.Second)

	// Media uploads
	MediaRoot = getEnvString("MEDIA_ROOT", "media")
	ThumbnailMaxWidth = getEnvInt("THUMBNAIL_MAX_WIDTH", 1200)
	MaxFeaturedCount = getEnvInt("MAX_FEATURED_COUNT", 3)
}
