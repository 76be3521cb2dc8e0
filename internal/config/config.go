package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// GeminiKeyPlaceholder is the sample value shipped in .env.example; a key
// equal to it counts as unconfigured.
const GeminiKeyPlaceholder = "your_gemini_api_key_here"

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	// GeminiAPIKey is the single upstream credential. Absent or placeholder
	// value forces fallback mode everywhere.
	GeminiAPIKey string
	GeminiModel  string

	// DataDir holds the flat JSON documents (users, question banks, resources).
	DataDir string

	// StorageBackend selects the history key-value backend: "file" or "redis".
	StorageBackend string
	RedisURL       string

	JWTSecret string
	JWTExpiry time.Duration

	// AIRateLimit is requests per minute per IP on the /ai endpoints.
	AIRateLimit int

	// AllowedOrigins controls HTTP CORS. Empty slice means all origins are
	// permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "3001"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "pretty"),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		DataDir:        getEnv("DATA_DIR", "./data"),
		StorageBackend: getEnv("STORAGE_BACKEND", "file"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:      getEnv("JWT_SECRET", "change-this-to-a-secure-random-string"),
		JWTExpiry:      time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		AIRateLimit:    getEnvInt("AI_RATE_LIMIT_PER_MINUTE", 30),
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

// GeminiConfigured reports whether a usable upstream credential is present.
// A missing, blank, or placeholder key means every AI endpoint serves
// fallback data instead of calling the provider.
func (c *Config) GeminiConfigured() bool {
	key := strings.TrimSpace(c.GeminiAPIKey)
	return key != "" && key != GeminiKeyPlaceholder
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
