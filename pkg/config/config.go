package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                  string
	DatabaseURL           string
	JWTSecret             string
	JWTSessionExpiry      time.Duration
	GoogleClientID        string
	GoogleIOSClientID     string
	GoogleAndroidClientID string
	GoogleClientSecret    string
	GoogleRedirectURI     string
	OpenAIAPIKey          string
	OpenAIModel           string
	CORSOrigin            string
	DefaultCalendarID     string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	sessionExpiry := 168 * time.Hour // 7 days
	if exp := os.Getenv("JWT_SESSION_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			sessionExpiry = parsed
		}
	}

	return &Config{
		Port:                  getEnv("PORT", "8080"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		JWTSecret:             getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTSessionExpiry:      sessionExpiry,
		GoogleClientID:        getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleIOSClientID:     getEnv("GOOGLE_IOS_CLIENT_ID", ""),
		GoogleAndroidClientID: getEnv("GOOGLE_ANDROID_CLIENT_ID", ""),
		GoogleClientSecret:    getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:     getEnv("GOOGLE_REDIRECT_URI", "http://localhost:8080/api/auth/google/callback"),
		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:           getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		CORSOrigin:            getEnv("CORS_ORIGIN", "*"),
		DefaultCalendarID:     getEnv("GOOGLE_CALENDAR_ID", "primary"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
