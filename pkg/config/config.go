package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	ProjectID           string
	FirebaseCredentials string

	// Work queue (Pub/Sub)
	QueueTopic    string
	WatchInterval time.Duration

	// Push
	BroadcastTopic string

	// Console auth
	AdminEmail string
	OTPSecret  string
	JWTSecret  string
	JWTExpiry  time.Duration

	// Transactional mail (Gmail API)
	GoogleClientID     string
	GoogleClientSecret string
	GmailRefreshToken  string
	MailFrom           string
	MailFromName       string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtExpiry := 12 * time.Hour
	if exp := os.Getenv("JWT_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			jwtExpiry = parsed
		}
	}

	watchInterval := 30 * time.Second
	if iv := os.Getenv("WATCH_INTERVAL"); iv != "" {
		if parsed, err := time.ParseDuration(iv); err == nil {
			watchInterval = parsed
		}
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		ProjectID:           getEnv("GOOGLE_PROJECT_ID", ""),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		QueueTopic:          getEnv("QUEUE_TOPIC", "console-dispatch"),
		WatchInterval:       watchInterval,
		BroadcastTopic:      getEnv("BROADCAST_TOPIC", "genelBildirim"),
		AdminEmail:          getEnv("ADMIN_EMAIL", ""),
		OTPSecret:           getEnv("OTP_SECRET", ""),
		JWTSecret:           getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiry:           jwtExpiry,
		GoogleClientID:      getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:  getEnv("GOOGLE_CLIENT_SECRET", ""),
		GmailRefreshToken:   getEnv("GMAIL_REFRESH_TOKEN", ""),
		MailFrom:            getEnv("MAIL_FROM", ""),
		MailFromName:        getEnv("MAIL_FROM_NAME", "YakalaHadi"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
