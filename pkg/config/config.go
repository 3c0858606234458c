package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DatabaseURL      string
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	GoogleClientID string

	// Push notifications (Firebase Cloud Messaging)
	FirebaseCredentials string

	// Legacy chat module bridge (Google Cloud Pub/Sub)
	GoogleProjectID   string
	GoogleCredentials string
	ChatEventsTopic   string

	// Video meeting links
	MeetingBaseURL string

	// How long before an appointment the reminder goes out
	BookingReminderLead time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	accessExpiry := 15 * time.Minute
	if exp := os.Getenv("JWT_ACCESS_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			accessExpiry = parsed
		}
	}

	refreshExpiry := 168 * time.Hour // 7 days
	if exp := os.Getenv("JWT_REFRESH_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			refreshExpiry = parsed
		}
	}

	reminderLead := 1 * time.Hour
	if lead := os.Getenv("BOOKING_REMINDER_LEAD"); lead != "" {
		if parsed, err := time.ParseDuration(lead); err == nil {
			reminderLead = parsed
		}
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=carelink port=5432 sslmode=disable"),
		JWTSecret:           getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTAccessExpiry:     accessExpiry,
		JWTRefreshExpiry:    refreshExpiry,
		GoogleClientID:      getEnv("GOOGLE_CLIENT_ID", ""),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		GoogleProjectID:     getEnv("GOOGLE_PROJECT_ID", ""),
		GoogleCredentials:   getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		ChatEventsTopic:     getEnv("CHAT_EVENTS_TOPIC", "chat-events"),
		MeetingBaseURL:      getEnv("MEETING_BASE_URL", "https://meet.jit.si"),
		BookingReminderLead: reminderLead,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
