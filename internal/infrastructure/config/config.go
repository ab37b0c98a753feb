// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Travelpayouts
	TravelpayoutsAPIKey  string
	TravelpayoutsBaseURL string
	Origin               string
	Destination          string
	StartDate            time.Time
	EndDate              time.Time
	Currency             string
	SearchLimit          int
	PollInterval         time.Duration

	// AirLabs (optional, enrichment disabled when key is empty)
	AirLabsAPIKey  string
	AirLabsBaseURL string

	// Telegram
	TelegramBotToken       string
	TelegramBaseURL        string
	TelegramChatID         string
	TelegramDevlogsTopicID string
	TelegramFoundTopicID   string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		TravelpayoutsAPIKey:  getEnv("TRAVELPAYOUTS_API_KEY", ""),
		TravelpayoutsBaseURL: getEnv("TRAVELPAYOUTS_BASE_URL", "https://api.travelpayouts.com"),
		Origin:               getEnv("ORIGIN", ""),
		Destination:          getEnv("DESTINATION", ""),
		Currency:             getEnv("CURRENCY", "rub"),
		SearchLimit:          getEnvAsInt("SEARCH_LIMIT", 30),
		PollInterval:         time.Duration(getEnvAsInt("POLL_INTERVAL_HOURS", 6)) * time.Hour,

		AirLabsAPIKey:  getEnv("AIRLABS_API_KEY", ""),
		AirLabsBaseURL: getEnv("AIRLABS_BASE_URL", "https://airlabs.co"),

		TelegramBotToken:       getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramBaseURL:        getEnv("TELEGRAM_BASE_URL", "https://api.telegram.org"),
		TelegramChatID:         getEnv("TELEGRAM_CHAT_ID", ""),
		TelegramDevlogsTopicID: getEnv("TELEGRAM_DEVLOGS_TOPIC_ID", ""),
		TelegramFoundTopicID:   getEnv("TELEGRAM_FOUND_TOPIC_ID", ""),
	}

	required := []struct {
		name  string
		value string
	}{
		{"TRAVELPAYOUTS_API_KEY", config.TravelpayoutsAPIKey},
		{"ORIGIN", config.Origin},
		{"DESTINATION", config.Destination},
		{"START_DATE", os.Getenv("START_DATE")},
		{"END_DATE", os.Getenv("END_DATE")},
		{"TELEGRAM_BOT_TOKEN", config.TelegramBotToken},
		{"TELEGRAM_CHAT_ID", config.TelegramChatID},
		{"TELEGRAM_DEVLOGS_TOPIC_ID", config.TelegramDevlogsTopicID},
		{"TELEGRAM_FOUND_TOPIC_ID", config.TelegramFoundTopicID},
	}

	var missing []string
	for _, v := range required {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	var err error
	config.StartDate, err = time.Parse("2006-01-02", os.Getenv("START_DATE"))
	if err != nil {
		return nil, fmt.Errorf("invalid START_DATE: %w", err)
	}
	config.EndDate, err = time.Parse("2006-01-02", os.Getenv("END_DATE"))
	if err != nil {
		return nil, fmt.Errorf("invalid END_DATE: %w", err)
	}
	if config.EndDate.Before(config.StartDate) {
		return nil, fmt.Errorf("END_DATE %s is before START_DATE %s",
			config.EndDate.Format("2006-01-02"), config.StartDate.Format("2006-01-02"))
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
