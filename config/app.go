package config

import "strconv"

// Default values for application settings
const (
	DefaultReminderThresholdDays = 14
	DefaultTokenLifetimeHours    = 24
)

// AppConfig holds application level settings
type AppConfig struct {
	// ReminderThresholdDays is the number of whole days a device may sit
	// in a non-terminal status before it shows up on the reminders list.
	ReminderThresholdDays int

	// TokenLifetimeHours is how long an issued auth token stays valid.
	TokenLifetimeHours int
}

// GetAppConfig returns application configuration from environment variables
func GetAppConfig() *AppConfig {
	return &AppConfig{
		ReminderThresholdDays: getEnvInt("REMINDER_THRESHOLD_DAYS", DefaultReminderThresholdDays),
		TokenLifetimeHours:    getEnvInt("TOKEN_LIFETIME_HOURS", DefaultTokenLifetimeHours),
	}
}

// getEnvInt gets an integer environment variable with fallback
func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
