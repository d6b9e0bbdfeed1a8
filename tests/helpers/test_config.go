package helpers

import (
	"github.com/valpere/nalsi/internal/config"
)

// GetTestConfig returns a configuration suitable for testing
func GetTestConfig() *config.Config {
	return &config.Config{
		Bot: config.BotConfig{
			Token:       "test_bot_token",
			Debug:       true,
			WebhookPort: 8081,
		},
		Database: config.DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "test_user",
			Password: "test_password",
			Name:     "test_db",
			SSLMode:  "disable",
		},
		Weather: config.WeatherConfig{
			APIKey:    "test_weather_api_key",
			BaseURL:   "http://localhost:0",
			Locale:    "ko-KR",
			Timezone:  "UTC",
			UserAgent: "Nalsi-Test/1.0",
			RateLimit: 100,
			RateBurst: 100,
		},
		Logging: config.LoggingConfig{
			Level:  "debug",
			Format: "console",
		},
	}
}

// GetMinimalTestConfig returns bare minimum config for unit tests
func GetMinimalTestConfig() *config.Config {
	return &config.Config{
		Bot: config.BotConfig{
			Token: "test_token",
			Debug: true,
		},
		Weather: config.WeatherConfig{
			APIKey:    "test_key",
			UserAgent: "Test-Bot/1.0",
		},
		Logging: config.LoggingConfig{
			Level:  "debug",
			Format: "console",
		},
	}
}
