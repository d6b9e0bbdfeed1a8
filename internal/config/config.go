package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

type Config struct {
	Bot      BotConfig      `mapstructure:"bot"`
	Database DatabaseConfig `mapstructure:"database"`
	Weather  WeatherConfig  `mapstructure:"weather"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type BotConfig struct {
	Token       string `mapstructure:"token"`
	Debug       bool   `mapstructure:"debug"`
	WebhookURL  string `mapstructure:"webhook_url"`
	WebhookPort int    `mapstructure:"webhook_port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type WeatherConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Locale      string  `mapstructure:"locale"`
	DefaultCity string  `mapstructure:"default_city"`
	Timezone    string  `mapstructure:"timezone"`
	UserAgent   string  `mapstructure:"user_agent"`
	RateLimit   float64 `mapstructure:"rate_limit"`
	RateBurst   int     `mapstructure:"rate_burst"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	viper.SetConfigName("nalsi")
	viper.SetConfigType("yaml")

	// Add search paths in order of precedence (first found wins)
	viper.AddConfigPath(".")             // ./nalsi.yaml (current directory)
	viper.AddConfigPath("$HOME")         // ~/nalsi.yaml (home directory)
	viper.AddConfigPath("$HOME/.config") // ~/.config/nalsi.yaml
	viper.AddConfigPath("/etc")          // /etc/nalsi.yaml (system-wide)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	bindings := map[string]string{
		"bot.token":        "TELEGRAM_BOT_TOKEN",
		"bot.debug":        "BOT_DEBUG",
		"bot.webhook_url":  "BOT_WEBHOOK_URL",
		"bot.webhook_port": "BOT_WEBHOOK_PORT",

		"database.host":     "DB_HOST",
		"database.port":     "DB_PORT",
		"database.user":     "DB_USER",
		"database.password": "DB_PASSWORD",
		"database.name":     "DB_NAME",
		"database.ssl_mode": "DB_SSL_MODE",

		"weather.api_key":      "OPENWEATHER_API_KEY",
		"weather.base_url":     "OPENWEATHER_BASE_URL",
		"weather.locale":       "WEATHER_LOCALE",
		"weather.default_city": "WEATHER_DEFAULT_CITY",
		"weather.timezone":     "WEATHER_TIMEZONE",
		"weather.user_agent":   "WEATHER_USER_AGENT",
		"weather.rate_limit":   "WEATHER_RATE_LIMIT",
		"weather.rate_burst":   "WEATHER_RATE_BURST",

		"logging.level":  "LOG_LEVEL",
		"logging.format": "LOG_FORMAT",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	setDefaults()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Bot defaults
	viper.SetDefault("bot.debug", false)
	viper.SetDefault("bot.webhook_port", 8080)

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "nalsi")
	viper.SetDefault("database.name", "nalsi")
	viper.SetDefault("database.ssl_mode", "disable")

	// Weather defaults
	viper.SetDefault("weather.base_url", "https://api.openweathermap.org")
	viper.SetDefault("weather.locale", "ko-KR")
	viper.SetDefault("weather.default_city", "Seoul")
	viper.SetDefault("weather.timezone", "Local")
	viper.SetDefault("weather.rate_limit", 0.5)
	viper.SetDefault("weather.rate_burst", 3)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

// Validate reports settings the application cannot start with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Bot.Token) == "" {
		return errors.New("bot.token is required (set TELEGRAM_BOT_TOKEN)")
	}
	if strings.TrimSpace(c.Weather.APIKey) == "" {
		return errors.New("weather.api_key is required (set OPENWEATHER_API_KEY)")
	}
	if _, err := c.Weather.Zone(); err != nil {
		return err
	}
	if c.Weather.RateLimit < 0 || c.Weather.RateBurst < 0 {
		return fmt.Errorf("weather rate limit must not be negative: %v/s burst %d", c.Weather.RateLimit, c.Weather.RateBurst)
	}
	return nil
}

// Zone resolves the configured timezone name; empty and "Local" mean the host zone
func (w WeatherConfig) Zone() (*time.Location, error) {
	if w.Timezone == "" || w.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(w.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid weather.timezone %q: %w", w.Timezone, err)
	}
	return loc, nil
}

// Limit returns the per-user request rate; zero disables limiting
func (w WeatherConfig) Limit() rate.Limit {
	if w.RateLimit <= 0 {
		return rate.Inf
	}
	return rate.Limit(w.RateLimit)
}

// DSN builds the PostgreSQL connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}
