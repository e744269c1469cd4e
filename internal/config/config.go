package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreSSM    = "ssm"
	StoreMemory = "memory"
)

var validate = validator.New()

type AppConfig struct {
	LineChannelAccessToken string `validate:"required"`
	// LineChannelSecret enables webhook signature verification when set.
	LineChannelSecret string
	// LineUserID receives scheduled forecast pushes.
	LineUserID string `validate:"required_with=ForecastCron"`

	WeatherAPIToken    string `validate:"required"`
	WeatherCurrentURL  string `validate:"required,url"`
	WeatherForecastURL string `validate:"required,url"`

	StoreBackend string `validate:"oneof=ssm memory"`
	SSMRegion    string `validate:"required_if=StoreBackend ssm"`

	// TemplateDir overrides the embedded reply templates when set.
	TemplateDir string

	// ForecastCron is evaluated in Asia/Tokyo. FORECAST_CRON set to an empty value
	// disables the scheduled push; unset means the daily default.
	ForecastCron string

	HTTPTimeout time.Duration `validate:"gte=0"`
	LogLevel    slog.Level
	Port        string `validate:"required,numeric"`
}

// Load reads configuration from the environment, after an optional .env file.
func Load() (*AppConfig, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &AppConfig{
		LineChannelAccessToken: os.Getenv("LINE_CHANNEL_ACCESS_TOKEN"),
		LineChannelSecret:      os.Getenv("LINE_CHANNEL_SECRET"),
		LineUserID:             os.Getenv("LINE_USER_ID"),
		WeatherAPIToken:        os.Getenv("WEATHER_API_TOKEN"),
		WeatherCurrentURL:      getenvDefault("WEATHER_API_CURRENT_URL", "https://api.openweathermap.org/data/2.5/weather"),
		WeatherForecastURL:     getenvDefault("WEATHER_API_5D3H_URL", "https://api.openweathermap.org/data/2.5/forecast"),
		StoreBackend:           strings.ToLower(getenvDefault("STORE_BACKEND", StoreSSM)),
		SSMRegion:              os.Getenv("AWS_SSM_REGION"),
		TemplateDir:            os.Getenv("TEMPLATE_DIR"),
		ForecastCron:           lookupenvDefault("FORECAST_CRON", "0 7 * * *"),
		Port:                   getenvDefault("PORT", "8080"),
	}

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	level, err := ParseLogLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ParseLogLevel accepts DEBUG, INFO, WARN/WARNING and ERROR in any case.
// An empty value means WARN.
func ParseLogLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return slog.LevelWarn, nil
	}
	if strings.EqualFold(s, "WARNING") {
		s = "WARN"
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

// NewLogger builds the process-wide JSON logger at the configured level.
func (c *AppConfig) NewLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: c.LogLevel}))
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// lookupenvDefault keeps an explicitly empty value, unlike getenvDefault.
func lookupenvDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return def
}
