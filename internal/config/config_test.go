package config

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	for _, key := range []string{"STORE_BACKEND", "LOG_LEVEL", "HTTP_TIMEOUT", "PORT", "WEATHER_API_CURRENT_URL", "WEATHER_API_5D3H_URL"} {
		t.Setenv(key, "")
	}
	// An empty FORECAST_CRON disables the push, so unset it to get the default.
	t.Setenv("FORECAST_CRON", "")
	os.Unsetenv("FORECAST_CRON")
	t.Setenv("LINE_CHANNEL_ACCESS_TOKEN", "token")
	t.Setenv("LINE_USER_ID", "U123")
	t.Setenv("WEATHER_API_TOKEN", "owm")
	t.Setenv("AWS_SSM_REGION", "ap-northeast-1")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StoreBackend != StoreSSM || cfg.SSMRegion != "ap-northeast-1" {
		t.Fatalf("unexpected store config %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelWarn {
		t.Fatalf("expected WARN default, got %v", cfg.LogLevel)
	}
	if cfg.HTTPTimeout != 10*time.Second || cfg.Port != "8080" || cfg.ForecastCron != "0 7 * * *" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.WeatherCurrentURL == "" || cfg.WeatherForecastURL == "" {
		t.Fatal("expected default weather endpoints")
	}
}

func TestLoadMissingToken(t *testing.T) {
	setRequired(t)
	t.Setenv("LINE_CHANNEL_ACCESS_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without channel access token")
	}
}

func TestLoadSSMRequiresRegion(t *testing.T) {
	setRequired(t)
	t.Setenv("AWS_SSM_REGION", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without region for ssm backend")
	}

	t.Setenv("STORE_BACKEND", "memory")
	if _, err := Load(); err != nil {
		t.Fatalf("memory backend should not need a region: %v", err)
	}
}

func TestLoadScheduledPushRequiresUserID(t *testing.T) {
	setRequired(t)
	t.Setenv("LINE_USER_ID", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without a push recipient while the forecast cron is on")
	}

	t.Setenv("FORECAST_CRON", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("disabled cron should not need a recipient: %v", err)
	}
	if cfg.ForecastCron != "" {
		t.Fatalf("expected disabled cron, got %q", cfg.ForecastCron)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"STORE_BACKEND":           "redis",
		"WEATHER_API_CURRENT_URL": "not a url",
		"HTTP_TIMEOUT":            "soon",
		"LOG_LEVEL":               "chatty",
		"PORT":                    "http",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelWarn,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"ERROR":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLogLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLogLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}
