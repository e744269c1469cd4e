// Package app assembles the router from configuration; both the HTTP server and
// the Lambda entrypoint start from here.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/i474232898/weather-line-bot/internal/bot"
	"github.com/i474232898/weather-line-bot/internal/config"
	"github.com/i474232898/weather-line-bot/internal/line"
	"github.com/i474232898/weather-line-bot/internal/reply"
	"github.com/i474232898/weather-line-bot/internal/store"
	"github.com/i474232898/weather-line-bot/internal/weather/providers"
)

// NewStore returns the parameter store selected by cfg.StoreBackend.
func NewStore(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		logger.Warn("using in-memory parameter store; settings are lost on restart")
		return store.NewMemoryStore(nil), nil
	case config.StoreSSM:
		return store.NewSSMStoreForRegion(ctx, cfg.SSMRegion, logger)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// NewRouter wires the store, weather provider, LINE messenger and templates.
func NewRouter(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*bot.Router, error) {
	st, err := NewStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// Shared HTTP client for outbound weather calls.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	weatherProvider := providers.NewOpenWeatherProvider(httpClient, logger, cfg.WeatherAPIToken, cfg.WeatherCurrentURL, cfg.WeatherForecastURL)

	messenger, err := line.NewMessenger(cfg.LineChannelAccessToken, logger)
	if err != nil {
		return nil, err
	}

	renderer, err := reply.NewRenderer(cfg.TemplateDir)
	if err != nil {
		return nil, err
	}

	return bot.NewRouter(st, weatherProvider, messenger, renderer, cfg.LineUserID, logger), nil
}
