package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/i474232898/weather-line-bot/internal/weather"
)

const dtTextLayout = "2006-01-02 15:04:05"

// OpenWeatherProvider talks to the OpenWeatherMap current-weather and
// 5-day/3-hour forecast endpoints.
type OpenWeatherProvider struct {
	name        string
	apiKey      string
	currentURL  string
	forecastURL string
	client      *http.Client
	logger      *slog.Logger
}

func NewOpenWeatherProvider(client *http.Client, logger *slog.Logger, apiKey, currentURL, forecastURL string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:        "openweathermap",
		apiKey:      apiKey,
		currentURL:  currentURL,
		forecastURL: forecastURL,
		client:      client,
		logger:      logger,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) get(ctx context.Context, baseURL string, loc weather.Location, out any) error {
	if p.apiKey == "" {
		return fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := loc.Values()
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		values.Set("lang", "ja")

		p.logger.DebugContext(ctx, "weather request", "provider", p.name, "url", baseURL, "location", loc)

		u := fmt.Sprintf("%s?%s", baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.client, buildRequest)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", p.name, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s response decode failed: %w", p.name, err)
	}
	return nil
}

// Current fetches the current conditions for loc.
func (p *OpenWeatherProvider) Current(ctx context.Context, loc weather.Location) (weather.CurrentWeather, error) {
	var payload struct {
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}

	if err := p.get(ctx, p.currentURL, loc, &payload); err != nil {
		return weather.CurrentWeather{}, err
	}
	if len(payload.Weather) == 0 {
		return weather.CurrentWeather{}, fmt.Errorf("%s current weather has no conditions", p.name)
	}

	current := weather.CurrentWeather{
		Description: payload.Weather[0].Description,
		Icon:        payload.Weather[0].Icon,
		Temp:        payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
		WindSpeed:   payload.Wind.Speed,
	}
	p.logger.InfoContext(ctx, "current weather fetched", "provider", p.name, "weather", current)
	return current, nil
}

// Forecast fetches the 5-day/3-hour forecast for loc. dt_txt is UTC on the wire;
// entry times are returned in weather.Tokyo.
func (p *OpenWeatherProvider) Forecast(ctx context.Context, loc weather.Location) ([]weather.ForecastEntry, error) {
	var payload struct {
		List []struct {
			DtTxt   string `json:"dt_txt"`
			Weather []struct {
				Icon string `json:"icon"`
			} `json:"weather"`
			Main struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
		} `json:"list"`
	}

	if err := p.get(ctx, p.forecastURL, loc, &payload); err != nil {
		return nil, err
	}

	entries := make([]weather.ForecastEntry, 0, len(payload.List))
	for _, item := range payload.List {
		var entry weather.ForecastEntry
		if item.DtTxt != "" {
			ts, err := time.ParseInLocation(dtTextLayout, item.DtTxt, time.UTC)
			if err != nil {
				return nil, fmt.Errorf("%s forecast has invalid dt_txt %q: %w", p.name, item.DtTxt, err)
			}
			entry.Time = ts.In(weather.Tokyo)
		}
		if len(item.Weather) > 0 {
			entry.Icon = item.Weather[0].Icon
		}
		entry.Temperature = item.Main.Temp
		entries = append(entries, entry)
	}

	p.logger.InfoContext(ctx, "forecast fetched", "provider", p.name, "entries", len(entries))
	return entries, nil
}
