package bot

import (
	"context"
	"log/slog"
	"strings"

	"github.com/i474232898/weather-line-bot/internal/reply"
	"github.com/i474232898/weather-line-bot/internal/weather"
)

const forecastTimeLayout = "01/02 15時"

// forecastText renders one line per forecast slot between now and midnight
// two days ahead. It is empty when no slot falls inside that window.
func (r *Router) forecastText(ctx context.Context, logger *slog.Logger) (string, error) {
	loc, err := r.resolveLocation(ctx)
	if err != nil {
		return "", err
	}

	entries, err := r.weather.Forecast(ctx, loc)
	if err != nil {
		return "", err
	}

	var lines []string
	for _, e := range weather.FilterForecast(entries, r.now()) {
		line, err := r.renderer.Render(reply.ForecastLine, reply.ForecastLineData{
			DateTime:    e.Time.In(weather.Tokyo).Format(forecastTimeLayout),
			Icon:        weather.Icon(e.Icon),
			Temperature: reply.Number(e.Temperature),
		})
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}

	text := strings.Join(lines, "\n")
	logger.InfoContext(ctx, "send message", "text", text)
	return text, nil
}
