package bot

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/i474232898/weather-line-bot/internal/reply"
	"github.com/i474232898/weather-line-bot/internal/store"
	"github.com/i474232898/weather-line-bot/internal/weather"
)

// User-visible texts for settings that could not be read back.
const (
	msgLocationFailed = "位置情報を設定できませんでした。"
	msgGeoParamFailed = "天気予報地域の特定方法を設定できませんでした。"
	msgSettingsFailed = "設定値を取得できませんでした。"

	altCityOptions     = "City Name Flex Message"
	altGeoParamOptions = "API GEO Params Flex Message"
)

func (r *Router) setLocation(ctx context.Context, logger *slog.Logger, ev Event) error {
	loc, _ := ev.Location()
	values := map[string]string{
		weather.KeyLatitude:  reply.Coordinate(loc.Latitude),
		weather.KeyLongitude: reply.Coordinate(loc.Longitude),
	}
	return r.storeAndConfirm(ctx, logger, ev, values, msgLocationFailed, reply.LocationInfo, func(p map[string]string) any {
		return reply.LocationInfoData{Latitude: p[weather.KeyLatitude], Longitude: p[weather.KeyLongitude]}
	})
}

func (r *Router) cityOptions(ctx context.Context, _ *slog.Logger, ev Event) error {
	return r.replyCard(ctx, ev, reply.CityNameCard, altCityOptions)
}

func (r *Router) setCity(ctx context.Context, logger *slog.Logger, ev Event) error {
	text, _ := ev.Text()
	city := strings.ReplaceAll(text, PrefixCityName, "")
	values := map[string]string{weather.KeyCity: city}
	// A city that cannot be read back is reported with the location failure text.
	return r.storeAndConfirm(ctx, logger, ev, values, msgLocationFailed, reply.CityInfo, func(p map[string]string) any {
		return reply.CityInfoData{CityName: p[weather.KeyCity]}
	})
}

func (r *Router) geoParamOptions(ctx context.Context, _ *slog.Logger, ev Event) error {
	return r.replyCard(ctx, ev, reply.APIGeoParamsCard, altGeoParamOptions)
}

func (r *Router) setGeoParam(ctx context.Context, logger *slog.Logger, ev Event) error {
	text, _ := ev.Text()
	param := strings.ReplaceAll(text, PrefixWFParam, "")
	values := map[string]string{weather.KeyAPIParam: param}
	return r.storeAndConfirm(ctx, logger, ev, values, msgGeoParamFailed, reply.APIParams, func(p map[string]string) any {
		return reply.APIParamsData{WFParam: p[weather.KeyAPIParam]}
	})
}

func (r *Router) showSettings(ctx context.Context, logger *slog.Logger, ev Event) error {
	keys := []string{weather.KeyLatitude, weather.KeyLongitude, weather.KeyCity, weather.KeyAPIParam}
	params, err := r.store.Get(ctx, keys...)
	if err != nil {
		return err
	}

	msg := msgSettingsFailed
	if store.AllSet(params, keys...) {
		msg, err = r.renderer.Render(reply.AllParams, reply.AllParamsData{
			Latitude:  params[weather.KeyLatitude],
			Longitude: params[weather.KeyLongitude],
			CityName:  params[weather.KeyCity],
			WFParam:   params[weather.KeyAPIParam],
		})
		if err != nil {
			return err
		}
	}

	logger.InfoContext(ctx, "send message", "text", msg)
	return r.messenger.ReplyText(ctx, ev.ReplyToken, msg)
}

func (r *Router) currentWeather(ctx context.Context, logger *slog.Logger, ev Event) error {
	loc, err := r.resolveLocation(ctx)
	if err != nil {
		return err
	}

	current, err := r.weather.Current(ctx, loc)
	if err != nil {
		return err
	}

	msg, err := r.renderer.Render(reply.CurrentWeather, reply.CurrentWeatherData{
		Description: current.Description,
		Icon:        weather.Icon(current.Icon),
		Temp:        reply.Number(current.Temp),
		FeelsLike:   reply.Number(current.FeelsLike),
		Humidity:    reply.Number(current.Humidity),
		WindSpeed:   reply.Number(current.WindSpeed),
	})
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "send message", "text", msg)
	return r.messenger.ReplyText(ctx, ev.ReplyToken, msg)
}

func (r *Router) forecast(ctx context.Context, logger *slog.Logger, ev Event) error {
	text, err := r.forecastText(ctx, logger)
	if err != nil {
		return err
	}
	return r.messenger.ReplyText(ctx, ev.ReplyToken, text)
}

func (r *Router) scheduledForecast(ctx context.Context, logger *slog.Logger, _ Event) error {
	text, err := r.forecastText(ctx, logger)
	if err != nil {
		return err
	}
	return r.messenger.PushText(ctx, r.pushTo, text)
}

func (r *Router) unsupportedText(ctx context.Context, logger *slog.Logger, ev Event) error {
	text, _ := ev.Text()
	msg := fmt.Sprintf("申し訳ございません。【%s】はご利用いただけません。", text)
	logger.InfoContext(ctx, "send message", "text", msg)
	return r.messenger.ReplyText(ctx, ev.ReplyToken, msg)
}

// storeAndConfirm writes values, reads the same keys back and replies with the
// rendered template, or with failure when any key came back unset.
func (r *Router) storeAndConfirm(
	ctx context.Context,
	logger *slog.Logger,
	ev Event,
	values map[string]string,
	failure string,
	tmpl string,
	data func(map[string]string) any,
) error {
	if err := r.store.Put(ctx, values); err != nil {
		return err
	}

	keys := slices.Sorted(maps.Keys(values))
	params, err := r.store.Get(ctx, keys...)
	if err != nil {
		return err
	}

	msg := failure
	if store.AllSet(params, keys...) {
		msg, err = r.renderer.Render(tmpl, data(params))
		if err != nil {
			return err
		}
	}

	logger.InfoContext(ctx, "send message", "text", msg)
	return r.messenger.ReplyText(ctx, ev.ReplyToken, msg)
}

func (r *Router) replyCard(ctx context.Context, ev Event, card, altText string) error {
	contents, err := r.renderer.Card(card)
	if err != nil {
		return err
	}
	return r.messenger.ReplyFlex(ctx, ev.ReplyToken, altText, contents)
}

func (r *Router) resolveLocation(ctx context.Context) (weather.Location, error) {
	params, err := r.store.Get(ctx, weather.KeyCity, weather.KeyLatitude, weather.KeyLongitude)
	if err != nil {
		return weather.Location{}, err
	}
	return weather.ResolveLocation(params), nil
}
