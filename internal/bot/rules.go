package bot

import (
	"context"
	"log/slog"
	"strings"
)

// Texts the bot recognizes. The setting prefixes arrive from the Flex card buttons.
const (
	TriggerChangeCity        = "天気予報の都市を変更させて！"
	TriggerChangeGeoParams   = "天気予報の地域特定方法を変更させて！"
	TriggerShowSettings      = "今の設定を教えて！"
	TriggerCurrentWeather    = "今の天気を教えて！"
	TriggerForecast          = "明日までの天気を教えて！"
	TriggerScheduledForecast = "Scheduled Weather Forecast"

	PrefixCityName = "City Name Parameter:"
	PrefixWFParam  = "WF Parameter:"
)

// Rule names, in evaluation order.
const (
	RuleSetLocation       = "set-location"
	RuleCityOptions       = "city-options"
	RuleSetCity           = "set-city"
	RuleGeoParamOptions   = "geo-param-options"
	RuleSetGeoParam       = "set-geo-param"
	RuleShowSettings      = "show-settings"
	RuleCurrentWeather    = "current-weather"
	RuleForecast          = "forecast"
	RuleScheduledForecast = "scheduled-forecast"
	RuleUnsupportedText   = "unsupported-text"
)

type handlerFunc func(ctx context.Context, logger *slog.Logger, ev Event) error

type rule struct {
	name   string
	match  func(Event) bool
	handle handlerFunc
}

func isLocation(ev Event) bool {
	_, ok := ev.Location()
	return ok
}

func isText(ev Event) bool {
	_, ok := ev.Text()
	return ok
}

func textEquals(want string) func(Event) bool {
	return func(ev Event) bool {
		text, ok := ev.Text()
		return ok && text == want
	}
}

func textContains(sub string) func(Event) bool {
	return func(ev Event) bool {
		text, ok := ev.Text()
		return ok && strings.Contains(text, sub)
	}
}

func (r *Router) buildRules() []rule {
	return []rule{
		{RuleSetLocation, isLocation, r.setLocation},
		{RuleCityOptions, textEquals(TriggerChangeCity), r.cityOptions},
		{RuleSetCity, textContains(PrefixCityName), r.setCity},
		{RuleGeoParamOptions, textEquals(TriggerChangeGeoParams), r.geoParamOptions},
		{RuleSetGeoParam, textContains(PrefixWFParam), r.setGeoParam},
		{RuleShowSettings, textEquals(TriggerShowSettings), r.showSettings},
		{RuleCurrentWeather, textEquals(TriggerCurrentWeather), r.currentWeather},
		{RuleForecast, textEquals(TriggerForecast), r.forecast},
		{RuleScheduledForecast, textEquals(TriggerScheduledForecast), r.scheduledForecast},
		{RuleUnsupportedText, isText, r.unsupportedText},
	}
}

// Match returns the name of the rule ev would be handled by, or "" if none applies.
func (r *Router) Match(ev Event) string {
	if rl, ok := r.match(ev); ok {
		return rl.name
	}
	return ""
}

func (r *Router) match(ev Event) (rule, bool) {
	for _, rl := range r.rules {
		if rl.match(ev) {
			return rl, true
		}
	}
	return rule{}, false
}
