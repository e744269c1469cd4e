// Package bot turns LINE webhook events into parameter-store updates, weather
// lookups and replies. Rules are evaluated in a fixed order and the first match
// handles the event.
package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-line-bot/internal/reply"
	"github.com/i474232898/weather-line-bot/internal/store"
	"github.com/i474232898/weather-line-bot/internal/weather"
)

// ErrUnsupportedEvent is returned for events no rule accepts: non-message events
// and message types other than text and location.
var ErrUnsupportedEvent = errors.New("unsupported event")

const (
	bodyNotExecuted = "Not Execute."
	bodyFailed      = "Exception occurred."
	bodySucceeded   = "Reply ended normally."
)

// Messenger delivers replies and pushes to the chat platform.
type Messenger interface {
	ReplyText(ctx context.Context, replyToken, text string) error
	ReplyFlex(ctx context.Context, replyToken, altText string, contents []byte) error
	PushText(ctx context.Context, to, text string) error
}

// WeatherClient fetches current conditions and the 3-hourly forecast.
type WeatherClient interface {
	Current(ctx context.Context, loc weather.Location) (weather.CurrentWeather, error)
	Forecast(ctx context.Context, loc weather.Location) ([]weather.ForecastEntry, error)
}

// Response is what the hosting platform returns to the webhook caller.
// Body is a JSON-encoded string.
type Response struct {
	StatusCode int
	Body       string
}

func newResponse(code int, msg string) Response {
	b, _ := json.Marshal(msg)
	return Response{StatusCode: code, Body: string(b)}
}

// Router holds the rule table and its collaborators. It keeps no state between calls.
type Router struct {
	store     store.Store
	weather   WeatherClient
	messenger Messenger
	renderer  *reply.Renderer
	pushTo    string
	logger    *slog.Logger
	now       func() time.Time
	rules     []rule
}

// NewRouter wires a Router. pushTo is the recipient of scheduled forecasts.
func NewRouter(st store.Store, wc WeatherClient, m Messenger, renderer *reply.Renderer, pushTo string, logger *slog.Logger) *Router {
	r := &Router{
		store:     st,
		weather:   wc,
		messenger: m,
		renderer:  renderer,
		pushTo:    pushTo,
		logger:    logger,
		now:       time.Now,
	}
	r.rules = r.buildRules()
	return r
}

// Handle processes one webhook body: decode, act on the first event, report.
// Every failure past decoding the event list is logged and reported as 500.
func (r *Router) Handle(ctx context.Context, body []byte) Response {
	logger := r.logger.With("request_id", uuid.NewString())
	logger.DebugContext(ctx, "webhook received", "body", string(body))

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		logger.ErrorContext(ctx, "exception occurred", "error", fmt.Errorf("decode webhook body: %w", err))
		return newResponse(http.StatusInternalServerError, bodyFailed)
	}

	if len(env.Events) == 0 {
		logger.InfoContext(ctx, "no events to process")
		return newResponse(http.StatusBadRequest, bodyNotExecuted)
	}

	var ev Event
	if err := json.Unmarshal(env.Events[0], &ev); err != nil {
		logger.ErrorContext(ctx, "exception occurred", "error", fmt.Errorf("decode first event: %w", err))
		return newResponse(http.StatusInternalServerError, bodyFailed)
	}

	if err := r.dispatch(ctx, logger, ev); err != nil {
		logger.ErrorContext(ctx, "exception occurred", "error", err)
		return newResponse(http.StatusInternalServerError, bodyFailed)
	}
	return newResponse(http.StatusOK, bodySucceeded)
}

// FailureResponse is the 500 reply for failures outside Handle, such as an
// envelope the hosting platform could not unwrap.
func FailureResponse() Response {
	return newResponse(http.StatusInternalServerError, bodyFailed)
}

// Dispatch runs the rule table for a single event.
func (r *Router) Dispatch(ctx context.Context, ev Event) error {
	return r.dispatch(ctx, r.logger.With("request_id", uuid.NewString()), ev)
}

// PushScheduledForecast runs the scheduled-forecast path as if the trigger
// message had arrived through the webhook.
func (r *Router) PushScheduledForecast(ctx context.Context) error {
	return r.Dispatch(ctx, ScheduledForecastEvent())
}

// ScheduledForecastEvent is the synthetic event a scheduler sends.
func ScheduledForecastEvent() Event {
	return Event{
		Type:    "message",
		Message: TextMessage{Text: TriggerScheduledForecast},
	}
}

func (r *Router) dispatch(ctx context.Context, logger *slog.Logger, ev Event) error {
	rl, ok := r.match(ev)
	if !ok {
		kind := ev.Type
		if ev.Message != nil {
			kind += "/" + ev.Message.MessageType()
		}
		return fmt.Errorf("%w: %s", ErrUnsupportedEvent, kind)
	}

	logger = logger.With("rule", rl.name)
	logger.InfoContext(ctx, "event matched")
	if err := rl.handle(ctx, logger, ev); err != nil {
		return fmt.Errorf("%s: %w", rl.name, err)
	}
	return nil
}
