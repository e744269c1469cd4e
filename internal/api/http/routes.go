package httpapi

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"

	"github.com/i474232898/weather-line-bot/internal/bot"
)

const signatureHeader = "X-Line-Signature"

// WebhookHandler processes a raw webhook body.
type WebhookHandler interface {
	Handle(ctx context.Context, body []byte) bot.Response
}

// RegisterRoutes wires the LINE webhook into the Fiber app. When channelSecret
// is non-empty every request must carry a valid X-Line-Signature.
func RegisterRoutes(app *fiber.App, handler WebhookHandler, channelSecret string, logger *slog.Logger) {
	app.Post("/callback", func(c *fiber.Ctx) error {
		body := c.Body()

		if channelSecret != "" && !webhook.ValidateSignature(channelSecret, c.Get(signatureHeader), body) {
			logger.WarnContext(c.UserContext(), "webhook signature mismatch", "ip", c.IP())
			return fiber.NewError(fiber.StatusUnauthorized, "invalid signature")
		}

		resp := handler.Handle(c.UserContext(), body)
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Status(resp.StatusCode).SendString(resp.Body)
	})
}
