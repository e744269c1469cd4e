package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/i474232898/weather-line-bot/internal/app"
	"github.com/i474232898/weather-line-bot/internal/bot"
	"github.com/i474232898/weather-line-bot/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := cfg.NewLogger()

	router, err := app.NewRouter(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("failed to build router: %v", err)
	}

	lambda.Start(newHandler(router, logger))
}

// newHandler adapts the router to API Gateway proxy events. Scheduled invocations
// arrive the same way, with the trigger message in the body.
func newHandler(router *bot.Router, logger *slog.Logger) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		body := []byte(req.Body)
		if req.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(req.Body)
			if err != nil {
				logger.ErrorContext(ctx, "exception occurred", "error", fmt.Errorf("decode base64 body: %w", err))
				return proxyResponse(bot.FailureResponse()), nil
			}
			body = decoded
		}

		return proxyResponse(router.Handle(ctx, body)), nil
	}
}

func proxyResponse(resp bot.Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       resp.Body,
	}
}
