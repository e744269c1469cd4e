// Package line sends replies and push messages through the LINE Messaging API.
package line

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// Messenger delivers bot output back to LINE.
type Messenger struct {
	api    *messaging_api.MessagingApiAPI
	logger *slog.Logger
}

// NewMessenger creates a Messenger for the channel access token.
// Options are forwarded to the SDK client (endpoint and HTTP client overrides).
func NewMessenger(channelToken string, logger *slog.Logger, opts ...messaging_api.MessagingApiAPIOption) (*Messenger, error) {
	api, err := messaging_api.NewMessagingApiAPI(channelToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("create messaging api client: %w", err)
	}
	return &Messenger{api: api, logger: logger}, nil
}

// ReplyText answers the event identified by replyToken with a text message.
func (m *Messenger) ReplyText(ctx context.Context, replyToken, text string) error {
	return m.reply(ctx, replyToken, &messaging_api.TextMessage{Text: text})
}

// ReplyFlex answers with a Flex message built from the raw container JSON.
func (m *Messenger) ReplyFlex(ctx context.Context, replyToken, altText string, contents []byte) error {
	container, err := messaging_api.UnmarshalFlexContainer(contents)
	if err != nil {
		return fmt.Errorf("decode flex container: %w", err)
	}
	return m.reply(ctx, replyToken, &messaging_api.FlexMessage{AltText: altText, Contents: container})
}

func (m *Messenger) reply(ctx context.Context, replyToken string, msg messaging_api.MessageInterface) error {
	_, err := m.api.WithContext(ctx).ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   []messaging_api.MessageInterface{msg},
	})
	if err != nil {
		return fmt.Errorf("line reply: %w", err)
	}
	m.logger.DebugContext(ctx, "line reply sent", "type", msg.GetType())
	return nil
}

// PushText sends a text message to a user without a reply token.
func (m *Messenger) PushText(ctx context.Context, to, text string) error {
	if to == "" {
		return fmt.Errorf("line push: recipient is not configured")
	}

	retryKey := uuid.NewString()
	_, err := m.api.WithContext(ctx).PushMessage(&messaging_api.PushMessageRequest{
		To:       to,
		Messages: []messaging_api.MessageInterface{&messaging_api.TextMessage{Text: text}},
	}, retryKey)
	if err != nil {
		return fmt.Errorf("line push: %w", err)
	}
	m.logger.DebugContext(ctx, "line push sent", "retry_key", retryKey)
	return nil
}
