package bot

import (
	"encoding/json"
	"fmt"
)

// Envelope is the webhook request body. Events stay raw so that only the first
// one, the one acted on, has to be well formed.
type Envelope struct {
	Destination string            `json:"destination"`
	Events      []json.RawMessage `json:"events"`
}

// Event is one webhook event. Message is nil for events that carry none
// (follow, unfollow, postback...).
type Event struct {
	Type       string
	ReplyToken string
	Source     Source
	Message    Message
}

type Source struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// Message is the payload of a "message" event, discriminated by its type.
type Message interface {
	MessageType() string
}

type TextMessage struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func (TextMessage) MessageType() string { return "text" }

type LocationMessage struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (LocationMessage) MessageType() string { return "location" }

// UnsupportedMessage stands in for message types the bot has no rule for
// (sticker, image, audio...).
type UnsupportedMessage struct {
	Type string
}

func (m UnsupportedMessage) MessageType() string { return m.Type }

func (e *Event) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type       string          `json:"type"`
		ReplyToken string          `json:"replyToken"`
		Source     Source          `json:"source"`
		Message    json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Type = raw.Type
	e.ReplyToken = raw.ReplyToken
	e.Source = raw.Source
	e.Message = nil

	if len(raw.Message) == 0 || string(raw.Message) == "null" {
		return nil
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw.Message, &head); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}

	switch head.Type {
	case "text":
		var m TextMessage
		if err := json.Unmarshal(raw.Message, &m); err != nil {
			return fmt.Errorf("decode text message: %w", err)
		}
		e.Message = m
	case "location":
		var m LocationMessage
		if err := json.Unmarshal(raw.Message, &m); err != nil {
			return fmt.Errorf("decode location message: %w", err)
		}
		e.Message = m
	default:
		e.Message = UnsupportedMessage{Type: head.Type}
	}
	return nil
}

// Text returns the message text and whether the event is a text message.
func (e Event) Text() (string, bool) {
	if e.Type != "message" {
		return "", false
	}
	m, ok := e.Message.(TextMessage)
	return m.Text, ok
}

// Location returns the location payload and whether the event is a location message.
func (e Event) Location() (LocationMessage, bool) {
	if e.Type != "message" {
		return LocationMessage{}, false
	}
	m, ok := e.Message.(LocationMessage)
	return m, ok
}
