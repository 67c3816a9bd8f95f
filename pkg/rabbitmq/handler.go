package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rabbitmq/amqp091-go"
)

// Sender delivers a text to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// EventHandler relays alert.sms events to a Sender.
type EventHandler struct {
	sender Sender
}

func NewEventHandler(sender Sender) *EventHandler {
	return &EventHandler{
		sender: sender,
	}
}

func (h *EventHandler) Handle(ctx context.Context, msg amqp091.Delivery) error {
	return h.HandleBody(ctx, msg.Body)
}

func (h *EventHandler) HandleBody(ctx context.Context, body []byte) error {
	var event EventPayload
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}

	if event.Type != EventAlertSMS {
		return nil // ignore unknown events
	}

	var payload AlertMessage
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return err
	}
	if strings.TrimSpace(payload.Phone) == "" || payload.Message == "" {
		return errors.New("alert event without phone or message")
	}

	return h.sender.Send(ctx, payload.Phone, payload.Message)
}
