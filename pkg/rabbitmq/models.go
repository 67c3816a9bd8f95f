package rabbitmq

import (
	"encoding/json"

	"github.com/google/uuid"
)

const EventAlertSMS = "alert.sms"

type EventPayload struct {
	ID      uuid.UUID       `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AlertMessage is the payload of an alert.sms event.
type AlertMessage struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func NewAlertEvent(phone, message string) ([]byte, error) {
	payload, err := json.Marshal(AlertMessage{Phone: phone, Message: message})
	if err != nil {
		return nil, err
	}

	return json.Marshal(EventPayload{
		ID:      uuid.New(),
		Type:    EventAlertSMS,
		Payload: payload,
	})
}
