package rabbitmq_test

import (
	"context"
	"encoding/json"
	"errors"

	"uptime-monitor/pkg/rabbitmq"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordingSender struct {
	phones   []string
	messages []string
	err      error
}

func (s *recordingSender) Send(_ context.Context, phone, message string) error {
	s.phones = append(s.phones, phone)
	s.messages = append(s.messages, message)
	return s.err
}

var _ = Describe("EventHandler", func() {
	var (
		sender  *recordingSender
		handler *rabbitmq.EventHandler
		ctx     context.Context
	)

	BeforeEach(func() {
		sender = &recordingSender{}
		handler = rabbitmq.NewEventHandler(sender)
		ctx = context.Background()
	})

	It("relays an alert event to the sender", func() {
		body, err := rabbitmq.NewAlertEvent("155512345678", "[MONITOR] Alert")
		Expect(err).NotTo(HaveOccurred())

		Expect(handler.HandleBody(ctx, body)).To(Succeed())
		Expect(sender.phones).To(Equal([]string{"155512345678"}))
		Expect(sender.messages).To(Equal([]string{"[MONITOR] Alert"}))
	})

	It("ignores unknown event types", func() {
		body, err := json.Marshal(rabbitmq.EventPayload{
			ID:      uuid.New(),
			Type:    "user.created",
			Payload: json.RawMessage(`{}`),
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(handler.HandleBody(ctx, body)).To(Succeed())
		Expect(sender.phones).To(BeEmpty())
	})

	It("rejects malformed bodies", func() {
		Expect(handler.HandleBody(ctx, []byte("not json"))).NotTo(Succeed())
	})

	It("rejects alert events without a phone", func() {
		body, err := rabbitmq.NewAlertEvent("  ", "hello")
		Expect(err).NotTo(HaveOccurred())

		Expect(handler.HandleBody(ctx, body)).NotTo(Succeed())
		Expect(sender.phones).To(BeEmpty())
	})

	It("returns the sender's error so the delivery is nacked", func() {
		sender.err = errors.New("twilio down")
		body, err := rabbitmq.NewAlertEvent("155512345678", "hello")
		Expect(err).NotTo(HaveOccurred())

		Expect(handler.HandleBody(ctx, body)).To(MatchError("twilio down"))
	})
})
