package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type Publisher struct {
	mu         sync.Mutex                  // one publish and its confirm at a time
	ch         *amqp091.Channel            // AMQP channel for publishing messages
	confirms   <-chan amqp091.Confirmation // Channel to receive publish confirmations
	exchange   string                      // Exchange to publish messages to
	routingKey string                      // Routing key for the messages
}

func NewPublisher(conn *amqp091.Connection, exchange, routingKey string) (*Publisher, error) {
	if conn == nil {
		return nil, errors.New("AMQP connection is nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		ch.Close()
		return nil, err
	}

	confirms := ch.NotifyPublish(make(chan amqp091.Confirmation, 100))

	return &Publisher{
		ch:         ch,
		confirms:   confirms,
		exchange:   exchange,
		routingKey: routingKey,
	}, nil
}

// Send publishes an alert.sms event and waits for the broker's confirm.
func (p *Publisher) Send(ctx context.Context, phone, message string) error {
	body, err := NewAlertEvent(phone, message)
	if err != nil {
		return err
	}
	return p.PublishBatch(ctx, [][]byte{body})
}

const confirmTimeout = 5 * time.Second

func (p *Publisher) PublishBatch(ctx context.Context, bodies [][]byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(bodies) == 0 {
		return nil
	}
	if p.ch == nil {
		return errors.New("AMQP channel is nil")
	}

	first := p.ch.GetNextPublishSeqNo()
	for _, body := range bodies {
		if err := p.publish(ctx, body); err != nil {
			return err
		}
	}

	return awaitConfirms(ctx, p.confirms, first, first+uint64(len(bodies))-1, confirmTimeout)
}

// awaitConfirms waits until every delivery tag in [first, last] is acked.
// Confirms for tags below first belong to earlier publishes that gave up
// waiting and are skipped.
func awaitConfirms(ctx context.Context, confirms <-chan amqp091.Confirmation, first, last uint64, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case confirm, ok := <-confirms:
			if !ok {
				return errors.New("publish confirms channel closed")
			}
			if confirm.DeliveryTag < first {
				continue
			}
			if !confirm.Ack {
				return fmt.Errorf("publish %d not acknowledged by broker", confirm.DeliveryTag)
			}
			if confirm.DeliveryTag >= last {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return errors.New("publish confirms timeout")
		}
	}
}

func (p *Publisher) publish(ctx context.Context, body []byte) error {
	if p.ch == nil {
		return errors.New("AMQP channel is nil")
	}

	return p.ch.PublishWithContext(
		ctx,
		p.exchange,
		p.routingKey,
		false,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Body:         body,
		},
	)
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		return p.ch.Close()
	}
	return nil
}
