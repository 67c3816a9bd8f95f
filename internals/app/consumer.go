package app

import (
	"context"
	"errors"

	"uptime-monitor/config"
	"uptime-monitor/pkg/rabbitmq"
	"uptime-monitor/pkg/sms"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Notifier relays alert events from the broker queue to Twilio.
type Notifier struct {
	conn     *amqp091.Connection
	consumer *rabbitmq.Consumer
	handler  *rabbitmq.EventHandler
	logger   *zerolog.Logger
}

func NewNotifier(cfg *config.Config, logger *zerolog.Logger) (*Notifier, error) {
	if cfg.RabbitMQ.QueueName == "" {
		return nil, errors.New("rabbitmq.queue_name is required for the notifier")
	}
	if cfg.Twilio.AccountSID == "" || cfg.Twilio.AuthToken == "" || cfg.Twilio.FromPhone == "" {
		return nil, errors.New("twilio credentials are required for the notifier")
	}

	conn, err := rabbitmq.NewConnection(&cfg.RabbitMQ, logger)
	if err != nil {
		return nil, err
	}
	if err := rabbitmq.SetupTopology(conn, &cfg.RabbitMQ); err != nil {
		conn.Close()
		return nil, err
	}

	consumer, err := rabbitmq.NewConsumer(conn, cfg.RabbitMQ.QueueName, cfg.Alert.WorkerCount, logger)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Notifier{
		conn:     conn,
		consumer: consumer,
		handler:  rabbitmq.NewEventHandler(sms.NewClient(&cfg.Twilio)),
		logger:   logger,
	}, nil
}

func (n *Notifier) Start(ctx context.Context) {
	// Consume ranges over the delivery channel, so it gets its own goroutine
	go func() {
		if err := n.consumer.Consume(ctx, n.handler); err != nil {
			n.logger.Error().
				Err(err).
				Msg("rabbitmq consumer stopped")
		}
	}()
}

func (n *Notifier) Shutdown(ctx context.Context) error {
	err := n.consumer.Shutdown(ctx)
	return errors.Join(err, n.conn.Close())
}
