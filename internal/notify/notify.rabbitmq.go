package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/itsatony/sensordash/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
	nuts "github.com/vaudience/go-nuts"
)

// RabbitNotifier publishes alerts as JSON to a topic exchange.
type RabbitNotifier struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
}

// NewRabbitNotifier dials url and declares a durable topic exchange.
func NewRabbitNotifier(url, exchange, routingKey string) (*RabbitNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	nuts.L.Infof("[RabbitMQ] Publishing alerts to exchange %s with key %s", exchange, routingKey)
	return &RabbitNotifier{
		conn:       conn,
		channel:    ch,
		exchange:   exchange,
		routingKey: routingKey,
	}, nil
}

func (p *RabbitNotifier) Notify(ctx context.Context, n models.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	return p.channel.PublishWithContext(ctx,
		p.exchange,
		p.routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   n.ID,
			Timestamp:   n.CreatedAt,
			Body:        body,
		},
	)
}

func (p *RabbitNotifier) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
