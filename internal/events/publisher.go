// Package events publishes order lifecycle notifications for other services.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
)

const (
	PatternOrderCreated = "order.created"
	PatternOrderPaid    = "order.paid"
)

type Publisher interface {
	Publish(ctx context.Context, pattern string, data interface{}) error
	Close()
}

// Message is the JSON envelope sent on the exchange.
type Message struct {
	Pattern string      `json:"pattern"`
	Data    interface{} `json:"data"`
}

func encodeMessage(pattern string, data interface{}) ([]byte, error) {
	body, err := json.Marshal(Message{Pattern: pattern, Data: data})
	if err != nil {
		return nil, fmt.Errorf("events: marshal %s message: %w", pattern, err)
	}
	return body, nil
}

type amqpPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewAMQPPublisher declares a durable topic exchange and publishes to it
// using the pattern as routing key.
func NewAMQPPublisher(amqpURL, exchange string) (Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("events: connect to broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("events: open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("events: declare exchange %s: %w", exchange, err)
	}

	log.Info().Str("exchange", exchange).Msg("Connected to message broker")

	return &amqpPublisher{conn: conn, channel: channel, exchange: exchange}, nil
}

func (p *amqpPublisher) Publish(ctx context.Context, pattern string, data interface{}) error {
	body, err := encodeMessage(pattern, data)
	if err != nil {
		return err
	}

	err = p.channel.Publish(
		p.exchange,
		pattern,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("events: publish %s: %w", pattern, err)
	}

	log.Debug().Str("pattern", pattern).Str("exchange", p.exchange).Msg("Event published")
	return nil
}

func (p *amqpPublisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

type noopPublisher struct{}

// NewNoopPublisher is used when no broker is configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(ctx context.Context, pattern string, data interface{}) error {
	return nil
}

func (noopPublisher) Close() {}
