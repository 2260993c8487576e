// Package publisher emits feed events to RabbitMQ
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/umputun/feedwatch/pkg/domain"
)

// RabbitMQ publishes events as persistent JSON messages to a direct exchange
type RabbitMQ struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	mu         sync.Mutex
}

// Config defines broker connection and topology
type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

// NewRabbitMQ connects to the broker and declares durable exchange and queue bound by routing key
func NewRabbitMQ(cfg Config) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	closeAll := func() {
		_ = ch.Close()
		_ = conn.Close()
	}

	if err = ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		closeAll()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(cfg.QueueName, true, false, false, false, nil)
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err = ch.QueueBind(q.Name, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		closeAll()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	lgr.Printf("[INFO] connected to rabbitmq, exchange %s, queue %s, routing key %s",
		cfg.Exchange, q.Name, cfg.RoutingKey)

	return &RabbitMQ{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
	}, nil
}

// Publish sends the event to the exchange
func (r *RabbitMQ) Publish(ctx context.Context, ev domain.Event) error {
	msg, err := message(ev)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.channel.PublishWithContext(ctx, r.exchange, r.routingKey, false, false, msg); err != nil {
		return fmt.Errorf("publish %s event: %w", ev.Type, err)
	}

	lgr.Printf("[DEBUG] published %s event for feed %s", ev.Type, ev.FeedName)
	return nil
}

// Close closes the channel and the connection
func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		_ = r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// message encodes event, the timestamp is set if missing
func message(ev domain.Event) (amqp.Publishing, error) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}
	return amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Type:         ev.Type,
		Timestamp:    ev.Timestamp,
		Body:         body,
	}, nil
}
