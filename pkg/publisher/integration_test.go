//go:build integration

package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/umputun/feedwatch/pkg/domain"
)

type RabbitMQIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *rabbitmq.RabbitMQContainer
	amqpURL   string
}

func (s *RabbitMQIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := rabbitmq.Run(s.ctx,
		"rabbitmq:3.13-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	amqpURL, err := container.AmqpURL(s.ctx)
	s.Require().NoError(err)
	s.amqpURL = amqpURL
}

func (s *RabbitMQIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestRabbitMQIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RabbitMQIntegrationSuite))
}

func (s *RabbitMQIntegrationSuite) TestPublisher_Connection() {
	pub, err := NewRabbitMQ(Config{URL: s.amqpURL, Exchange: "fw-conn", RoutingKey: "conn", QueueName: "fw-conn-q"})
	s.Require().NoError(err)
	s.NoError(pub.Close())
}

func (s *RabbitMQIntegrationSuite) TestPublisher_ItemsCreated() {
	cfg := Config{URL: s.amqpURL, Exchange: "fw-items", RoutingKey: "items", QueueName: "fw-items-q"}
	pub, err := NewRabbitMQ(cfg)
	s.Require().NoError(err)
	defer pub.Close()

	ev := domain.Event{
		Type:     domain.EventItemsCreated,
		FeedID:   3,
		FeedName: "news",
		Items:    []domain.Item{{ID: 10, FeedID: 3, Title: "hello", URL: "https://example.com/h", RemoteID: "h", Unread: true}},
	}
	s.Require().NoError(pub.Publish(s.ctx, ev))

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)
	s.Equal("application/json", msg.ContentType)
	s.Equal(uint8(amqp.Persistent), msg.DeliveryMode)

	var received domain.Event
	s.Require().NoError(json.Unmarshal(msg.Body, &received))
	s.Equal(domain.EventItemsCreated, received.Type)
	s.Equal("news", received.FeedName)
	s.Len(received.Items, 1)
	s.False(received.Timestamp.IsZero())
}

func (s *RabbitMQIntegrationSuite) TestPublisher_FeedDeactivated() {
	cfg := Config{URL: s.amqpURL, Exchange: "fw-deact", RoutingKey: "deact", QueueName: "fw-deact-q"}
	pub, err := NewRabbitMQ(cfg)
	s.Require().NoError(err)
	defer pub.Close()

	s.Require().NoError(pub.Publish(s.ctx, domain.Event{Type: domain.EventFeedDeactivated, FeedID: 4, FeedName: "flaky"}))

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)
	s.Equal(domain.EventFeedDeactivated, msg.Type)

	var received domain.Event
	s.Require().NoError(json.Unmarshal(msg.Body, &received))
	s.Equal(int64(4), received.FeedID)
	s.Empty(received.Items)
}

func (s *RabbitMQIntegrationSuite) consumeMessage(cfg Config) *amqp.Delivery {
	conn, err := amqp.Dial(s.amqpURL)
	s.Require().NoError(err)
	defer conn.Close()

	ch, err := conn.Channel()
	s.Require().NoError(err)
	defer ch.Close()

	msgs, err := ch.Consume(cfg.QueueName, "", true, false, false, false, nil)
	s.Require().NoError(err)

	select {
	case msg := <-msgs:
		return &msg
	case <-time.After(5 * time.Second):
		s.Fail("timeout waiting for message")
		return nil
	}
}
