package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

const ActivityTopic = "bookreview.activity"

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS"`
	Topic string   `envconfig:"KAFKA_TOPIC" default:"bookreview.activity"`
	Group string   `envconfig:"KAFKA_GROUP" default:"bookreview-activity"`
}

func (cfg Config) Enabled() bool {
	return len(cfg.Addrs) > 0
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

type EventType string

const (
	EventBookCreated   EventType = "book.created"
	EventReviewCreated EventType = "review.created"
	EventUserUpserted  EventType = "user.upserted"
)

type Event struct {
	Type      EventType `json:"type"`
	EntityID  string    `json:"entityId"`
	UserID    string    `json:"userId"`
	BookID    string    `json:"bookId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

func NewPublisher(producer sarama.SyncProducer, topic string) Publisher {
	if topic == "" {
		topic = ActivityTopic
	}
	return &publisher{producer: producer, topic: topic}
}

type publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// Publish keys messages by user id so one user's activity stays ordered.
func (p *publisher) Publish(_ context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(event.UserID),
		Value:     sarama.ByteEncoder(data),
		Timestamp: event.Timestamp,
	}
	if _, _, err = p.producer.SendMessage(msg); err != nil {
		return errors.Wrap(err, "kafka send")
	}
	return nil
}

func (p *publisher) Close() error {
	return p.producer.Close()
}

// NopPublisher drops events, used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
