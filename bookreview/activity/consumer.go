package activity

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookreview-service/pkg/kafka"
)

type recordFunc func(ctx context.Context, event kafka.Event) error

// Consumer is a sarama group handler decoding activity events.
type Consumer struct {
	record recordFunc
	log    *zap.Logger
}

func NewConsumer(record recordFunc, log *zap.Logger) *Consumer {
	return &Consumer{
		record: record,
		log:    log.Named("consumer"),
	}
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim marks undecodable messages so they are not redelivered.
// Messages whose handler failed stay unmarked.
func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				c.log.Debug("message channel was closed")
				return nil
			}
			var event kafka.Event
			if err := json.Unmarshal(message.Value, &event); err != nil {
				c.log.Error("decode event", zap.Error(err), zap.Int64("offset", message.Offset))
				session.MarkMessage(message, "")
				continue
			}

			if err := c.record(session.Context(), event); err != nil {
				c.log.Error("record event", zap.Error(err))
				continue
			}

			c.log.Debug("event consumed",
				zap.String("type", string(event.Type)),
				zap.String("userId", event.UserID),
				zap.Time("timestamp", message.Timestamp),
				zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
