package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Astemirdum/bookreview-service/pkg/kafka"
	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, nil)
	event := kafka.Event{
		Type:      kafka.EventReviewCreated,
		EntityID:  "r1",
		UserID:    "u1",
		BookID:    "b1",
		Timestamp: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
	}
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		require.Equal(t, "activity", msg.Topic)
		key, err := msg.Key.Encode()
		require.NoError(t, err)
		require.Equal(t, "u1", string(key))

		value, err := msg.Value.Encode()
		require.NoError(t, err)
		var got kafka.Event
		require.NoError(t, json.Unmarshal(value, &got))
		require.Equal(t, event, got)
		return nil
	})

	pub := kafka.NewPublisher(producer, "activity")
	require.NoError(t, pub.Publish(context.Background(), event))
	require.NoError(t, pub.Close())
}

func TestPublisher_PublishErr(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := kafka.NewPublisher(producer, "")
	err := pub.Publish(context.Background(), kafka.Event{Type: kafka.EventBookCreated, UserID: "admin"})
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, pub.Close())
}

func TestConfig_Enabled(t *testing.T) {
	t.Parallel()
	require.False(t, kafka.Config{}.Enabled())
	require.True(t, kafka.Config{Addrs: []string{"localhost:9092"}}.Enabled())
	require.NoError(t, kafka.NopPublisher{}.Publish(context.Background(), kafka.Event{}))
}
