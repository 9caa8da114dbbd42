package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishAlert_SendsEventToTopic(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var event AlertEvent
		if err := json.Unmarshal(val, &event); err != nil {
			return err
		}
		assert.Equal(t, EventTypeAlertRaised, event.EventType)
		assert.Equal(t, "ORDER_READY", event.Code)
		assert.NotEmpty(t, event.EventID)
		return nil
	})

	p := NewPublisherWithProducer(producer, nil, "")
	err := p.PublishAlert(context.Background(), AlertEvent{
		Code:      "ORDER_READY",
		Title:     "New order generated",
		Timestamp: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestPublishAlert_PropagatesSendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewPublisherWithProducer(producer, nil, "alerts")
	err := p.PublishAlert(context.Background(), AlertEvent{Code: "ITEMS_TO_EXPIRE"})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}
