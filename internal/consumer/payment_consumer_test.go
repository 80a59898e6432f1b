package consumer

import (
	"context"
	"encoding/json"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vivutravel/service-booking/internal/kafka"
)

// Malformed and unrecognized messages must be acked, not redelivered; a
// poison message would otherwise wedge the partition.

func TestHandleMessage_MalformedPayload(t *testing.T) {
	c := &PaymentEventConsumer{logger: zap.NewNop()}

	err := c.handleMessage(context.Background(), kafkago.Message{Value: []byte("not json")})
	assert.NoError(t, err)
}

func TestHandleMessage_UnknownEventType(t *testing.T) {
	c := &PaymentEventConsumer{logger: zap.NewNop()}

	ce, err := kafka.NewCloudEvent("service-payment", "payment.refunded", map[string]string{"x": "y"})
	require.NoError(t, err)
	raw, err := json.Marshal(ce)
	require.NoError(t, err)

	err = c.handleMessage(context.Background(), kafkago.Message{Value: raw})
	assert.NoError(t, err)
}

func TestHandleMessage_MalformedEventData(t *testing.T) {
	c := &PaymentEventConsumer{logger: zap.NewNop()}

	ce := kafka.CloudEvent{Type: "payment.succeeded", Data: json.RawMessage(`"garbage"`)}
	raw, err := json.Marshal(ce)
	require.NoError(t, err)

	err = c.handleMessage(context.Background(), kafkago.Message{Value: raw})
	assert.NoError(t, err)
}
