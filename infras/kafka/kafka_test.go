package kafka_test

import (
	"context"
	"testing"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{Key: "booking-1", Value: map[string]string{"status": "Confirmed"}}

	out, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("booking-1"), out.Key)
	assert.JSONEq(t, `{"status":"Confirmed"}`, string(out.Value))

	bad := kafka.Message{Key: "x", Value: make(chan int)}
	_, err = bad.ToKafkaMessage()
	assert.Error(t, err)
}

func TestSendMessages_Disabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Enable = false

	client := kafka.New(cfg, mocks.NewOtel())

	err := client.SendMessages(context.Background(), "bookings", kafka.Message{Key: "k", Value: "v"})
	assert.NoError(t, err)
}
