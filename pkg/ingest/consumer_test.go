package ingest

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 1 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 0 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

func TestNewConsumerValidation(t *testing.T) {
	_, err := NewConsumer(Config{})
	assert.ErrorIs(t, err, ErrBrokerURLRequired)
}

func TestNewConsumerDefaults(t *testing.T) {
	c, err := NewConsumer(Config{BrokerURL: "tcp://localhost:1883"})
	require.NoError(t, err)

	assert.NotEmpty(t, c.config.ClientID)
	assert.Equal(t, DefaultTopics(), c.config.Topics)
	assert.Equal(t, byte(1), c.config.QoS)
	assert.Equal(t, defaultBufferSize, cap(c.buffer))
}

func TestHandleMessageBuffersReadings(t *testing.T) {
	c, err := NewConsumer(Config{BrokerURL: "tcp://localhost:1883"})
	require.NoError(t, err)

	c.handleMessage(nil, fakeMessage{
		topic:   "factory/extruder-01/telemetry",
		payload: []byte(`{"temperature": 65, "vibration": 2}`),
	})

	readings := c.Drain()
	require.Len(t, readings, 2)
	assert.Empty(t, c.Drain(), "drain empties the buffer")
}

func TestHandleMessageDropsMalformed(t *testing.T) {
	c, err := NewConsumer(Config{BrokerURL: "tcp://localhost:1883"})
	require.NoError(t, err)

	c.handleMessage(nil, fakeMessage{
		topic:   "factory/extruder-01/telemetry",
		payload: []byte(`broken`),
	})

	assert.Empty(t, c.Drain())
}

func TestPushEvictsOldestWhenFull(t *testing.T) {
	c, err := NewConsumer(Config{BrokerURL: "tcp://localhost:1883", BufferSize: 3})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		c.handleMessage(nil, fakeMessage{
			topic:   "sensors/opcua_temperature/telemetry",
			payload: []byte(fmt.Sprintf(`{"value": %d, "timestamp": "2026-03-01T12:00:0%dZ"}`, i, i)),
		})
	}

	readings := c.Drain()
	require.Len(t, readings, 3)

	// The two oldest readings were evicted.
	assert.Equal(t, 2.0, readings[0].Value)
	assert.Equal(t, 4.0, readings[2].Value)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 4, 0, time.UTC), readings[2].Timestamp)
}
