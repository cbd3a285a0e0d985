// Package ingest pkg/ingest/consumer.go
package ingest

import (
	"fmt"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/plantradar/plantradar/pkg/models"
)

const (
	defaultBufferSize       = 1024
	defaultQoS              = 1
	connectTimeout          = 5 * time.Second
	connectRetryInterval    = 5 * time.Second
	maxReconnectInterval    = 15 * time.Second
	keepAliveInterval       = 30 * time.Second
	disconnectQuiesceMillis = 250
)

// Config holds the MQTT broker connection settings.
type Config struct {
	BrokerURL  string   `json:"broker_url"`
	ClientID   string   `json:"client_id,omitempty"`
	Username   string   `json:"username,omitempty"`
	Password   string   `json:"password,omitempty"`
	Topics     []string `json:"topics,omitempty"`
	QoS        byte     `json:"qos,omitempty"`
	BufferSize int      `json:"buffer_size,omitempty"`
}

// DefaultTopics returns the topic families carrying plant telemetry.
func DefaultTopics() []string {
	return []string{"factory/+/telemetry", "sensors/+/telemetry"}
}

// Consumer subscribes to telemetry topics and buffers decoded
// readings until the poll loop drains them. When the buffer is full
// the oldest reading is dropped; live telemetry beats stale.
type Consumer struct {
	mu      sync.Mutex
	client  mqtt.Client
	config  Config
	buffer  chan models.RawReading
	started bool
}

// NewConsumer creates a consumer. The client id gets a random suffix
// so restarted instances never evict each other's broker session.
func NewConsumer(cfg Config) (*Consumer, error) {
	if cfg.BrokerURL == "" {
		return nil, ErrBrokerURLRequired
	}

	if cfg.ClientID == "" {
		cfg.ClientID = fmt.Sprintf("plantradar-%s", uuid.NewString()[:8])
	}

	if len(cfg.Topics) == 0 {
		cfg.Topics = DefaultTopics()
	}

	if cfg.QoS == 0 {
		cfg.QoS = defaultQoS
	}

	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultBufferSize
	}

	c := &Consumer{
		config: cfg,
		buffer: make(chan models.RawReading, cfg.BufferSize),
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.BrokerURL)
	opts.SetClientID(cfg.ClientID)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}

	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(connectTimeout)
	opts.SetConnectRetryInterval(connectRetryInterval)
	opts.SetMaxReconnectInterval(maxReconnectInterval)
	opts.SetKeepAlive(keepAliveInterval)

	opts.SetOnConnectHandler(c.onConnect)
	opts.SetConnectionLostHandler(c.onConnectionLost)

	c.client = mqtt.NewClient(opts)

	return c, nil
}

// Start connects to the broker. Subscriptions are established by the
// connect handler so they survive reconnects.
func (c *Consumer) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	token := c.client.Connect()
	token.Wait()

	if err := token.Error(); err != nil {
		return fmt.Errorf("error connecting to broker %s: %w", c.config.BrokerURL, err)
	}

	c.started = true

	return nil
}

// Stop disconnects from the broker.
func (c *Consumer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return
	}

	c.client.Disconnect(disconnectQuiesceMillis)
	c.started = false
}

// Drain returns all buffered readings without blocking.
func (c *Consumer) Drain() []models.RawReading {
	var readings []models.RawReading

	for {
		select {
		case reading := <-c.buffer:
			readings = append(readings, reading)
		default:
			return readings
		}
	}
}

func (c *Consumer) onConnect(client mqtt.Client) {
	log.Printf("Connected to MQTT broker %s", c.config.BrokerURL)

	for _, topic := range c.config.Topics {
		token := client.Subscribe(topic, c.config.QoS, c.handleMessage)
		token.Wait()

		if err := token.Error(); err != nil {
			log.Printf("Error subscribing to %s: %v", topic, err)
			continue
		}

		log.Printf("Subscribed to %s", topic)
	}
}

func (c *Consumer) onConnectionLost(_ mqtt.Client, err error) {
	log.Printf("MQTT connection lost: %v", err)
}

func (c *Consumer) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	readings, err := ParseMessage(msg.Topic(), msg.Payload(), time.Now())
	if err != nil {
		log.Printf("Dropping message on %s: %v", msg.Topic(), err)
		return
	}

	for _, reading := range readings {
		c.push(reading)
	}
}

// push enqueues a reading, evicting the oldest buffered reading when
// the buffer is full.
func (c *Consumer) push(reading models.RawReading) {
	for {
		select {
		case c.buffer <- reading:
			return
		default:
			select {
			case dropped := <-c.buffer:
				log.Printf("Telemetry buffer full, dropping reading for %s", dropped.SensorID)
			default:
			}
		}
	}
}
