package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/tuitionpay/internal/pkg/logger"
)

// StreamConfig describes a JetStream stream owned by this system
type StreamConfig struct {
	Name      string
	Subjects  []string
	Retention jetstream.RetentionPolicy
	Storage   jetstream.StorageType
	Replicas  int
	MaxAge    time.Duration
	MaxBytes  int64
	MaxMsgs   int64
	Discard   jetstream.DiscardPolicy
}

// ConsumerConfig describes a durable JetStream consumer
type ConsumerConfig struct {
	StreamName    string
	ConsumerName  string
	FilterSubject string
	DeliverPolicy jetstream.DeliverPolicy
	AckPolicy     jetstream.AckPolicy
	AckWait       time.Duration
	MaxDeliver    int
	ReplayPolicy  jetstream.ReplayPolicy
	RateLimitBps  uint64
	MaxAckPending int
}

// Client wraps a NATS connection and its JetStream context
type Client struct {
	conn      *nats.Conn
	js        jetstream.JetStream
	mu        sync.RWMutex
	consumers map[string]jetstream.Consumer
}

// NewClient connects to NATS and enables JetStream
func NewClient(url string) (*Client, error) {
	conn, err := nats.Connect(url,
		nats.Name("tuitionpay"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", logger.Err(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", logger.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS server: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return &Client{
		conn:      conn,
		js:        js,
		consumers: make(map[string]jetstream.Consumer),
	}, nil
}

// GetConn returns the underlying connection
func (c *Client) GetConn() *nats.Conn {
	return c.conn
}

// IsConnected reports whether the connection is currently usable
func (c *Client) IsConnected() bool {
	return c.conn != nil && c.conn.IsConnected()
}

// Publish sends a core NATS message to the specified subject
func (c *Client) Publish(subject string, data []byte) error {
	if err := c.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// PublishEvent encodes v as JSON and publishes it to JetStream, waiting for the ack
func (c *Client) PublishEvent(ctx context.Context, subject string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := c.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", subject, err)
	}
	return nil
}

// CreateStream creates the stream or updates it in place
func (c *Client) CreateStream(ctx context.Context, config StreamConfig) error {
	_, err := c.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      config.Name,
		Subjects:  config.Subjects,
		Retention: config.Retention,
		Storage:   config.Storage,
		Replicas:  config.Replicas,
		MaxAge:    config.MaxAge,
		MaxBytes:  config.MaxBytes,
		MaxMsgs:   config.MaxMsgs,
		Discard:   config.Discard,
	})
	if err != nil {
		return fmt.Errorf("failed to create stream %s: %w", config.Name, err)
	}
	return nil
}

// EnsureStreams creates every stream in configs
func (c *Client) EnsureStreams(ctx context.Context, configs []StreamConfig) error {
	for _, cfg := range configs {
		if err := c.CreateStream(ctx, cfg); err != nil {
			return err
		}
		logger.Info("JetStream stream ready",
			logger.String("stream", cfg.Name),
			logger.Strings("subjects", cfg.Subjects))
	}
	return nil
}

// CreateConsumer creates or updates a durable consumer and caches it
func (c *Client) CreateConsumer(ctx context.Context, config ConsumerConfig) (jetstream.Consumer, error) {
	consumer, err := c.js.CreateOrUpdateConsumer(ctx, config.StreamName, jetstream.ConsumerConfig{
		Durable:       config.ConsumerName,
		FilterSubject: config.FilterSubject,
		DeliverPolicy: config.DeliverPolicy,
		AckPolicy:     config.AckPolicy,
		AckWait:       config.AckWait,
		MaxDeliver:    config.MaxDeliver,
		ReplayPolicy:  config.ReplayPolicy,
		RateLimit:     config.RateLimitBps,
		MaxAckPending: config.MaxAckPending,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer %s on %s: %w", config.ConsumerName, config.StreamName, err)
	}

	c.mu.Lock()
	c.consumers[config.StreamName+":"+config.ConsumerName] = consumer
	c.mu.Unlock()

	return consumer, nil
}

// ListStreams returns the names of all streams known to the server
func (c *Client) ListStreams(ctx context.Context) ([]string, error) {
	lister := c.js.StreamNames(ctx)
	var names []string
	for name := range lister.Name() {
		names = append(names, name)
	}
	if err := lister.Err(); err != nil {
		return names, fmt.Errorf("failed to list streams: %w", err)
	}
	return names, nil
}

// Close drains the connection so in-flight handlers finish
func (c *Client) Close() {
	if c.conn == nil {
		return
	}
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
	}
}
