package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/tdhoang/github-user-scraper/cfg"
	"github.com/tdhoang/github-user-scraper/pkg/log"
)

// Consumer reads record messages from a topic and dispatches them to the
// handler registered for the message key.
type Consumer struct {
	Config   *cfg.Config
	Logger   log.Logger
	reader   *kafka.Reader
	handlers map[string]func([]byte) error
}

// NewConsumer creates and returns a new Kafka Consumer
func NewConsumer(config *cfg.Config, logger log.Logger, topic, groupID string) *Consumer {
	if len(config.Kafka.Brokers) == 0 {
		panic("no kafka brokers configured")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Kafka.Brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		MaxWait:        time.Second,
		StartOffset:    kafka.FirstOffset,
		RetentionTime:  7 * 24 * time.Hour,
		CommitInterval: time.Second,
	})

	return &Consumer{
		Config:   config,
		Logger:   logger,
		reader:   reader,
		handlers: make(map[string]func([]byte) error),
	}
}

// RegisterHandler registers a message handler for a specific message key
func (c *Consumer) RegisterHandler(key string, handler func([]byte) error) {
	c.handlers[key] = handler
}

// Start consumes messages until the context is cancelled
func (c *Consumer) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			message, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if isCancellation(err) {
					return nil
				}
				c.Logger.Error(ctx, "Error reading message: %v", err)
				continue
			}

			key := string(message.Key)
			if handler, exists := c.handlers[key]; exists {
				if err := handler(message.Value); err != nil {
					c.Logger.Error(ctx, "Error handling message with key %s: %v", key, err)
				}
			} else {
				c.Logger.Warn(ctx, "No handler registered for message with key: %s", key)
			}
		}
	}
}

// isCancellation reports whether a read failed because the context
// ended, including cancellation errors the reader wraps.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Close closes the Kafka reader
func (c *Consumer) Close() error {
	return c.reader.Close()
}
