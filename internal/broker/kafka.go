package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"backoffice/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const unknownEventType = "UNKNOWN"

// fetchRetryDelay is the pause after a failed fetch before the next attempt
var fetchRetryDelay = time.Second

// messageWriter is the part of *kafka.Writer the producer uses
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// messageReader is the part of *kafka.Reader the consumer uses
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer writes domain events to the events topic
type Producer struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

// NewProducer creates a producer. Messages are partitioned by key so every
// event of one product or order keeps its order.
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	return newProducer(writer, topic)
}

func newProducer(writer messageWriter, topic string) *Producer {
	return &Producer{
		writer: writer,
		topic:  topic,
		logger: util.GetLogger(),
	}
}

// PublishEvent encodes event as JSON and writes it under key
func (p *Producer) PublishEvent(ctx context.Context, key string, event interface{}) error {
	eventType := eventTypeOf(event)

	value, err := json.Marshal(event)
	if err != nil {
		p.publishFailed(key, eventType, err)
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		p.publishFailed(key, eventType, err)
		return fmt.Errorf("failed to write %s event to %s: %w", eventType, p.topic, err)
	}

	p.logger.Debug("Event published",
		zap.String("topic", p.topic),
		zap.String("key", key),
		zap.String("event_type", eventType))
	return nil
}

func (p *Producer) publishFailed(key, eventType string, err error) {
	util.EventPublishFailures.WithLabelValues(eventType).Inc()
	p.logger.Error("Failed to publish event",
		zap.String("topic", p.topic),
		zap.String("key", key),
		zap.String("event_type", eventType),
		zap.Error(err))
}

// Close flushes pending writes and closes the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}

// eventTypeOf reads the type of events embedding models.BaseEvent
func eventTypeOf(event interface{}) string {
	if e, ok := event.(interface{ Type() string }); ok && e.Type() != "" {
		return e.Type()
	}
	return unknownEventType
}

// Consumer reads the events topic as part of a consumer group
type Consumer struct {
	reader messageReader
	topic  string
	logger *zap.Logger
}

// NewConsumer creates a consumer that starts at the newest offset when the
// group has no committed position
func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.LastOffset,
	})

	return newConsumer(reader, topic)
}

func newConsumer(reader messageReader, topic string) *Consumer {
	return &Consumer{
		reader: reader,
		topic:  topic,
		logger: util.GetLogger(),
	}
}

// Close closes the consumer
func (c *Consumer) Close() error {
	return c.reader.Close()
}

// MessageHandler processes one message
type MessageHandler func(ctx context.Context, msg kafka.Message) error

// StartConsuming feeds messages to handler until ctx is done, then returns
// ctx.Err(). A message is committed only after handler succeeds; failed
// messages are logged and skipped.
func (c *Consumer) StartConsuming(ctx context.Context, handler MessageHandler) error {
	c.logger.Info("Consumer started", zap.String("topic", c.topic))

	for {
		if err := ctx.Err(); err != nil {
			c.logger.Info("Consumer stopped", zap.String("topic", c.topic))
			return err
		}

		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			c.consumeFailed("fetch", msg, err)
			select {
			case <-ctx.Done():
			case <-time.After(fetchRetryDelay):
			}
			continue
		}

		if err := handler(ctx, msg); err != nil {
			c.consumeFailed("handle", msg, err)
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.consumeFailed("commit", msg, err)
		}
	}
}

func (c *Consumer) consumeFailed(stage string, msg kafka.Message, err error) {
	util.EventConsumeFailures.WithLabelValues(stage).Inc()
	c.logger.Error("Event consumer failure",
		zap.String("stage", stage),
		zap.String("topic", c.topic),
		zap.String("key", string(msg.Key)),
		zap.Int64("offset", msg.Offset),
		zap.Error(err))
}
