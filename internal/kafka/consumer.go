package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	reader *kafka.Reader
	log    *slog.Logger
}

func NewConsumer(brokers []string, groupID, topic string, log *slog.Logger) *Consumer {
	if log == nil {
		log = slog.Default()
	}
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		log: log,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume reads messages until ctx is done or the handler fails.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, kafka.Message) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		if err := handler(ctx, msg); err != nil {
			return err
		}
	}
}

// ConsumeEvents decodes each message as a TripEvent. Messages that do not
// decode are logged and skipped.
func (c *Consumer) ConsumeEvents(ctx context.Context, handler func(context.Context, TripEvent) error) error {
	return c.Consume(ctx, func(ctx context.Context, msg kafka.Message) error {
		event, err := DecodeEvent(msg.Value)
		if err != nil {
			c.log.Warn("skipping undecodable event", slog.Int64("offset", msg.Offset), slog.Any("error", err))
			return nil
		}
		return handler(ctx, event)
	})
}

func DecodeEvent(data []byte) (TripEvent, error) {
	var event TripEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return TripEvent{}, err
	}
	if event.Type == "" {
		return TripEvent{}, errors.New("event has no type")
	}
	return event, nil
}
