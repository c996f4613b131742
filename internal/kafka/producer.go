// Package kafka publishes booking notifications.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

type Producer struct {
	writer *kafka.Writer
	log    *slog.Logger
}

// NewProducer returns a producer that drops every message when brokers is empty.
func NewProducer(brokers []string, log *slog.Logger) *Producer {
	if len(brokers) == 0 {
		log.Info("kafka brokers not configured, notifications disabled")
		return &Producer{log: log}
	}

	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
		log: log,
	}
}

// Publish writes payload as JSON. Messages with the same key keep their order.
func (p *Producer) Publish(ctx context.Context, topic, key string, payload any) error {
	if p.writer == nil {
		return nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	p.log.Debug("published notification", slog.String("topic", topic), slog.String("key", key))

	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}

	return p.writer.Close()
}
