package producer

import (
	"context"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	// Keyed by recipient so one employee's notifications stay ordered.
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.RecipientID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "request_id", Value: []byte(event.RequestID)},
		},
	}

	return writer.WriteMessages(ctx, msg)
}
