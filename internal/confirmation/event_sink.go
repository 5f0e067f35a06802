package confirmation

import (
	"context"

	"lashstudio/pkg/kafka"
	"lashstudio/pkg/middleware"
)

const (
	EventTypeBookingCompleted = "booking.completed"
	eventSchemaVersion        = "1"
	eventSource               = "lashstudio-booking"
)

// Publisher is the slice of *kafka.Producer the event sink needs.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type EventSink struct {
	publisher Publisher
}

func NewEventSink(p Publisher) *EventSink {
	return &EventSink{publisher: p}
}

func (s *EventSink) Name() string { return "events" }

// Deliver publishes a booking.completed event keyed by receipt ID.
func (s *EventSink) Deliver(ctx context.Context, r Receipt) error {
	msg, err := kafka.NewMessage().
		WithKey(r.ID).
		WithValue(r).
		WithEventID(r.ID).
		WithEventType(EventTypeBookingCompleted).
		WithSchemaVersion(eventSchemaVersion).
		WithSource(eventSource).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		WithTimestamp(r.ConfirmedAt).
		Build()
	if err != nil {
		return err
	}
	return s.publisher.Publish(ctx, msg)
}
