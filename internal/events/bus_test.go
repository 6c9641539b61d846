package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"busbackend/internal/logger"
)

func TestBusDeliversBookingCreated(t *testing.T) {
	bus := NewBus(logger.Nop())
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	msgs, err := bus.Subscribe(ctx, TopicBookingCreated)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	bus.PublishBookingCreated(BookingEvent{
		BookingID:   10,
		Reference:   "BKG-ABC12345",
		RouteID:     1,
		JourneyDate: "2026-09-01",
		Seats:       []string{"A1", "A2"},
		TotalFare:   1000,
		CounterName: "Counter Utama",
	})

	select {
	case msg := <-msgs:
		var ev BookingEvent
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			t.Fatalf("payload unmarshal: %v", err)
		}
		msg.Ack()
		if ev.BookingID != 10 || ev.Reference != "BKG-ABC12345" {
			t.Fatalf("unexpected payload: %+v", ev)
		}
		if ev.EventID == "" || ev.OccurredAt.IsZero() {
			t.Fatalf("envelope fields not set: %+v", ev)
		}
	case <-ctx.Done():
		t.Fatalf("no event delivered: %v", ctx.Err())
	}
}

func TestBusNilSafe(t *testing.T) {
	var bus *Bus
	bus.PublishBookingCancelled(BookingEvent{BookingID: 1}) // must not panic
	if err := bus.Close(); err != nil {
		t.Fatalf("nil bus close: %v", err)
	}
}
