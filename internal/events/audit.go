package events

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"

	"busbackend/internal/logger"
)

// StartAuditSubscriber relogs every booking/route event as a structured
// audit line. It runs until ctx is cancelled.
func StartAuditSubscriber(ctx context.Context, bus *Bus, log logger.Logger) error {
	topics := []string{TopicBookingCreated, TopicBookingCancelled, TopicRouteDeleted}
	for _, topic := range topics {
		messages, err := bus.Subscribe(ctx, topic)
		if err != nil {
			return err
		}
		go consume(topic, messages, log)
	}
	return nil
}

func consume(topic string, messages <-chan *message.Message, log logger.Logger) {
	for msg := range messages {
		switch topic {
		case TopicRouteDeleted:
			var ev RouteEvent
			if err := json.Unmarshal(msg.Payload, &ev); err == nil {
				log.Info("audit",
					"topic", topic,
					"event_id", ev.EventID,
					"route_id", ev.RouteID,
					"route_name", ev.Name,
					"bookings_removed", ev.BookingsRemoved,
				)
			}
		default:
			var ev BookingEvent
			if err := json.Unmarshal(msg.Payload, &ev); err == nil {
				log.Info("audit",
					"topic", topic,
					"event_id", ev.EventID,
					"booking_id", ev.BookingID,
					"reference", ev.Reference,
					"route_id", ev.RouteID,
					"journey_date", ev.JourneyDate,
					"seats", ev.Seats,
					"total", ev.TotalFare,
					"counter", ev.CounterName,
				)
			}
		}
		msg.Ack()
	}
}
