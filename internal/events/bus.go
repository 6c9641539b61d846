package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"busbackend/internal/logger"
)

// Topics carried over the in-process bus. There is no external broker; the
// gochannel transport fans events out to subscribers inside the process.
const (
	TopicBookingCreated   = "booking.created"
	TopicBookingCancelled = "booking.cancelled"
	TopicRouteDeleted     = "route.deleted"
)

// BookingEvent is the payload for booking.* topics.
type BookingEvent struct {
	EventID     string    `json:"eventId"`
	BookingID   int64     `json:"bookingId"`
	Reference   string    `json:"reference"`
	RouteID     int64     `json:"routeId"`
	JourneyDate string    `json:"journeyDate"`
	Seats       []string  `json:"seats"`
	TotalFare   int64     `json:"totalFare"`
	CounterName string    `json:"counterName"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// RouteEvent is the payload for route.* topics.
type RouteEvent struct {
	EventID         string    `json:"eventId"`
	RouteID         int64     `json:"routeId"`
	Name            string    `json:"name"`
	BookingsRemoved int64     `json:"bookingsRemoved"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// Bus wraps the pub/sub pair with JSON envelopes and uuid event ids.
type Bus struct {
	pubSub *gochannel.GoChannel
	log    logger.Logger
}

func NewBus(log logger.Logger) *Bus {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		newWatermillLogger(log),
	)
	return &Bus{pubSub: pubSub, log: log}
}

func (b *Bus) Close() error {
	if b == nil || b.pubSub == nil {
		return nil
	}
	return b.pubSub.Close()
}

func (b *Bus) publish(topic string, payload any) {
	if b == nil || b.pubSub == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		b.log.Error("event marshal gagal", "topic", topic, "error", err.Error())
		return
	}
	msg := message.NewMessage(uuid.NewString(), raw)
	if err := b.pubSub.Publish(topic, msg); err != nil {
		b.log.Error("event publish gagal", "topic", topic, "error", err.Error())
	}
}

// PublishBookingCreated emits booking.created after a successful commit.
func (b *Bus) PublishBookingCreated(ev BookingEvent) {
	ev.EventID = uuid.NewString()
	ev.OccurredAt = time.Now()
	b.publish(TopicBookingCreated, ev)
}

// PublishBookingCancelled emits booking.cancelled after a soft cancel.
func (b *Bus) PublishBookingCancelled(ev BookingEvent) {
	ev.EventID = uuid.NewString()
	ev.OccurredAt = time.Now()
	b.publish(TopicBookingCancelled, ev)
}

// PublishRouteDeleted emits route.deleted after a cascade delete.
func (b *Bus) PublishRouteDeleted(ev RouteEvent) {
	ev.EventID = uuid.NewString()
	ev.OccurredAt = time.Now()
	b.publish(TopicRouteDeleted, ev)
}

// Subscribe exposes the raw message stream for a topic.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, topic)
}
