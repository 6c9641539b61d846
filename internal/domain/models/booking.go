package models

import (
	"strings"
	"time"

	"busbackend/internal/domain"
)

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking is a confirmed (or later cancelled) seat reservation on a route
// for one journey date. FarePerSeat and TotalFare are pinned at commit time;
// fare-table edits never change historical totals.
type Booking struct {
	ID             domain.ID `json:"id"`
	Reference      string    `json:"reference"`
	RouteID        domain.ID `json:"routeId"`
	RouteName      string    `json:"routeName,omitempty"`
	UserID         domain.ID `json:"userId"`
	JourneyDate    string    `json:"journeyDate"` // YYYY-MM-DD
	FromStop       string    `json:"fromStop"`
	ToStop         string    `json:"toStop"`
	PassengerName  string    `json:"passengerName"`
	PassengerPhone string    `json:"passengerPhone"`
	Seats          []string  `json:"seats"`
	FarePerSeat    int64     `json:"farePerSeat"`
	TotalFare      int64     `json:"totalFare"`
	Status         string    `json:"status"`
	CounterName    string    `json:"counterName"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (b Booking) IsConfirmed() bool { return b.Status == BookingStatusConfirmed }

// BookingDraft is the input collected before validation. Seats are kept as
// entered; normalization happens in the service.
type BookingDraft struct {
	RouteID        domain.ID `json:"routeId"`
	JourneyDate    string    `json:"journeyDate"`
	FromStop       string    `json:"fromStop"`
	ToStop         string    `json:"toStop"`
	PassengerName  string    `json:"passengerName"`
	PassengerPhone string    `json:"passengerPhone"`
	Seats          []string  `json:"seats"`
}

// Validate covers the field-presence rules; route/stop/fare/seat checks need
// the route and live inventory and belong to the booking service.
func (d BookingDraft) Validate() error {
	if d.RouteID <= 0 {
		return domain.ValidationError{Field: "routeId", Msg: "route wajib dipilih"}
	}
	if strings.TrimSpace(d.JourneyDate) == "" {
		return domain.ValidationError{Field: "journeyDate", Msg: "tanggal keberangkatan wajib diisi"}
	}
	if strings.TrimSpace(d.FromStop) == "" || strings.TrimSpace(d.ToStop) == "" {
		return domain.ValidationError{Field: "stops", Msg: "origin dan destination wajib diisi"}
	}
	if strings.TrimSpace(d.FromStop) == strings.TrimSpace(d.ToStop) {
		return domain.ValidationError{Field: "stops", Msg: "origin dan destination tidak boleh sama"}
	}
	if strings.TrimSpace(d.PassengerName) == "" {
		return domain.ValidationError{Field: "passengerName", Msg: "nama penumpang wajib diisi"}
	}
	if strings.TrimSpace(d.PassengerPhone) == "" {
		return domain.ValidationError{Field: "passengerPhone", Msg: "no HP penumpang wajib diisi"}
	}
	if len(d.Seats) == 0 {
		return domain.ValidationError{Field: "seats", Msg: "wajib pilih seat"}
	}
	return nil
}
