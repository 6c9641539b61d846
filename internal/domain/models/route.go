package models

import (
	"fmt"
	"strconv"
	"strings"

	"busbackend/internal/domain"
)

const (
	RouteStatusActive   = "active"
	RouteStatusInactive = "inactive"

	StopTypePickup  = "pickup"
	StopTypeDropoff = "dropoff"
	StopTypeBoth    = "both"

	DefaultSeatRows    = 10
	DefaultSeatsPerRow = 4
	maxSeatRows        = 26
	maxSeatsPerRow     = 9
)

// Stop is a named point on a route with a wall-clock arrival time.
type Stop struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	ArrivalTime string `json:"arrivalTime"`
}

// Fare prices the ordered (From, To) stop pair. Reverse direction needs its
// own row; asymmetric fares are allowed.
type Fare struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

// Route is a scheduled service with an ordered stop list, a fare table and a
// fixed seat grid (SeatRows rows labelled A.., SeatsPerRow seats per row).
type Route struct {
	ID            domain.ID `json:"id"`
	Name          string    `json:"name"`
	Stops         []Stop    `json:"stops"`
	Fares         []Fare    `json:"fares"`
	DepartureTime string    `json:"departureTime"`
	SeatRows      int       `json:"seatRows"`
	SeatsPerRow   int       `json:"seatsPerRow"`
	Status        string    `json:"status"`
}

func (r Route) IsActive() bool { return r.Status == RouteStatusActive }

// HasStop reports whether name matches a stop on the route (exact match
// after trimming, same rule the fare table uses).
func (r Route) HasStop(name string) bool {
	name = strings.TrimSpace(name)
	for _, s := range r.Stops {
		if s.Name == name {
			return true
		}
	}
	return false
}

// HasSeat reports whether label falls inside the route's seat grid.
// Labels are a single row letter followed by a 1-based seat index, "A1".
// Only the canonical spelling counts: "A01" and "A+1" name the same chair
// as "A1" but would be stored as distinct seat codes, so they are rejected.
func (r Route) HasSeat(label string) bool {
	rows, perRow := r.SeatRows, r.SeatsPerRow
	if rows <= 0 {
		rows = DefaultSeatRows
	}
	if perRow <= 0 {
		perRow = DefaultSeatsPerRow
	}
	if len(label) < 2 {
		return false
	}
	row := label[0]
	if row < 'A' || row >= 'A'+byte(rows) {
		return false
	}
	num := label[1:]
	if num[0] < '1' || num[0] > '9' {
		return false
	}
	for i := 1; i < len(num); i++ {
		if num[i] < '0' || num[i] > '9' {
			return false
		}
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return false
	}
	return n >= 1 && n <= perRow
}

// SeatLabels enumerates the full grid in display order.
func (r Route) SeatLabels() []string {
	rows, perRow := r.SeatRows, r.SeatsPerRow
	if rows <= 0 {
		rows = DefaultSeatRows
	}
	if perRow <= 0 {
		perRow = DefaultSeatsPerRow
	}
	out := make([]string, 0, rows*perRow)
	for i := 0; i < rows; i++ {
		for j := 1; j <= perRow; j++ {
			out = append(out, fmt.Sprintf("%c%d", 'A'+i, j))
		}
	}
	return out
}

// Validate rejects malformed routes before anything reaches storage. Stored
// documents in the old system were schema-less; here the shape is enforced
// at the boundary.
func (r Route) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "nama route wajib diisi"}
	}
	if len(r.Stops) < 2 {
		return domain.ValidationError{Field: "stops", Msg: "route minimal punya 2 stop"}
	}
	seen := map[string]bool{}
	for _, s := range r.Stops {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return domain.ValidationError{Field: "stops", Msg: "nama stop tidak boleh kosong"}
		}
		if seen[name] {
			return domain.ValidationError{Field: "stops", Msg: "nama stop duplikat: " + name}
		}
		seen[name] = true
		switch s.Type {
		case StopTypePickup, StopTypeDropoff, StopTypeBoth:
		default:
			return domain.ValidationError{Field: "stops", Msg: "tipe stop tidak dikenal: " + s.Type}
		}
	}
	for _, f := range r.Fares {
		if f.Amount < 0 {
			return domain.ValidationError{Field: "fares", Msg: "tarif tidak boleh negatif"}
		}
		if !seen[strings.TrimSpace(f.From)] || !seen[strings.TrimSpace(f.To)] {
			return domain.ValidationError{Field: "fares", Msg: "tarif mereferensikan stop yang tidak ada di route"}
		}
	}
	if r.SeatRows < 0 || r.SeatRows > maxSeatRows {
		return domain.ValidationError{Field: "seatRows", Msg: "seatRows di luar batas (1-26)"}
	}
	if r.SeatsPerRow < 0 || r.SeatsPerRow > maxSeatsPerRow {
		return domain.ValidationError{Field: "seatsPerRow", Msg: "seatsPerRow di luar batas (1-9)"}
	}
	switch r.Status {
	case "", RouteStatusActive, RouteStatusInactive:
	default:
		return domain.ValidationError{Field: "status", Msg: "status tidak dikenal: " + r.Status}
	}
	return nil
}
