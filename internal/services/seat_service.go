package services

import (
	"sort"

	"busbackend/internal/domain"
	"busbackend/internal/domain/models"
)

// SeatService checks requested seats against the booked set and against the
// route's grid.
type SeatService struct{}

// UnionSeats flattens the seat labels of the given bookings into a sorted,
// de-duplicated set. Cancelled bookings never appear in the input; their
// seat rows are gone and the seat_labels column is only history.
func UnionSeats(bookings []models.Booking) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, b := range bookings {
		for _, seat := range b.Seats {
			if !seen[seat] {
				seen[seat] = true
				out = append(out, seat)
			}
		}
	}
	sort.Strings(out)
	return out
}

// ValidateRequest rejects an empty or duplicated seat request, any label
// outside the route's grid (a ghost label could be stored but never
// displayed back), and any overlap with already-booked seats. The conflict
// error carries the offending subset.
func (s SeatService) ValidateRequest(route models.Route, requested, booked []string) error {
	if len(requested) == 0 {
		return domain.ValidationError{Field: "seats", Msg: "wajib pilih seat"}
	}
	seen := map[string]bool{}
	for _, seat := range requested {
		if seen[seat] {
			return domain.ValidationError{Field: "seats", Msg: "seat duplikat: " + seat}
		}
		seen[seat] = true
		if !route.HasSeat(seat) {
			return domain.ValidationError{Field: "seats", Msg: "seat di luar denah bus: " + seat}
		}
	}

	taken := map[string]bool{}
	for _, seat := range booked {
		taken[seat] = true
	}
	conflicts := []string{}
	for _, seat := range requested {
		if taken[seat] {
			conflicts = append(conflicts, seat)
		}
	}
	if len(conflicts) > 0 {
		sort.Strings(conflicts)
		return domain.SeatConflictError{Seats: conflicts}
	}
	return nil
}
