package services

import (
	"errors"
	"testing"

	"busbackend/internal/domain"
	"busbackend/internal/domain/models"
)

func seatRoute() models.Route {
	return models.Route{ID: 1, SeatRows: 10, SeatsPerRow: 4, Status: models.RouteStatusActive}
}

func TestUnionSeats(t *testing.T) {
	bookings := []models.Booking{
		{Seats: []string{"B2", "A1"}},
		{Seats: []string{"A1", "C3"}},
		{Seats: nil},
	}
	got := UnionSeats(bookings)
	want := []string{"A1", "B2", "C3"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestValidateRequestEmpty(t *testing.T) {
	var svc SeatService
	err := svc.ValidateRequest(seatRoute(), nil, nil)
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for empty request, got %v", err)
	}
}

func TestValidateRequestDuplicate(t *testing.T) {
	var svc SeatService
	err := svc.ValidateRequest(seatRoute(), []string{"A1", "A1"}, nil)
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for duplicate seat, got %v", err)
	}
}

func TestValidateRequestOutsideGrid(t *testing.T) {
	var svc SeatService
	for _, label := range []string{"K1", "A5", "Z9", "A01", "A+1"} {
		err := svc.ValidateRequest(seatRoute(), []string{label}, nil)
		if !domain.IsValidation(err) {
			t.Fatalf("%s: expected ValidationError, got %v", label, err)
		}
	}
}

func TestValidateRequestConflictSubset(t *testing.T) {
	var svc SeatService
	err := svc.ValidateRequest(seatRoute(), []string{"A3", "A1", "B1"}, []string{"A1", "A2", "B1"})
	if !domain.IsSeatConflict(err) {
		t.Fatalf("expected SeatConflictError, got %v", err)
	}

	var conflict domain.SeatConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("error does not unwrap to SeatConflictError")
	}
	want := []string{"A1", "B1"}
	if len(conflict.Seats) != len(want) {
		t.Fatalf("expected conflicts %v, got %v", want, conflict.Seats)
	}
	for i := range want {
		if conflict.Seats[i] != want[i] {
			t.Fatalf("expected conflicts %v, got %v", want, conflict.Seats)
		}
	}
}

func TestValidateRequestOK(t *testing.T) {
	var svc SeatService
	if err := svc.ValidateRequest(seatRoute(), []string{"A1", "A2"}, []string{"B1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
