package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"busbackend/internal/domain"
	"busbackend/internal/domain/models"
)

func ticketBooking() models.Booking {
	return models.Booking{
		ID:             5,
		Reference:      "BKG-ABC12345",
		RouteID:        1,
		RouteName:      "Jakarta - Bandung",
		UserID:         7,
		JourneyDate:    "2026-09-01",
		FromStop:       "Jakarta",
		ToStop:         "Bandung",
		PassengerName:  "Budi Santoso",
		PassengerPhone: "0812000",
		Seats:          []string{"A1", "A2"},
		FarePerSeat:    500,
		TotalFare:      1000,
		Status:         models.BookingStatusConfirmed,
		CounterName:    "Counter Utama",
	}
}

func TestGenerateETicket(t *testing.T) {
	svc := DocsService{
		Loader: func(ctx context.Context, id domain.ID) (models.Booking, error) {
			return ticketBooking(), nil
		},
	}

	owner := domain.Actor{UserID: 7, Role: domain.RoleCounter}
	pdf, filename, err := svc.GenerateETicket(context.Background(), owner, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("expected PDF bytes")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF, starts with %q", pdf[:4])
	}
	if !strings.HasPrefix(filename, "ETICKET_5_") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename %q", filename)
	}
	if strings.ContainsAny(filename, " /\\") {
		t.Fatalf("filename not sanitized: %q", filename)
	}
}

func TestGenerateETicketAdminAccess(t *testing.T) {
	svc := DocsService{
		Loader: func(ctx context.Context, id domain.ID) (models.Booking, error) {
			return ticketBooking(), nil
		},
	}

	admin := domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	if _, _, err := svc.GenerateETicket(context.Background(), admin, 5); err != nil {
		t.Fatalf("admin must access any ticket: %v", err)
	}
}

func TestGenerateETicketForeignBooking(t *testing.T) {
	svc := DocsService{
		Loader: func(ctx context.Context, id domain.ID) (models.Booking, error) {
			return ticketBooking(), nil
		},
	}

	other := domain.Actor{UserID: 99, Role: domain.RoleCounter}
	if _, _, err := svc.GenerateETicket(context.Background(), other, 5); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError for foreign booking, got %v", err)
	}
}

func TestGenerateETicketCancelled(t *testing.T) {
	svc := DocsService{
		Loader: func(ctx context.Context, id domain.ID) (models.Booking, error) {
			b := ticketBooking()
			b.Status = models.BookingStatusCancelled
			return b, nil
		},
	}

	owner := domain.Actor{UserID: 7, Role: domain.RoleCounter}
	if _, _, err := svc.GenerateETicket(context.Background(), owner, 5); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for cancelled booking, got %v", err)
	}
}
