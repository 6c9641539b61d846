package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"busbackend/internal/domain"
	"busbackend/internal/domain/models"
	"busbackend/internal/repositories"
	"busbackend/internal/utils"
)

// DocsService renders the e-ticket PDF for a confirmed booking.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	RouteRepo   repositories.RouteRepository

	// Loader overrides the repo lookup in tests.
	Loader func(ctx context.Context, id domain.ID) (models.Booking, error)
}

func (s DocsService) loadBooking(ctx context.Context, id domain.ID) (models.Booking, error) {
	if s.Loader != nil {
		return s.Loader(ctx, id)
	}
	booking, err := s.BookingRepo.GetByID(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if booking.RouteName == "" {
		if route, err := s.RouteRepo.GetByID(ctx, booking.RouteID); err == nil {
			booking.RouteName = route.Name
		}
	}
	return booking, nil
}

// GenerateETicket returns PDF bytes plus a download filename. Owners and
// admins only; cancelled bookings have no ticket.
func (s DocsService) GenerateETicket(ctx context.Context, actor domain.Actor, bookingID domain.ID) ([]byte, string, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	if !actor.IsAdmin() && booking.UserID != actor.UserID {
		return nil, "", domain.NotFoundError{Resource: "booking"}
	}
	if !booking.IsConfirmed() {
		return nil, "", domain.ValidationError{Field: "status", Msg: "booking sudah dibatalkan, e-ticket tidak tersedia"}
	}
	return buildETicketPDF(booking)
}

func buildETicketPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Kode Booking   : %s", safe(b.Reference, fmt.Sprintf("#%d", b.ID))),
		fmt.Sprintf("Nama Penumpang : %s", safe(b.PassengerName, "-")),
		fmt.Sprintf("No HP          : %s", safe(b.PassengerPhone, "-")),
		fmt.Sprintf("Route          : %s", safe(b.RouteName, "-")),
		fmt.Sprintf("Rute           : %s -> %s", safe(b.FromStop, "-"), safe(b.ToStop, "-")),
		fmt.Sprintf("Tanggal        : %s", safe(b.JourneyDate, "-")),
		fmt.Sprintf("Seat           : %s", safe(strings.Join(b.Seats, ", "), "-")),
		fmt.Sprintf("Tarif per Seat : %s", utils.FormatRupiah(b.FarePerSeat)),
		fmt.Sprintf("Total          : %s", utils.FormatRupiah(b.TotalFare)),
		fmt.Sprintf("Counter        : %s", safe(b.CounterName, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Catatan: Harap tunjukkan e-ticket ini saat keberangkatan.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "gagal membuat PDF", Err: err}
	}

	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", b.ID, safeFilenamePart(b.PassengerName))
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func safeFilenamePart(s string) string {
	var out strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out.WriteRune(r)
		default:
			out.WriteRune('_')
		}
	}
	return out.String()
}
