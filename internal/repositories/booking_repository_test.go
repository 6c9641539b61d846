package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"busbackend/internal/domain"
	"busbackend/internal/domain/models"
	"busbackend/internal/utils"
)

var bookingCols = []string{
	"id", "reference", "route_id", "user_id", "journey_date", "from_stop", "to_stop",
	"passenger_name", "passenger_phone", "seat_labels", "fare_per_seat", "total_fare",
	"status", "counter_name", "created_at",
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func sampleBooking() models.Booking {
	return models.Booking{
		Reference:      "BKG-ABC12345",
		RouteID:        1,
		UserID:         7,
		JourneyDate:    "2026-09-01",
		FromStop:       "A",
		ToStop:         "C",
		PassengerName:  "Budi",
		PassengerPhone: "0812000",
		Seats:          []string{"A1", "A2"},
		FarePerSeat:    500,
		TotalFare:      1000,
		CounterName:    "Counter Utama",
	}
}

func TestBookingCreateTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM routes WHERE id=(.+) FOR UPDATE").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(models.RouteStatusActive))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec("INSERT INTO booking_seats").
		WithArgs(int64(10), 1, "2026-09-01", "A1").
		WillReturnResult(sqlmock.NewResult(100, 1))
	mock.ExpectExec("INSERT INTO booking_seats").
		WithArgs(int64(10), 1, "2026-09-01", "A2").
		WillReturnResult(sqlmock.NewResult(101, 1))
	mock.ExpectCommit()

	repo := BookingRepository{DB: db}
	saved, err := repo.Create(context.Background(), sampleBooking())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID != 10 {
		t.Fatalf("expected id 10, got %d", saved.ID)
	}
	if saved.Status != models.BookingStatusConfirmed {
		t.Fatalf("expected status confirmed, got %s", saved.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCreateDuplicateSeat(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM routes WHERE id=(.+) FOR UPDATE").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(models.RouteStatusActive))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectExec("INSERT INTO booking_seats").
		WithArgs(int64(10), 1, "2026-09-01", "A1").
		WillReturnResult(sqlmock.NewResult(100, 1))
	mock.ExpectExec("INSERT INTO booking_seats").
		WithArgs(int64(10), 1, "2026-09-01", "A2").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	repo := BookingRepository{DB: db}
	_, err = repo.Create(context.Background(), sampleBooking())
	if !domain.IsSeatConflict(err) {
		t.Fatalf("expected SeatConflictError, got %v", err)
	}
	seats := domain.ConflictSeats(err)
	if len(seats) != 1 || seats[0] != "A2" {
		t.Fatalf("expected conflict on A2, got %v", seats)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCreateRouteGone(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM routes WHERE id=(.+) FOR UPDATE").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))
	mock.ExpectRollback()

	repo := BookingRepository{DB: db}
	if _, err := repo.Create(context.Background(), sampleBooking()); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError when route is gone, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCreateInactiveRoute(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM routes WHERE id=(.+) FOR UPDATE").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(models.RouteStatusInactive))
	mock.ExpectRollback()

	repo := BookingRepository{DB: db}
	if _, err := repo.Create(context.Background(), sampleBooking()); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for inactive route, got %v", err)
	}
}

func TestBookingCancelFreesSeats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings SET status=").
		WithArgs(models.BookingStatusCancelled, 5, models.BookingStatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM booking_seats WHERE booking_id=").
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").WithArgs(5).
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(
			5, "BKG-ABC12345", 1, 7, mustDate(t, "2026-09-01"), "A", "C",
			"Budi", "0812000", "A1,A2", 500, 1000,
			models.BookingStatusCancelled, "Counter Utama", mustDate(t, "2026-08-20"),
		))

	repo := BookingRepository{DB: db}
	cancelled, err := repo.Cancel(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancelled.Status != models.BookingStatusCancelled {
		t.Fatalf("expected cancelled status, got %s", cancelled.Status)
	}
	// seat_labels keeps the history even though the seat rows are gone
	if len(cancelled.Seats) != 2 || cancelled.Seats[0] != "A1" {
		t.Fatalf("expected historical seats, got %v", cancelled.Seats)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingCancelTwice(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings SET status=").
		WithArgs(models.BookingStatusCancelled, 5, models.BookingStatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := BookingRepository{DB: db}
	if _, err := repo.Cancel(context.Background(), 5); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for repeated cancel, got %v", err)
	}
}

func TestBookingFindConfirmed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WithArgs(1, "2026-09-01", models.BookingStatusConfirmed).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(1, "BKG-AAA", 1, 7, mustDate(t, "2026-09-01"), "A", "C",
				"Budi", "0812000", "A1,A2", 500, 1000,
				models.BookingStatusConfirmed, "Counter Utama", mustDate(t, "2026-08-20")).
			AddRow(2, "BKG-BBB", 1, 8, mustDate(t, "2026-09-01"), "A", "B",
				"Siti", "0813000", "B1", 300, 300,
				models.BookingStatusConfirmed, "Counter Dua", mustDate(t, "2026-08-21")))

	repo := BookingRepository{DB: db}
	out, err := repo.FindConfirmed(context.Background(), 1, "2026-09-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(out))
	}
	if out[0].JourneyDate != "2026-09-01" {
		t.Fatalf("expected journey date 2026-09-01, got %q", out[0].JourneyDate)
	}
	if len(out[0].Seats) != 2 || out[0].Seats[1] != "A2" {
		t.Fatalf("seat CSV not split: %v", out[0].Seats)
	}
}

func TestBookingGetByIDMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id=").WithArgs(9).
		WillReturnRows(sqlmock.NewRows(bookingCols))

	repo := BookingRepository{DB: db}
	if _, err := repo.GetByID(context.Background(), 9); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
