package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"busbackend/internal/domain"
	"busbackend/internal/domain/models"
)

func TestRouteDeleteCascades(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT name FROM routes WHERE id=(.+) FOR UPDATE").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Jakarta - Bandung"))
	mock.ExpectExec("DELETE FROM booking_seats WHERE route_id=").WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 6))
	mock.ExpectExec("DELETE FROM bookings WHERE route_id=").WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM route_fares").WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM route_stops").WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM routes").WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := RouteRepository{DB: db}
	name, removed, err := repo.Delete(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Jakarta - Bandung" {
		t.Fatalf("expected route name back, got %q", name)
	}
	if removed != 3 {
		t.Fatalf("expected 3 bookings removed, got %d", removed)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRouteDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT name FROM routes WHERE id=(.+) FOR UPDATE").WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"name"}))
	mock.ExpectRollback()

	repo := RouteRepository{DB: db}
	if _, _, err := repo.Delete(context.Background(), 9); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestRouteCreateDuplicateName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO routes").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	repo := RouteRepository{DB: db}
	route := models.Route{Name: "Jakarta - Bandung", Status: models.RouteStatusActive}
	if _, err := repo.Create(context.Background(), route); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for duplicate name, got %v", err)
	}
}

func TestRouteCreateInsertsStopsAndFares(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO routes").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectExec("INSERT INTO route_stops").
		WithArgs(3, "Jakarta", models.StopTypePickup, "07:30", 0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO route_stops").
		WithArgs(3, "Bandung", models.StopTypeDropoff, "10:30", 1).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO route_fares").
		WithArgs(3, "Jakarta", "Bandung", int64(500)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := RouteRepository{DB: db}
	route := models.Route{
		Name:          "Jakarta - Bandung",
		DepartureTime: "07:30",
		SeatRows:      10,
		SeatsPerRow:   4,
		Status:        models.RouteStatusActive,
		Stops: []models.Stop{
			{Name: "Jakarta", Type: models.StopTypePickup, ArrivalTime: "07:30"},
			{Name: "Bandung", Type: models.StopTypeDropoff, ArrivalTime: "10:30"},
		},
		Fares: []models.Fare{{From: "Jakarta", To: "Bandung", Amount: 500}},
	}
	saved, err := repo.Create(context.Background(), route)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID != 3 {
		t.Fatalf("expected id 3, got %d", saved.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRouteUpdateMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE routes").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id FROM routes").WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	repo := RouteRepository{DB: db}
	route := models.Route{ID: 9, Name: "Hilang", Status: models.RouteStatusActive}
	if _, err := repo.Update(context.Background(), route); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
