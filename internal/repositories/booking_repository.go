package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"busbackend/internal/domain"
	"busbackend/internal/domain/models"
	"busbackend/internal/utils"
)

// BookingRepository persists bookings plus one booking_seats row per seat.
// The seat rows exist only while a booking is confirmed; cancelling removes
// them, which frees the inventory and keeps uniq_route_date_seat satisfiable
// for a later re-booking of the same seat.
type BookingRepository struct {
	DB *sql.DB
}

const bookingColumns = `id, reference, route_id, user_id, journey_date, from_stop, to_stop,
	passenger_name, passenger_phone, seat_labels, fare_per_seat, total_fare,
	status, counter_name, created_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var (
		b       models.Booking
		date    time.Time
		seatCSV string
	)
	err := row.Scan(
		&b.ID, &b.Reference, &b.RouteID, &b.UserID, &date, &b.FromStop, &b.ToStop,
		&b.PassengerName, &b.PassengerPhone, &seatCSV, &b.FarePerSeat, &b.TotalFare,
		&b.Status, &b.CounterName, &b.CreatedAt,
	)
	if err != nil {
		return models.Booking{}, err
	}
	b.JourneyDate = utils.FormatDate(date)
	b.Seats = utils.SplitSeatList(seatCSV)
	return b, nil
}

func (r BookingRepository) GetByID(ctx context.Context, id domain.ID) (models.Booking, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Booking{}, wrapStorageErr(err)
	}
	return b, nil
}

// FindConfirmed returns every confirmed booking on the route for the whole
// service day. journeyDate must already be a normalized YYYY-MM-DD key, so
// the DATE equality covers exactly the 24h window.
func (r BookingRepository) FindConfirmed(ctx context.Context, routeID domain.ID, journeyDate string) ([]models.Booking, error) {
	return r.find(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE route_id=? AND journey_date=? AND status=? ORDER BY id ASC`,
		routeID, journeyDate, models.BookingStatusConfirmed)
}

// Search returns bookings of any status for admin route+date lookups.
func (r BookingRepository) Search(ctx context.Context, routeID domain.ID, journeyDate string) ([]models.Booking, error) {
	return r.find(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE route_id=? AND journey_date=? ORDER BY created_at DESC`,
		routeID, journeyDate)
}

// ListByCounter returns a counter's bookings, most recent first.
func (r BookingRepository) ListByCounter(ctx context.Context, counterName string) ([]models.Booking, error) {
	return r.find(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE counter_name=? ORDER BY created_at DESC`, counterName)
}

func (r BookingRepository) find(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, wrapStorageErr(err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStorageErr(err)
	}
	return out, nil
}

// Create persists the booking and its seat rows in one transaction. The
// route re-check takes a row lock (FOR UPDATE) so it serializes with the
// cascade delete's own locking read on the same row: a delete that already
// committed makes this fail with NotFound, and a commit that wins the lock
// lands before the cascade and is swept by it. A plain snapshot read would
// let the cascade slip between the check and the insert and leave an orphan
// booking. A duplicate key on a seat row means another writer confirmed
// that seat between the advisory pre-check and this commit; it surfaces as
// SeatConflictError.
func (r BookingRepository) Create(ctx context.Context, b models.Booking) (models.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, wrapStorageErr(err)
	}
	defer tx.Rollback()

	var routeStatus string
	err = tx.QueryRowContext(ctx, `SELECT status FROM routes WHERE id=? LIMIT 1 FOR UPDATE`, b.RouteID).Scan(&routeStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "route"}
	}
	if err != nil {
		return models.Booking{}, wrapStorageErr(err)
	}
	if routeStatus != models.RouteStatusActive {
		return models.Booking{}, domain.ValidationError{Field: "routeId", Msg: "route tidak aktif"}
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO bookings
		(reference, route_id, user_id, journey_date, from_stop, to_stop,
		 passenger_name, passenger_phone, seat_labels, fare_per_seat, total_fare,
		 status, counter_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`,
		b.Reference, b.RouteID, b.UserID, b.JourneyDate, b.FromStop, b.ToStop,
		b.PassengerName, b.PassengerPhone, strings.Join(b.Seats, ","),
		b.FarePerSeat, b.TotalFare, models.BookingStatusConfirmed, b.CounterName,
	)
	if err != nil {
		return models.Booking{}, wrapStorageErr(err)
	}
	id, _ := res.LastInsertId()

	for _, seat := range b.Seats {
		_, err := tx.ExecContext(ctx, `INSERT INTO booking_seats
			(booking_id, route_id, journey_date, seat_code, created_at)
			VALUES (?, ?, ?, ?, NOW())`,
			id, b.RouteID, b.JourneyDate, seat,
		)
		if err != nil {
			if isDuplicateKey(err) {
				return models.Booking{}, domain.SeatConflictError{Seats: []string{seat}, Err: err}
			}
			return models.Booking{}, wrapStorageErr(err)
		}
	}

	if err := tx.Commit(); err != nil {
		if isDuplicateKey(err) {
			return models.Booking{}, domain.SeatConflictError{Seats: b.Seats, Err: err}
		}
		return models.Booking{}, wrapStorageErr(err)
	}

	b.ID = domain.ID(id)
	b.Status = models.BookingStatusConfirmed
	b.CreatedAt = time.Now()
	return b, nil
}

// Cancel flips a confirmed booking to cancelled and deletes its seat rows.
// One-way: cancelling an already-cancelled booking is a no-op conflict.
func (r BookingRepository) Cancel(ctx context.Context, id domain.ID) (models.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, wrapStorageErr(err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE bookings SET status=? WHERE id=? AND status=?`,
		models.BookingStatusCancelled, id, models.BookingStatusConfirmed)
	if err != nil {
		return models.Booking{}, wrapStorageErr(err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "booking sudah dibatalkan"}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_seats WHERE booking_id=?`, id); err != nil {
		return models.Booking{}, wrapStorageErr(err)
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, wrapStorageErr(err)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a booking and its seat rows entirely (admin only).
func (r BookingRepository) Delete(ctx context.Context, id domain.ID) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return wrapStorageErr(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_seats WHERE booking_id=?`, id); err != nil {
		return wrapStorageErr(err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE id=?`, id)
	if err != nil {
		return wrapStorageErr(err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return wrapStorageErr(tx.Commit())
}

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// wrapStorageErr keeps transient connection failures distinguishable from
// the rest so callers can retry them.
func wrapStorageErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return domain.UnavailableError{Err: err}
	}
	return err
}
