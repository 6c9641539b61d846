package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"busbackend/internal/domain"
	"busbackend/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) GetByID(ctx context.Context, id domain.ID) (models.Route, error) {
	var route models.Route
	err := r.DB.QueryRowContext(ctx, `SELECT id, name, departure_time, seat_rows, seats_per_row, status
		FROM routes WHERE id=? LIMIT 1`, id).
		Scan(&route.ID, &route.Name, &route.DepartureTime, &route.SeatRows, &route.SeatsPerRow, &route.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Route{}, domain.NotFoundError{Resource: "route"}
	}
	if err != nil {
		return models.Route{}, wrapStorageErr(err)
	}

	if route.Stops, err = r.stops(ctx, id); err != nil {
		return models.Route{}, err
	}
	if route.Fares, err = r.fares(ctx, id); err != nil {
		return models.Route{}, err
	}
	return route, nil
}

func (r RouteRepository) stops(ctx context.Context, routeID domain.ID) ([]models.Stop, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT name, stop_type, arrival_time
		FROM route_stops WHERE route_id=? ORDER BY position ASC`, routeID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	defer rows.Close()

	out := []models.Stop{}
	for rows.Next() {
		var s models.Stop
		if err := rows.Scan(&s.Name, &s.Type, &s.ArrivalTime); err != nil {
			return nil, wrapStorageErr(err)
		}
		out = append(out, s)
	}
	return out, wrapStorageErr(rows.Err())
}

func (r RouteRepository) fares(ctx context.Context, routeID domain.ID) ([]models.Fare, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT from_stop, to_stop, amount
		FROM route_fares WHERE route_id=? ORDER BY id ASC`, routeID)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	defer rows.Close()

	out := []models.Fare{}
	for rows.Next() {
		var f models.Fare
		if err := rows.Scan(&f.From, &f.To, &f.Amount); err != nil {
			return nil, wrapStorageErr(err)
		}
		out = append(out, f)
	}
	return out, wrapStorageErr(rows.Err())
}

func (r RouteRepository) List(ctx context.Context) ([]models.Route, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, departure_time, seat_rows, seats_per_row, status
		FROM routes ORDER BY name ASC`)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var route models.Route
		if err := rows.Scan(&route.ID, &route.Name, &route.DepartureTime, &route.SeatRows, &route.SeatsPerRow, &route.Status); err != nil {
			return nil, wrapStorageErr(err)
		}
		out = append(out, route)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStorageErr(err)
	}

	for i := range out {
		if out[i].Stops, err = r.stops(ctx, out[i].ID); err != nil {
			return nil, err
		}
		if out[i].Fares, err = r.fares(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r RouteRepository) Create(ctx context.Context, route models.Route) (models.Route, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Route{}, wrapStorageErr(err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `INSERT INTO routes
		(name, departure_time, seat_rows, seats_per_row, status, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())`,
		strings.TrimSpace(route.Name), route.DepartureTime, route.SeatRows, route.SeatsPerRow, route.Status,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return models.Route{}, domain.ValidationError{Field: "name", Msg: "nama route sudah dipakai"}
		}
		return models.Route{}, wrapStorageErr(err)
	}
	id, _ := res.LastInsertId()
	route.ID = domain.ID(id)

	if err := insertStopsAndFares(ctx, tx, route); err != nil {
		return models.Route{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Route{}, wrapStorageErr(err)
	}
	return route, nil
}

// Update replaces the route row plus its stop and fare sets. Bookings keep
// their pinned fares; edits here never touch committed totals.
func (r RouteRepository) Update(ctx context.Context, route models.Route) (models.Route, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Route{}, wrapStorageErr(err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE routes
		SET name=?, departure_time=?, seat_rows=?, seats_per_row=?, status=?, updated_at=NOW()
		WHERE id=?`,
		strings.TrimSpace(route.Name), route.DepartureTime, route.SeatRows, route.SeatsPerRow, route.Status, route.ID,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return models.Route{}, domain.ValidationError{Field: "name", Msg: "nama route sudah dipakai"}
		}
		return models.Route{}, wrapStorageErr(err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		// UPDATE with identical values reports zero rows; tell apart from absence.
		var exists int64
		if err := tx.QueryRowContext(ctx, `SELECT id FROM routes WHERE id=? LIMIT 1`, route.ID).Scan(&exists); errors.Is(err, sql.ErrNoRows) {
			return models.Route{}, domain.NotFoundError{Resource: "route"}
		} else if err != nil {
			return models.Route{}, wrapStorageErr(err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM route_stops WHERE route_id=?`, route.ID); err != nil {
		return models.Route{}, wrapStorageErr(err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM route_fares WHERE route_id=?`, route.ID); err != nil {
		return models.Route{}, wrapStorageErr(err)
	}
	if err := insertStopsAndFares(ctx, tx, route); err != nil {
		return models.Route{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Route{}, wrapStorageErr(err)
	}
	return route, nil
}

// Delete removes the route and cascades to every booking referencing it,
// seat rows included, in one transaction. The locking read on the route row
// serializes the cascade with any booking commit holding the same lock in
// Create, so the sweep below sees every booking that ever committed for the
// route. Returns the route name and the number of bookings removed for the
// route.deleted event.
func (r RouteRepository) Delete(ctx context.Context, id domain.ID) (string, int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", 0, wrapStorageErr(err)
	}
	defer tx.Rollback()

	var name string
	err = tx.QueryRowContext(ctx, `SELECT name FROM routes WHERE id=? LIMIT 1 FOR UPDATE`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", 0, domain.NotFoundError{Resource: "route"}
	}
	if err != nil {
		return "", 0, wrapStorageErr(err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_seats WHERE route_id=?`, id); err != nil {
		return "", 0, wrapStorageErr(err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE route_id=?`, id)
	if err != nil {
		return "", 0, wrapStorageErr(err)
	}
	removed, _ := res.RowsAffected()

	if _, err := tx.ExecContext(ctx, `DELETE FROM route_fares WHERE route_id=?`, id); err != nil {
		return "", 0, wrapStorageErr(err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM route_stops WHERE route_id=?`, id); err != nil {
		return "", 0, wrapStorageErr(err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM routes WHERE id=?`, id); err != nil {
		return "", 0, wrapStorageErr(err)
	}
	if err := tx.Commit(); err != nil {
		return "", 0, wrapStorageErr(err)
	}
	return name, removed, nil
}

func insertStopsAndFares(ctx context.Context, tx *sql.Tx, route models.Route) error {
	for i, s := range route.Stops {
		_, err := tx.ExecContext(ctx, `INSERT INTO route_stops
			(route_id, name, stop_type, arrival_time, position) VALUES (?, ?, ?, ?, ?)`,
			route.ID, strings.TrimSpace(s.Name), s.Type, s.ArrivalTime, i,
		)
		if err != nil {
			if isDuplicateKey(err) {
				return domain.ValidationError{Field: "stops", Msg: "nama stop duplikat: " + s.Name}
			}
			return wrapStorageErr(err)
		}
	}
	for _, f := range route.Fares {
		_, err := tx.ExecContext(ctx, `INSERT INTO route_fares
			(route_id, from_stop, to_stop, amount) VALUES (?, ?, ?, ?)`,
			route.ID, strings.TrimSpace(f.From), strings.TrimSpace(f.To), f.Amount,
		)
		if err != nil {
			if isDuplicateKey(err) {
				return domain.ValidationError{Field: "fares", Msg: "tarif duplikat untuk pasangan stop"}
			}
			return wrapStorageErr(err)
		}
	}
	return nil
}
