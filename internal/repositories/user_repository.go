package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"busbackend/internal/domain"
	"busbackend/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, username, password_hash, role, city, counter_name, is_blocked, created_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.City, &u.CounterName, &u.IsBlocked, &u.CreatedAt)
	return u, err
}

func (r UserRepository) GetByID(ctx context.Context, id domain.ID) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id=? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, wrapStorageErr(err)
	}
	return u, nil
}

func (r UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username=? LIMIT 1`, username))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, wrapStorageErr(err)
	}
	return u, nil
}

// ListCounters returns every counter-agent account.
func (r UserRepository) ListCounters(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users WHERE role=? ORDER BY username ASC`, domain.RoleCounter)
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrapStorageErr(err)
		}
		out = append(out, u)
	}
	return out, wrapStorageErr(rows.Err())
}

func (r UserRepository) Create(ctx context.Context, u models.User) (models.User, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO users
		(username, password_hash, role, city, counter_name, is_blocked, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())`,
		u.Username, u.PasswordHash, u.Role, u.City, u.CounterName, u.IsBlocked,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return models.User{}, domain.ValidationError{Field: "username", Msg: "username sudah terdaftar"}
		}
		return models.User{}, wrapStorageErr(err)
	}
	id, _ := res.LastInsertId()
	u.ID = domain.ID(id)
	return u, nil
}

// UpdateCredentials changes username and/or password hash; nil means keep.
func (r UserRepository) UpdateCredentials(ctx context.Context, id domain.ID, username, passwordHash *string) error {
	sets := []string{}
	args := []any{}
	if username != nil {
		sets = append(sets, "username=?")
		args = append(args, *username)
	}
	if passwordHash != nil {
		sets = append(sets, "password_hash=?")
		args = append(args, *passwordHash)
	}
	if len(sets) == 0 {
		return domain.ValidationError{Msg: "tidak ada field untuk diupdate"}
	}
	args = append(args, id)

	query := "UPDATE users SET " + strings.Join(sets, ", ") + " WHERE id=?"
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if isDuplicateKey(err) {
			return domain.ValidationError{Field: "username", Msg: "username sudah terdaftar"}
		}
		return wrapStorageErr(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		var exists int64
		if err := r.DB.QueryRowContext(ctx, `SELECT id FROM users WHERE id=? LIMIT 1`, id).Scan(&exists); errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "user"}
		} else if err != nil {
			return wrapStorageErr(err)
		}
	}
	return nil
}

// SetBlocked flips the blocked flag and returns the new value.
func (r UserRepository) SetBlocked(ctx context.Context, id domain.ID, blocked bool) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE users SET is_blocked=? WHERE id=?`, blocked, id)
	if err != nil {
		return wrapStorageErr(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		var exists int64
		if err := r.DB.QueryRowContext(ctx, `SELECT id FROM users WHERE id=? LIMIT 1`, id).Scan(&exists); errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "user"}
		} else if err != nil {
			return wrapStorageErr(err)
		}
	}
	return nil
}

func (r UserRepository) Delete(ctx context.Context, id domain.ID) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return wrapStorageErr(err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}
