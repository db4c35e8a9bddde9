package pgsatwa

import (
	"context"

	"github.com/cekresi/satwa/internal/apperr"
	"github.com/cekresi/satwa/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const userColumns = `id, username, password, role, created_at, updated_at`

var errUserNotFound = apperr.NotFound("user not found")

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func userWriteErr(err error, op string) error {
	if isNoRows(err) {
		return errUserNotFound
	}
	if hasCode(err, codeUniqueViolation) {
		return apperr.Conflict("username already exists")
	}
	return errors.Wrap(err, op)
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		if isNoRows(err) {
			return nil, errUserNotFound
		}
		return nil, errors.Wrap(err, "select user by username")
	}
	return u, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "select users")
	}
	defer rows.Close()

	out := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan user")
		}
		out = append(out, u)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

func (s *Storage) CreateUser(ctx context.Context, username, password, role string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, `
INSERT INTO users (username, password, role)
VALUES ($1,$2,$3)
RETURNING `+userColumns, username, password, role))
	if err != nil {
		return nil, userWriteErr(err, "insert user")
	}
	return u, nil
}

func (s *Storage) UpdateUserPassword(ctx context.Context, id uuid.UUID, password string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, `
UPDATE users SET password = $2, updated_at = now()
WHERE id = $1
RETURNING `+userColumns, id, password))
	if err != nil {
		return nil, userWriteErr(err, "update user password")
	}
	return u, nil
}

func (s *Storage) UpdateUserRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, `
UPDATE users SET role = $2, updated_at = now()
WHERE id = $1
RETURNING `+userColumns, id, role))
	if err != nil {
		return nil, userWriteErr(err, "update user role")
	}
	return u, nil
}

func (s *Storage) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete user")
	}
	if tag.RowsAffected() == 0 {
		return errUserNotFound
	}
	return nil
}
