package pgsatwa

import (
	"context"
	"fmt"
	"strings"

	"github.com/cekresi/satwa/internal/apperr"
	"github.com/cekresi/satwa/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const satwaColumns = `id, kode_resi, nama, spesies, asal, tujuan, status, created_at, updated_at`

var errSatwaNotFound = apperr.NotFound("satwa not found")

func scanSatwa(row pgx.Row) (*models.Satwa, error) {
	var t models.Satwa
	if err := row.Scan(
		&t.ID, &t.KodeResi, &t.Nama, &t.Spesies, &t.Asal, &t.Tujuan,
		&t.Status, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func satwaWriteErr(err error, op string) error {
	if isNoRows(err) {
		return errSatwaNotFound
	}
	if hasCode(err, codeUniqueViolation) {
		return apperr.Conflict("kode_resi already exists")
	}
	return errors.Wrap(err, op)
}

// ListSatwa возвращает страницу по фильтру и общее число строк по тому же условию.
func (s *Storage) ListSatwa(ctx context.Context, f models.SatwaFilter) ([]*models.Satwa, int, error) {
	var where []string
	var args []any
	if f.Search != "" {
		args = append(args, containsPattern(f.Search))
		n := len(args)
		where = append(where, fmt.Sprintf("(kode_resi ILIKE $%d OR nama ILIKE $%d OR spesies ILIKE $%d)", n, n, n))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	cond := ""
	if len(where) > 0 {
		cond = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM satwa `+cond, args...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "count satwa")
	}

	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf(`
SELECT %s
FROM satwa
%s
ORDER BY created_at DESC, id
LIMIT $%d OFFSET $%d
`, satwaColumns, cond, len(args)-1, len(args))

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "select satwa")
	}
	defer rows.Close()

	out := make([]*models.Satwa, 0, f.Limit)
	for rows.Next() {
		t, err := scanSatwa(rows)
		if err != nil {
			return nil, 0, errors.Wrap(err, "scan satwa")
		}
		out = append(out, t)
	}
	if rows.Err() != nil {
		return nil, 0, errors.Wrap(rows.Err(), "rows")
	}
	return out, total, nil
}

func (s *Storage) GetSatwaByID(ctx context.Context, id uuid.UUID) (*models.Satwa, error) {
	t, err := scanSatwa(s.db.QueryRow(ctx, `SELECT `+satwaColumns+` FROM satwa WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, errSatwaNotFound
		}
		return nil, errors.Wrap(err, "select satwa by id")
	}
	return t, nil
}

func (s *Storage) GetSatwaByKodeResi(ctx context.Context, kodeResi string) (*models.Satwa, error) {
	t, err := scanSatwa(s.db.QueryRow(ctx, `SELECT `+satwaColumns+` FROM satwa WHERE kode_resi = $1`, kodeResi))
	if err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("resi not found")
		}
		return nil, errors.Wrap(err, "select satwa by kode_resi")
	}
	return t, nil
}

func (s *Storage) CreateSatwa(ctx context.Context, in models.SatwaInput) (*models.Satwa, error) {
	t, err := scanSatwa(s.db.QueryRow(ctx, `
INSERT INTO satwa (kode_resi, nama, spesies, asal, tujuan, status)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING `+satwaColumns,
		in.KodeResi, in.Nama, in.Spesies, in.Asal, in.Tujuan, string(in.Status)))
	if err != nil {
		return nil, satwaWriteErr(err, "insert satwa")
	}
	return t, nil
}

// UpdateSatwa заменяет все поля; пустой статус оставляет сохранённый.
func (s *Storage) UpdateSatwa(ctx context.Context, id uuid.UUID, in models.SatwaInput) (*models.Satwa, error) {
	t, err := scanSatwa(s.db.QueryRow(ctx, `
UPDATE satwa
SET
  kode_resi = $2,
  nama = $3,
  spesies = $4,
  asal = $5,
  tujuan = $6,
  status = COALESCE(NULLIF($7, ''), status),
  updated_at = now()
WHERE id = $1
RETURNING `+satwaColumns,
		id, in.KodeResi, in.Nama, in.Spesies, in.Asal, in.Tujuan, string(in.Status)))
	if err != nil {
		return nil, satwaWriteErr(err, "update satwa")
	}
	return t, nil
}

func (s *Storage) SetSatwaStatus(ctx context.Context, id uuid.UUID, status models.SatwaStatus) (*models.Satwa, error) {
	t, err := scanSatwa(s.db.QueryRow(ctx, `
UPDATE satwa SET status = $2, updated_at = now()
WHERE id = $1
RETURNING `+satwaColumns, id, string(status)))
	if err != nil {
		return nil, satwaWriteErr(err, "update satwa status")
	}
	return t, nil
}

// DeleteSatwa удаляет отправку; progress и dokumen уходят по ON DELETE CASCADE.
func (s *Storage) DeleteSatwa(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM satwa WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete satwa")
	}
	if tag.RowsAffected() == 0 {
		return errSatwaNotFound
	}
	return nil
}
