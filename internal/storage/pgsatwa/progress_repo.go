package pgsatwa

import (
	"context"

	"github.com/cekresi/satwa/internal/apperr"
	"github.com/cekresi/satwa/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const progressColumns = `id, satwa_id, status, lokasi, keterangan, tanggal, created_at`

var errProgressNotFound = apperr.NotFound("progress not found")

func scanProgress(row pgx.Row) (*models.Progress, error) {
	var p models.Progress
	var keterangan *string
	if err := row.Scan(
		&p.ID, &p.SatwaID, &p.Status, &p.Lokasi, &keterangan, &p.Tanggal, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.Keterangan = keterangan
	return &p, nil
}

func (s *Storage) ListProgress(ctx context.Context, satwaID uuid.UUID) ([]*models.Progress, error) {
	rows, err := s.db.Query(ctx, `
SELECT `+progressColumns+`
FROM progress
WHERE satwa_id = $1
ORDER BY tanggal ASC, created_at ASC
`, satwaID)
	if err != nil {
		return nil, errors.Wrap(err, "select progress")
	}
	defer rows.Close()

	out := []*models.Progress{}
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan progress")
		}
		out = append(out, p)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

// AddProgress вставляет запись и в той же транзакции выставляет статус отправки,
// если in.ShipmentStatus не пустой.
func (s *Storage) AddProgress(ctx context.Context, satwaID uuid.UUID, in models.ProgressInput) (*models.Progress, *models.Satwa, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, errors.Wrap(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	t, err := scanSatwa(tx.QueryRow(ctx, `
UPDATE satwa SET status = COALESCE(NULLIF($2::text, ''), status), updated_at = now()
WHERE id = $1
RETURNING `+satwaColumns, satwaID, string(in.ShipmentStatus)))
	if err != nil {
		return nil, nil, satwaWriteErr(err, "update satwa status")
	}

	p, err := scanProgress(tx.QueryRow(ctx, `
INSERT INTO progress (satwa_id, status, lokasi, keterangan, tanggal)
VALUES ($1,$2,$3,$4,$5)
RETURNING `+progressColumns,
		satwaID, in.Status, in.Lokasi, in.Keterangan, in.Tanggal.UTC()))
	if err != nil {
		return nil, nil, errors.Wrap(err, "insert progress")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, errors.Wrap(err, "commit tx")
	}
	return p, t, nil
}

func (s *Storage) UpdateProgress(ctx context.Context, satwaID, progressID uuid.UUID, in models.ProgressInput) (*models.Progress, error) {
	p, err := scanProgress(s.db.QueryRow(ctx, `
UPDATE progress
SET status = $3, lokasi = $4, keterangan = $5, tanggal = $6
WHERE id = $1 AND satwa_id = $2
RETURNING `+progressColumns,
		progressID, satwaID, in.Status, in.Lokasi, in.Keterangan, in.Tanggal.UTC()))
	if err != nil {
		if isNoRows(err) {
			return nil, errProgressNotFound
		}
		return nil, errors.Wrap(err, "update progress")
	}
	return p, nil
}

func (s *Storage) DeleteProgress(ctx context.Context, satwaID, progressID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM progress WHERE id = $1 AND satwa_id = $2`, progressID, satwaID)
	if err != nil {
		return errors.Wrap(err, "delete progress")
	}
	if tag.RowsAffected() == 0 {
		return errProgressNotFound
	}
	return nil
}
