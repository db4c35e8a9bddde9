package pgsatwa

import (
	"context"

	"github.com/cekresi/satwa/internal/apperr"
	"github.com/cekresi/satwa/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const dokumenColumns = `id, satwa_id, nama, file_url, file_key, uploaded_at`

var errDokumenNotFound = apperr.NotFound("dokumen not found")

func scanDokumen(row pgx.Row) (*models.Dokumen, error) {
	var d models.Dokumen
	if err := row.Scan(&d.ID, &d.SatwaID, &d.Nama, &d.FileURL, &d.FileKey, &d.UploadedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Storage) ListDokumen(ctx context.Context, satwaID uuid.UUID) ([]*models.Dokumen, error) {
	rows, err := s.db.Query(ctx, `
SELECT `+dokumenColumns+`
FROM dokumen
WHERE satwa_id = $1
ORDER BY uploaded_at DESC
`, satwaID)
	if err != nil {
		return nil, errors.Wrap(err, "select dokumen")
	}
	defer rows.Close()

	out := []*models.Dokumen{}
	for rows.Next() {
		d, err := scanDokumen(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan dokumen")
		}
		out = append(out, d)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}

func (s *Storage) GetDokumen(ctx context.Context, satwaID, dokumenID uuid.UUID) (*models.Dokumen, error) {
	d, err := scanDokumen(s.db.QueryRow(ctx, `
SELECT `+dokumenColumns+` FROM dokumen WHERE id = $1 AND satwa_id = $2`, dokumenID, satwaID))
	if err != nil {
		if isNoRows(err) {
			return nil, errDokumenNotFound
		}
		return nil, errors.Wrap(err, "select dokumen")
	}
	return d, nil
}

func (s *Storage) CreateDokumen(ctx context.Context, in models.DokumenCreateInput) (*models.Dokumen, error) {
	d, err := scanDokumen(s.db.QueryRow(ctx, `
INSERT INTO dokumen (satwa_id, nama, file_url, file_key)
VALUES ($1,$2,$3,$4)
RETURNING `+dokumenColumns, in.SatwaID, in.Nama, in.FileURL, in.FileKey))
	if err != nil {
		if hasCode(err, codeForeignKeyViolation) {
			return nil, errSatwaNotFound
		}
		return nil, errors.Wrap(err, "insert dokumen")
	}
	return d, nil
}

func (s *Storage) DeleteDokumen(ctx context.Context, satwaID, dokumenID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM dokumen WHERE id = $1 AND satwa_id = $2`, dokumenID, satwaID)
	if err != nil {
		return errors.Wrap(err, "delete dokumen")
	}
	if tag.RowsAffected() == 0 {
		return errDokumenNotFound
	}
	return nil
}
