package pgsatwa

import (
	"context"

	"github.com/pkg/errors"
)

func (s *Storage) initSchema(ctx context.Context) error {
	stmts := []string{
		`
CREATE TABLE IF NOT EXISTS users (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  username TEXT NOT NULL UNIQUE,
  password TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`
CREATE TABLE IF NOT EXISTS satwa (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  kode_resi TEXT NOT NULL UNIQUE,
  nama TEXT NOT NULL,
  spesies TEXT NOT NULL,
  asal TEXT NOT NULL,
  tujuan TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'PENDING',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE INDEX IF NOT EXISTS idx_satwa_created_at ON satwa(created_at DESC)`,
		`
CREATE TABLE IF NOT EXISTS progress (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  satwa_id UUID NOT NULL REFERENCES satwa(id) ON DELETE CASCADE,
  status TEXT NOT NULL,
  lokasi TEXT NOT NULL,
  keterangan TEXT NULL,
  tanggal TIMESTAMPTZ NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE INDEX IF NOT EXISTS idx_progress_satwa_id_tanggal ON progress(satwa_id, tanggal)`,
		`
CREATE TABLE IF NOT EXISTS dokumen (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  satwa_id UUID NOT NULL REFERENCES satwa(id) ON DELETE CASCADE,
  nama TEXT NOT NULL,
  file_url TEXT NOT NULL,
  file_key TEXT NOT NULL DEFAULT '',
  uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		`CREATE INDEX IF NOT EXISTS idx_dokumen_satwa_id ON dokumen(satwa_id, uploaded_at DESC)`,
		// В старых базах нет колонки с ключом объекта.
		`ALTER TABLE dokumen ADD COLUMN IF NOT EXISTS file_key TEXT NOT NULL DEFAULT ''`,
		// Старые формы писали индонезийские метки вместо канонических статусов.
		`UPDATE progress SET status = 'PENDING' WHERE status = 'Menunggu'`,
		`UPDATE progress SET status = 'IN_TRANSIT' WHERE status = 'Dalam Perjalanan'`,
		`UPDATE progress SET status = 'COMPLETED' WHERE status = 'Selesai'`,
		`UPDATE satwa SET status = 'PENDING' WHERE status = 'Menunggu'`,
		`UPDATE satwa SET status = 'IN_TRANSIT' WHERE status = 'Dalam Perjalanan'`,
		`UPDATE satwa SET status = 'COMPLETED' WHERE status = 'Selesai'`,
	}

	for _, q := range stmts {
		if _, err := s.db.Exec(ctx, q); err != nil {
			return errors.Wrap(err, "init schema")
		}
	}
	return nil
}
