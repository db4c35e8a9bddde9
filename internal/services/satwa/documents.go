package satwa

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/cekresi/satwa/internal/apperr"
	"github.com/cekresi/satwa/internal/models"
	"github.com/google/uuid"
)

func (s *Service) ListDocuments(ctx context.Context, satwaID uuid.UUID) ([]*models.Dokumen, error) {
	return s.repo.ListDokumen(ctx, satwaID)
}

type Upload struct {
	Nama        string
	File        io.Reader
	Filename    string
	Size        int64
	ContentType string
}

// UploadDocument кладёт объект в хранилище и только потом пишет строку.
// Если строка не записалась, объект остаётся сиротой (только лог).
func (s *Service) UploadDocument(ctx context.Context, satwaID uuid.UUID, up Upload) (*models.Dokumen, error) {
	nama := strings.TrimSpace(up.Nama)
	if nama == "" || up.File == nil || up.Size <= 0 {
		return nil, apperr.Validation("nama and file are required")
	}
	if up.Size > MaxUploadSize {
		return nil, apperr.Validation(fmt.Sprintf("file too large (max %d bytes)", MaxUploadSize))
	}

	if _, err := s.repo.GetSatwaByID(ctx, satwaID); err != nil {
		return nil, err
	}

	key := s.objectKey(satwaID, up.Filename)
	if err := s.objects.Put(ctx, key, up.File, up.Size, up.ContentType); err != nil {
		slog.Error("object put failed", "satwa_id", satwaID, "key", key, "err", err)
		return nil, apperr.Storage("failed to upload file", err)
	}

	d, err := s.repo.CreateDokumen(ctx, models.DokumenCreateInput{
		SatwaID: satwaID,
		Nama:    nama,
		FileURL: s.objects.URL(key),
		FileKey: key,
	})
	if err != nil {
		slog.Error("dokumen insert failed, object orphaned", "satwa_id", satwaID, "key", key, "err", err)
		return nil, err
	}
	slog.Info("dokumen uploaded", "satwa_id", satwaID, "id", d.ID, "key", key, "size", up.Size)
	return d, nil
}

func (s *Service) DeleteDocument(ctx context.Context, satwaID, dokumenID uuid.UUID) error {
	d, err := s.repo.GetDokumen(ctx, satwaID, dokumenID)
	if err != nil {
		return err
	}

	if d.FileKey != "" {
		if err := s.objects.Remove(ctx, d.FileKey); err != nil {
			slog.Warn("object remove failed", "satwa_id", satwaID, "key", d.FileKey, "err", err)
		}
	}
	return s.repo.DeleteDokumen(ctx, satwaID, dokumenID)
}

// objectKey: {satwaId}/{unixMillis}{.ext}
func (s *Service) objectKey(satwaID uuid.UUID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	return fmt.Sprintf("%s/%d%s", satwaID, s.now().UnixMilli(), ext)
}
