package satwa

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cekresi/satwa/internal/apperr"
	"github.com/cekresi/satwa/internal/models"
	"github.com/google/uuid"
)

func (s *Service) ListProgress(ctx context.Context, satwaID uuid.UUID) ([]*models.Progress, error) {
	return s.repo.ListProgress(ctx, satwaID)
}

// AddProgress добавляет запись. Распознанная метка перезаписывает статус отправки
// без проверки перехода, свободный текст статус не меняет.
func (s *Service) AddProgress(ctx context.Context, satwaID uuid.UUID, in models.ProgressInput) (*models.Progress, error) {
	clean, err := cleanProgressInput(in)
	if err != nil {
		return nil, err
	}
	if st, ok := models.ParseSatwaStatus(clean.Status); ok {
		clean.Status = string(st)
		clean.ShipmentStatus = st
	} else {
		slog.Info("progress status is free text, shipment status unchanged", "satwa_id", satwaID, "status", clean.Status)
	}

	p, t, err := s.repo.AddProgress(ctx, satwaID, clean)
	if err != nil {
		return nil, err
	}
	s.events.emitProgress(ctx, t, p)
	return p, nil
}

func (s *Service) UpdateProgress(ctx context.Context, satwaID, progressID uuid.UUID, in models.ProgressInput) (*models.Progress, error) {
	clean, err := cleanProgressInput(in)
	if err != nil {
		return nil, err
	}
	if st, ok := models.ParseSatwaStatus(clean.Status); ok {
		clean.Status = string(st)
	}
	return s.repo.UpdateProgress(ctx, satwaID, progressID, clean)
}

func (s *Service) DeleteProgress(ctx context.Context, satwaID, progressID uuid.UUID) error {
	return s.repo.DeleteProgress(ctx, satwaID, progressID)
}

func cleanProgressInput(in models.ProgressInput) (models.ProgressInput, error) {
	out := models.ProgressInput{
		Status:  strings.TrimSpace(in.Status),
		Lokasi:  strings.TrimSpace(in.Lokasi),
		Tanggal: in.Tanggal,
	}
	if out.Status == "" || out.Lokasi == "" || out.Tanggal.IsZero() {
		return out, apperr.Validation("status, lokasi and tanggal are required")
	}

	if in.Keterangan != nil {
		if k := strings.TrimSpace(*in.Keterangan); k != "" {
			out.Keterangan = &k
		}
	}
	return out, nil
}
