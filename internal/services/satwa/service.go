package satwa

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cekresi/satwa/internal/apperr"
	"github.com/cekresi/satwa/internal/models"
	"github.com/google/uuid"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage держит (page-1)*limit в пределах int даже на 32-битных платформах.
	MaxPage = 1_000_000

	// MaxUploadSize ограничивает размер одного документа (10 MiB).
	MaxUploadSize int64 = 10 << 20
)

type Repository interface {
	ListSatwa(ctx context.Context, f models.SatwaFilter) ([]*models.Satwa, int, error)
	GetSatwaByID(ctx context.Context, id uuid.UUID) (*models.Satwa, error)
	GetSatwaByKodeResi(ctx context.Context, kodeResi string) (*models.Satwa, error)
	CreateSatwa(ctx context.Context, in models.SatwaInput) (*models.Satwa, error)
	UpdateSatwa(ctx context.Context, id uuid.UUID, in models.SatwaInput) (*models.Satwa, error)
	SetSatwaStatus(ctx context.Context, id uuid.UUID, status models.SatwaStatus) (*models.Satwa, error)
	DeleteSatwa(ctx context.Context, id uuid.UUID) error

	ListProgress(ctx context.Context, satwaID uuid.UUID) ([]*models.Progress, error)
	AddProgress(ctx context.Context, satwaID uuid.UUID, in models.ProgressInput) (*models.Progress, *models.Satwa, error)
	UpdateProgress(ctx context.Context, satwaID, progressID uuid.UUID, in models.ProgressInput) (*models.Progress, error)
	DeleteProgress(ctx context.Context, satwaID, progressID uuid.UUID) error

	ListDokumen(ctx context.Context, satwaID uuid.UUID) ([]*models.Dokumen, error)
	GetDokumen(ctx context.Context, satwaID, dokumenID uuid.UUID) (*models.Dokumen, error)
	CreateDokumen(ctx context.Context, in models.DokumenCreateInput) (*models.Dokumen, error)
	DeleteDokumen(ctx context.Context, satwaID, dokumenID uuid.UUID) error
}

type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
	URL(key string) string
}

type Service struct {
	repo    Repository
	objects ObjectStore
	events  *eventSink
	now     func() time.Time
}

// New собирает сервис; pub == nil отключает публикацию событий.
func New(repo Repository, objects ObjectStore, pub Publisher, topic string) *Service {
	return &Service{
		repo:    repo,
		objects: objects,
		events:  newEventSink(pub, topic),
		now:     time.Now,
	}
}

type ListQuery struct {
	Page   int
	Limit  int
	Search string
	Status string
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]*models.Satwa, models.Pagination, error) {
	page := q.Page
	switch {
	case page < 1:
		page = 1
	case page > MaxPage:
		page = MaxPage
	}
	limit := q.Limit
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit < 1:
		limit = 1
	case limit > MaxLimit:
		limit = MaxLimit
	}

	f := models.SatwaFilter{
		Search: strings.TrimSpace(q.Search),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if q.Status != "" {
		st, ok := models.ParseSatwaStatus(q.Status)
		if !ok {
			return nil, models.Pagination{}, apperr.Validation("invalid status filter")
		}
		f.Status = st
	}

	items, total, err := s.repo.ListSatwa(ctx, f)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return items, models.NewPagination(page, limit, total), nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Satwa, error) {
	return s.repo.GetSatwaByID(ctx, id)
}

func (s *Service) GetByKodeResi(ctx context.Context, kodeResi string) (*models.Satwa, error) {
	kodeResi = strings.TrimSpace(kodeResi)
	if kodeResi == "" {
		return nil, apperr.Validation("kode_resi is required")
	}
	return s.repo.GetSatwaByKodeResi(ctx, kodeResi)
}

func (s *Service) Create(ctx context.Context, in models.SatwaInput) (*models.Satwa, error) {
	clean, err := cleanSatwaInput(in)
	if err != nil {
		return nil, err
	}
	if clean.Status == "" {
		clean.Status = models.SatwaStatusPending
	}

	t, err := s.repo.CreateSatwa(ctx, clean)
	if err != nil {
		return nil, err
	}
	slog.Info("satwa created", "id", t.ID, "kode_resi", t.KodeResi)
	s.events.emit(ctx, eventSatwaCreated, t)
	return t, nil
}

// Update заменяет все поля; пустой статус оставляет текущий.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in models.SatwaInput) (*models.Satwa, error) {
	clean, err := cleanSatwaInput(in)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.UpdateSatwa(ctx, id, clean)
	if err != nil {
		return nil, err
	}
	s.events.emit(ctx, eventSatwaUpdated, t)
	return t, nil
}

// Delete удаляет отправку; строки progress и dokumen уходят каскадом,
// объекты документов удаляются после этого по возможности.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	t, err := s.repo.GetSatwaByID(ctx, id)
	if err != nil {
		return err
	}
	docs, err := s.repo.ListDokumen(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteSatwa(ctx, id); err != nil {
		return err
	}

	for _, d := range docs {
		if d.FileKey == "" {
			continue
		}
		if err := s.objects.Remove(ctx, d.FileKey); err != nil {
			slog.Warn("object remove failed", "satwa_id", id, "key", d.FileKey, "err", err)
		}
	}
	slog.Info("satwa deleted", "id", id, "kode_resi", t.KodeResi, "documents", len(docs))
	s.events.emit(ctx, eventSatwaDeleted, t)
	return nil
}

func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status string) (*models.Satwa, error) {
	if strings.TrimSpace(status) == "" {
		return nil, apperr.Validation("status is required")
	}
	st, ok := models.ParseSatwaStatus(status)
	if !ok {
		return nil, apperr.Validation("invalid status")
	}

	t, err := s.repo.SetSatwaStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}
	s.events.emit(ctx, eventStatusChanged, t)
	return t, nil
}

func cleanSatwaInput(in models.SatwaInput) (models.SatwaInput, error) {
	out := models.SatwaInput{
		KodeResi: strings.TrimSpace(in.KodeResi),
		Nama:     strings.TrimSpace(in.Nama),
		Spesies:  strings.TrimSpace(in.Spesies),
		Asal:     strings.TrimSpace(in.Asal),
		Tujuan:   strings.TrimSpace(in.Tujuan),
	}
	if out.KodeResi == "" || out.Nama == "" || out.Spesies == "" || out.Asal == "" || out.Tujuan == "" {
		return out, apperr.Validation("kode_resi, nama, spesies, asal and tujuan are required")
	}
	if raw := strings.TrimSpace(string(in.Status)); raw != "" {
		st, ok := models.ParseSatwaStatus(raw)
		if !ok {
			return out, apperr.Validation("invalid status")
		}
		out.Status = st
	}
	return out, nil
}
