package satwa

import (
	"context"
	"io"

	"github.com/cekresi/satwa/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type repoMock struct {
	mock.Mock
}

func (m *repoMock) ListSatwa(ctx context.Context, f models.SatwaFilter) ([]*models.Satwa, int, error) {
	a := m.Called(ctx, f)
	return a.Get(0).([]*models.Satwa), a.Int(1), a.Error(2)
}

func (m *repoMock) GetSatwaByID(ctx context.Context, id uuid.UUID) (*models.Satwa, error) {
	a := m.Called(ctx, id)
	return a.Get(0).(*models.Satwa), a.Error(1)
}

func (m *repoMock) GetSatwaByKodeResi(ctx context.Context, kodeResi string) (*models.Satwa, error) {
	a := m.Called(ctx, kodeResi)
	return a.Get(0).(*models.Satwa), a.Error(1)
}

func (m *repoMock) CreateSatwa(ctx context.Context, in models.SatwaInput) (*models.Satwa, error) {
	a := m.Called(ctx, in)
	return a.Get(0).(*models.Satwa), a.Error(1)
}

func (m *repoMock) UpdateSatwa(ctx context.Context, id uuid.UUID, in models.SatwaInput) (*models.Satwa, error) {
	a := m.Called(ctx, id, in)
	return a.Get(0).(*models.Satwa), a.Error(1)
}

func (m *repoMock) SetSatwaStatus(ctx context.Context, id uuid.UUID, status models.SatwaStatus) (*models.Satwa, error) {
	a := m.Called(ctx, id, status)
	return a.Get(0).(*models.Satwa), a.Error(1)
}

func (m *repoMock) DeleteSatwa(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *repoMock) ListProgress(ctx context.Context, satwaID uuid.UUID) ([]*models.Progress, error) {
	a := m.Called(ctx, satwaID)
	return a.Get(0).([]*models.Progress), a.Error(1)
}

func (m *repoMock) AddProgress(ctx context.Context, satwaID uuid.UUID, in models.ProgressInput) (*models.Progress, *models.Satwa, error) {
	a := m.Called(ctx, satwaID, in)
	return a.Get(0).(*models.Progress), a.Get(1).(*models.Satwa), a.Error(2)
}

func (m *repoMock) UpdateProgress(ctx context.Context, satwaID, progressID uuid.UUID, in models.ProgressInput) (*models.Progress, error) {
	a := m.Called(ctx, satwaID, progressID, in)
	return a.Get(0).(*models.Progress), a.Error(1)
}

func (m *repoMock) DeleteProgress(ctx context.Context, satwaID, progressID uuid.UUID) error {
	return m.Called(ctx, satwaID, progressID).Error(0)
}

func (m *repoMock) ListDokumen(ctx context.Context, satwaID uuid.UUID) ([]*models.Dokumen, error) {
	a := m.Called(ctx, satwaID)
	return a.Get(0).([]*models.Dokumen), a.Error(1)
}

func (m *repoMock) GetDokumen(ctx context.Context, satwaID, dokumenID uuid.UUID) (*models.Dokumen, error) {
	a := m.Called(ctx, satwaID, dokumenID)
	return a.Get(0).(*models.Dokumen), a.Error(1)
}

func (m *repoMock) CreateDokumen(ctx context.Context, in models.DokumenCreateInput) (*models.Dokumen, error) {
	a := m.Called(ctx, in)
	return a.Get(0).(*models.Dokumen), a.Error(1)
}

func (m *repoMock) DeleteDokumen(ctx context.Context, satwaID, dokumenID uuid.UUID) error {
	return m.Called(ctx, satwaID, dokumenID).Error(0)
}

type objectsMock struct {
	mock.Mock
}

func (m *objectsMock) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return m.Called(ctx, key, size, contentType).Error(0)
}

func (m *objectsMock) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *objectsMock) URL(key string) string {
	return "http://minio:9000/satwa-docs/" + key
}

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) Publish(ctx context.Context, topic string, key, value []byte) error {
	return m.Called(ctx, topic, key, value).Error(0)
}
