package satwa_api

import (
	"context"
	"io"

	"github.com/cekresi/satwa/internal/models"
	"github.com/cekresi/satwa/internal/services/satwa"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type shipmentsMock struct {
	mock.Mock
}

func (m *shipmentsMock) List(ctx context.Context, q satwa.ListQuery) ([]*models.Satwa, models.Pagination, error) {
	a := m.Called(ctx, q)
	return a.Get(0).([]*models.Satwa), a.Get(1).(models.Pagination), a.Error(2)
}

func (m *shipmentsMock) Get(ctx context.Context, id uuid.UUID) (*models.Satwa, error) {
	a := m.Called(ctx, id)
	return a.Get(0).(*models.Satwa), a.Error(1)
}

func (m *shipmentsMock) GetByKodeResi(ctx context.Context, kodeResi string) (*models.Satwa, error) {
	a := m.Called(ctx, kodeResi)
	return a.Get(0).(*models.Satwa), a.Error(1)
}

func (m *shipmentsMock) Create(ctx context.Context, in models.SatwaInput) (*models.Satwa, error) {
	a := m.Called(ctx, in)
	return a.Get(0).(*models.Satwa), a.Error(1)
}

func (m *shipmentsMock) Update(ctx context.Context, id uuid.UUID, in models.SatwaInput) (*models.Satwa, error) {
	a := m.Called(ctx, id, in)
	return a.Get(0).(*models.Satwa), a.Error(1)
}

func (m *shipmentsMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *shipmentsMock) SetStatus(ctx context.Context, id uuid.UUID, status string) (*models.Satwa, error) {
	a := m.Called(ctx, id, status)
	return a.Get(0).(*models.Satwa), a.Error(1)
}

func (m *shipmentsMock) ListProgress(ctx context.Context, satwaID uuid.UUID) ([]*models.Progress, error) {
	a := m.Called(ctx, satwaID)
	return a.Get(0).([]*models.Progress), a.Error(1)
}

func (m *shipmentsMock) AddProgress(ctx context.Context, satwaID uuid.UUID, in models.ProgressInput) (*models.Progress, error) {
	a := m.Called(ctx, satwaID, in)
	return a.Get(0).(*models.Progress), a.Error(1)
}

func (m *shipmentsMock) UpdateProgress(ctx context.Context, satwaID, progressID uuid.UUID, in models.ProgressInput) (*models.Progress, error) {
	a := m.Called(ctx, satwaID, progressID, in)
	return a.Get(0).(*models.Progress), a.Error(1)
}

func (m *shipmentsMock) DeleteProgress(ctx context.Context, satwaID, progressID uuid.UUID) error {
	return m.Called(ctx, satwaID, progressID).Error(0)
}

func (m *shipmentsMock) ListDocuments(ctx context.Context, satwaID uuid.UUID) ([]*models.Dokumen, error) {
	a := m.Called(ctx, satwaID)
	return a.Get(0).([]*models.Dokumen), a.Error(1)
}

// UploadDocument вычитывает файл, чтобы тест мог проверить содержимое.
func (m *shipmentsMock) UploadDocument(ctx context.Context, satwaID uuid.UUID, up satwa.Upload) (*models.Dokumen, error) {
	body, _ := io.ReadAll(up.File)
	up.File = nil
	a := m.Called(ctx, satwaID, up, string(body))
	return a.Get(0).(*models.Dokumen), a.Error(1)
}

func (m *shipmentsMock) DeleteDocument(ctx context.Context, satwaID, dokumenID uuid.UUID) error {
	return m.Called(ctx, satwaID, dokumenID).Error(0)
}

type usersMock struct {
	mock.Mock
}

func (m *usersMock) Login(ctx context.Context, username, password, clientAddr string) (*models.User, string, error) {
	a := m.Called(ctx, username, password, clientAddr)
	return a.Get(0).(*models.User), a.String(1), a.Error(2)
}

func (m *usersMock) List(ctx context.Context) ([]*models.User, error) {
	a := m.Called(ctx)
	return a.Get(0).([]*models.User), a.Error(1)
}

func (m *usersMock) Create(ctx context.Context, username, password, role string) (*models.User, error) {
	a := m.Called(ctx, username, password, role)
	return a.Get(0).(*models.User), a.Error(1)
}

func (m *usersMock) UpdatePassword(ctx context.Context, id uuid.UUID, password string) (*models.User, error) {
	a := m.Called(ctx, id, password)
	return a.Get(0).(*models.User), a.Error(1)
}

func (m *usersMock) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error) {
	a := m.Called(ctx, id, role)
	return a.Get(0).(*models.User), a.Error(1)
}

func (m *usersMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
