// Package satwa_api отдаёт HTTP API отправок на chi роутере.
package satwa_api

import (
	"context"
	"net/http"

	"github.com/cekresi/satwa/internal/apperr"
	"github.com/cekresi/satwa/internal/models"
	"github.com/cekresi/satwa/internal/services/satwa"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type ShipmentService interface {
	List(ctx context.Context, q satwa.ListQuery) ([]*models.Satwa, models.Pagination, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Satwa, error)
	GetByKodeResi(ctx context.Context, kodeResi string) (*models.Satwa, error)
	Create(ctx context.Context, in models.SatwaInput) (*models.Satwa, error)
	Update(ctx context.Context, id uuid.UUID, in models.SatwaInput) (*models.Satwa, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) (*models.Satwa, error)

	ListProgress(ctx context.Context, satwaID uuid.UUID) ([]*models.Progress, error)
	AddProgress(ctx context.Context, satwaID uuid.UUID, in models.ProgressInput) (*models.Progress, error)
	UpdateProgress(ctx context.Context, satwaID, progressID uuid.UUID, in models.ProgressInput) (*models.Progress, error)
	DeleteProgress(ctx context.Context, satwaID, progressID uuid.UUID) error

	ListDocuments(ctx context.Context, satwaID uuid.UUID) ([]*models.Dokumen, error)
	UploadDocument(ctx context.Context, satwaID uuid.UUID, up satwa.Upload) (*models.Dokumen, error)
	DeleteDocument(ctx context.Context, satwaID, dokumenID uuid.UUID) error
}

type UserService interface {
	Login(ctx context.Context, username, password, clientAddr string) (*models.User, string, error)
	List(ctx context.Context) ([]*models.User, error)
	Create(ctx context.Context, username, password, role string) (*models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, password string) (*models.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SatwaAPI struct {
	shipments ShipmentService
	users     UserService
	tokens    TokenValidator

	trustProxyHeaders bool
}

func New(shipments ShipmentService, users UserService, tokens TokenValidator) *SatwaAPI {
	return &SatwaAPI{shipments: shipments, users: users, tokens: tokens}
}

// TrustProxyHeaders включает middleware.RealIP. По умолчанию адрес клиента берётся
// из TCP соединения, и ключ лимита логина не зависит от заголовков запроса.
func (a *SatwaAPI) TrustProxyHeaders(on bool) *SatwaAPI {
	a.trustProxyHeaders = on
	return a
}

// Routes: чтение публичное, запись и /users только для admin.
func (a *SatwaAPI) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if a.trustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(LoggingMiddleware)
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, r, apperr.NotFound("route not found"))
	})

	r.Post("/auth/login", a.login)
	r.Get("/resi", a.getByKodeResi)

	r.Route("/shipments", func(r chi.Router) {
		r.Get("/", a.listShipments)
		r.Get("/{id}", a.getShipment)
		r.Get("/{id}/progress", a.listProgress)
		r.Get("/{id}/documents", a.listDocuments)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(a.tokens), RequireRole(models.RoleAdmin))

			r.Post("/", a.createShipment)
			r.Put("/{id}", a.updateShipment)
			r.Delete("/{id}", a.deleteShipment)
			r.Put("/{id}/status", a.setStatus)

			r.Post("/{id}/progress", a.addProgress)
			r.Put("/{id}/progress/{progressId}", a.updateProgress)
			r.Delete("/{id}/progress/{progressId}", a.deleteProgress)

			r.Post("/{id}/documents", a.uploadDocument)
			r.Delete("/{id}/documents/{docId}", a.deleteDocument)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(AuthMiddleware(a.tokens), RequireRole(models.RoleAdmin))

		r.Get("/", a.listUsers)
		r.Post("/", a.createUser)
		r.Put("/{id}/password", a.updateUserPassword)
		r.Put("/{id}/role", a.updateUserRole)
		r.Delete("/{id}", a.deleteUser)
	})

	return r
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid " + name)
	}
	return id, nil
}
