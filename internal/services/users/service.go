package users

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cekresi/satwa/internal/apperr"
	"github.com/cekresi/satwa/internal/auth"
	"github.com/cekresi/satwa/internal/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Repository interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	CreateUser(ctx context.Context, username, password, role string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, id uuid.UUID, password string) (*models.User, error)
	UpdateUserRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type TokenIssuer interface {
	Generate(userID uuid.UUID, username, role string) (string, error)
}

// Limiter реализует redislimit.RateLimiter.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error)
	Reset(ctx context.Context, key string) error
}

type LoginLimit struct {
	Attempts int64
	Window   time.Duration
}

var errInvalidCredentials = apperr.Auth("invalid username or password")

type Service struct {
	repo    Repository
	tokens  TokenIssuer
	limiter Limiter
	limit   LoginLimit
}

// New: limiter == nil отключает ограничение попыток входа.
func New(repo Repository, tokens TokenIssuer, limiter Limiter, limit LoginLimit) *Service {
	return &Service{repo: repo, tokens: tokens, limiter: limiter, limit: limit}
}

// Login проверяет пароль (bcrypt или старый открытый текст) и выдаёт токен.
// Для неизвестного пользователя и неверного пароля ответ одинаковый.
func (s *Service) Login(ctx context.Context, username, password, clientAddr string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", apperr.Validation("username and password are required")
	}

	limitKey := "login:" + clientAddr
	if s.limiter != nil && s.limit.Attempts > 0 {
		ok, n, err := s.limiter.Allow(ctx, limitKey, s.limit.Attempts, s.limit.Window)
		switch {
		case err != nil:
			slog.Warn("login rate limiter unavailable", "err", err)
		case !ok:
			slog.Warn("login rate limited", "remote", clientAddr, "attempts", n)
			return nil, "", apperr.RateLimited("too many login attempts, try again later")
		}
	}

	u, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			slog.Warn("login failed", "username", username, "remote", clientAddr)
			return nil, "", errInvalidCredentials
		}
		return nil, "", err
	}
	if !auth.VerifyPassword(u.Password, password) {
		slog.Warn("login failed", "username", username, "remote", clientAddr)
		return nil, "", errInvalidCredentials
	}

	if !auth.IsHashed(u.Password) {
		s.upgradePassword(ctx, u, password)
	}

	token, err := s.tokens.Generate(u.ID, u.Username, u.Role)
	if err != nil {
		return nil, "", errors.Wrap(err, "issue token")
	}

	if s.limiter != nil && s.limit.Attempts > 0 {
		if err := s.limiter.Reset(ctx, limitKey); err != nil {
			slog.Warn("login rate limiter reset failed", "err", err)
		}
	}

	u.Password = ""
	slog.Info("user logged in", "user", u.Username, "role", u.Role)
	return u, token, nil
}

// upgradePassword переводит строку с открытым паролем на bcrypt; ошибка не мешает входу.
func (s *Service) upgradePassword(ctx context.Context, u *models.User, password string) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		slog.Warn("password upgrade failed", "user", u.Username, "err", err)
		return
	}
	if _, err := s.repo.UpdateUserPassword(ctx, u.ID, hash); err != nil {
		slog.Warn("password upgrade failed", "user", u.Username, "err", err)
		return
	}
	slog.Info("legacy password upgraded", "user", u.Username)
}

func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) Create(ctx context.Context, username, password, role string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperr.Validation("username and password are required")
	}
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, apperr.Validation("role must be admin or user")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.CreateUser(ctx, username, hash, role)
	if err != nil {
		return nil, err
	}
	slog.Info("user created", "user", u.Username, "role", u.Role)
	return u, nil
}

func (s *Service) UpdatePassword(ctx context.Context, id uuid.UUID, password string) (*models.User, error) {
	if password == "" {
		return nil, apperr.Validation("password is required")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateUserPassword(ctx, id, hash)
}

func (s *Service) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, apperr.Validation("role must be admin or user")
	}
	return s.repo.UpdateUserRole(ctx, id, role)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	slog.Info("user deleted", "id", id)
	return nil
}
