package users

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gestaopro/gestaopro/internal/platform/httpx"
	"github.com/gestaopro/gestaopro/internal/shared"
)

// AdminUsername triggers the idempotent create short-circuit.
const AdminUsername = "admin"

// SeedPassword is the fixed plaintext credential of the baseline accounts.
const SeedPassword = "suporte@1"

// SeedUsernames are inserted at startup when absent.
var SeedUsernames = []string{"admin", "admin1"}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(logger *slog.Logger, repo Repository) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	return s.repo.Get(ctx, id)
}

// Create inserts a user. Creating "admin" while an admin row exists returns
// the existing row with created=false instead of failing on the unique
// constraint.
func (s *Service) Create(ctx context.Context, form CreateForm) (User, bool, error) {
	if err := shared.ValidateStruct(form); err != nil {
		return User{}, false, err
	}
	if form.Username == AdminUsername {
		return s.repo.CreateIfUsernameAbsent(ctx, form)
	}
	user, err := s.repo.Create(ctx, form)
	if err != nil {
		return User{}, false, err
	}
	return user, true, nil
}

func (s *Service) Update(ctx context.Context, id int64, form UpdateForm) (User, error) {
	return s.repo.Update(ctx, id, form)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Authenticate succeeds only when the user exists and the stored credential
// equals the submitted value exactly. No hashing is involved; password_hash
// holds raw text and the comparison reproduces that behavior deliberately.
func (s *Service) Authenticate(ctx context.Context, username, passwordHash string) (User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return User{}, httpx.ErrUnauthorized
		}
		return User{}, err
	}
	if user.PasswordHash != passwordHash {
		return User{}, httpx.ErrUnauthorized
	}
	return user, nil
}

// SeedDefaults idempotently inserts the baseline accounts.
func (s *Service) SeedDefaults(ctx context.Context) error {
	for _, username := range SeedUsernames {
		form := CreateForm{Username: username, PasswordHash: SeedPassword}
		_, created, err := s.repo.CreateIfUsernameAbsent(ctx, form)
		if err != nil {
			return err
		}
		if created {
			s.logger.Info("usuário padrão criado", slog.String("username", username))
		}
	}
	return nil
}
