package cashmovements

import (
	"context"

	"github.com/gestaopro/gestaopro/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]CashMovement, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (CashMovement, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, form CreateForm) (CashMovement, error) {
	if err := shared.ValidateStruct(form); err != nil {
		return CashMovement{}, err
	}
	return s.repo.Create(ctx, form)
}

func (s *Service) Update(ctx context.Context, id int64, form UpdateForm) (CashMovement, error) {
	if err := shared.ValidateStruct(form); err != nil {
		return CashMovement{}, err
	}
	return s.repo.Update(ctx, id, form)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
