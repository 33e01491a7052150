package marketplace

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/gestaopro/gestaopro/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Order, error) {
	return s.repo.Get(ctx, id)
}

// CreateFromPayload wraps the entire submitted body as one opaque order_data
// value. The payload is never decomposed, only checked for JSON validity.
func (s *Service) CreateFromPayload(ctx context.Context, payload []byte) (Order, error) {
	if !gjson.ValidBytes(payload) {
		return Order{}, fmt.Errorf("%w: corpo não é JSON válido", httpx.ErrValidation)
	}
	return s.repo.Create(ctx, string(payload))
}

func (s *Service) Update(ctx context.Context, id int64, form UpdateForm) (Order, error) {
	if form.OrderData != nil && !gjson.Valid(*form.OrderData) {
		return Order{}, fmt.Errorf("%w: order_data não é JSON válido", httpx.ErrValidation)
	}
	return s.repo.Update(ctx, id, form)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
