package products

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/gestaopro/gestaopro/internal/platform/httpx"
	"github.com/gestaopro/gestaopro/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// checkCostDetails accepts nil or any valid JSON text. The blob stays opaque;
// only well-formedness is enforced.
func checkCostDetails(details *string) error {
	if details == nil || gjson.Valid(*details) {
		return nil
	}
	return fmt.Errorf("%w: cost_details não é JSON válido", httpx.ErrValidation)
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, form CreateForm) (Product, error) {
	if err := shared.ValidateStruct(form); err != nil {
		return Product{}, err
	}
	if err := checkCostDetails(form.CostDetails); err != nil {
		return Product{}, err
	}
	return s.repo.Create(ctx, form)
}

func (s *Service) Update(ctx context.Context, id int64, form UpdateForm) (Product, error) {
	if err := checkCostDetails(form.CostDetails); err != nil {
		return Product{}, err
	}
	return s.repo.Update(ctx, id, form)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
