package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/httpx"
	"github.com/sinobridge-erp/sinobridge-erp/internal/shared"
)

// Service handles product business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, req ListProductsRequest) ([]Product, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, fmt.Errorf("%w: invalid product id", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (Product, error) {
	if err := shared.ValidateStruct(req); err != nil {
		return Product{}, err
	}
	product := Product{
		SKU:           strings.TrimSpace(req.SKU),
		Name:          strings.TrimSpace(req.Name),
		SellingPrice:  req.SellingPrice,
		PurchasePrice: req.PurchasePrice,
		StockQuantity: req.StockQuantity,
	}
	return s.repo.Create(ctx, product)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateProductRequest) (Product, error) {
	if err := shared.ValidateStruct(req); err != nil {
		return Product{}, err
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}

	if req.SKU != nil {
		existing.SKU = strings.TrimSpace(*req.SKU)
	}
	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.SellingPrice != nil {
		existing.SellingPrice = *req.SellingPrice
	}
	if req.PurchasePrice != nil {
		existing.PurchasePrice = *req.PurchasePrice
	}
	if req.StockQuantity != nil {
		existing.StockQuantity = *req.StockQuantity
	}

	if existing.SKU == "" {
		return Product{}, fmt.Errorf("%w: sku is required", httpx.ErrValidation)
	}
	if existing.Name == "" {
		return Product{}, fmt.Errorf("%w: name is required", httpx.ErrValidation)
	}

	if err := s.repo.Update(ctx, id, existing); err != nil {
		return Product{}, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a product permanently. Historical documents keep their
// snapshot of the product data, so no referential check is performed.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid product id", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}
