package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/sinobridge-erp/sinobridge-erp/internal/shared"
)

// UpdateSettingsRequest replaces the company settings.
type UpdateSettingsRequest struct {
	CompanyName     string  `json:"company_name" validate:"required,max=200"`
	CompanyNameZh   string  `json:"company_name_zh" validate:"max=200"`
	Email           string  `json:"email" validate:"omitempty,email"`
	Phone           string  `json:"phone" validate:"max=50"`
	Address         string  `json:"address" validate:"max=500"`
	DisplayCurrency string  `json:"display_currency" validate:"required,len=3,alpha"`
	ExchangeRate    float64 `json:"exchange_rate" validate:"required,gt=0"`
}

// Service handles settings business logic.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (Settings, error) {
	return s.repo.Load(ctx)
}

func (s *Service) Update(ctx context.Context, req UpdateSettingsRequest) (Settings, error) {
	if err := shared.ValidateStruct(req); err != nil {
		return Settings{}, err
	}
	saved, err := s.repo.Save(ctx, Settings{
		CompanyName:     strings.TrimSpace(req.CompanyName),
		CompanyNameZh:   strings.TrimSpace(req.CompanyNameZh),
		Email:           strings.TrimSpace(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		Address:         strings.TrimSpace(req.Address),
		DisplayCurrency: strings.ToUpper(req.DisplayCurrency),
		ExchangeRate:    req.ExchangeRate,
	})
	if err != nil {
		return Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return saved, nil
}
