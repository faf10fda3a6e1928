package service

import (
	"context"

	"github.com/hisably/pos-api/internal/domain/entity"
	"github.com/hisably/pos-api/internal/domain/repository"
	"github.com/hisably/pos-api/pkg/apperror"
	"github.com/sirupsen/logrus"
)

// SettingsService manages business-wide configuration
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// UpdateSettingsInput represents the update settings input
type UpdateSettingsInput struct {
	BusinessName         *string
	Currency             *string
	OrderCommissionRate  *float64
	ReturnCommissionRate *float64
	ReceiptFooter        *string
	LowStockAlerts       *bool
}

// GetSettings returns the business settings row
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperror.NewNotFoundError("Settings")
	}
	return settings, nil
}

// UpdateSettings applies partial updates to the settings row. Commission
// rates are percentages and must stay within 0 to 100.
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperror.NewNotFoundError("Settings")
	}

	if input.BusinessName != nil {
		settings.BusinessName = *input.BusinessName
	}
	if input.Currency != nil {
		settings.Currency = *input.Currency
	}
	if input.OrderCommissionRate != nil {
		if *input.OrderCommissionRate < 0 || *input.OrderCommissionRate > 100 {
			return nil, apperror.NewBadRequestError("Commission rate must be between 0 and 100")
		}
		settings.OrderCommissionRate = *input.OrderCommissionRate
	}
	if input.ReturnCommissionRate != nil {
		if *input.ReturnCommissionRate < 0 || *input.ReturnCommissionRate > 100 {
			return nil, apperror.NewBadRequestError("Commission rate must be between 0 and 100")
		}
		settings.ReturnCommissionRate = *input.ReturnCommissionRate
	}
	if input.ReceiptFooter != nil {
		settings.ReceiptFooter = input.ReceiptFooter
	}
	if input.LowStockAlerts != nil {
		settings.LowStockAlerts = *input.LowStockAlerts
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	logrus.Info("business settings updated")

	return settings, nil
}
