package service

import (
	"context"

	"backoffice/internal/models"
	"backoffice/internal/settings"
	"backoffice/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SettingsService handles the settings record
type SettingsService struct {
	store          *settings.Store
	eventPublisher EventPublisher
	logger         *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(store *settings.Store, eventPublisher EventPublisher) *SettingsService {
	return &SettingsService{
		store:          store,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// UpdateSettingsRequest represents a partial settings update
type UpdateSettingsRequest struct {
	CompanyName         *string          `json:"company_name,omitempty"`
	Currency            *string          `json:"currency,omitempty"`
	TaxRate             *decimal.Decimal `json:"tax_rate,omitempty"`
	EnableNotifications *bool            `json:"enable_notifications,omitempty"`
	EmailAlerts         *bool            `json:"email_alerts,omitempty"`
}

// GetSettings returns the current settings
func (s *SettingsService) GetSettings(ctx context.Context) models.Settings {
	return s.store.Get()
}

// UpdateSettings merges the given fields into the settings
func (s *SettingsService) UpdateSettings(ctx context.Context, req *UpdateSettingsRequest) models.Settings {
	ctx, span := util.StartSpan(ctx, "SettingsService.UpdateSettings")
	defer span.End()

	updated := s.store.Update(models.SettingsPatch{
		CompanyName:         req.CompanyName,
		Currency:            req.Currency,
		TaxRate:             req.TaxRate,
		EnableNotifications: req.EnableNotifications,
		EmailAlerts:         req.EmailAlerts,
	})

	util.SettingsUpdatesTotal.Inc()
	s.logger.Info("Settings updated",
		zap.String("currency", updated.Currency),
		zap.Bool("enable_notifications", updated.EnableNotifications),
		zap.Bool("email_alerts", updated.EmailAlerts))

	event := &models.SettingsUpdatedEvent{
		BaseEvent: newBaseEvent(models.EventTypeSettingsUpdated),
		Settings:  updated,
	}
	logPublishError(s.logger, models.EventTypeSettingsUpdated, s.eventPublisher.PublishSettingsUpdated(ctx, event))

	return updated
}
