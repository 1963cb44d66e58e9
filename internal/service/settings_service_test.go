package service

import (
	"context"
	"testing"

	"backoffice/internal/models"
	"backoffice/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUpdateSettings(t *testing.T) {
	// Arrange
	publisher := new(MockEventPublisher)
	publisher.On("PublishSettingsUpdated", mock.Anything, mock.Anything).Return(nil)
	svc := NewSettingsService(settings.NewStore(models.DefaultSettings()), publisher)
	ctx := context.Background()

	// Act
	updated := svc.UpdateSettings(ctx, &UpdateSettingsRequest{TaxRate: decPtr("15")})

	// Assert
	assert.Equal(t, "15", updated.TaxRate.String())
	assert.Equal(t, "Ma Société", updated.CompanyName)
	assert.Equal(t, "EUR", updated.Currency)
	assert.True(t, updated.EnableNotifications)
	assert.False(t, updated.EmailAlerts)
	assert.Equal(t, updated, svc.GetSettings(ctx))
	publisher.AssertCalled(t, "PublishSettingsUpdated", mock.Anything, mock.MatchedBy(func(e *models.SettingsUpdatedEvent) bool {
		return e.EventType == models.EventTypeSettingsUpdated && e.Settings.TaxRate.Equal(updated.TaxRate)
	}))
}
