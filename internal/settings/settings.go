package settings

import (
	"sync"

	"backoffice/internal/models"
)

// Store holds the single settings record of the process
type Store struct {
	mu       sync.RWMutex
	settings models.Settings
}

// NewStore creates a store holding initial
func NewStore(initial models.Settings) *Store {
	return &Store{settings: initial}
}

// Get returns the current settings
func (s *Store) Get() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update merges patch into the current settings and returns the result
func (s *Store) Update(patch models.SettingsPatch) models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings
	if patch.CompanyName != nil {
		next.CompanyName = *patch.CompanyName
	}
	if patch.Currency != nil {
		next.Currency = *patch.Currency
	}
	if patch.TaxRate != nil {
		next.TaxRate = *patch.TaxRate
	}
	if patch.EnableNotifications != nil {
		next.EnableNotifications = *patch.EnableNotifications
	}
	if patch.EmailAlerts != nil {
		next.EmailAlerts = *patch.EmailAlerts
	}
	s.settings = next
	return next
}
