package prefs

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Theme is the UI color scheme
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Language is the UI language
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageFrench  Language = "fr"
)

// Preference keys
const (
	KeyTheme    = "theme"
	KeyLanguage = "language"
)

var (
	ErrInvalidTheme    = errors.New("invalid theme")
	ErrInvalidLanguage = errors.New("invalid language")
)

// Preferences are the persisted UI preferences
type Preferences struct {
	Theme    Theme    `json:"theme"`
	Language Language `json:"language"`
}

// Defaults returns the preferences used when nothing is stored
func Defaults() Preferences {
	return Preferences{Theme: ThemeLight, Language: LanguageFrench}
}

// Backend stores preference values by key
type Backend interface {
	GetPreference(ctx context.Context, key string) (string, bool, error)
	SetPreference(ctx context.Context, key, value string) error
}

// Service reads and writes preferences through a Backend
type Service struct {
	backend Backend
}

// NewService creates a preferences service
func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// Get returns the stored preferences, falling back to defaults for
// missing or unrecognised values
func (s *Service) Get(ctx context.Context) (Preferences, error) {
	p := Defaults()

	theme, ok, err := s.backend.GetPreference(ctx, KeyTheme)
	if err != nil {
		return p, fmt.Errorf("failed to read theme: %w", err)
	}
	if ok && validTheme(Theme(theme)) {
		p.Theme = Theme(theme)
	}

	lang, ok, err := s.backend.GetPreference(ctx, KeyLanguage)
	if err != nil {
		return p, fmt.Errorf("failed to read language: %w", err)
	}
	if ok && validLanguage(Language(lang)) {
		p.Language = Language(lang)
	}

	return p, nil
}

// SetTheme stores the theme
func (s *Service) SetTheme(ctx context.Context, theme Theme) error {
	if !validTheme(theme) {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}
	if err := s.backend.SetPreference(ctx, KeyTheme, string(theme)); err != nil {
		return fmt.Errorf("failed to store theme: %w", err)
	}
	return nil
}

// ToggleTheme flips between light and dark and returns the new theme
func (s *Service) ToggleTheme(ctx context.Context) (Theme, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return "", err
	}

	next := ThemeDark
	if current.Theme == ThemeDark {
		next = ThemeLight
	}
	if err := s.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

// SetLanguage stores the language
func (s *Service) SetLanguage(ctx context.Context, lang Language) error {
	if !validLanguage(lang) {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
	}
	if err := s.backend.SetPreference(ctx, KeyLanguage, string(lang)); err != nil {
		return fmt.Errorf("failed to store language: %w", err)
	}
	return nil
}

// Set stores the non-empty fields of p. Every given value is validated before
// anything is written, so a rejected update changes nothing.
func (s *Service) Set(ctx context.Context, p Preferences) error {
	if p.Theme != "" && !validTheme(p.Theme) {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, p.Theme)
	}
	if p.Language != "" && !validLanguage(p.Language) {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, p.Language)
	}

	if p.Theme != "" {
		if err := s.SetTheme(ctx, p.Theme); err != nil {
			return err
		}
	}
	if p.Language != "" {
		if err := s.SetLanguage(ctx, p.Language); err != nil {
			return err
		}
	}
	return nil
}

func validTheme(t Theme) bool {
	return t == ThemeLight || t == ThemeDark
}

func validLanguage(l Language) bool {
	return l == LanguageEnglish || l == LanguageFrench
}

// MemoryBackend keeps preferences for the lifetime of the process
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

// GetPreference returns the value stored under key
func (m *MemoryBackend) GetPreference(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// SetPreference stores value under key
func (m *MemoryBackend) SetPreference(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
