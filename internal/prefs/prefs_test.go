package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) GetPreference(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockBackend) SetPreference(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func TestGetDefaults(t *testing.T) {
	s := NewService(NewMemoryBackend())

	p, err := s.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Preferences{Theme: ThemeLight, Language: LanguageFrench}, p)
}

func TestGetIgnoresUnknownValues(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()
	require.NoError(t, backend.SetPreference(ctx, KeyTheme, "sepia"))
	require.NoError(t, backend.SetPreference(ctx, KeyLanguage, "en"))

	p, err := NewService(backend).Get(ctx)

	require.NoError(t, err)
	assert.Equal(t, ThemeLight, p.Theme)
	assert.Equal(t, LanguageEnglish, p.Language)
}

func TestToggleTheme(t *testing.T) {
	s := NewService(NewMemoryBackend())
	ctx := context.Background()

	theme, err := s.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)

	theme, err = s.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)

	p, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, p.Theme)
}

func TestSetInvalid(t *testing.T) {
	s := NewService(NewMemoryBackend())
	ctx := context.Background()

	assert.ErrorIs(t, s.SetTheme(ctx, "sepia"), ErrInvalidTheme)
	assert.ErrorIs(t, s.SetLanguage(ctx, "de"), ErrInvalidLanguage)

	require.NoError(t, s.SetLanguage(ctx, LanguageEnglish))
	p, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, LanguageEnglish, p.Language)
}

func TestBackendErrors(t *testing.T) {
	// Arrange
	ctx := context.Background()
	backend := new(MockBackend)
	backend.On("GetPreference", ctx, KeyTheme).Return("", false, errors.New("connection refused"))
	backend.On("SetPreference", ctx, KeyLanguage, "en").Return(errors.New("read only"))
	s := NewService(backend)

	// Act
	_, getErr := s.Get(ctx)
	_, toggleErr := s.ToggleTheme(ctx)
	setErr := s.SetLanguage(ctx, LanguageEnglish)

	// Assert
	assert.ErrorContains(t, getErr, "connection refused")
	assert.Error(t, toggleErr)
	assert.ErrorContains(t, setErr, "read only")
	backend.AssertExpectations(t)
}

func TestSet(t *testing.T) {
	testCases := []struct {
		name        string
		update      Preferences
		expected    Preferences
		expectedErr error
	}{
		{
			name:     "both values",
			update:   Preferences{Theme: ThemeDark, Language: LanguageEnglish},
			expected: Preferences{Theme: ThemeDark, Language: LanguageEnglish},
		},
		{
			name:     "empty fields are kept",
			update:   Preferences{Language: LanguageEnglish},
			expected: Preferences{Theme: ThemeLight, Language: LanguageEnglish},
		},
		{
			name:        "invalid language leaves theme unchanged",
			update:      Preferences{Theme: ThemeDark, Language: "de"},
			expected:    Defaults(),
			expectedErr: ErrInvalidLanguage,
		},
		{
			name:        "invalid theme leaves language unchanged",
			update:      Preferences{Theme: "sepia", Language: LanguageEnglish},
			expected:    Defaults(),
			expectedErr: ErrInvalidTheme,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewService(NewMemoryBackend())
			ctx := context.Background()

			err := s.Set(ctx, tc.update)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			p, err := s.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p)
		})
	}
}
