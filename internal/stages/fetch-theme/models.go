// internal/stages/fetch-theme/models.go
package fetchtheme

import (
	"context"
	"time"

	"theme-mapper/internal/common/jsonvalue"
	"theme-mapper/internal/models"
)

// ThemeSource is the tenant's theme API.
type ThemeSource interface {
	ListThemes(ctx context.Context) ([]models.ThemeDescriptor, error)
	GetThemeFile(ctx context.Context, themeID string) (jsonvalue.Value, error)
}

// Selector picks a theme when the input does not name one.
type Selector interface {
	SelectTheme(themes []models.ThemeDescriptor) (models.ThemeDescriptor, error)
}

// DocumentCache keeps raw theme documents between runs.
type DocumentCache interface {
	GetDocument(ctx context.Context, tenant, themeID string) ([]byte, bool, error)
	SetDocument(ctx context.Context, tenant, themeID string, data []byte, ttl time.Duration) error
}

type Input struct {
	// ThemeName selects a theme without asking. Empty defers to the Selector.
	ThemeName string
}

type Output struct {
	Theme     models.ThemeDescriptor
	Document  jsonvalue.Value
	FromCache bool
	// Warnings are data-quality findings on the fetched document.
	Warnings []string
}
