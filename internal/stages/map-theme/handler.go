// internal/stages/map-theme/handler.go
package maptheme

import (
	"context"

	apperrors "theme-mapper/internal/common/errors"
	"theme-mapper/internal/common/jsonvalue"
	"theme-mapper/internal/common/logger"
	"theme-mapper/internal/models"
)

const StageName = "map-theme"

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"stage": StageName}),
	}
}

// Execute projects the resolved document onto the mapped theme. Missing
// source members leave their destinations absent; the stage does not fail
// on document content.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := h.config.Validate(); err != nil {
		return nil, apperrors.NewInvalidConfigurationError(err)
	}

	doc := models.NewThemeDocument(input.Document)
	if missing := BrandColorsOf(doc).Missing(); len(missing) > 0 {
		h.logger.Warn("brand colors missing, palette roles left empty", map[string]interface{}{
			"missing": missing,
		})
	}

	theme := Map(input.Document, h.config)

	h.logger.Debug("theme mapped", map[string]interface{}{
		"fontFamily": theme.Base.FontFamily,
	})

	return &Output{Theme: theme}, nil
}

// Map builds the mapped theme from a resolved document. It never fails and
// never aliases the document: every copied member is cloned.
func Map(resolved jsonvalue.Value, cfg *Config) *models.MappedTheme {
	doc := models.NewThemeDocument(resolved)

	palette := DesignSystemDefaults()
	BrandColorsOf(doc).Apply(&palette)

	return &models.MappedTheme{
		Type: models.ThemeTypeCustom,
		Base: models.BaseTheme{
			FontSize:        jsonvalue.Clone(doc.FontSize()),
			FontFamily:      cfg.FontFamily,
			BackgroundColor: jsonvalue.Clone(doc.BackgroundColor()),
			DataColors:      jsonvalue.Clone(doc.DataColors()),
			Scales:          jsonvalue.Clone(doc.Scales()),
			Palettes:        jsonvalue.Clone(doc.Palettes()),
		},
		Custom: models.CustomTheme{
			Variables: jsonvalue.Clone(doc.Variables(cfg.TableKey)),
			Type:      models.ThemeTypeCustom,
			Color:     jsonvalue.Clone(doc.Color()),
		},
		Theme: models.UITheme{
			Type:    models.ThemeTypeCustom,
			Palette: palette,
		},
	}
}
