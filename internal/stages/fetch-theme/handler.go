// internal/stages/fetch-theme/handler.go
package fetchtheme

import (
	"context"
	"encoding/json"

	apperrors "theme-mapper/internal/common/errors"
	"theme-mapper/internal/common/jsonvalue"
	"theme-mapper/internal/common/logger"
	"theme-mapper/internal/models"
)

const StageName = "fetch-theme"

type Handler struct {
	config   *Config
	source   ThemeSource
	selector Selector
	cache    DocumentCache
	logger   logger.Logger
}

// NewHandler creates the fetch stage. selector and cache may be nil.
func NewHandler(config *Config, source ThemeSource, selector Selector, cache DocumentCache, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	return &Handler{
		config:   config,
		source:   source,
		selector: selector,
		cache:    cache,
		logger:   log.WithFields(map[string]interface{}{"stage": StageName}),
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := h.config.Validate(); err != nil {
		return nil, apperrors.NewInvalidConfigurationError(err)
	}

	themes, err := h.source.ListThemes(ctx)
	if err != nil {
		return nil, apperrors.NewTransportError("list themes", err, apperrors.HintCheckTenant)
	}
	h.logger.Debug("themes listed", map[string]interface{}{"count": len(themes)})

	theme, err := h.selectTheme(themes, input.ThemeName)
	if err != nil {
		return nil, err
	}

	document, fromCache := h.cached(ctx, theme.ID)
	if !fromCache {
		document, err = h.source.GetThemeFile(ctx, theme.ID)
		if err != nil {
			return nil, apperrors.NewTransportError("get theme file", err, apperrors.HintCheckAPIKey)
		}
		h.store(ctx, theme.ID, document)
	}

	warnings, err := CheckDocument(document)
	if err != nil {
		h.logger.Warn("document check skipped", map[string]interface{}{"error": err.Error()})
	}
	if len(warnings) > 0 {
		h.logger.Warn("theme document has data-quality issues", map[string]interface{}{
			"themeId":  theme.ID,
			"findings": warnings,
		})
	}

	h.logger.Info("theme fetched", map[string]interface{}{
		"themeId":   theme.ID,
		"themeName": theme.Name,
		"fromCache": fromCache,
	})

	return &Output{
		Theme:     theme,
		Document:  document,
		FromCache: fromCache,
		Warnings:  warnings,
	}, nil
}

func (h *Handler) selectTheme(themes []models.ThemeDescriptor, name string) (models.ThemeDescriptor, error) {
	if len(themes) == 0 {
		return models.ThemeDescriptor{}, apperrors.NewThemeNotFoundError(name)
	}

	if name != "" {
		for _, theme := range themes {
			if theme.Name == name {
				return theme, nil
			}
		}
		return models.ThemeDescriptor{}, apperrors.NewThemeNotFoundError(name)
	}

	if h.selector == nil {
		return models.ThemeDescriptor{}, apperrors.NewThemeNotFoundError(name)
	}
	return h.selector.SelectTheme(themes)
}

// cached returns the cached document. Cache failures are logged and treated as misses.
func (h *Handler) cached(ctx context.Context, themeID string) (jsonvalue.Value, bool) {
	if h.cache == nil {
		return nil, false
	}

	data, found, err := h.cache.GetDocument(ctx, h.config.Tenant, themeID)
	if err != nil {
		h.logger.Warn("cache read failed", map[string]interface{}{"themeId": themeID, "error": err.Error()})
		return nil, false
	}
	if !found {
		return nil, false
	}

	document, err := jsonvalue.Parse(data)
	if err != nil {
		h.logger.Warn("cached document is corrupt", map[string]interface{}{"themeId": themeID, "error": err.Error()})
		return nil, false
	}
	return document, true
}

func (h *Handler) store(ctx context.Context, themeID string, document jsonvalue.Value) {
	if h.cache == nil || document == nil {
		return
	}

	data, err := json.Marshal(document)
	if err != nil {
		h.logger.Warn("cache encode failed", map[string]interface{}{"themeId": themeID, "error": err.Error()})
		return
	}
	if err := h.cache.SetDocument(ctx, h.config.Tenant, themeID, data, h.config.CacheTTL); err != nil {
		h.logger.Warn("cache write failed", map[string]interface{}{"themeId": themeID, "error": err.Error()})
	}
}
