// internal/stages/map-theme/config.go
package maptheme

import (
	"fmt"

	"theme-mapper/internal/models"
	"theme-mapper/pkg/registry"
)

const DefaultFontFamily = registry.DefaultFontFamily

type Config struct {
	FontFamily string
	// TableKey names the root member holding the unresolved variable
	// table. Empty means models.KeyVariables.
	TableKey string
}

func DefaultConfig() *Config {
	return &Config{FontFamily: DefaultFontFamily, TableKey: models.KeyVariables}
}

func (c *Config) Validate() error {
	if c.FontFamily == "" {
		return fmt.Errorf("font family is required")
	}
	return nil
}
