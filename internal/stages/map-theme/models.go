// internal/stages/map-theme/models.go
package maptheme

import (
	"theme-mapper/internal/common/jsonvalue"
	"theme-mapper/internal/models"
)

type Input struct {
	// Document is the resolved theme document.
	Document jsonvalue.Value
}

type Output struct {
	Theme *models.MappedTheme
}

// BrandColors are the source colors broadcast across the palette.
type BrandColors struct {
	Primary    jsonvalue.Value
	Others     jsonvalue.Value
	Background jsonvalue.Value
}

// BrandColorsOf reads the brand colors of a resolved document.
func BrandColorsOf(doc models.ThemeDocument) BrandColors {
	return BrandColors{
		Primary:    doc.PrimaryColor(),
		Others:     doc.OthersColor(),
		Background: doc.BackgroundColor(),
	}
}

// Missing lists the brand colors the document does not define.
func (b BrandColors) Missing() []string {
	var missing []string
	if b.Primary == nil {
		missing = append(missing, models.KeyDataColors+"."+models.KeyPrimaryColor)
	}
	if b.Others == nil {
		missing = append(missing, models.KeyDataColors+"."+models.KeyOthersColor)
	}
	if b.Background == nil {
		missing = append(missing, models.KeyBackgroundColor)
	}
	return missing
}
