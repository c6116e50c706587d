// internal/stages/map-theme/defaults.go
package maptheme

import (
	"theme-mapper/internal/common/jsonvalue"
	"theme-mapper/internal/models"
)

// DesignSystemDefaults returns the palette roles fixed by the design system.
// Roles that track the brand are left absent and filled by BrandColors.Apply.
func DesignSystemDefaults() models.UIPalette {
	return models.UIPalette{
		Text: models.TextColors{
			Secondary: jsonvalue.String("rgba(0, 0, 0, 0.55)"),
			Disabled:  jsonvalue.String("rgba(0, 0, 0, 0.3)"),
		},
		Action: models.ActionColors{
			Hover:              jsonvalue.String("rgba(0, 0, 0, 0.03)"),
			HoverOpacity:       jsonvalue.Number("0.08"),
			Selected:           jsonvalue.String("rgba(0, 0, 0, 0.05)"),
			Disabled:           jsonvalue.String("rgba(0, 0, 0, 0.3)"),
			DisabledBackground: jsonvalue.String("rgba(0, 0, 0, 0.12)"),
		},
		Custom: models.CustomColors{
			FocusOutline:    jsonvalue.String("rgba(70, 157, 205, 0.3)"),
			InputBackground: jsonvalue.String("rgba(255, 255, 255, 1)"),
		},
		Selected: models.SelectedColors{
			Main:                    jsonvalue.String("#009845"),
			Alternative:             jsonvalue.String("#E4E4E4"),
			Excluded:                jsonvalue.String("#BEBEBE"),
			MainContrastText:        jsonvalue.String("#ffffff"),
			AlternativeContrastText: jsonvalue.String("#404040"),
			ExcludedContrastText:    jsonvalue.String("#404040"),
		},
		Btn: models.ButtonColors{
			Normal:      jsonvalue.String("rgba(255, 255, 255, 0.6)"),
			Hover:       jsonvalue.String("rgba(0, 0, 0, 0.03)"),
			Active:      jsonvalue.String("rgba(0, 0, 0, 0.1)"),
			Disabled:    jsonvalue.String("rgba(255, 255, 255, 0.6)"),
			Border:      jsonvalue.String("rgba(0, 0, 0, 0.15)"),
			BorderHover: jsonvalue.String("rgba(0, 0, 0, 0.15)"),
		},
	}
}

// Apply writes the brand colors into every role that tracks them.
func (b BrandColors) Apply(p *models.UIPalette) {
	p.Primary.Main = jsonvalue.Clone(b.Primary)
	p.Primary.ContrastText = jsonvalue.Clone(b.Primary)
	p.Text.Primary = jsonvalue.Clone(b.Primary)
	p.Action.Active = jsonvalue.Clone(b.Primary)

	p.Secondary.Light = jsonvalue.Clone(b.Others)
	p.Secondary.Main = jsonvalue.Clone(b.Others)
	p.Secondary.Dark = jsonvalue.Clone(b.Others)
	p.Custom.FocusBorder = jsonvalue.Clone(b.Others)

	p.Background.Paper = jsonvalue.Clone(b.Background)
	p.Background.Default = jsonvalue.Clone(b.Background)
	p.Background.Lightest = jsonvalue.Clone(b.Background)
	p.Background.Lighter = jsonvalue.Clone(b.Background)
	p.Background.Darker = jsonvalue.Clone(b.Background)
	p.Background.Darkest = jsonvalue.Clone(b.Background)
}
