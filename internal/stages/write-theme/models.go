// internal/stages/write-theme/models.go
package writetheme

import "theme-mapper/internal/models"

type Input struct {
	Theme *models.MappedTheme
}

type Output struct {
	Path  string
	Bytes int
}
