// internal/stages/write-theme/config.go
package writetheme

import (
	"fmt"
	"os"
)

// StdoutPath writes the theme to standard output instead of a file.
const StdoutPath = "-"

type Config struct {
	Path   string
	Indent bool
	// FileMode applies to files created by the stage. Existing files keep their mode.
	FileMode os.FileMode
}

func DefaultConfig() *Config {
	return &Config{
		Path:     "theme.json",
		FileMode: 0o644,
	}
}

func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("output path is required")
	}
	return nil
}
