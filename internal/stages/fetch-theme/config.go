// internal/stages/fetch-theme/config.go
package fetchtheme

import (
	"fmt"
	"time"
)

type Config struct {
	// Tenant namespaces cached documents.
	Tenant   string
	CacheTTL time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		CacheTTL: 5 * time.Minute,
	}
}

func (c *Config) Validate() error {
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache TTL must not be negative")
	}
	return nil
}
