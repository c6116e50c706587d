// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Tenant   TenantConfig   `mapstructure:"tenant"`
	Resolver ResolverConfig `mapstructure:"resolver"`
	Mapper   MapperConfig   `mapstructure:"mapper"`
	Output   OutputConfig   `mapstructure:"output"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// TenantConfig holds the source API coordinates. Empty values are prompted for.
type TenantConfig struct {
	Domain  string `mapstructure:"domain"`
	APIKey  string `mapstructure:"api_key"`
	Theme   string `mapstructure:"theme"`
	Scheme  string `mapstructure:"scheme"`
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds, 0 disables
}

// ResolverConfig holds settings for the resolve-variables stage.
type ResolverConfig struct {
	Marker           string `mapstructure:"marker"`
	TableKey         string `mapstructure:"table_key"`
	ResolveArrays    bool   `mapstructure:"resolve_arrays"`
	UnresolvedPolicy string `mapstructure:"unresolved_policy"` // warn or fail
}

// MapperConfig holds settings for the map-theme stage.
type MapperConfig struct {
	FontFamily string `mapstructure:"font_family"`
}

// OutputConfig holds settings for the write-theme stage.
type OutputConfig struct {
	Path   string `mapstructure:"path"`
	Indent bool   `mapstructure:"indent"`
}

// CacheConfig enables caching of fetched theme documents.
type CacheConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	TTL     int         `mapstructure:"ttl"` // seconds
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// MetricsConfig holds metrics export settings.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// CacheTTL returns the cache expiration as a duration.
func (c CacheConfig) CacheTTL() time.Duration {
	return time.Duration(c.TTL) * time.Second
}
