// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. THEME_MAPPER_TENANT_API_KEY.
const EnvPrefix = "THEME_MAPPER"

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"tenant":            "tenant.domain",
	"api-key":           "tenant.api_key",
	"theme":             "tenant.theme",
	"output":            "output.path",
	"indent":            "output.indent",
	"unresolved-policy": "resolver.unresolved_policy",
	"resolve-arrays":    "resolver.resolve_arrays",
	"cache":             "cache.enabled",
	"log-level":         "logging.level",
	"log-format":        "logging.format",
	"metrics-textfile":  "metrics.textfile",
}

// Load reads configs/config.yaml (or ./config.yaml), merges the
// config.<APP_ENVIRONMENT>.yaml overlay, then applies environment variables
// and flags on top.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	return finish(v, flags)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string, flags *pflag.FlagSet) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v, flags)
}

func newViper() *viper.Viper {
	loadEnvFile()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func finish(v *viper.Viper, flags *pflag.FlagSet) (*Config, error) {
	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// loadEnvFile loads .env from the working directory or the project root.
// Variables already present in the environment win.
func loadEnvFile() string {
	possiblePaths := []string{".env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars replaces ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// setDefaults registers every key so environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "theme-mapper")
	v.SetDefault("app.version", "dev")
	v.SetDefault("app.environment", "development")

	v.SetDefault("tenant.domain", "")
	v.SetDefault("tenant.api_key", "")
	v.SetDefault("tenant.theme", "")
	v.SetDefault("tenant.scheme", "https")
	v.SetDefault("tenant.base_url", "")
	v.SetDefault("tenant.timeout", 0)

	v.SetDefault("resolver.marker", "@")
	v.SetDefault("resolver.table_key", "_variables")
	v.SetDefault("resolver.resolve_arrays", true)
	v.SetDefault("resolver.unresolved_policy", "warn")

	v.SetDefault("mapper.font_family", "'Source Sans Pro', 'Arial', 'sans-serif'")

	v.SetDefault("output.path", "theme.json")
	v.SetDefault("output.indent", false)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", 300)
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)

	v.SetDefault("metrics.textfile", "")

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Tenant.Scheme != "http" && cfg.Tenant.Scheme != "https" {
		return fmt.Errorf("tenant.scheme must be http or https")
	}
	if cfg.Tenant.Timeout < 0 {
		return fmt.Errorf("tenant.timeout must not be negative")
	}

	if cfg.Resolver.Marker == "" {
		return fmt.Errorf("resolver.marker is required")
	}
	if cfg.Resolver.TableKey == "" {
		return fmt.Errorf("resolver.table_key is required")
	}
	switch cfg.Resolver.UnresolvedPolicy {
	case "warn", "fail":
	default:
		return fmt.Errorf("resolver.unresolved_policy must be warn or fail, got %q", cfg.Resolver.UnresolvedPolicy)
	}

	if cfg.Output.Path == "" {
		return fmt.Errorf("output.path is required")
	}

	if cfg.Cache.Enabled && cfg.Cache.Redis.Address == "" {
		return fmt.Errorf("cache.redis.address is required when cache is enabled")
	}
	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}

	switch cfg.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", cfg.Logging.Format)
	}

	return nil
}
