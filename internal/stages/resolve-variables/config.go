// internal/stages/resolve-variables/config.go
package resolvevariables

import "fmt"

// UnresolvedPolicy decides what happens to references missing from the table.
type UnresolvedPolicy string

const (
	// PolicyWarn drops the leaf, reports the key and keeps going.
	PolicyWarn UnresolvedPolicy = "warn"
	// PolicyFail aborts the stage with an UNRESOLVED_REFERENCE error.
	PolicyFail UnresolvedPolicy = "fail"
)

type Config struct {
	Marker           string
	TableKey         string
	ResolveArrays    bool
	UnresolvedPolicy UnresolvedPolicy
}

func DefaultConfig() *Config {
	return &Config{
		Marker:           "@",
		TableKey:         "_variables",
		ResolveArrays:    true,
		UnresolvedPolicy: PolicyWarn,
	}
}

func (c *Config) Validate() error {
	if c.Marker == "" {
		return fmt.Errorf("marker is required")
	}
	if c.TableKey == "" {
		return fmt.Errorf("table key is required")
	}
	switch c.UnresolvedPolicy {
	case PolicyWarn, PolicyFail:
		return nil
	default:
		return fmt.Errorf("unknown unresolved policy %q", c.UnresolvedPolicy)
	}
}
