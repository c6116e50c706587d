// pkg/registry/schema.go
package registry

// RuleKind says where a destination value comes from.
type RuleKind string

const (
	// KindCopy writes one source member to one destination.
	KindCopy RuleKind = "copy"
	// KindBroadcast writes one source member to several destinations.
	KindBroadcast RuleKind = "broadcast"
	// KindConst writes a design-system literal independent of the source.
	KindConst RuleKind = "const"
)

type MappingRegistry struct {
	Version string        `json:"version"`
	Rules   []MappingRule `json:"rules"`
}

// MappingRule describes one destination path of the mapped theme. Paths are
// dot separated member names.
type MappingRule struct {
	Destination string      `json:"destination"`
	Kind        RuleKind    `json:"kind"`
	Source      string      `json:"source,omitempty"`
	Constant    interface{} `json:"constant,omitempty"`
}
