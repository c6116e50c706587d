// internal/stages/resolve-variables/models.go
package resolvevariables

import (
	"sort"

	"theme-mapper/internal/common/jsonvalue"
)

type Input struct {
	Document jsonvalue.Value
}

type Output struct {
	Document jsonvalue.Value
	Report   *Report
}

// Report describes what a resolution pass did.
type Report struct {
	Substitutions int                   `json:"substitutions"`
	Unresolved    []UnresolvedReference `json:"unresolved,omitempty"`
}

// UnresolvedReference is a leaf whose key has no table entry.
type UnresolvedReference struct {
	Path string `json:"path"`
	Key  string `json:"key"`
}

// UnresolvedKeys returns the distinct missing keys in sorted order.
func (r *Report) UnresolvedKeys() []string {
	if r == nil || len(r.Unresolved) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(r.Unresolved))
	keys := make([]string, 0, len(r.Unresolved))
	for _, ref := range r.Unresolved {
		if _, ok := seen[ref.Key]; ok {
			continue
		}
		seen[ref.Key] = struct{}{}
		keys = append(keys, ref.Key)
	}
	sort.Strings(keys)
	return keys
}

// UnresolvedPaths returns the document paths left without a value.
func (r *Report) UnresolvedPaths() []string {
	if r == nil {
		return nil
	}
	paths := make([]string, 0, len(r.Unresolved))
	for _, ref := range r.Unresolved {
		paths = append(paths, ref.Path)
	}
	return paths
}
