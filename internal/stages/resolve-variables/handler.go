// internal/stages/resolve-variables/handler.go
package resolvevariables

import (
	"context"
	"fmt"
	"strings"

	apperrors "theme-mapper/internal/common/errors"
	"theme-mapper/internal/common/jsonvalue"
	"theme-mapper/internal/common/logger"
	"theme-mapper/internal/models"
)

const StageName = "resolve-variables"

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"stage": StageName}),
	}
}

// Execute resolves every reference of the document against its own variable
// table. The input document is never modified.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := h.config.Validate(); err != nil {
		return nil, apperrors.NewInvalidConfigurationError(err)
	}

	doc := models.NewThemeDocument(input.Document)
	if !doc.IsObject() {
		return nil, apperrors.NewInvalidThemeDocumentError("theme document is not a JSON object")
	}

	tableValue, _ := doc.Root().Get(h.config.TableKey)
	table := jsonvalue.AsObject(tableValue)
	if table == nil {
		h.logger.Warn("variable table missing or not an object", map[string]interface{}{
			"tableKey": h.config.TableKey,
		})
	}

	resolved, report := Resolve(input.Document, table, h.config)

	h.logger.Debug("variables resolved", map[string]interface{}{
		"substitutions": report.Substitutions,
		"unresolved":    len(report.Unresolved),
	})

	if len(report.Unresolved) > 0 {
		keys := report.UnresolvedKeys()
		h.logger.Warn("unresolved variable references", map[string]interface{}{
			"keys":   keys,
			"paths":  report.UnresolvedPaths(),
			"policy": string(h.config.UnresolvedPolicy),
		})
		if h.config.UnresolvedPolicy == PolicyFail {
			return nil, apperrors.NewUnresolvedReferenceError(keys)
		}
	}

	return &Output{Document: resolved, Report: report}, nil
}

// Resolve returns a copy of node in which every string leaf starting with
// the marker is replaced by its entry in table. Substitution is a single
// pass: table values are inserted as they are, even when they hold markers.
// A key missing from table leaves the member absent and is recorded in the
// report. The root member named cfg.TableKey is copied without resolution.
func Resolve(node jsonvalue.Value, table *jsonvalue.Object, cfg *Config) (jsonvalue.Value, *Report) {
	r := &resolver{table: table, cfg: cfg, report: &Report{}}

	root, ok := node.(*jsonvalue.Object)
	if !ok || root == nil {
		return r.container(node, ""), r.report
	}

	out := jsonvalue.NewObject()
	root.Range(func(key string, child jsonvalue.Value) bool {
		if key == cfg.TableKey {
			out.Set(key, jsonvalue.Clone(child))
			return true
		}
		out.Set(key, r.member(child, key))
		return true
	})
	return out, r.report
}

type resolver struct {
	table  *jsonvalue.Object
	cfg    *Config
	report *Report
}

// container walks objects and, when enabled, arrays. Scalars are returned as is.
func (r *resolver) container(node jsonvalue.Value, path string) jsonvalue.Value {
	switch v := node.(type) {
	case *jsonvalue.Object:
		if v == nil {
			return nil
		}
		out := jsonvalue.NewObject()
		v.Range(func(key string, child jsonvalue.Value) bool {
			out.Set(key, r.member(child, joinKey(path, key)))
			return true
		})
		return out
	case jsonvalue.Array:
		if !r.cfg.ResolveArrays {
			return jsonvalue.Clone(v)
		}
		out := make(jsonvalue.Array, len(v))
		for i, item := range v {
			out[i] = r.member(item, fmt.Sprintf("%s[%d]", path, i))
		}
		return out
	default:
		return node
	}
}

// member resolves one child of a container.
func (r *resolver) member(node jsonvalue.Value, path string) jsonvalue.Value {
	s, ok := node.(jsonvalue.String)
	if !ok || !strings.HasPrefix(string(s), r.cfg.Marker) {
		return r.container(node, path)
	}

	key := string(s)
	if value, found := r.table.Get(key); found {
		r.report.Substitutions++
		return jsonvalue.Clone(value)
	}

	r.report.Unresolved = append(r.report.Unresolved, UnresolvedReference{Path: path, Key: key})
	return nil
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
