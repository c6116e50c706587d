package resolvevariables

import (
	"context"
	"encoding/json"
	"testing"

	apperrors "theme-mapper/internal/common/errors"
	"theme-mapper/internal/common/jsonvalue"
	"theme-mapper/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, doc string) jsonvalue.Value {
	t.Helper()
	v, err := jsonvalue.Parse([]byte(doc))
	require.NoError(t, err)
	return v
}

func table(t *testing.T, doc string) *jsonvalue.Object {
	t.Helper()
	obj := jsonvalue.AsObject(parse(t, doc))
	require.NotNil(t, obj)
	return obj
}

func marshal(t *testing.T, v jsonvalue.Value) string {
	t.Helper()
	out, err := json.Marshal(v)
	require.NoError(t, err)
	return string(out)
}

func createTestHandler(t *testing.T, config *Config) *Handler {
	return NewHandler(config, logger.NewTestLogger(t))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		table    string
		config   func(*Config)
		expected string
		subs     int
	}{
		{
			name:     "no references is identity",
			input:    `{"fontSize":14,"flag":true,"none":null,"name":"plain","nested":{"list":[1,"a"]}}`,
			table:    `{"@a":"x"}`,
			expected: `{"fontSize":14,"flag":true,"none":null,"name":"plain","nested":{"list":[1,"a"]}}`,
		},
		{
			name:     "single pass, no transitive lookup",
			input:    `{"k":"@a"}`,
			table:    `{"@a":"@b","@b":"x"}`,
			expected: `{"k":"@b"}`,
			subs:     1,
		},
		{
			name:     "nested objects are traversed",
			input:    `{"o":{"inner":"@c"}}`,
			table:    `{"@c":42}`,
			expected: `{"o":{"inner":42}}`,
			subs:     1,
		},
		{
			name:     "structured table values are inserted",
			input:    `{"scale":"@ramp"}`,
			table:    `{"@ramp":["#000","#fff"]}`,
			expected: `{"scale":["#000","#fff"]}`,
			subs:     1,
		},
		{
			name:     "null table value replaces the leaf",
			input:    `{"color":"@none"}`,
			table:    `{"@none":null}`,
			expected: `{"color":null}`,
			subs:     1,
		},
		{
			name:     "marker only at first character",
			input:    `{"email":"brand@example.com","at":"@"}`,
			table:    `{"@":"bare"}`,
			expected: `{"email":"brand@example.com","at":"bare"}`,
			subs:     1,
		},
		{
			name:     "array elements resolved by default",
			input:    `{"scale":["@a",{"c":"@a"},3]}`,
			table:    `{"@a":"#111"}`,
			expected: `{"scale":["#111",{"c":"#111"},3]}`,
			subs:     2,
		},
		{
			name:     "array elements left alone when disabled",
			input:    `{"scale":["@a",{"c":"@a"}],"o":{"c":"@a"}}`,
			table:    `{"@a":"#111"}`,
			config:   func(c *Config) { c.ResolveArrays = false },
			expected: `{"scale":["@a",{"c":"@a"}],"o":{"c":"#111"}}`,
			subs:     1,
		},
		{
			name:     "custom marker",
			input:    `{"a":"$brand","b":"@brand"}`,
			table:    `{"$brand":"#123456"}`,
			config:   func(c *Config) { c.Marker = "$" },
			expected: `{"a":"#123456","b":"@brand"}`,
			subs:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tt.config != nil {
				tt.config(cfg)
			}

			resolved, report := Resolve(parse(t, tt.input), table(t, tt.table), cfg)

			assert.Equal(t, tt.expected, marshal(t, resolved))
			assert.Equal(t, tt.subs, report.Substitutions)
			assert.Empty(t, report.Unresolved)
		})
	}
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	input := parse(t, `{"o":{"inner":"@c"},"list":["@c"],"_variables":{"@c":"x"}}`)
	before := marshal(t, input)

	vars, _ := jsonvalue.AsObject(input).Get("_variables")
	resolved, _ := Resolve(input, jsonvalue.AsObject(vars), DefaultConfig())

	assert.Equal(t, before, marshal(t, input))
	assert.Equal(t, `{"o":{"inner":"x"},"list":["x"],"_variables":{"@c":"x"}}`, marshal(t, resolved))

	jsonvalue.AsObject(jsonvalue.Lookup(resolved, "o")).Set("inner", jsonvalue.String("changed"))
	assert.Equal(t, before, marshal(t, input))
}

func TestResolve_TableIsNotResolved(t *testing.T) {
	input := parse(t, `{"bg":"@bg","_variables":{"@bg":"@base","@base":"#fff","nested":{"x":"@base"}}}`)
	vars, _ := jsonvalue.AsObject(input).Get("_variables")

	resolved, report := Resolve(input, jsonvalue.AsObject(vars), DefaultConfig())

	assert.Equal(t,
		`{"bg":"@base","_variables":{"@bg":"@base","@base":"#fff","nested":{"x":"@base"}}}`,
		marshal(t, resolved))
	assert.Equal(t, 1, report.Substitutions)
}

func TestResolve_UnresolvedReferences(t *testing.T) {
	input := parse(t, `{"backgroundColor":"@missing","dataColors":{"primaryColor":"@p","othersColor":"@gone"},"list":["@missing"]}`)

	resolved, report := Resolve(input, table(t, `{"@p":"#112233"}`), DefaultConfig())

	assert.Equal(t, `{"dataColors":{"primaryColor":"#112233"},"list":[null]}`, marshal(t, resolved))
	assert.Equal(t, []UnresolvedReference{
		{Path: "backgroundColor", Key: "@missing"},
		{Path: "dataColors.othersColor", Key: "@gone"},
		{Path: "list[0]", Key: "@missing"},
	}, report.Unresolved)
	assert.Equal(t, []string{"@gone", "@missing"}, report.UnresolvedKeys())
}

func TestResolve_NilTable(t *testing.T) {
	resolved, report := Resolve(parse(t, `{"a":"@a","b":1}`), nil, DefaultConfig())

	assert.Equal(t, `{"b":1}`, marshal(t, resolved))
	assert.Equal(t, []string{"@a"}, report.UnresolvedKeys())
}

func TestResolve_NonObjectRoot(t *testing.T) {
	resolved, report := Resolve(parse(t, `["@a",{"k":"@a"}]`), table(t, `{"@a":1}`), DefaultConfig())
	assert.Equal(t, `[1,{"k":1}]`, marshal(t, resolved))
	assert.Equal(t, 2, report.Substitutions)

	resolved, _ = Resolve(jsonvalue.String("@a"), table(t, `{"@a":1}`), DefaultConfig())
	assert.Equal(t, jsonvalue.String("@a"), resolved)
}

func TestHandler_Execute_Success(t *testing.T) {
	h := createTestHandler(t, nil)

	input := &Input{Document: parse(t, `{"backgroundColor":"@bg","dataColors":{"primaryColor":"@p","othersColor":"#888888"},"_variables":{"@bg":"#ffffff","@p":"#112233"}}`)}
	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t,
		`{"backgroundColor":"#ffffff","dataColors":{"primaryColor":"#112233","othersColor":"#888888"},"_variables":{"@bg":"#ffffff","@p":"#112233"}}`,
		marshal(t, output.Document))
	assert.Equal(t, 2, output.Report.Substitutions)
}

func TestHandler_Execute_Policies(t *testing.T) {
	doc := `{"backgroundColor":"@bg","fontSize":14,"_variables":{}}`

	t.Run("warn keeps going", func(t *testing.T) {
		h := createTestHandler(t, nil)
		output, err := h.Execute(context.Background(), &Input{Document: parse(t, doc)})
		require.NoError(t, err)
		assert.Equal(t, `{"fontSize":14,"_variables":{}}`, marshal(t, output.Document))
		assert.Equal(t, []string{"@bg"}, output.Report.UnresolvedKeys())
	})

	t.Run("fail aborts", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.UnresolvedPolicy = PolicyFail
		h := createTestHandler(t, cfg)

		output, err := h.Execute(context.Background(), &Input{Document: parse(t, doc)})
		require.Error(t, err)
		assert.Nil(t, output)
		assert.Equal(t, apperrors.ErrCodeUnresolvedReference, apperrors.CodeOf(err))
		assert.Contains(t, err.Error(), "@bg")
	})
}

func TestHandler_Execute_Errors(t *testing.T) {
	t.Run("not an object", func(t *testing.T) {
		h := createTestHandler(t, nil)
		_, err := h.Execute(context.Background(), &Input{Document: parse(t, `[1,2]`)})
		assert.Equal(t, apperrors.ErrCodeInvalidThemeDocument, apperrors.CodeOf(err))
	})

	t.Run("absent document", func(t *testing.T) {
		h := createTestHandler(t, nil)
		_, err := h.Execute(context.Background(), &Input{})
		assert.Equal(t, apperrors.ErrCodeInvalidThemeDocument, apperrors.CodeOf(err))
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.UnresolvedPolicy = "ignore"
		h := createTestHandler(t, cfg)
		_, err := h.Execute(context.Background(), &Input{Document: parse(t, `{}`)})
		assert.Equal(t, apperrors.ErrCodeInvalidConfiguration, apperrors.CodeOf(err))
	})
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Marker = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.TableKey = ""
	assert.Error(t, cfg.Validate())
}
