package maptheme

import (
	"context"
	"encoding/json"
	"testing"

	apperrors "theme-mapper/internal/common/errors"
	"theme-mapper/internal/common/jsonvalue"
	"theme-mapper/internal/common/logger"
	resolvevariables "theme-mapper/internal/stages/resolve-variables"
	"theme-mapper/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioDocument = `{
	"fontSize": 14,
	"backgroundColor": "@bg",
	"dataColors": {"primaryColor": "@p", "othersColor": "#888888"},
	"_variables": {"@bg": "#ffffff", "@p": "#112233"},
	"color": {}
}`

const scenarioExpected = `{
	"type": "custom",
	"base": {
		"fontSize": 14,
		"fontFamily": "'Source Sans Pro', 'Arial', 'sans-serif'",
		"backgroundColor": "#ffffff",
		"dataColors": {"primaryColor": "#112233", "othersColor": "#888888"}
	},
	"custom": {
		"_variables": {"@bg": "#ffffff", "@p": "#112233"},
		"type": "custom",
		"color": {}
	},
	"theme": {
		"type": "custom",
		"palette": {
			"primary": {"main": "#112233", "contrastText": "#112233"},
			"secondary": {"light": "#888888", "main": "#888888", "dark": "#888888"},
			"text": {"primary": "#112233", "secondary": "rgba(0, 0, 0, 0.55)", "disabled": "rgba(0, 0, 0, 0.3)"},
			"action": {
				"active": "#112233",
				"hover": "rgba(0, 0, 0, 0.03)",
				"hoverOpacity": 0.08,
				"selected": "rgba(0, 0, 0, 0.05)",
				"disabled": "rgba(0, 0, 0, 0.3)",
				"disabledBackground": "rgba(0, 0, 0, 0.12)"
			},
			"background": {
				"paper": "#ffffff", "default": "#ffffff", "lightest": "#ffffff",
				"lighter": "#ffffff", "darker": "#ffffff", "darkest": "#ffffff"
			},
			"custom": {
				"focusBorder": "#888888",
				"focusOutline": "rgba(70, 157, 205, 0.3)",
				"inputBackground": "rgba(255, 255, 255, 1)"
			},
			"selected": {
				"main": "#009845",
				"alternative": "#E4E4E4",
				"excluded": "#BEBEBE",
				"mainContrastText": "#ffffff",
				"alternativeContrastText": "#404040",
				"excludedContrastText": "#404040"
			},
			"btn": {
				"normal": "rgba(255, 255, 255, 0.6)",
				"hover": "rgba(0, 0, 0, 0.03)",
				"active": "rgba(0, 0, 0, 0.1)",
				"disabled": "rgba(255, 255, 255, 0.6)",
				"border": "rgba(0, 0, 0, 0.15)",
				"borderHover": "rgba(0, 0, 0, 0.15)"
			}
		}
	}
}`

const fullDocument = `{
	"fontSize": 12,
	"backgroundColor": "#f0f0f0",
	"dataColors": {"primaryColor": "#112233", "othersColor": "#445566", "nullColor": "#cccccc"},
	"scales": [{"name": "Blues", "scale": ["#e0ecf4", "#084081"]}],
	"palettes": {"data": [{"name": "Brand", "scale": ["#112233"]}]},
	"_variables": {"@brand": "#112233"},
	"color": "#333333"
}`

func parse(t *testing.T, doc string) jsonvalue.Value {
	t.Helper()
	v, err := jsonvalue.Parse([]byte(doc))
	require.NoError(t, err)
	return v
}

func mapToValue(t *testing.T, resolved jsonvalue.Value) jsonvalue.Value {
	t.Helper()
	out, err := json.Marshal(Map(resolved, DefaultConfig()))
	require.NoError(t, err)
	return parse(t, string(out))
}

func createTestHandler(t *testing.T, config *Config) *Handler {
	return NewHandler(config, logger.NewTestLogger(t))
}

func TestMap_EndToEndScenario(t *testing.T) {
	original := parse(t, scenarioDocument)
	vars, _ := jsonvalue.AsObject(original).Get("_variables")

	resolved, report := resolvevariables.Resolve(original, jsonvalue.AsObject(vars), resolvevariables.DefaultConfig())
	require.Empty(t, report.Unresolved)

	out, err := json.Marshal(Map(resolved, DefaultConfig()))
	require.NoError(t, err)
	assert.JSONEq(t, scenarioExpected, string(out))

	mapped := parse(t, string(out))
	assert.Equal(t, jsonvalue.String("#ffffff"), jsonvalue.Lookup(mapped, "base", "backgroundColor"))
	assert.Equal(t, jsonvalue.String("#112233"), jsonvalue.Lookup(mapped, "theme", "palette", "primary", "main"))
	assert.Equal(t, jsonvalue.String("#ffffff"), jsonvalue.Lookup(mapped, "theme", "palette", "background", "paper"))
	assert.True(t, jsonvalue.Equal(vars, jsonvalue.Lookup(mapped, "custom", "_variables")))
}

func TestMap_KeyOrder(t *testing.T) {
	mapped := jsonvalue.AsObject(mapToValue(t, parse(t, fullDocument)))
	require.NotNil(t, mapped)

	assert.Equal(t, []string{"type", "base", "custom", "theme"}, mapped.Keys())
	assert.Equal(t,
		[]string{"fontSize", "fontFamily", "backgroundColor", "dataColors", "scales", "palettes"},
		jsonvalue.AsObject(jsonvalue.Lookup(mapped, "base")).Keys())
	assert.Equal(t,
		[]string{"primary", "secondary", "text", "action", "background", "custom", "selected", "btn"},
		jsonvalue.AsObject(jsonvalue.Lookup(mapped, "theme", "palette")).Keys())
}

func TestMap_FollowsRegistry(t *testing.T) {
	resolved := parse(t, fullDocument)
	mapped := mapToValue(t, resolved)

	for _, rule := range registry.Default().Rules {
		t.Run(rule.Destination, func(t *testing.T) {
			got := jsonvalue.Lookup(mapped, registry.SplitPath(rule.Destination)...)
			require.NotNil(t, got, "destination missing")

			var want jsonvalue.Value
			switch rule.Kind {
			case registry.KindConst:
				want = jsonvalue.MustFromAny(rule.Constant)
			default:
				want = jsonvalue.Lookup(resolved, registry.SplitPath(rule.Source)...)
			}
			assert.True(t, jsonvalue.Equal(want, got), "want %v, got %v", jsonvalue.ToAny(want), jsonvalue.ToAny(got))
		})
	}
}

func TestMap_EveryPaletteRoleIsCovered(t *testing.T) {
	mapped := mapToValue(t, parse(t, fullDocument))
	reg := registry.Default()

	var walk func(prefix string, v jsonvalue.Value)
	walk = func(prefix string, v jsonvalue.Value) {
		obj := jsonvalue.AsObject(v)
		if obj == nil {
			_, ok := reg.Lookup(prefix)
			assert.True(t, ok, "no rule for %s", prefix)
			return
		}
		for _, key := range obj.Keys() {
			child, _ := obj.Get(key)
			walk(prefix+"."+key, child)
		}
	}
	walk("theme.palette", jsonvalue.Lookup(mapped, "theme", "palette"))
}

func TestMap_BackgroundBroadcast(t *testing.T) {
	mapped := mapToValue(t, parse(t, `{"backgroundColor":"#0b0b0b"}`))

	background := jsonvalue.AsObject(jsonvalue.Lookup(mapped, "theme", "palette", "background"))
	require.NotNil(t, background)
	assert.Equal(t, 6, background.Len())
	background.Range(func(key string, v jsonvalue.Value) bool {
		assert.Equal(t, jsonvalue.String("#0b0b0b"), v, key)
		return true
	})
}

func TestMap_MissingMembersLeaveDestinationsAbsent(t *testing.T) {
	out, err := json.Marshal(Map(parse(t, `{"fontSize":10}`), DefaultConfig()))
	require.NoError(t, err)
	mapped := parse(t, string(out))

	assert.Equal(t, []string{"fontSize", "fontFamily"}, jsonvalue.AsObject(jsonvalue.Lookup(mapped, "base")).Keys())
	assert.Equal(t, []string{"type"}, jsonvalue.AsObject(jsonvalue.Lookup(mapped, "custom")).Keys())
	assert.Equal(t, 0, jsonvalue.AsObject(jsonvalue.Lookup(mapped, "theme", "palette", "primary")).Len())
	assert.Equal(t, 0, jsonvalue.AsObject(jsonvalue.Lookup(mapped, "theme", "palette", "background")).Len())
	assert.Equal(t, []string{"secondary", "disabled"}, jsonvalue.AsObject(jsonvalue.Lookup(mapped, "theme", "palette", "text")).Keys())
	assert.Equal(t, 6, jsonvalue.AsObject(jsonvalue.Lookup(mapped, "theme", "palette", "btn")).Len())
}

func TestMap_NonObjectDocument(t *testing.T) {
	theme := Map(jsonvalue.Array{jsonvalue.String("x")}, DefaultConfig())
	assert.Equal(t, "custom", theme.Type)
	assert.Nil(t, theme.Base.FontSize)
	assert.Nil(t, theme.Theme.Palette.Primary.Main)
	assert.Equal(t, jsonvalue.String("#009845"), theme.Theme.Palette.Selected.Main)
}

func TestMap_DoesNotAliasInput(t *testing.T) {
	resolved := parse(t, fullDocument)
	theme := Map(resolved, DefaultConfig())

	jsonvalue.AsObject(theme.Base.DataColors).Set("primaryColor", jsonvalue.String("#000000"))
	assert.Equal(t, jsonvalue.String("#112233"), jsonvalue.Lookup(resolved, "dataColors", "primaryColor"))
}

func TestDesignSystemDefaults_LeaveBrandRolesEmpty(t *testing.T) {
	p := DesignSystemDefaults()
	assert.Nil(t, p.Primary.Main)
	assert.Nil(t, p.Secondary.Main)
	assert.Nil(t, p.Text.Primary)
	assert.Nil(t, p.Action.Active)
	assert.Nil(t, p.Background.Paper)
	assert.Nil(t, p.Custom.FocusBorder)
	assert.Equal(t, jsonvalue.Number("0.08"), p.Action.HoverOpacity)
}

func TestMap_CustomTableKey(t *testing.T) {
	original := parse(t, `{
		"backgroundColor": "@bg",
		"vars": {"@bg": "#fff"},
		"_variables": {"@x": "@bg"},
		"dataColors": {"primaryColor": "#1", "othersColor": "#2"}
	}`)
	vars, _ := jsonvalue.AsObject(original).Get("vars")

	resolverConfig := resolvevariables.DefaultConfig()
	resolverConfig.TableKey = "vars"
	resolved, _ := resolvevariables.Resolve(original, jsonvalue.AsObject(vars), resolverConfig)

	theme := Map(resolved, &Config{FontFamily: DefaultFontFamily, TableKey: "vars"})

	assert.True(t, jsonvalue.Equal(vars, theme.Custom.Variables))
	assert.Equal(t, jsonvalue.String("#fff"), theme.Base.BackgroundColor)

	// An empty key falls back to _variables.
	theme = Map(resolved, &Config{FontFamily: DefaultFontFamily})
	assert.True(t, jsonvalue.Equal(
		jsonvalue.MustFromAny(map[string]interface{}{"@x": "#fff"}),
		theme.Custom.Variables,
	))
}

func TestHandler_Execute(t *testing.T) {
	h := createTestHandler(t, &Config{FontFamily: "'Inter', sans-serif"})

	output, err := h.Execute(context.Background(), &Input{Document: parse(t, fullDocument)})
	require.NoError(t, err)
	assert.Equal(t, "'Inter', sans-serif", output.Theme.Base.FontFamily)
	assert.Equal(t, jsonvalue.String("#445566"), output.Theme.Theme.Palette.Custom.FocusBorder)

	output, err = h.Execute(context.Background(), &Input{Document: parse(t, `{}`)})
	require.NoError(t, err)
	assert.Nil(t, output.Theme.Theme.Palette.Primary.Main)
}

func TestHandler_Execute_InvalidConfig(t *testing.T) {
	h := createTestHandler(t, &Config{})
	_, err := h.Execute(context.Background(), &Input{Document: parse(t, `{}`)})
	assert.Equal(t, apperrors.ErrCodeInvalidConfiguration, apperrors.CodeOf(err))
}

func TestBrandColors_Missing(t *testing.T) {
	assert.Empty(t, BrandColors{
		Primary:    jsonvalue.String("#1"),
		Others:     jsonvalue.String("#2"),
		Background: jsonvalue.String("#3"),
	}.Missing())
	assert.Equal(t,
		[]string{"dataColors.primaryColor", "dataColors.othersColor", "backgroundColor"},
		BrandColors{}.Missing())
}
