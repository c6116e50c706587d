// pkg/registry/registry.go
package registry

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

const Version = "1"

// DefaultFontFamily is the font stack of the target design system.
const DefaultFontFamily = "'Source Sans Pro', 'Arial', 'sans-serif'"

// Default returns every destination of the mapped theme in output order,
// with the default font family and variable table member. Use SetConstant
// and SetSource to reflect a configured mapper.
func Default() *MappingRegistry {
	rules := []MappingRule{
		constant("type", "custom"),

		copyOf("base.fontSize", "fontSize"),
		constant("base.fontFamily", DefaultFontFamily),
		copyOf("base.backgroundColor", "backgroundColor"),
		copyOf("base.dataColors", "dataColors"),
		copyOf("base.scales", "scales"),
		copyOf("base.palettes", "palettes"),

		copyOf("custom._variables", "_variables"),
		constant("custom.type", "custom"),
		copyOf("custom.color", "color"),

		constant("theme.type", "custom"),
	}

	rules = append(rules, broadcast("dataColors.primaryColor", "theme.palette.primary.main", "theme.palette.primary.contrastText")...)
	rules = append(rules, broadcast("dataColors.othersColor",
		"theme.palette.secondary.light", "theme.palette.secondary.main", "theme.palette.secondary.dark")...)

	rules = append(rules,
		broadcastOne("theme.palette.text.primary", "dataColors.primaryColor"),
		constant("theme.palette.text.secondary", "rgba(0, 0, 0, 0.55)"),
		constant("theme.palette.text.disabled", "rgba(0, 0, 0, 0.3)"),

		broadcastOne("theme.palette.action.active", "dataColors.primaryColor"),
		constant("theme.palette.action.hover", "rgba(0, 0, 0, 0.03)"),
		constant("theme.palette.action.hoverOpacity", 0.08),
		constant("theme.palette.action.selected", "rgba(0, 0, 0, 0.05)"),
		constant("theme.palette.action.disabled", "rgba(0, 0, 0, 0.3)"),
		constant("theme.palette.action.disabledBackground", "rgba(0, 0, 0, 0.12)"),
	)

	rules = append(rules, broadcast("backgroundColor",
		"theme.palette.background.paper",
		"theme.palette.background.default",
		"theme.palette.background.lightest",
		"theme.palette.background.lighter",
		"theme.palette.background.darker",
		"theme.palette.background.darkest",
	)...)

	rules = append(rules,
		broadcastOne("theme.palette.custom.focusBorder", "dataColors.othersColor"),
		constant("theme.palette.custom.focusOutline", "rgba(70, 157, 205, 0.3)"),
		constant("theme.palette.custom.inputBackground", "rgba(255, 255, 255, 1)"),

		constant("theme.palette.selected.main", "#009845"),
		constant("theme.palette.selected.alternative", "#E4E4E4"),
		constant("theme.palette.selected.excluded", "#BEBEBE"),
		constant("theme.palette.selected.mainContrastText", "#ffffff"),
		constant("theme.palette.selected.alternativeContrastText", "#404040"),
		constant("theme.palette.selected.excludedContrastText", "#404040"),

		constant("theme.palette.btn.normal", "rgba(255, 255, 255, 0.6)"),
		constant("theme.palette.btn.hover", "rgba(0, 0, 0, 0.03)"),
		constant("theme.palette.btn.active", "rgba(0, 0, 0, 0.1)"),
		constant("theme.palette.btn.disabled", "rgba(255, 255, 255, 0.6)"),
		constant("theme.palette.btn.border", "rgba(0, 0, 0, 0.15)"),
		constant("theme.palette.btn.borderHover", "rgba(0, 0, 0, 0.15)"),
	)

	return &MappingRegistry{Version: Version, Rules: rules}
}

func copyOf(destination, source string) MappingRule {
	return MappingRule{Destination: destination, Kind: KindCopy, Source: source}
}

func constant(destination string, value interface{}) MappingRule {
	return MappingRule{Destination: destination, Kind: KindConst, Constant: value}
}

func broadcastOne(destination, source string) MappingRule {
	return MappingRule{Destination: destination, Kind: KindBroadcast, Source: source}
}

func broadcast(source string, destinations ...string) []MappingRule {
	rules := make([]MappingRule, 0, len(destinations))
	for _, d := range destinations {
		rules = append(rules, broadcastOne(d, source))
	}
	return rules
}

// Lookup returns the rule writing destination.
func (r *MappingRegistry) Lookup(destination string) (MappingRule, bool) {
	for _, rule := range r.Rules {
		if rule.Destination == destination {
			return rule, true
		}
	}
	return MappingRule{}, false
}

// SetConstant replaces the value of a const rule.
func (r *MappingRegistry) SetConstant(destination string, value interface{}) error {
	return r.update(destination, KindConst, func(rule *MappingRule) { rule.Constant = value })
}

// SetSource replaces the source member of a copy rule.
func (r *MappingRegistry) SetSource(destination, source string) error {
	return r.update(destination, KindCopy, func(rule *MappingRule) { rule.Source = source })
}

func (r *MappingRegistry) update(destination string, kind RuleKind, apply func(*MappingRule)) error {
	for i := range r.Rules {
		if r.Rules[i].Destination != destination {
			continue
		}
		if r.Rules[i].Kind != kind {
			return fmt.Errorf("%s is a %s rule, not %s", destination, r.Rules[i].Kind, kind)
		}
		apply(&r.Rules[i])
		return nil
	}
	return fmt.Errorf("unknown destination %s", destination)
}

// ByKind returns the rules of one kind in registry order.
func (r *MappingRegistry) ByKind(kind RuleKind) []MappingRule {
	var out []MappingRule
	for _, rule := range r.Rules {
		if rule.Kind == kind {
			out = append(out, rule)
		}
	}
	return out
}

// Destinations returns every destination fed by source.
func (r *MappingRegistry) Destinations(source string) []string {
	var out []string
	for _, rule := range r.Rules {
		if rule.Source == source {
			out = append(out, rule.Destination)
		}
	}
	return out
}

// WriteTable prints one aligned line per rule.
func (r *MappingRegistry) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DESTINATION\tKIND\tSOURCE / VALUE")
	for _, rule := range r.Rules {
		origin := rule.Source
		if rule.Kind == KindConst {
			origin = fmt.Sprintf("%v", rule.Constant)
			if s, ok := rule.Constant.(string); ok {
				origin = fmt.Sprintf("%q", s)
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", rule.Destination, rule.Kind, origin)
	}
	return tw.Flush()
}

// SplitPath splits a dot separated path into member names.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}
