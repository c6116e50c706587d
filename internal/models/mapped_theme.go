// internal/models/mapped_theme.go
package models

import "theme-mapper/internal/common/jsonvalue"

// ThemeTypeCustom tags the mapped theme and its custom and theme regions.
const ThemeTypeCustom = "custom"

// MappedTheme is the theme consumed by the UI component library. Field order
// is the serialized key order. Leaves typed as jsonvalue.Value are dropped
// from the output when absent.
type MappedTheme struct {
	Type   string      `json:"type"`
	Base   BaseTheme   `json:"base"`
	Custom CustomTheme `json:"custom"`
	Theme  UITheme     `json:"theme"`
}

type BaseTheme struct {
	FontSize        jsonvalue.Value `json:"fontSize,omitempty"`
	FontFamily      string          `json:"fontFamily"`
	BackgroundColor jsonvalue.Value `json:"backgroundColor,omitempty"`
	DataColors      jsonvalue.Value `json:"dataColors,omitempty"`
	Scales          jsonvalue.Value `json:"scales,omitempty"`
	Palettes        jsonvalue.Value `json:"palettes,omitempty"`
}

type CustomTheme struct {
	Variables jsonvalue.Value `json:"_variables,omitempty"`
	Type      string          `json:"type"`
	Color     jsonvalue.Value `json:"color,omitempty"`
}

type UITheme struct {
	Type    string    `json:"type"`
	Palette UIPalette `json:"palette"`
}

type UIPalette struct {
	Primary    PrimaryColors    `json:"primary"`
	Secondary  SecondaryColors  `json:"secondary"`
	Text       TextColors       `json:"text"`
	Action     ActionColors     `json:"action"`
	Background BackgroundColors `json:"background"`
	Custom     CustomColors     `json:"custom"`
	Selected   SelectedColors   `json:"selected"`
	Btn        ButtonColors     `json:"btn"`
}

type PrimaryColors struct {
	Main         jsonvalue.Value `json:"main,omitempty"`
	ContrastText jsonvalue.Value `json:"contrastText,omitempty"`
}

type SecondaryColors struct {
	Light jsonvalue.Value `json:"light,omitempty"`
	Main  jsonvalue.Value `json:"main,omitempty"`
	Dark  jsonvalue.Value `json:"dark,omitempty"`
}

type TextColors struct {
	Primary   jsonvalue.Value `json:"primary,omitempty"`
	Secondary jsonvalue.Value `json:"secondary,omitempty"`
	Disabled  jsonvalue.Value `json:"disabled,omitempty"`
}

type ActionColors struct {
	Active             jsonvalue.Value `json:"active,omitempty"`
	Hover              jsonvalue.Value `json:"hover,omitempty"`
	HoverOpacity       jsonvalue.Value `json:"hoverOpacity,omitempty"`
	Selected           jsonvalue.Value `json:"selected,omitempty"`
	Disabled           jsonvalue.Value `json:"disabled,omitempty"`
	DisabledBackground jsonvalue.Value `json:"disabledBackground,omitempty"`
}

type BackgroundColors struct {
	Paper    jsonvalue.Value `json:"paper,omitempty"`
	Default  jsonvalue.Value `json:"default,omitempty"`
	Lightest jsonvalue.Value `json:"lightest,omitempty"`
	Lighter  jsonvalue.Value `json:"lighter,omitempty"`
	Darker   jsonvalue.Value `json:"darker,omitempty"`
	Darkest  jsonvalue.Value `json:"darkest,omitempty"`
}

type CustomColors struct {
	FocusBorder     jsonvalue.Value `json:"focusBorder,omitempty"`
	FocusOutline    jsonvalue.Value `json:"focusOutline,omitempty"`
	InputBackground jsonvalue.Value `json:"inputBackground,omitempty"`
}

type SelectedColors struct {
	Main                    jsonvalue.Value `json:"main,omitempty"`
	Alternative             jsonvalue.Value `json:"alternative,omitempty"`
	Excluded                jsonvalue.Value `json:"excluded,omitempty"`
	MainContrastText        jsonvalue.Value `json:"mainContrastText,omitempty"`
	AlternativeContrastText jsonvalue.Value `json:"alternativeContrastText,omitempty"`
	ExcludedContrastText    jsonvalue.Value `json:"excludedContrastText,omitempty"`
}

type ButtonColors struct {
	Normal      jsonvalue.Value `json:"normal,omitempty"`
	Hover       jsonvalue.Value `json:"hover,omitempty"`
	Active      jsonvalue.Value `json:"active,omitempty"`
	Disabled    jsonvalue.Value `json:"disabled,omitempty"`
	Border      jsonvalue.Value `json:"border,omitempty"`
	BorderHover jsonvalue.Value `json:"borderHover,omitempty"`
}
