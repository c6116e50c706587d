// internal/models/theme.go
package models

import "theme-mapper/internal/common/jsonvalue"

// Top-level members of a fetched theme document.
const (
	KeyFontSize        = "fontSize"
	KeyBackgroundColor = "backgroundColor"
	KeyDataColors      = "dataColors"
	KeyPrimaryColor    = "primaryColor"
	KeyOthersColor     = "othersColor"
	KeyScales          = "scales"
	KeyPalettes        = "palettes"
	KeyColor           = "color"
	KeyVariables       = "_variables"
)

// ThemeDescriptor is one entry of the tenant's theme list.
type ThemeDescriptor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ThemeList is the body returned by the theme list endpoint.
type ThemeList struct {
	Data []ThemeDescriptor `json:"data"`
}

// ThemeDocument gives named access to the members of a theme document.
// Accessors return nil when a member is absent or the root is not an object.
type ThemeDocument struct {
	root *jsonvalue.Object
}

func NewThemeDocument(v jsonvalue.Value) ThemeDocument {
	return ThemeDocument{root: jsonvalue.AsObject(v)}
}

func (d ThemeDocument) IsObject() bool { return d.root != nil }

func (d ThemeDocument) Root() *jsonvalue.Object { return d.root }

func (d ThemeDocument) member(path ...string) jsonvalue.Value {
	if d.root == nil {
		return nil
	}
	return jsonvalue.Lookup(d.root, path...)
}

func (d ThemeDocument) FontSize() jsonvalue.Value        { return d.member(KeyFontSize) }
func (d ThemeDocument) BackgroundColor() jsonvalue.Value { return d.member(KeyBackgroundColor) }
func (d ThemeDocument) DataColors() jsonvalue.Value      { return d.member(KeyDataColors) }
func (d ThemeDocument) Scales() jsonvalue.Value          { return d.member(KeyScales) }
func (d ThemeDocument) Palettes() jsonvalue.Value        { return d.member(KeyPalettes) }
func (d ThemeDocument) Color() jsonvalue.Value           { return d.member(KeyColor) }
// Variables returns the variable table stored under tableKey, or under
// KeyVariables when tableKey is empty.
func (d ThemeDocument) Variables(tableKey string) jsonvalue.Value {
	if tableKey == "" {
		tableKey = KeyVariables
	}
	return d.member(tableKey)
}

func (d ThemeDocument) PrimaryColor() jsonvalue.Value {
	return d.member(KeyDataColors, KeyPrimaryColor)
}

func (d ThemeDocument) OthersColor() jsonvalue.Value {
	return d.member(KeyDataColors, KeyOthersColor)
}
