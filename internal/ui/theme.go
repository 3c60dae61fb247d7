// Package ui provides the CollageCut desktop application.
//
// This file defines the app theme: compact sizing and an optional fixed
// light or dark variant.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CollageTheme wraps the default Fyne theme with compact sizing. When a
// variant is fixed it is used regardless of the system preference.
type CollageTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	fixed   bool
}

// NewCollageTheme creates a theme that follows the system variant.
func NewCollageTheme() *CollageTheme {
	return &CollageTheme{base: theme.DefaultTheme()}
}

// ThemeFromConfig returns the theme for a config value: "light", "dark" or
// anything else for the system variant.
func ThemeFromConfig(name string) *CollageTheme {
	t := NewCollageTheme()
	switch name {
	case "light":
		t.SetVariant(theme.VariantLight)
	case "dark":
		t.SetVariant(theme.VariantDark)
	}
	return t
}

// SetVariant fixes the light/dark variant.
func (t *CollageTheme) SetVariant(variant fyne.ThemeVariant) {
	t.variant = variant
	t.fixed = true
}

// Color delegates to the base theme, with the fixed variant if set.
func (t *CollageTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.fixed {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *CollageTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *CollageTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *CollageTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.base.Size(name)
	}
}
