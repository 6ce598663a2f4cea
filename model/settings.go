package model

import "math"

type FontFamily string

const (
	FontSerif     FontFamily = "serif"
	FontSansSerif FontFamily = "sans-serif"
)

const (
	MinFontSize   = 12
	MaxFontSize   = 24
	MinLineHeight = 1.0
	MaxLineHeight = 2.0
)

// FontSettings is persisted as a single record.
type FontSettings struct {
	FontSize   int        `json:"fontSize"`
	LineHeight float64    `json:"lineHeight"`
	FontFamily FontFamily `json:"fontFamily"`
}

func DefaultFontSettings() FontSettings {
	return FontSettings{
		FontSize:   16,
		LineHeight: 1.5,
		FontFamily: FontSerif,
	}
}

// Clamp brings every field back into its valid range. An unknown family
// falls back to serif.
func (f FontSettings) Clamp() FontSettings {
	f.FontSize = min(max(f.FontSize, MinFontSize), MaxFontSize)
	f.LineHeight = RoundTenth(math.Min(math.Max(f.LineHeight, MinLineHeight), MaxLineHeight))
	if f.FontFamily != FontSansSerif {
		f.FontFamily = FontSerif
	}
	return f
}

// RoundTenth rounds v to one decimal place.
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ThemeFor(dark bool) Theme {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}
