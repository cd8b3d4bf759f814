package render

import (
	"image/color"
	"strings"
)

// Theme holds the colors used by the image renderer: the cell background,
// the default foreground, and the 16-entry palette selected by per-cell
// attribute indices.
type Theme struct {
	Background color.RGBA
	Foreground color.RGBA
	Palette    [16]color.RGBA
}

// vgaPalette is the classic 16-color text mode palette.
var vgaPalette = [16]color.RGBA{
	{0x00, 0x00, 0x00, 0xFF}, {0xAA, 0x00, 0x00, 0xFF},
	{0x00, 0xAA, 0x00, 0xFF}, {0xAA, 0x55, 0x00, 0xFF},
	{0x00, 0x00, 0xAA, 0xFF}, {0xAA, 0x00, 0xAA, 0xFF},
	{0x00, 0xAA, 0xAA, 0xFF}, {0xAA, 0xAA, 0xAA, 0xFF},
	{0x55, 0x55, 0x55, 0xFF}, {0xFF, 0x55, 0x55, 0xFF},
	{0x55, 0xFF, 0x55, 0xFF}, {0xFF, 0xFF, 0x55, 0xFF},
	{0x55, 0x55, 0xFF, 0xFF}, {0xFF, 0x55, 0xFF, 0xFF},
	{0x55, 0xFF, 0xFF, 0xFF}, {0xFF, 0xFF, 0xFF, 0xFF},
}

// DefaultTheme returns the default color theme
func DefaultTheme() Theme {
	return ThemeByName("slate")
}

// ThemeByName returns a theme for a known theme name.
func ThemeByName(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "paper":
		return Theme{
			Background: color.RGBA{0xFA, 0xFA, 0xF2, 0xFF},
			Foreground: color.RGBA{0x20, 0x20, 0x20, 0xFF},
			Palette:    vgaPalette,
		}
	case "ink":
		return Theme{
			Background: color.RGBA{0x05, 0x05, 0x05, 0xFF},
			Foreground: color.RGBA{0xE6, 0xE6, 0xE6, 0xFF},
			Palette:    vgaPalette,
		}
	case "slate":
		fallthrough
	default:
		return Theme{
			Background: color.RGBA{0x1C, 0x20, 0x28, 0xFF},
			Foreground: color.RGBA{0xD0, 0xD4, 0xDC, 0xFF},
			Palette:    vgaPalette,
		}
	}
}
