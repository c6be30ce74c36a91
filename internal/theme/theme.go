package theme

import (
	"image/color"
)

// Theme defines the colours of the paint window and the selection overlay.
type Theme struct {
	Name string

	// Window
	Background       color.RGBA // behind the canvas
	Foreground       color.RGBA // status text
	StatusBackground color.RGBA

	// Canvas
	CheckerLight color.RGBA
	CheckerDark  color.RGBA

	// Selection overlay
	SelectionTint color.RGBA // fill of a box being outlined
	BorderLight   color.RGBA
	BorderDark    color.RGBA
	HandleFill    color.RGBA
	HandleBorder  color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:             "Default",
		Background:       color.RGBA{220, 220, 220, 255},
		Foreground:       color.RGBA{0, 0, 0, 255},
		StatusBackground: color.RGBA{200, 200, 200, 255},
		CheckerLight:     color.RGBA{220, 220, 220, 255},
		CheckerDark:      color.RGBA{192, 192, 192, 255},
		SelectionTint:    color.RGBA{179, 230, 255, 77},
		BorderLight:      color.RGBA{255, 255, 255, 255},
		BorderDark:       color.RGBA{0, 0, 0, 255},
		HandleFill:       color.RGBA{255, 255, 255, 255},
		HandleBorder:     color.RGBA{0, 0, 0, 255},
	}
}
