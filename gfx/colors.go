package gfx

import "image/color"

// Palette shared by the form, the chart and the dialog.
var (
	ColorBG       = color.RGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xFF}
	ColorFG       = color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}
	ColorDim      = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xFF}
	ColorPanelBG  = color.RGBA{R: 0x08, G: 0x08, B: 0x08, A: 0xFF}
	ColorFieldBG  = color.RGBA{R: 0x1C, G: 0x20, B: 0x2A, A: 0xFF}
	ColorBorder   = color.RGBA{R: 0x2B, G: 0x33, B: 0x44, A: 0xFF}
	ColorFocus    = color.RGBA{R: 0x4A, G: 0xD1, B: 0xFF, A: 0xFF}
	ColorButtonBG = color.RGBA{R: 0x2B, G: 0x4A, B: 0x7A, A: 0xFF}
	ColorGrid     = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF}
	ColorAxis     = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF}
	ColorPlot     = color.RGBA{R: 0x4A, G: 0xD1, B: 0xFF, A: 0xFF}
	ColorLegendBG = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xFF}
	ColorError    = color.RGBA{R: 0xFF, G: 0x6B, B: 0x6B, A: 0xFF}
	ColorShade    = color.RGBA{R: 0x05, G: 0x06, B: 0x08, A: 0xFF}
)
