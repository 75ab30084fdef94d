package catimg

import "github.com/charmbracelet/x/ansi"

// TransparencyThreshold is the alpha below which a pixel is not drawn (25%)
const TransparencyThreshold = 64

// IsTransparent reports whether p renders as an empty cell
func IsTransparent(p Pixel) bool {
	return p.A < TransparencyThreshold
}

// IsGray reports whether all color channels are equal
func IsGray(p Pixel) bool {
	return p.R == p.G && p.G == p.B
}

// Index256 quantizes p to an xterm 256-color palette index.
//
// Grays use the 24-step ramp at 232-255, everything else the 6x6x6 cube at
// 16-231. Pure black and pure white are exact cube entries and map to 16 and
// 231. Alpha is ignored.
func Index256(p Pixel) uint8 {
	r, g, b := int(p.R), int(p.G), int(p.B)
	if IsGray(p) && r != 0 && r != 255 {
		return uint8(232 + r*23/255)
	}
	return uint8(16 + (r*5/255)*36 + (g*5/255)*6 + b*5/255)
}

// MapColor converts an opaque pixel to a terminal color
func MapColor(p Pixel, trueColor bool) ansi.Color {
	if trueColor {
		return ansi.RGBColor{R: p.R, G: p.G, B: p.B}
	}
	return ansi.IndexedColor(Index256(p))
}
