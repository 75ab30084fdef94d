package catimg

import "github.com/charmbracelet/x/ansi"

// PaletteColor returns the RGB value xterm uses for a 256-color index
func PaletteColor(index uint8) Pixel {
	r, g, b, _ := ansi.IndexedColor(index).RGBA()
	return Pixel{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}
}

// ConvertColors restricts every opaque pixel of img to the 256-color palette
// in place. Transparent pixels and alpha are left untouched.
func ConvertColors(img *Image) {
	if img == nil {
		return
	}
	pixels := img.Pixels()
	for i, p := range pixels {
		if IsTransparent(p) {
			continue
		}
		c := PaletteColor(Index256(p))
		c.A = p.A
		pixels[i] = c
	}
}
