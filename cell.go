package catimg

import "github.com/charmbracelet/x/ansi"

// Glyphs used by the compositor
const (
	UpperHalfBlock = "\u2580" // foreground paints the upper pixel
	LowerHalfBlock = "\u2584" // foreground paints the lower pixel
)

// Cell holds the source pixels of one terminal cell.
//
// In precision 1 only Upper is used. In precision 2 Lower is the pixel below
// Upper, and HasLower is false on the last row of an odd-height frame.
type Cell struct {
	Upper     Pixel
	Lower     Pixel
	HasLower  bool
	Precision int
	TrueColor bool
}

// CellKind tags the transparency combination of a Cell
type CellKind int

const (
	// KindSingleTransparent is a precision 1 cell left empty
	KindSingleTransparent CellKind = iota
	// KindSingleOpaque is a precision 1 cell drawn as two colored spaces
	KindSingleOpaque
	// KindBothTransparent is a precision 2 cell with nothing to draw
	KindBothTransparent
	// KindLowerOnly draws only the lower pixel
	KindLowerOnly
	// KindUpperOnly draws only the upper pixel
	KindUpperOnly
	// KindBothOpaque draws both pixels in one glyph
	KindBothOpaque
	// KindLastRowTransparent is an empty cell on the last row of an odd-height frame
	KindLastRowTransparent
	// KindLastRowOpaque draws the lone pixel of the last row of an odd-height frame
	KindLastRowOpaque
)

// Kind classifies c
func (c Cell) Kind() CellKind {
	upper := !IsTransparent(c.Upper)
	if c.Precision != 2 {
		if upper {
			return KindSingleOpaque
		}
		return KindSingleTransparent
	}
	if !c.HasLower {
		if upper {
			return KindLastRowOpaque
		}
		return KindLastRowTransparent
	}
	lower := !IsTransparent(c.Lower)
	switch {
	case upper && lower:
		return KindBothOpaque
	case upper:
		return KindUpperOnly
	case lower:
		return KindLowerOnly
	default:
		return KindBothTransparent
	}
}

// ComposeCell returns the escape sequence and glyphs for one cell
func ComposeCell(c Cell) string {
	switch c.Kind() {
	case KindSingleTransparent:
		return ansi.ResetStyle + "  "
	case KindSingleOpaque:
		return ansi.Style{}.Reset().BackgroundColor(MapColor(c.Upper, c.TrueColor)).String() + "  "
	case KindBothTransparent, KindLastRowTransparent:
		return ansi.ResetStyle + " "
	case KindLowerOnly:
		return ansi.Style{}.Reset().ForegroundColor(MapColor(c.Lower, c.TrueColor)).String() + LowerHalfBlock
	case KindUpperOnly, KindLastRowOpaque:
		return ansi.Style{}.Reset().ForegroundColor(MapColor(c.Upper, c.TrueColor)).String() + UpperHalfBlock
	case KindBothOpaque:
		return ansi.Style{}.
			BackgroundColor(MapColor(c.Lower, c.TrueColor)).
			ForegroundColor(MapColor(c.Upper, c.TrueColor)).
			String() + UpperHalfBlock
	}
	return ansi.ResetStyle + " "
}
