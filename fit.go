package catimg

import "errors"

// ErrWidthAndHeight is returned when both an explicit width and height are requested
var ErrWidthAndHeight = errors.New("'-w' and '-H' can't be used at the same time")

// Dimension names the axis that governs a fit
type Dimension int

const (
	DimensionNone Dimension = iota
	DimensionWidth
	DimensionHeight
)

func (d Dimension) String() string {
	switch d {
	case DimensionWidth:
		return "width"
	case DimensionHeight:
		return "height"
	default:
		return "none"
	}
}

// FitParams are the inputs of ComputeFit
type FitParams struct {
	ImageWidth  int
	ImageHeight int

	// Explicit targets. At most one may be set.
	Width  int
	Height int

	// Usable terminal bounds, already adjusted for precision
	MaxCols int
	MaxRows int

	// FitHeight prefers fitting the height when it is the tighter bound
	FitHeight bool
}

// Fit is the scaling decision
type Fit struct {
	Scale   float64
	Resize  bool
	Governs Dimension
}

// ComputeFit decides the uniform scale factor to apply to an image.
//
// When no explicit target is given the image is only shrunk, and only when it
// overflows the terminal width, or the terminal height with FitHeight set and
// height being the tighter bound. An image that overflows the height alone
// without FitHeight is left as is.
func ComputeFit(p FitParams) (Fit, error) {
	if p.Width > 0 && p.Height > 0 {
		return Fit{}, ErrWidthAndHeight
	}
	if p.ImageWidth <= 0 || p.ImageHeight <= 0 {
		return Fit{}, ErrEmptyImage
	}

	switch {
	case p.Width == 0 && p.Height == 0:
		scaleCols := float64(p.MaxCols) / float64(p.ImageWidth)
		scaleRows := float64(p.MaxRows) / float64(p.ImageHeight)
		if p.FitHeight && scaleRows < scaleCols && p.MaxRows < p.ImageHeight {
			return Fit{Scale: scaleRows, Resize: true, Governs: DimensionHeight}, nil
		}
		if p.MaxCols < p.ImageWidth {
			return Fit{Scale: scaleCols, Resize: true, Governs: DimensionWidth}, nil
		}
	case p.Width > 0 && p.Width < p.ImageWidth:
		return Fit{
			Scale:   float64(p.Width) / float64(p.ImageWidth),
			Resize:  true,
			Governs: DimensionWidth,
		}, nil
	case p.Height > 0 && p.Height < p.ImageHeight:
		// height is counted in terminal rows, two pixel rows each
		return Fit{
			Scale:   float64(p.Height*2) / float64(p.ImageHeight),
			Resize:  true,
			Governs: DimensionHeight,
		}, nil
	}
	return Fit{Scale: 1}, nil
}
