package catimg

// Options is the render configuration
type Options struct {
	// Explicit target width or height. Only one may be set.
	Width  int
	Height int
	// FitHeight fits the image to the terminal height when that is the
	// tighter bound
	FitHeight bool
	// Loops is the number of extra passes of an animation, negative for
	// endless playback
	Loops int
	// Precision is 1 (one pixel per cell) or 2 (two pixels per cell)
	Precision int
	// TrueColor selects 24-bit colors instead of the 256-color palette
	TrueColor bool
	// Convert restricts colors to the 256-color palette before rendering
	Convert bool
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Loops:     -1,
		TrueColor: true,
	}
}

// Validate rejects conflicting options
func (o Options) Validate() error {
	if o.Width > 0 && o.Height > 0 {
		return ErrWidthAndHeight
	}
	return nil
}

// ResolvePrecision replaces an out of range precision with 2 when the
// terminal handles UTF-8 and 1 otherwise
func (o Options) ResolvePrecision(utf8 bool) Options {
	if o.Precision == 1 || o.Precision == 2 {
		return o
	}
	if utf8 {
		o.Precision = 2
	} else {
		o.Precision = 1
	}
	return o
}

// Fit computes the scaling decision for an image of the given size inside
// the given bounds
func (o Options) Fit(imgWidth, imgHeight int, bounds Bounds) (Fit, error) {
	return ComputeFit(FitParams{
		ImageWidth:  imgWidth,
		ImageHeight: imgHeight,
		Width:       o.Width,
		Height:      o.Height,
		MaxCols:     bounds.Cols,
		MaxRows:     bounds.Rows,
		FitHeight:   o.FitHeight,
	})
}

// Prepare fits img to bounds and applies the palette conversion. img is never
// modified; it is returned as is when nothing had to change.
func (o Options) Prepare(img *Image, bounds Bounds) (*Image, Fit, error) {
	if img == nil {
		return nil, Fit{}, ErrNilImage
	}
	fit, err := o.Fit(img.Width(), img.Height(), bounds)
	if err != nil {
		return nil, Fit{}, err
	}
	if fit.Resize {
		img, err = Resize(img, fit.Scale)
		if err != nil {
			return nil, fit, err
		}
	}
	if o.Convert {
		if !fit.Resize {
			img = img.Clone()
		}
		ConvertColors(img)
	}
	return img, fit, nil
}
