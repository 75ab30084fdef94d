package catimg

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/nfnt/resize"
	"golang.org/x/sync/errgroup"
)

// DefaultResizeWorkers bounds the number of frames resampled in parallel
const DefaultResizeWorkers = 4

// ErrInvalidScale is returned for non-positive or non-finite scale factors
var ErrInvalidScale = errors.New("scale factor must be positive")

// ScaledSize returns the dimensions of a width x height image scaled by
// factor. Neither dimension drops below one pixel.
func ScaledSize(width, height int, factor float64) (int, int) {
	w := max(int(float64(width)*factor), 1)
	h := max(int(float64(height)*factor), 1)
	return w, h
}

// Interpolation picks the resampling filter for a resize.
// Heavy downscales use bilinear, everything else nearest neighbor.
func Interpolation(srcW, srcH, dstW, dstH int) resize.InterpolationFunction {
	if srcW*srcH > dstW*dstH*4 {
		return resize.Bilinear
	}
	return resize.NearestNeighbor
}

// Resize scales every frame of img by the same factor on both axes. Frame
// count and delays are kept. img is not modified. Frames are resampled
// concurrently, at most DefaultResizeWorkers at a time.
func Resize(img *Image, factor float64) (*Image, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScale, factor)
	}

	dstW, dstH := ScaledSize(img.Width(), img.Height(), factor)
	if dstW == img.Width() && dstH == img.Height() {
		return img.Clone(), nil
	}
	interp := Interpolation(img.Width(), img.Height(), dstW, dstH)

	frames := make([]image.Image, img.Frames())
	var g errgroup.Group
	g.SetLimit(DefaultResizeWorkers)
	for i := range frames {
		g.Go(func() error {
			src, err := img.ToNRGBA(i)
			if err != nil {
				return err
			}
			frames[i] = resize.Resize(uint(dstW), uint(dstH), src, interp)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	delays := append([]int(nil), img.Delays()...)
	return FromFrames(frames, delays)
}
