package catimg

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	xdraw "golang.org/x/image/draw"
)

// DelayUnit is the duration of one stored frame delay unit
const DelayUnit = 10 * time.Millisecond

var (
	ErrEmptyImage   = errors.New("image dimensions must be positive")
	ErrPixelCount   = errors.New("pixel count does not match dimensions")
	ErrDelayCount   = errors.New("delay count does not match frame count")
	ErrOutOfBounds  = errors.New("pixel coordinates out of bounds")
	ErrNilImage     = errors.New("image cannot be nil")
	ErrNoFrames     = errors.New("image has no frames")
	ErrFrameMissing = errors.New("frame index out of range")
)

// Pixel is a single 8-bit RGBA sample
type Pixel struct {
	R, G, B, A uint8
}

// Image is a decoded, possibly animated, raster image.
//
// Pixels are stored frame-major, then row-major, then column-major, so the
// pixel at (frame, x, y) lives at frame*Width*Height + y*Width + x.
type Image struct {
	width  int
	height int
	frames int
	pixels []Pixel
	delays []int // 10ms units, one per frame
}

// NewImage allocates a fully transparent image with the given geometry
func NewImage(width, height, frames int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, width, height)
	}
	if frames <= 0 {
		return nil, ErrNoFrames
	}
	return &Image{
		width:  width,
		height: height,
		frames: frames,
		pixels: make([]Pixel, width*height*frames),
		delays: make([]int, frames),
	}, nil
}

// NewImageFromPixels wraps an existing pixel buffer. The slices are not copied.
func NewImageFromPixels(width, height, frames int, pixels []Pixel, delays []int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, width, height)
	}
	if frames <= 0 {
		return nil, ErrNoFrames
	}
	if len(pixels) != width*height*frames {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrPixelCount, len(pixels), width*height*frames)
	}
	if delays == nil {
		delays = make([]int, frames)
	}
	if len(delays) != frames {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDelayCount, len(delays), frames)
	}
	return &Image{
		width:  width,
		height: height,
		frames: frames,
		pixels: pixels,
		delays: delays,
	}, nil
}

// FromImage converts a still image.Image into a single-frame Image
func FromImage(img image.Image) (*Image, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	return FromFrames([]image.Image{img}, nil)
}

// FromFrames builds an Image from already composited frames of equal size.
// delays are in 10ms units and may be nil.
func FromFrames(frames []image.Image, delays []int) (*Image, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	bounds := frames[0].Bounds()
	out, err := NewImage(bounds.Dx(), bounds.Dy(), len(frames))
	if err != nil {
		return nil, err
	}
	copy(out.delays, delays)

	for i, src := range frames {
		nrgba := toNRGBA(src, bounds.Dx(), bounds.Dy())
		base := i * out.width * out.height
		for y := range out.height {
			row := nrgba.Pix[y*nrgba.Stride:]
			for x := range out.width {
				o := x * 4
				out.pixels[base+y*out.width+x] = Pixel{R: row[o], G: row[o+1], B: row[o+2], A: row[o+3]}
			}
		}
	}
	return out, nil
}

// toNRGBA returns src as non-premultiplied RGBA anchored at the origin
func toNRGBA(src image.Image, width, height int) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Rect.Dx() == width && n.Rect.Dy() == height {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.Copy(dst, image.Point{}, src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// Clone returns a deep copy of img
func (img *Image) Clone() *Image {
	out := *img
	out.pixels = append([]Pixel(nil), img.pixels...)
	out.delays = append([]int(nil), img.delays...)
	return &out
}

// Width returns the image width in pixels
func (img *Image) Width() int { return img.width }

// Height returns the image height in pixels
func (img *Image) Height() int { return img.height }

// Frames returns the number of frames
func (img *Image) Frames() int { return img.frames }

// Pixels exposes the underlying flat buffer
func (img *Image) Pixels() []Pixel { return img.pixels }

// Delays returns the per-frame delays in 10ms units
func (img *Image) Delays() []int { return img.delays }

func (img *Image) index(frame, x, y int) (int, bool) {
	if frame < 0 || frame >= img.frames || x < 0 || x >= img.width || y < 0 || y >= img.height {
		return 0, false
	}
	return frame*img.width*img.height + y*img.width + x, true
}

// At returns the pixel at (frame, x, y)
func (img *Image) At(frame, x, y int) (Pixel, bool) {
	i, ok := img.index(frame, x, y)
	if !ok {
		return Pixel{}, false
	}
	return img.pixels[i], true
}

// Set stores p at (frame, x, y)
func (img *Image) Set(frame, x, y int, p Pixel) error {
	i, ok := img.index(frame, x, y)
	if !ok {
		return fmt.Errorf("%w: frame=%d x=%d y=%d", ErrOutOfBounds, frame, x, y)
	}
	img.pixels[i] = p
	return nil
}

// SetDelay sets the delay shown after frame i, in 10ms units
func (img *Image) SetDelay(frame, delay int) error {
	if frame < 0 || frame >= img.frames {
		return fmt.Errorf("%w: %d", ErrFrameMissing, frame)
	}
	img.delays[frame] = delay
	return nil
}

// Delay returns the delay associated with frame i as a duration
func (img *Image) Delay(frame int) time.Duration {
	if frame < 0 || frame >= img.frames {
		return 0
	}
	return time.Duration(img.delays[frame]) * DelayUnit
}

// Frame returns a read-only view over frame i
func (img *Image) Frame(i int) (Frame, error) {
	if i < 0 || i >= img.frames {
		return Frame{}, fmt.Errorf("%w: %d of %d", ErrFrameMissing, i, img.frames)
	}
	size := img.width * img.height
	return Frame{
		width:  img.width,
		height: img.height,
		pixels: img.pixels[i*size : (i+1)*size],
	}, nil
}

// ToNRGBA renders frame i as an image.NRGBA
func (img *Image) ToNRGBA(frame int) (*image.NRGBA, error) {
	f, err := img.Frame(frame)
	if err != nil {
		return nil, err
	}
	dst := image.NewNRGBA(image.Rect(0, 0, f.width, f.height))
	for y := range f.height {
		for x := range f.width {
			p := f.pixels[y*f.width+x]
			dst.SetNRGBA(x, y, color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A})
		}
	}
	return dst, nil
}

// Frame is a single frame of an Image
type Frame struct {
	width  int
	height int
	pixels []Pixel
}

// Width returns the frame width
func (f Frame) Width() int { return f.width }

// Height returns the frame height
func (f Frame) Height() int { return f.height }

// At returns the pixel at (x, y). ok is false outside the frame, which is how
// the last row of an odd-height frame reports a missing lower pixel.
func (f Frame) At(x, y int) (Pixel, bool) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return Pixel{}, false
	}
	return f.pixels[y*f.width+x], true
}
