package catimg

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// gifMagic prefixes every GIF stream
var gifMagic = []byte("GIF8")

// Decode reads a still or animated image from r
func Decode(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(gifMagic))
	if bytes.Equal(head, gifMagic) {
		g, err := gif.DecodeAll(br)
		if err != nil {
			return nil, fmt.Errorf("failed to decode gif: %w", err)
		}
		return FromGIF(g)
	}

	img, _, err := image.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img)
}

// DecodeFile decodes the image stored at path. "-" reads from stdin.
func DecodeFile(path string) (*Image, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}
	if path == "-" {
		return Decode(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// FromGIF composites the frames of an animated GIF onto a canvas,
// honoring each frame's disposal method.
func FromGIF(g *gif.GIF) (*Image, error) {
	if g == nil || len(g.Image) == 0 {
		return nil, ErrNoFrames
	}
	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	frames := make([]image.Image, len(g.Image))
	for i, frame := range g.Image {
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}

		var prev *image.NRGBA
		if disposal == gif.DisposalPrevious {
			prev = cloneNRGBA(canvas)
		}

		xdraw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, xdraw.Over)
		frames[i] = cloneNRGBA(canvas)

		switch disposal {
		case gif.DisposalBackground:
			xdraw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, xdraw.Src)
		case gif.DisposalPrevious:
			canvas = prev
		}
	}

	delays := make([]int, len(frames))
	copy(delays, g.Delay)
	return FromFrames(frames, delays)
}

func cloneNRGBA(img *image.NRGBA) *image.NRGBA {
	cp := image.NewNRGBA(img.Bounds())
	copy(cp.Pix, img.Pix)
	return cp
}
