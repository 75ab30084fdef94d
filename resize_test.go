package catimg

import (
	"math"
	"testing"

	"github.com/nfnt/resize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaledSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		factor        float64
		wantW, wantH  int
	}{
		{name: "identity", width: 100, height: 50, factor: 1, wantW: 100, wantH: 50},
		{name: "half", width: 100, height: 50, factor: 0.5, wantW: 50, wantH: 25},
		{name: "truncates", width: 100, height: 50, factor: 0.4, wantW: 40, wantH: 20},
		{name: "never zero", width: 100, height: 2, factor: 0.1, wantW: 10, wantH: 1},
		{name: "enlarge", width: 3, height: 4, factor: 2, wantW: 6, wantH: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := ScaledSize(tt.width, tt.height, tt.factor)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestInterpolation(t *testing.T) {
	assert.Equal(t, resize.Bilinear, Interpolation(400, 400, 100, 100))
	assert.Equal(t, resize.NearestNeighbor, Interpolation(200, 200, 100, 100))
	assert.Equal(t, resize.NearestNeighbor, Interpolation(100, 100, 200, 200))
}

func TestResize(t *testing.T) {
	img := createTestImage(t, 40, 20, 3)

	out, err := Resize(img, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 20, out.Width())
	assert.Equal(t, 10, out.Height())
	assert.Equal(t, 3, out.Frames())
	assert.Equal(t, img.Delays(), out.Delays())

	// the source is left alone
	assert.Equal(t, 40, img.Width())
	assert.Len(t, img.Pixels(), 40*20*3)
}

func TestResizeKeepsSolidColor(t *testing.T) {
	img, err := NewImage(16, 8, 2)
	require.NoError(t, err)
	for i := range img.Pixels() {
		img.Pixels()[i] = red
	}

	for _, factor := range []float64{0.5, 0.1, 2} {
		out, err := Resize(img, factor)
		require.NoError(t, err)
		for _, p := range out.Pixels() {
			assert.InDelta(t, 255, int(p.R), 1)
			assert.InDelta(t, 0, int(p.G), 1)
			assert.InDelta(t, 0, int(p.B), 1)
			assert.InDelta(t, 255, int(p.A), 1)
		}
	}
}

func TestResizeSameSizeClones(t *testing.T) {
	img := createTestImage(t, 4, 4, 1)
	out, err := Resize(img, 1)
	require.NoError(t, err)
	assert.Equal(t, img.Pixels(), out.Pixels())

	out.Pixels()[0] = Pixel{}
	assert.NotEqual(t, Pixel{}, img.Pixels()[0])
}

func TestResizeErrors(t *testing.T) {
	img := createTestImage(t, 4, 4, 1)

	for _, factor := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Resize(img, factor)
		assert.ErrorIs(t, err, ErrInvalidScale, "factor %v", factor)
	}

	_, err := Resize(nil, 0.5)
	assert.ErrorIs(t, err, ErrNilImage)
}
