package textrecover

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestPNG encodes a 2x3 image where every pixel has a unique red value,
// so positions can be asserted after rotation.
func writeTestPNG(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.RGBA{R: uint8(y*2 + x), A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "page.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func redAt(t *testing.T, img image.Image, x, y int) uint8 {
	t.Helper()
	r, _, _, _ := img.At(x, y).RGBA()
	return uint8(r >> 8)
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func TestRotatePNG90(t *testing.T) {
	path := writeTestPNG(t)

	outPath, err := rotatePNG(path, 90)
	require.NoError(t, err)
	out := decodePNG(t, outPath)

	// Clockwise quarter turn swaps the dimensions.
	assert.Equal(t, 3, out.Bounds().Dx())
	assert.Equal(t, 2, out.Bounds().Dy())

	// (x, y) lands at (h-1-y, x): the top-left column becomes the top row
	// read right to left.
	assert.Equal(t, uint8(0), redAt(t, out, 2, 0)) // src (0,0)
	assert.Equal(t, uint8(1), redAt(t, out, 2, 1)) // src (1,0)
	assert.Equal(t, uint8(4), redAt(t, out, 0, 0)) // src (0,2)
	assert.Equal(t, uint8(5), redAt(t, out, 0, 1)) // src (1,2)
}

func TestRotatePNG270(t *testing.T) {
	path := writeTestPNG(t)

	outPath, err := rotatePNG(path, 270)
	require.NoError(t, err)
	out := decodePNG(t, outPath)

	assert.Equal(t, 3, out.Bounds().Dx())
	assert.Equal(t, 2, out.Bounds().Dy())

	// (x, y) lands at (y, w-1-x).
	assert.Equal(t, uint8(0), redAt(t, out, 0, 1)) // src (0,0)
	assert.Equal(t, uint8(1), redAt(t, out, 0, 0)) // src (1,0)
	assert.Equal(t, uint8(4), redAt(t, out, 2, 1)) // src (0,2)
	assert.Equal(t, uint8(5), redAt(t, out, 2, 0)) // src (1,2)
}

func TestRotatePNGRejectsOtherAngles(t *testing.T) {
	path := writeTestPNG(t)

	_, err := rotatePNG(path, 180)
	assert.Error(t, err)
}

func TestRotatePNGRoundTrip(t *testing.T) {
	path := writeTestPNG(t)

	once, err := rotatePNG(path, 90)
	require.NoError(t, err)
	back, err := rotatePNG(once, 270)
	require.NoError(t, err)

	src := decodePNG(t, path)
	out := decodePNG(t, back)
	require.Equal(t, src.Bounds(), out.Bounds())
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			assert.Equal(t, redAt(t, src, x, y), redAt(t, out, x, y), "pixel (%d,%d)", x, y)
		}
	}
}
