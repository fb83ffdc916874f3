package photo

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessImageReencodesAsJPEG(t *testing.T) {
	out, err := processImage(bytes.NewReader(pngBytes(t, 64, 48)))
	require.NoError(t, err)

	assert.Equal(t, "image/jpeg", http.DetectContentType(out))

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestProcessImageDownscalesOversized(t *testing.T) {
	out, err := processImage(bytes.NewReader(pngBytes(t, maxDimension*2, maxDimension)))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, maxDimension, img.Bounds().Dx())
	assert.Equal(t, maxDimension/2, img.Bounds().Dy())
}

func TestProcessImageRejectsNonImages(t *testing.T) {
	_, err := processImage(bytes.NewReader([]byte("%PDF-1.4 not an image")))
	assert.Error(t, err)

	_, err = processImage(bytes.NewReader([]byte("plain text payload")))
	assert.Error(t, err)
}

func TestDownscalePreservesSmallImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	assert.Same(t, image.Image(img), downscale(img, maxDimension))
}
