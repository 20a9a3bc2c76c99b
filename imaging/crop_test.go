package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

// horizontalBands paints src in three vertical stripes: left margin red,
// center green, right margin blue.
func horizontalBands(w, h, margin int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		c := green
		if x < margin {
			c = red
		} else if x >= w-margin {
			c = blue
		}
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func verticalBands(w, h, margin int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		c := green
		if y < margin {
			c = red
		} else if y >= h-margin {
			c = blue
		}
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

// isGreenish tolerates jpeg compression noise.
func isGreenish(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return g > 0x8000 && r < 0x4000 && b < 0x4000
}

func TestCenterCropWideSource(t *testing.T) {
	// 2000x1000 at ratio 1:1 keeps the full height and drops 500px from
	// each side.
	src := horizontalBands(2000, 1000, 500)

	out, err := CenterCrop(src, 1)
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 1200, img.Bounds().Dy())

	for _, pt := range []image.Point{
		{X: 5, Y: 5},
		{X: 1194, Y: 5},
		{X: 5, Y: 1194},
		{X: 1194, Y: 1194},
		{X: 600, Y: 600},
	} {
		assert.True(t, isGreenish(img.At(pt.X, pt.Y)), "expected center region at %v, got %v", pt, img.At(pt.X, pt.Y))
	}
}

func TestCenterCropTallSource(t *testing.T) {
	// 1000x2000 at ratio 1:1 keeps the full width and center-crops the
	// height to 1000.
	src := verticalBands(1000, 2000, 500)

	out, err := CenterCrop(src, 1)
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 1200, img.Bounds().Dy())

	for _, pt := range []image.Point{
		{X: 5, Y: 5},
		{X: 1194, Y: 1194},
		{X: 600, Y: 600},
	} {
		assert.True(t, isGreenish(img.At(pt.X, pt.Y)), "expected center region at %v, got %v", pt, img.At(pt.X, pt.Y))
	}
}

func TestCenterCropOutputHeightFollowsRatio(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1600, 900))

	out, err := CenterCrop(src, 16.0/9.0)
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 675, img.Bounds().Dy())
}

func TestCenterCropDegenerateSources(t *testing.T) {
	for _, size := range []image.Point{{X: 1, Y: 5}, {X: 5, Y: 1}, {X: 1, Y: 1}} {
		src := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
		_, err := CenterCrop(src, 16.0/9.0)
		assert.NoError(t, err, "size %v", size)
	}
}

func TestCenterCropRejectsBadInput(t *testing.T) {
	_, err := CenterCrop(image.NewRGBA(image.Rect(0, 0, 10, 10)), 0)
	assert.Error(t, err)

	_, err = CenterCrop(image.NewRGBA(image.Rect(0, 0, 0, 0)), 1)
	assert.Error(t, err)
}

func TestCropReaderDecodes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, horizontalBands(200, 100, 50), nil))

	out, err := CropReader(&buf, 1)
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 1200, img.Bounds().Dy())
}
