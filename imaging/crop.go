// Package imaging contains the image pipeline for project uploads: a
// center-crop to a target aspect ratio at a fixed output width, re-encoded
// as JPEG.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"math"

	_ "image/gif"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

const (
	// OutputWidth is the fixed width of every cropped image.
	OutputWidth = 1200
	// JPEGQuality matches the 0.8 canvas export quality of the admin UI.
	JPEGQuality = 80
)

// CenterCrop produces a center-crop of src at the given aspect ratio
// (width/height), scaled to OutputWidth x OutputWidth/ratio and encoded as
// JPEG. A source wider than the target ratio keeps its full height and is
// cropped horizontally; otherwise it keeps its full width and is cropped
// vertically.
func CenterCrop(src image.Image, ratio float64) ([]byte, error) {
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return nil, fmt.Errorf("invalid aspect ratio %v", ratio)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty source image %dx%d", w, h)
	}

	srcRatio := float64(w) / float64(h)
	var cropW, cropH int
	if srcRatio > ratio {
		cropH = h
		cropW = int(math.Round(float64(h) * ratio))
	} else {
		cropW = w
		cropH = int(math.Round(float64(w) / ratio))
	}
	if cropW < 1 {
		cropW = 1
	}
	if cropH < 1 {
		cropH = 1
	}
	x0 := bounds.Min.X + (w-cropW)/2
	y0 := bounds.Min.Y + (h-cropH)/2
	cropRect := image.Rect(x0, y0, x0+cropW, y0+cropH)

	outH := int(math.Round(OutputWidth / ratio))
	if outH < 1 {
		outH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, OutputWidth, outH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, cropRect, xdraw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CropReader decodes an uploaded image (jpeg, png or gif) and center-crops
// it. This is the entry point used by the admin upload handler.
func CropReader(r io.Reader, ratio float64) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode upload: %w", err)
	}
	return CenterCrop(src, ratio)
}
